package student

import (
	"github.com/alem-hub/student-roster/pkg/timeutil"
)

const (
	// MinCourse - первый курс.
	MinCourse = 1
	// MaxCourse - последний курс.
	MaxCourse = 4
	// AdmissionWindow - сколько лет назад мог поступить студент, который ещё учится.
	AdmissionWindow = 4
)

// CurrentCourse вычисляет курс: clamp(currentYear - admissionYear + 1, 1, 4).
func CurrentCourse(admissionYear, currentYear int) int {
	course := currentYear - admissionYear + 1
	return max(MinCourse, min(MaxCourse, course))
}

// AdmissionYearPlausible проверяет, что год поступления не в будущем
// и не старше AdmissionWindow лет. Нарушение - только повод предупредить.
func AdmissionYearPlausible(admissionYear, currentYear int) bool {
	return admissionYear <= currentYear && admissionYear >= currentYear-AdmissionWindow
}

// CourseCalculator вычисляет курс относительно текущего года по часам.
type CourseCalculator struct {
	clock timeutil.Clock
}

// NewCourseCalculator создаёт калькулятор курса.
func NewCourseCalculator(clock timeutil.Clock) *CourseCalculator {
	return &CourseCalculator{clock: clock}
}

// CurrentYear возвращает текущий календарный год.
func (c *CourseCalculator) CurrentYear() int {
	return timeutil.CurrentYear(c.clock)
}

// CurrentCourse возвращает курс студента, поступившего в admissionYear.
func (c *CourseCalculator) CurrentCourse(admissionYear int) int {
	return CurrentCourse(admissionYear, c.CurrentYear())
}

// AdmissionYearPlausible проверяет год поступления относительно текущего года.
func (c *CourseCalculator) AdmissionYearPlausible(admissionYear int) bool {
	return AdmissionYearPlausible(admissionYear, c.CurrentYear())
}
