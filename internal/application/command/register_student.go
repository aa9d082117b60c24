// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alem-hub/student-roster/internal/domain/shared"
	"github.com/alem-hub/student-roster/internal/domain/student"
	"github.com/alem-hub/student-roster/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER STUDENT COMMAND
// Добавляет нового студента в реестр и сразу сохраняет реестр.
// Если сохранить не удалось, запись удаляется, чтобы память и файл
// не расходились.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterStudentCommand contains the data of a new student.
type RegisterStudentCommand struct {
	Surname   string
	GivenName string
	Patronym  string

	Group   string
	College string

	// AdmissionYear is the calendar year of admission.
	AdmissionYear int
}

// FullName composes the roster key from the name parts.
func (c RegisterStudentCommand) FullName() student.FullName {
	return student.ComposeFullName(c.Surname, c.GivenName, c.Patronym)
}

// RegisterStudentResult contains the result of a registration.
type RegisterStudentResult struct {
	// FullName is the key the student was stored under.
	FullName student.FullName

	// Course is the initial course computed from the admission year.
	Course int

	// YearWarning is true when the admission year is in the future
	// or older than the course window. Registration still happens.
	YearWarning bool
}

// ParseAdmissionYear parses user input into a year.
// Returns shared.ErrInvalidAdmissionYear when the input is not an integer.
func ParseAdmissionYear(input string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, shared.WrapError("student", "ParseAdmissionYear", shared.ErrInvalidAdmissionYear,
			"cannot parse admission year", err)
	}
	return year, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// RegisterStudentHandler handles the RegisterStudentCommand.
type RegisterStudentHandler struct {
	repo student.Repository
	calc *student.CourseCalculator
	log  *logger.Logger
}

// NewRegisterStudentHandler creates a new RegisterStudentHandler.
func NewRegisterStudentHandler(
	repo student.Repository,
	calc *student.CourseCalculator,
	log *logger.Logger,
) *RegisterStudentHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RegisterStudentHandler{
		repo: repo,
		calc: calc,
		log:  log.With(logger.Component("register")),
	}
}

// CheckName composes the full name and rejects it if it is already taken.
// Lets the caller stop before asking for the rest of the data.
func (h *RegisterStudentHandler) CheckName(roster *student.Roster, surname, givenName, patronym string) (student.FullName, error) {
	name := student.ComposeFullName(surname, givenName, patronym)
	if roster.Has(name) {
		return name, shared.ErrStudentAlreadyExists
	}
	return name, nil
}

// Handle registers the student and persists the roster.
// On a duplicate name the roster is left untouched. On a save failure the
// new record is removed again and the storage error is returned.
func (h *RegisterStudentHandler) Handle(
	ctx context.Context,
	roster *student.Roster,
	cmd RegisterStudentCommand,
) (*RegisterStudentResult, error) {
	name, err := h.CheckName(roster, cmd.Surname, cmd.GivenName, cmd.Patronym)
	if err != nil {
		h.log.Info("duplicate registration rejected", logger.StudentName(name.String()))
		return nil, err
	}

	result := &RegisterStudentResult{
		FullName:    name,
		Course:      h.calc.CurrentCourse(cmd.AdmissionYear),
		YearWarning: !h.calc.AdmissionYearPlausible(cmd.AdmissionYear),
	}
	if result.YearWarning {
		h.log.Warn("implausible admission year",
			logger.StudentName(name.String()),
			logger.Int("admission_year", cmd.AdmissionYear),
		)
	}

	rec := student.Record{
		Group:         strings.TrimSpace(cmd.Group),
		College:       strings.TrimSpace(cmd.College),
		AdmissionYear: cmd.AdmissionYear,
		Course:        result.Course,
	}
	if err := roster.Add(name, rec); err != nil {
		return nil, err
	}

	if err := h.repo.Save(ctx, roster); err != nil {
		roster.Remove(name)
		h.log.Error("registration rolled back", logger.StudentName(name.String()), logger.Err(err))
		return nil, fmt.Errorf("register_student: %w", err)
	}

	h.log.Info("student registered",
		logger.StudentName(name.String()),
		logger.Group(rec.Group),
		logger.Int("course", result.Course),
	)
	return result, nil
}
