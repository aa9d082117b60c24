// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"strings"

	"github.com/alem-hub/student-roster/internal/domain/shared"
	"github.com/alem-hub/student-roster/internal/domain/student"
	"github.com/alem-hub/student-roster/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEARCH STUDENTS QUERY
// Ищет студентов в реестре и готовит строки для вывода с актуальным курсом.
// ══════════════════════════════════════════════════════════════════════════════

// SearchStudentsQuery содержит параметры поиска.
type SearchStudentsQuery struct {
	// Term - искомая подстрока. Пробелы по краям обрезаются.
	Term string

	// Field - поле поиска (по умолчанию - все поля).
	Field student.Field
}

// Validate проверяет корректность параметров.
func (q *SearchStudentsQuery) Validate() error {
	q.Term = strings.TrimSpace(q.Term)
	if q.Term == "" {
		return shared.ErrEmptySearchTerm
	}
	return nil
}

// StudentView - строка результата поиска.
type StudentView struct {
	// Position - номер в списке, начиная с 1.
	Position int

	FullName      student.FullName
	Group         string
	College       string
	AdmissionYear int

	// Course - курс, вычисленный на сегодня (не из хранилища).
	Course int
}

// SearchStudentsResult содержит результат поиска.
type SearchStudentsResult struct {
	// Term - запрос после обрезки пробелов.
	Term string

	// Items - найденные студенты в порядке реестра.
	Items []StudentView

	// Matches - найденные записи как отдельный реестр.
	Matches *student.Roster
}

// Empty возвращает true, если ничего не найдено.
func (r *SearchStudentsResult) Empty() bool {
	return len(r.Items) == 0
}

// Pick возвращает строку по номеру из списка (1..N).
func (r *SearchStudentsResult) Pick(position int) (StudentView, bool) {
	if position < 1 || position > len(r.Items) {
		return StudentView{}, false
	}
	return r.Items[position-1], true
}

// SearchStudentsHandler обрабатывает запрос поиска.
type SearchStudentsHandler struct {
	calc *student.CourseCalculator
	log  *logger.Logger
}

// NewSearchStudentsHandler создаёт обработчик запроса поиска.
func NewSearchStudentsHandler(calc *student.CourseCalculator, log *logger.Logger) *SearchStudentsHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SearchStudentsHandler{
		calc: calc,
		log:  log.With(logger.Component("search")),
	}
}

// Handle выполняет поиск по реестру.
func (h *SearchStudentsHandler) Handle(
	ctx context.Context,
	roster *student.Roster,
	q SearchStudentsQuery,
) (*SearchStudentsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	matches := student.Search(roster, q.Term, q.Field)

	result := &SearchStudentsResult{
		Term:    q.Term,
		Items:   make([]StudentView, 0, matches.Len()),
		Matches: matches,
	}
	for i, e := range matches.Entries() {
		result.Items = append(result.Items, h.view(i+1, e))
	}

	h.log.Debug("search completed",
		logger.SearchField(q.Field.String()),
		logger.String("term", q.Term),
		logger.Count(len(result.Items)),
	)

	return result, nil
}

func (h *SearchStudentsHandler) view(position int, e student.Entry) StudentView {
	return StudentView{
		Position:      position,
		FullName:      e.Name,
		Group:         e.Record.Group,
		College:       e.Record.College,
		AdmissionYear: e.Record.AdmissionYear,
		Course:        h.calc.CurrentCourse(e.Record.AdmissionYear),
	}
}
