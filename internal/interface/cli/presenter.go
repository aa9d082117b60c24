package cli

import (
	"fmt"
	"strings"

	"github.com/alem-hub/student-roster/internal/application/query"
	"github.com/alem-hub/student-roster/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// PRESENTER
// Тексты меню, строки результатов и карточка студента.
// ══════════════════════════════════════════════════════════════════════════════

const cardRule = "=================================================="

// fieldMenu - пункты меню выбора поля, в порядке номеров.
var fieldMenu = []struct {
	key   string
	title string
	field student.Field
}{
	{"1", "Фамилия", student.FieldSurname},
	{"2", "Имя", student.FieldGivenName},
	{"3", "Отчество", student.FieldPatronym},
	{"4", "Группа", student.FieldGroup},
	{"5", "Колледж", student.FieldCollege},
	{"6", "Поиск по всем полям", student.FieldAll},
}

// parseFieldChoice переводит номер пункта меню в поле.
// Всё, что не распознано, означает поиск по всем полям.
func parseFieldChoice(input string) student.Field {
	input = strings.TrimSpace(input)
	for _, item := range fieldMenu {
		if item.key == input {
			return item.field
		}
	}
	return student.FieldAll
}

// fieldLabel - название поля для фразы "поиск по ...".
func fieldLabel(f student.Field) string {
	switch f {
	case student.FieldSurname:
		return "фамилии"
	case student.FieldGivenName:
		return "имени"
	case student.FieldPatronym:
		return "отчеству"
	case student.FieldGroup:
		return "группе"
	case student.FieldCollege:
		return "колледжу"
	default:
		return "всем полям"
	}
}

func formatFieldMenu() string {
	var sb strings.Builder
	sb.WriteString("\nВыберите поле для поиска:\n")
	for _, item := range fieldMenu {
		fmt.Fprintf(&sb, "%s - %s\n", item.key, item.title)
	}
	return sb.String()
}

func formatResults(result *query.SearchStudentsResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nНайдено студентов: %d\n", len(result.Items))
	sb.WriteString("Список найденных студентов:\n")
	for _, v := range result.Items {
		fmt.Fprintf(&sb, "%d. %s - %s (%s), курс %d\n", v.Position, v.FullName, v.Group, v.College, v.Course)
	}
	return sb.String()
}

func formatNotFound(term string) string {
	return fmt.Sprintf("\nСтуденты по запросу '%s' не найдены.\n", term)
}

func formatCard(v query.StudentView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nНайден студент: %s\n", v.FullName)
	sb.WriteString(cardRule + "\n")
	fmt.Fprintf(&sb, "Группа: %s\n", v.Group)
	fmt.Fprintf(&sb, "Колледж: %s\n", v.College)
	fmt.Fprintf(&sb, "Год поступления: %d\n", v.AdmissionYear)
	fmt.Fprintf(&sb, "Текущий курс: %d\n", v.Course)
	sb.WriteString(cardRule + "\n")
	return sb.String()
}
