package student

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEARCH
// Поиск подстроки без учёта регистра по одному полю или по всем сразу.
// Обе строки приводятся к нижнему регистру (не case folding), поэтому
// "ss" не находит "ß", а "σ" не находит "ς".
// ══════════════════════════════════════════════════════════════════════════════

// Field определяет поле, по которому выполняется поиск.
type Field int

const (
	// FieldAll - поиск по всем полям (совпадение в любом).
	FieldAll Field = iota
	// FieldSurname - фамилия (первое слово ФИО).
	FieldSurname
	// FieldGivenName - имя (второе слово ФИО).
	FieldGivenName
	// FieldPatronym - отчество (третье слово ФИО).
	FieldPatronym
	// FieldGroup - учебная группа.
	FieldGroup
	// FieldCollege - колледж.
	FieldCollege
)

// String возвращает машинное имя поля (для логов).
func (f Field) String() string {
	switch f {
	case FieldSurname:
		return "surname"
	case FieldGivenName:
		return "given_name"
	case FieldPatronym:
		return "patronym"
	case FieldGroup:
		return "group"
	case FieldCollege:
		return "college"
	default:
		return "all"
	}
}

// singleFields - поля, которые объединяет FieldAll.
var singleFields = []Field{FieldSurname, FieldGivenName, FieldPatronym, FieldGroup, FieldCollege}

// value возвращает значение поля записи. ok=false, если поле отсутствует
// (например, у ФИО из двух слов нет отчества).
func value(name FullName, rec Record, f Field) (string, bool) {
	surname, givenName, patronym := name.Parts()
	switch f {
	case FieldSurname:
		return surname, surname != ""
	case FieldGivenName:
		return givenName, givenName != ""
	case FieldPatronym:
		return patronym, patronym != ""
	case FieldGroup:
		return rec.Group, true
	case FieldCollege:
		return rec.College, true
	default:
		return "", false
	}
}

// Search возвращает новый реестр с записями, у которых term входит
// в выбранное поле без учёта регистра. Порядок исходного реестра сохраняется.
// Пустой term сюда попадать не должен - его отсекает вызывающий код.
func Search(r *Roster, term string, field Field) *Roster {
	lower := cases.Lower(language.Und)
	needle := lower.String(term)

	fields := []Field{field}
	if field == FieldAll {
		fields = singleFields
	}

	found := NewRoster()
	for _, e := range r.Entries() {
		for _, f := range fields {
			v, ok := value(e.Name, e.Record, f)
			if ok && strings.Contains(lower.String(v), needle) {
				_ = found.Add(e.Name, e.Record)
				break
			}
		}
	}
	return found
}
