// Package student содержит доменную модель реестра студентов.
// Это ядро бизнес-логики - из внешних зависимостей только golang.org/x/text.
package student

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// FullName - ключ записи в реестре: "Фамилия Имя Отчество", через пробел.
// Отчество может отсутствовать.
type FullName string

// ComposeFullName собирает ФИО из частей.
// Части обрезаются, пустые пропускаются, поэтому при пустом отчестве
// в конце не остаётся лишнего пробела.
func ComposeFullName(surname, givenName, patronym string) FullName {
	parts := make([]string, 0, 3)
	for _, p := range []string{surname, givenName, patronym} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return FullName(strings.Join(parts, " "))
}

// Parts разбивает ФИО по пробельным символам.
// Отсутствующие части возвращаются пустыми строками.
func (n FullName) Parts() (surname, givenName, patronym string) {
	tokens := strings.Fields(string(n))
	if len(tokens) > 0 {
		surname = tokens[0]
	}
	if len(tokens) > 1 {
		givenName = tokens[1]
	}
	if len(tokens) > 2 {
		patronym = tokens[2]
	}
	return surname, givenName, patronym
}

// String возвращает строковое представление ФИО.
func (n FullName) String() string {
	return string(n)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Record - запись о студенте. ФИО хранится снаружи, как ключ реестра.
type Record struct {
	// Group - код учебной группы, например "ТВ-101".
	Group string `json:"group"`

	// College - название колледжа.
	College string `json:"college"`

	// AdmissionYear - календарный год поступления.
	AdmissionYear int `json:"admissionYear"`

	// Course - курс на момент записи. При отображении всегда
	// пересчитывается из AdmissionYear.
	Course int `json:"course"`
}

// Ключи записи в файле. Старый формат использовал русские ключи,
// они принимаются при чтении, но не пишутся.
var recordKeys = []struct {
	current string
	legacy  string
}{
	{"group", "группа"},
	{"college", "колледж"},
	{"admissionYear", "год_поступления"},
	{"course", "курс"},
}

// UnmarshalJSON декодирует запись, требуя наличия всех четырёх ключей.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return errors.New("record is null")
	}

	values := make([]json.RawMessage, len(recordKeys))
	for i, k := range recordKeys {
		v, ok := raw[k.current]
		if !ok {
			v, ok = raw[k.legacy]
		}
		if !ok {
			return fmt.Errorf("record: missing key %q", k.current)
		}
		values[i] = v
	}

	var rec Record
	targets := []any{&rec.Group, &rec.College, &rec.AdmissionYear, &rec.Course}
	for i, target := range targets {
		if err := strictDecode(values[i], target); err != nil {
			return fmt.Errorf("record: key %q: %w", recordKeys[i].current, err)
		}
	}

	*r = rec
	return nil
}

// strictDecode отклоняет null, который json.Unmarshal молча пропускает.
func strictDecode(data json.RawMessage, target any) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("value is null")
	}
	return json.Unmarshal(data, target)
}
