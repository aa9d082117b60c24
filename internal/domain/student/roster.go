package student

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/alem-hub/student-roster/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER
// Упорядоченный словарь ФИО -> запись. Порядок вставки сохраняется
// и при выводе списков, и при записи в файл.
// ══════════════════════════════════════════════════════════════════════════════

// Entry - пара ФИО и запись, в порядке реестра.
type Entry struct {
	Name   FullName
	Record Record
}

// Roster хранит реестр студентов в памяти. Не потокобезопасен.
type Roster struct {
	order   []FullName
	records map[FullName]Record
}

// NewRoster создаёт пустой реестр.
func NewRoster() *Roster {
	return &Roster{records: make(map[FullName]Record)}
}

// Len возвращает количество записей.
func (r *Roster) Len() int {
	return len(r.order)
}

// Has проверяет точное совпадение ФИО.
func (r *Roster) Has(name FullName) bool {
	_, ok := r.records[name]
	return ok
}

// Get возвращает запись по ФИО.
func (r *Roster) Get(name FullName) (Record, bool) {
	rec, ok := r.records[name]
	return rec, ok
}

// Add добавляет запись в конец реестра.
// Возвращает ErrStudentAlreadyExists и ничего не меняет, если ФИО уже занято.
func (r *Roster) Add(name FullName, rec Record) error {
	if r.Has(name) {
		return shared.ErrStudentAlreadyExists
	}
	r.records[name] = rec
	r.order = append(r.order, name)
	return nil
}

// Remove удаляет запись. Возвращает false, если записи не было.
func (r *Roster) Remove(name FullName) bool {
	if !r.Has(name) {
		return false
	}
	delete(r.records, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Entries возвращает копии записей в порядке реестра.
func (r *Roster) Entries() []Entry {
	entries := make([]Entry, 0, len(r.order))
	for _, name := range r.order {
		entries = append(entries, Entry{Name: name, Record: r.records[name]})
	}
	return entries
}

// ─────────────────────────────────────────────────────────────────────────────
// JSON
// ─────────────────────────────────────────────────────────────────────────────

// MarshalJSON пишет объект с ключами в порядке реестра.
// Не-ASCII и HTML-символы не экранируются.
func (r *Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(string(name))
		if err != nil {
			return nil, err
		}
		val, err := marshalUnescaped(r.records[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON читает объект, сохраняя порядок ключей из документа.
// Повторный ключ перезаписывает значение, но сохраняет первую позицию.
func (r *Roster) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("roster: expected JSON object, got %v", tok)
	}

	parsed := NewRoster()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("roster: unexpected token %v", tok)
		}

		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("roster: %q: %w", key, err)
		}

		name := FullName(key)
		if !parsed.Has(name) {
			parsed.order = append(parsed.order, name)
		}
		parsed.records[name] = rec
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("roster: trailing data after object")
	}

	*r = *parsed
	return nil
}

func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
