package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/student-roster/internal/application/command"
	"github.com/alem-hub/student-roster/internal/application/query"
	"github.com/alem-hub/student-roster/internal/domain/shared"
	"github.com/alem-hub/student-roster/internal/domain/student"
	"github.com/alem-hub/student-roster/internal/infrastructure/persistence/jsonfile"
	"github.com/alem-hub/student-roster/pkg/timeutil"
)

const testYear = 2025

func lines(input ...string) string {
	return strings.Join(input, "\n") + "\n"
}

func newSession(repo student.Repository, input string) (*Session, *bytes.Buffer) {
	calc := student.NewCourseCalculator(timeutil.YearClock(testYear))
	out := &bytes.Buffer{}
	s := NewSession(strings.NewReader(input), out, Deps{
		Repo:     repo,
		Search:   query.NewSearchStudentsHandler(calc, nil),
		Register: command.NewRegisterStudentHandler(repo, calc, nil),
	})
	return s, out
}

func newFileStore(t *testing.T) *jsonfile.Store {
	t.Helper()
	return jsonfile.NewStore(filepath.Join(t.TempDir(), "students_data.json"), jsonfile.WithSaveAttempts(1))
}

func encoded(t *testing.T, r *student.Roster) string {
	t.Helper()
	data, err := jsonfile.Encode(r)
	require.NoError(t, err)
	return string(data)
}

func TestSession_SearchShowsListAndCard(t *testing.T) {
	store := newFileStore(t)
	s, out := newSession(store, lines("6", "иван", "1", "нет"))

	s.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "=== Универсальная система поиска студентов ===")
	assert.Contains(t, text, "Загружено записей: 5")
	assert.Contains(t, text, "Введите значение для поиска по всем полям: ")
	assert.Contains(t, text, "Найдено студентов: 1")
	assert.Contains(t, text, "1. Иванов Иван Иванович - ТВ-101 (Технический колледж), курс 3")
	assert.Contains(t, text, "Найден студент: Иванов Иван Иванович")
	assert.Contains(t, text, "Год поступления: 2023")
	assert.Contains(t, text, "Текущий курс: 3")
	assert.Contains(t, text, "Данные успешно сохранены.")
	assert.True(t, strings.HasSuffix(text, "До свидания!\n"))

	// The final save writes the seed roster to disk.
	_, err := os.Stat(store.Path())
	require.NoError(t, err)
}

func TestSession_InvalidDetailChoiceIsIgnored(t *testing.T) {
	for _, choice := range []string{"0", "9", "abc", "-1", ""} {
		s, out := newSession(newFileStore(t), lines("4", "-10", choice, "нет"))
		s.Run(context.Background())

		text := out.String()
		assert.Contains(t, text, "Найдено студентов: 5", choice)
		assert.NotContains(t, text, "Найден студент:", choice)
	}
}

func TestSession_FieldMenuDefaultsToAll(t *testing.T) {
	s, out := newSession(newFileStore(t), lines("42", "дизайн", "0", "нет"))
	s.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Введите значение для поиска по всем полям: ")
	assert.Contains(t, text, "1. Козлова Мария Дмитриевна - ДЗ-104 (Колледж дизайна), курс 2")
}

func TestSession_FieldScopedSearch(t *testing.T) {
	s, out := newSession(newFileStore(t), lines("1", "анна", "нет", "нет"))
	s.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Введите значение для поиска по фамилии: ")
	assert.Contains(t, text, "Студенты по запросу 'анна' не найдены.")
}

func TestSession_BlankTermLoopsBack(t *testing.T) {
	s, out := newSession(newFileStore(t), lines("2", "   ", "2", "анна", "0", "нет"))
	s.Run(context.Background())

	text := out.String()
	assert.Equal(t, 1, strings.Count(text, "Пожалуйста, введите значение для поиска."))
	assert.Equal(t, 2, strings.Count(text, "Введите значение для поиска по имени: "))
	assert.Contains(t, text, "1. Петрова Анна Сергеевна - ИС-102 (Колледж информационных систем), курс 4")
}

func TestSession_NotFoundEchoesTrimmedTerm(t *testing.T) {
	s, out := newSession(newFileStore(t), lines("5", "  Медицинский  ", "нет", "нет"))
	s.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Студенты по запросу 'Медицинский' не найдены.")
	assert.NotContains(t, text, "Пожалуйста, введите значение для поиска.")
}

func TestSession_ContinueOnlyOnYes(t *testing.T) {
	s, out := newSession(newFileStore(t), lines(
		"6", "ZZZ", "нет", " ДА ",
		"6", "ZZZ", "нет", "yes",
		"6", "never asked",
	))
	s.Run(context.Background())

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Продолжить поиск? (да/нет): "))
	assert.NotContains(t, text, "never asked")
}

func TestSession_RegistersNewStudent(t *testing.T) {
	store := newFileStore(t)
	s, out := newSession(store, lines(
		"1", "Орлова",
		"да",
		"Орлова", "Вера", "Павловна", "ФН-201", "Финансовый колледж", "2024",
		"нет",
	))
	s.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Студенты по запросу 'Орлова' не найдены.")
	assert.Contains(t, text, "Введите данные нового студента:")
	assert.Contains(t, text, "Студент 'Орлова Вера Павловна' успешно зарегистрирован!")
	assert.Contains(t, text, "Начальный курс: 2")
	assert.NotContains(t, text, "Предупреждение")

	reloaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, reloaded.Len())
	rec, ok := reloaded.Get("Орлова Вера Павловна")
	require.True(t, ok)
	assert.Equal(t, student.Record{Group: "ФН-201", College: "Финансовый колледж", AdmissionYear: 2024, Course: 2}, rec)
}

func TestSession_RegistrationWarnsAboutOddYear(t *testing.T) {
	s, out := newSession(newFileStore(t), lines(
		"6", "ZZZ", "да", "Старый", "Студент", "", "С-1", "К", "1990", "нет",
	))
	s.Run(context.Background())

	text := out.String()
	warning := strings.Index(text, "Предупреждение: Год поступления кажется некорректным!")
	success := strings.Index(text, "Студент 'Старый Студент' успешно зарегистрирован!")
	require.NotEqual(t, -1, warning)
	require.NotEqual(t, -1, success)
	assert.Less(t, warning, success)
	assert.Contains(t, text, "Начальный курс: 4")
	assert.True(t, s.Roster().Has("Старый Студент"))
}

func TestSession_DuplicateRegistrationIsRejected(t *testing.T) {
	s, out := newSession(newFileStore(t), lines(
		"6", "ZZZ", "да", "Иванов", "Иван", "Иванович", "нет",
	))
	s.Run(context.Background())

	assert.Contains(t, out.String(), "Студент с таким ФИО уже существует!")
	assert.Equal(t, encoded(t, student.SeedRoster()), encoded(t, s.Roster()))
}

func TestSession_NonNumericYearLeavesRosterUnchanged(t *testing.T) {
	s, out := newSession(newFileStore(t), lines(
		"6", "ZZZ", "да", "Орлова", "Вера", "Павловна", "ФН-201", "ФК", "две тысячи", "нет",
	))
	s.Run(context.Background())

	assert.Contains(t, out.String(), "Ошибка: введите корректный год поступления!")
	assert.Equal(t, encoded(t, student.SeedRoster()), encoded(t, s.Roster()))
}

func TestSession_DeclinedRegistrationAsksToContinue(t *testing.T) {
	s, out := newSession(newFileStore(t), lines("6", "ZZZ", "", "нет"))
	s.Run(context.Background())

	text := out.String()
	assert.NotContains(t, text, "Введите данные нового студента:")
	assert.Contains(t, text, "Продолжить поиск? (да/нет): ")
}

func TestSession_CorruptFileFallsBackToSeed(t *testing.T) {
	store := newFileStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	s, out := newSession(store, lines("6", "ZZZ", "нет", "нет"))
	s.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Ошибка загрузки данных. Будет создана новая база.")
	assert.Contains(t, text, "Загружено записей: 5")
}

func TestSession_EndOfInputSavesAndExits(t *testing.T) {
	store := newFileStore(t)
	s, out := newSession(store, "")
	s.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Данные успешно сохранены.")
	assert.True(t, strings.HasSuffix(text, "До свидания!\n"))
	assert.NotContains(t, text, "Пожалуйста, введите значение для поиска.")
}

// failingRepo loads the seed roster and fails (or panics) on save.
type failingRepo struct {
	saveErr    error
	panicsLeft int
	saves      int
}

func (f *failingRepo) Load(context.Context) (*student.Roster, error) {
	return student.SeedRoster(), nil
}

func (f *failingRepo) Save(context.Context, *student.Roster) error {
	f.saves++
	if f.panicsLeft > 0 {
		f.panicsLeft--
		panic("disk exploded")
	}
	return f.saveErr
}

func TestSession_SaveFailureRollsBackRegistration(t *testing.T) {
	repo := &failingRepo{saveErr: shared.WrapError("storage", "Save", shared.ErrStorage, "cannot write roster file", errors.New("read-only file system"))}
	s, out := newSession(repo, lines(
		"6", "ZZZ", "да", "Орлова", "Вера", "Павловна", "ФН-201", "ФК", "2024", "нет",
	))
	s.Run(context.Background())

	text := out.String()
	assert.Contains(t, text, "Ошибка при сохранении данных!")
	assert.Contains(t, text, "read-only file system")
	assert.NotContains(t, text, "успешно зарегистрирован")
	assert.False(t, s.Roster().Has("Орлова Вера Павловна"))
	// The final save fails too and is reported, not fatal.
	assert.True(t, strings.HasSuffix(text, "До свидания!\n"))
	assert.Equal(t, 2, repo.saves)
}

func TestSession_PanicDuringRegistrationIsRecovered(t *testing.T) {
	repo := &failingRepo{panicsLeft: 1}
	s, out := newSession(repo, lines(
		"6", "ZZZ", "да", "Орлова", "Вера", "Павловна", "ФН-201", "ФК", "2024", "нет",
	))

	require.NotPanics(t, func() { s.Run(context.Background()) })

	text := out.String()
	assert.Contains(t, text, "Произошла ошибка: disk exploded")
	assert.Contains(t, text, "Продолжить поиск? (да/нет): ")
	assert.Contains(t, text, "Данные успешно сохранены.")
}
