// Package cli implements the interactive text dialogue on stdin/stdout.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alem-hub/student-roster/internal/application/command"
	"github.com/alem-hub/student-roster/internal/application/query"
	"github.com/alem-hub/student-roster/internal/domain/shared"
	"github.com/alem-hub/student-roster/internal/domain/student"
	"github.com/alem-hub/student-roster/pkg/logger"
)

// yes - единственный ответ, который считается согласием.
const yes = "да"

// Deps - зависимости сессии.
type Deps struct {
	Repo     student.Repository
	Search   *query.SearchStudentsHandler
	Register *command.RegisterStudentHandler
	Logger   *logger.Logger
}

// Session ведёт диалог с пользователем: поиск, карточка, регистрация.
// Однопоточная; каждый шаг блокируется на чтении строки.
type Session struct {
	in  *bufio.Reader
	out io.Writer
	eof bool

	repo     student.Repository
	search   *query.SearchStudentsHandler
	register *command.RegisterStudentHandler
	log      *logger.Logger

	roster *student.Roster
}

// NewSession создаёт сессию поверх in/out.
func NewSession(in io.Reader, out io.Writer, deps Deps) *Session {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		in:       bufio.NewReader(in),
		out:      out,
		repo:     deps.Repo,
		search:   deps.Search,
		register: deps.Register,
		log:      log.With(logger.Component("cli")),
	}
}

// Roster возвращает реестр, с которым работает сессия (nil до Run).
func (s *Session) Roster() *student.Roster {
	return s.roster
}

// Run загружает реестр и крутит цикл меню, пока пользователь не откажется
// продолжать. Перед выходом реестр сохраняется. Ошибки показываются
// пользователю текстом и не прерывают сессию.
func (s *Session) Run(ctx context.Context) {
	s.println("=== Универсальная система поиска студентов ===")
	s.load(ctx)

	for {
		field := parseFieldChoice(s.chooseField())

		term, ok := s.ask(fmt.Sprintf("\nВведите значение для поиска по %s: ", fieldLabel(field)))

		result, err := s.search.Handle(ctx, s.roster, query.SearchStudentsQuery{Term: term, Field: field})
		if err != nil {
			// Пустой запрос после конца ввода завершает сессию.
			if !ok {
				break
			}
			s.println("Пожалуйста, введите значение для поиска.")
			continue
		}

		if result.Empty() {
			s.print(formatNotFound(result.Term))
			if s.confirm("Хотите зарегистрировать нового студента? (да/нет): ") {
				s.registerStudent(ctx)
			}
		} else {
			s.print(formatResults(result))
			s.showDetails(result)
		}

		if !s.confirm("\nПродолжить поиск? (да/нет): ") {
			break
		}
	}

	s.finish(ctx)
}

func (s *Session) load(ctx context.Context) {
	roster, err := s.repo.Load(ctx)
	if err != nil {
		s.log.Warn("roster replaced by seed data", logger.Err(err))
		s.println("Ошибка загрузки данных. Будет создана новая база.")
	}
	s.roster = roster
	s.printf("Загружено записей: %d\n", roster.Len())
	s.log.Info("session started", logger.Count(roster.Len()))
}

func (s *Session) finish(ctx context.Context) {
	if err := s.repo.Save(ctx, s.roster); err != nil {
		s.printf("Ошибка сохранения данных: %v\n", err)
	} else {
		s.println("Данные успешно сохранены.")
	}
	s.println("До свидания!")
	s.log.Info("session finished", logger.Count(s.roster.Len()))
}

func (s *Session) chooseField() string {
	s.print(formatFieldMenu())
	choice, _ := s.ask("Введите номер (1-6): ")
	return choice
}

// showDetails предлагает выбрать номер из списка и печатает карточку.
// 0, нечисловой ввод и номер вне списка молча игнорируются.
func (s *Session) showDetails(result *query.SearchStudentsResult) {
	choice, _ := s.ask("\nВведите номер студента для подробной информации (или 0 для отмены): ")
	choice = strings.TrimSpace(choice)
	if !isDigits(choice) {
		return
	}
	n, err := strconv.Atoi(choice)
	if err != nil {
		return
	}
	if v, ok := result.Pick(n); ok {
		s.print(formatCard(v))
	}
}

// registerStudent собирает данные и регистрирует студента.
// Любая паника внутри перехватывается: сессия продолжается.
func (s *Session) registerStudent(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("panic during registration",
				logger.Any("panic", fmt.Sprint(r)),
				logger.String("stack", string(debug.Stack())),
			)
			s.printf("Произошла ошибка: %v\n", r)
		}
	}()

	s.println("\nВведите данные нового студента:")
	surname, _ := s.ask("Фамилия: ")
	givenName, _ := s.ask("Имя: ")
	patronym, _ := s.ask("Отчество: ")

	if _, err := s.register.CheckName(s.roster, surname, givenName, patronym); err != nil {
		s.println("Студент с таким ФИО уже существует!")
		return
	}

	group, _ := s.ask("Группа: ")
	college, _ := s.ask("Колледж: ")
	yearInput, _ := s.ask("Год поступления: ")

	year, err := command.ParseAdmissionYear(yearInput)
	if err != nil {
		s.log.Info("registration aborted", logger.Err(err))
		s.println("Ошибка: введите корректный год поступления!")
		return
	}

	result, err := s.register.Handle(ctx, s.roster, command.RegisterStudentCommand{
		Surname:       surname,
		GivenName:     givenName,
		Patronym:      patronym,
		Group:         group,
		College:       college,
		AdmissionYear: year,
	})
	switch {
	case err == nil:
		if result.YearWarning {
			s.println("Предупреждение: Год поступления кажется некорректным!")
		}
		s.printf("\nСтудент '%s' успешно зарегистрирован!\n", result.FullName)
		s.printf("Начальный курс: %d\n", result.Course)
	case shared.IsAlreadyExists(err):
		s.println("Студент с таким ФИО уже существует!")
	case shared.IsStorage(err):
		s.printf("Ошибка сохранения данных: %v\n", err)
		s.println("Ошибка при сохранении данных!")
	default:
		s.printf("Произошла ошибка: %v\n", err)
	}
}

// confirm задаёт вопрос да/нет. Согласие - только "да" (без учёта регистра
// и пробелов по краям); всё остальное, включая пустой ввод, - отказ.
func (s *Session) confirm(prompt string) bool {
	answer, _ := s.ask(prompt)
	return cases.Lower(language.Russian).String(strings.TrimSpace(answer)) == yes
}

// ask печатает приглашение и читает строку. ok=false, если ввод закончился
// и строка пуста. После конца ввода все вопросы получают пустой ответ.
func (s *Session) ask(prompt string) (string, bool) {
	s.print(prompt)
	if s.eof {
		return "", false
	}

	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.log.Error("cannot read input", logger.Err(err))
		}
		s.eof = true
		s.println("")
	}
	line = strings.TrimRight(line, "\r\n")
	if s.eof && line == "" {
		return "", false
	}
	return line, true
}

func (s *Session) print(text string) {
	_, _ = io.WriteString(s.out, text)
}

func (s *Session) println(text string) {
	_, _ = io.WriteString(s.out, text+"\n")
}

func (s *Session) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
