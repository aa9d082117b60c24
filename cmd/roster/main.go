// Package main - точка входа консольного реестра студентов.
//
// Программа загружает реестр из JSON-файла (или встроенный набор),
// ведёт диалог поиска и регистрации на stdin/stdout и сохраняет
// реестр перед выходом.
//
// Слои:
// - Domain: реестр, ФИО, расчёт курса, поиск
// - Application: сценарии поиска и регистрации
// - Infrastructure: хранение реестра в JSON-файле
// - Interface: текстовый диалог в терминале
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/alem-hub/student-roster/config"

	// Application layer
	"github.com/alem-hub/student-roster/internal/application/command"
	"github.com/alem-hub/student-roster/internal/application/query"

	// Domain layer
	"github.com/alem-hub/student-roster/internal/domain/student"

	// Infrastructure layer
	"github.com/alem-hub/student-roster/internal/infrastructure/persistence/jsonfile"

	// Interface layer
	"github.com/alem-hub/student-roster/internal/interface/cli"

	// Packages
	"github.com/alem-hub/student-roster/pkg/logger"
	"github.com/alem-hub/student-roster/pkg/timeutil"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// stdout занят диалогом, поэтому логи идут в stderr или в файл.
	// ─────────────────────────────────────────────────────────────────────────
	log, closeLog, err := setupLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	log = log.With(logger.SessionID(uuid.New().String()))

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ДОМЕН И ХРАНИЛИЩЕ
	// ─────────────────────────────────────────────────────────────────────────
	clock := timeutil.NewSystemClock(cfg.App.Location)
	calc := student.NewCourseCalculator(clock)

	store := jsonfile.NewStore(cfg.Storage.DataFile,
		jsonfile.WithSaveAttempts(cfg.Storage.SaveAttempts),
		jsonfile.WithLogger(log),
	)

	log.Info("starting student roster",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("timezone", cfg.App.Location.String()),
		logger.Path(store.Path()),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 4. СЦЕНАРИИ И ДИАЛОГ
	// ─────────────────────────────────────────────────────────────────────────
	session := cli.NewSession(os.Stdin, os.Stdout, cli.Deps{
		Repo:     store,
		Search:   query.NewSearchStudentsHandler(calc, log),
		Register: command.NewRegisterStudentHandler(store, calc, log),
		Logger:   log,
	})
	session.Run(ctx)

	log.Info("student roster stopped")
	return nil
}

// setupLogger создаёт логгер по конфигурации. Возвращает функцию закрытия
// файла логов (no-op для stderr).
func setupLogger(cfg *config.Config) (*logger.Logger, func(), error) {
	var out io.Writer = os.Stderr
	closeFn := func() {}

	if cfg.Observability.LogFile != "" {
		f, err := os.OpenFile(cfg.Observability.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	log := logger.New(logger.Options{
		Output:    out,
		Level:     cfg.LogLevel(),
		AddCaller: cfg.Observability.LogCaller,
	})
	return log, closeFn, nil
}
