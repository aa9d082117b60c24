// Package jsonfile implements roster persistence as a single JSON document.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alem-hub/student-roster/internal/domain/shared"
	"github.com/alem-hub/student-roster/internal/domain/student"
	"github.com/alem-hub/student-roster/pkg/logger"
	"github.com/alem-hub/student-roster/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// JSON FILE STORE
// Весь реестр читается и пишется целиком. Запись идёт во временный файл
// рядом с целевым и затем переименовывается поверх него.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultSaveAttempts - сколько раз пытаться записать файл при временных ошибках.
const DefaultSaveAttempts = 3

// Store implements student.Repository on top of a local JSON file.
type Store struct {
	path    string
	retrier *retry.Retrier
	log     *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithSaveAttempts sets how many times a failed write is attempted.
func WithSaveAttempts(n int) Option {
	return func(s *Store) {
		s.retrier = retry.FileWriteRetrier(n)
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// NewStore creates a store for the file at path.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:    path,
		retrier: retry.FileWriteRetrier(DefaultSaveAttempts),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("jsonfile"), logger.Path(path))
	return s
}

// Path returns the location of the roster file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the roster. A missing file yields the seed roster and no error;
// an unreadable or malformed file yields the seed roster and an error
// wrapping shared.ErrRosterCorrupt. The returned roster is never nil.
func (s *Store) Load(ctx context.Context) (*student.Roster, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("roster file not found, using seed data")
		return student.SeedRoster(), nil
	}
	if err != nil {
		s.log.Warn("cannot read roster file, using seed data", logger.Err(err))
		return student.SeedRoster(), shared.WrapError("storage", "Load", shared.ErrRosterCorrupt, "cannot read roster file", err)
	}

	roster := student.NewRoster()
	if err := json.Unmarshal(data, roster); err != nil {
		s.log.Warn("roster file is corrupt, using seed data", logger.Err(err))
		return student.SeedRoster(), shared.WrapError("storage", "Load", shared.ErrRosterCorrupt, "roster file cannot be decoded", err)
	}

	s.log.Info("roster loaded", logger.Count(roster.Len()))
	return roster, nil
}

// Save overwrites the file with the whole roster.
func (s *Store) Save(ctx context.Context, r *student.Roster) error {
	data, err := Encode(r)
	if err != nil {
		s.log.Error("cannot encode roster", logger.Err(err))
		return shared.WrapError("storage", "Save", shared.ErrStorage, "cannot encode roster", err)
	}

	err = s.retrier.Do(ctx, func(ctx context.Context) error {
		return classify(writeFileAtomic(s.path, data))
	})
	if err != nil {
		s.log.Error("cannot write roster file", logger.Err(err))
		return shared.WrapError("storage", "Save", shared.ErrStorage, "cannot write roster file", err)
	}

	s.log.Info("roster saved", logger.Count(r.Len()))
	return nil
}

// Encode renders the roster the way it is stored on disk: 2-space indent,
// non-ASCII and HTML characters written literally, trailing newline.
func Encode(r *student.Roster) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// classify marks errors that will not go away on their own as permanent.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrPermission) || errors.Is(err, fs.ErrNotExist) {
		return retry.Permanent(err)
	}
	return retry.Retryable(err)
}

// defaultFileMode applies when the roster file does not exist yet.
const defaultFileMode fs.FileMode = 0o644

// writeFileAtomic replaces path with data via a temp file and rename.
// An existing file keeps its permission bits.
func writeFileAtomic(path string, data []byte) error {
	mode := defaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".roster-*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

var _ student.Repository = (*Store)(nil)
