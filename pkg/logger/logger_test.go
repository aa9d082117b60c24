package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelWarn})

	log.Debug("hidden")
	log.Info("hidden too")
	log.Warn("data file is corrupt", Path("students_data.json"))
	log.Error("save failed", Err(errors.New("disk full")))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0].Level)
	assert.Equal(t, "students_data.json", entries[0].Fields["path"])
	assert.Equal(t, "ERROR", entries[1].Level)
	assert.Equal(t, "disk full", entries[1].Fields["error"])
}

func TestLogger_WithKeepsParentFieldsAndCaller(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Output: &buf, Level: LevelDebug, AddCaller: true})
	child := base.With(SessionID("abc"), Component("cli"))

	child.Info("registered", StudentName("Иванов Иван"), Count(6))
	base.Info("plain")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].Fields["session_id"])
	assert.Equal(t, "cli", entries[0].Fields["component"])
	assert.Equal(t, "Иванов Иван", entries[0].Fields["student"])
	assert.EqualValues(t, 6, entries[0].Fields["count"])
	assert.True(t, strings.HasPrefix(entries[0].Caller, "logger_test.go:"))
	assert.Empty(t, entries[1].Fields)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, " INFO ": LevelInfo, "warning": LevelWarn, "error": LevelError}
	for in, want := range cases {
		got, ok := ParseLevel(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	got, ok := ParseLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, LevelInfo, got)
}

func TestNop_WritesNothing(t *testing.T) {
	log := Nop()
	assert.False(t, log.Enabled(LevelError))
	log.Error("ignored")
}
