package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"table": "credit", "namespace": "credit-sortModel"})
	log.Info("sort state persisted")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "sort state persisted", entry["message"])
	require.Equal(t, "credit", entry["table"])
	require.Equal(t, "credit-sortModel", entry["namespace"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.Component("viewstate")
	log.Error(errors.New("quota exceeded"), "write failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "write failed", entry["message"])
	require.Equal(t, "viewstate", entry["component"])
	require.Equal(t, "quota exceeded", entry["error"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
}

func TestLoggerWritesToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tradeboard.log")
	log, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	log.Warn("storage unavailable")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "storage unavailable")
}

func TestNilAndNopLoggersAreSafe(t *testing.T) {
	t.Parallel()

	var nilLogger *Logger
	require.NotPanics(t, func() {
		nilLogger.Info("ignored")
		nilLogger.Error(errors.New("x"), "ignored")
		require.Nil(t, nilLogger.WithFields(map[string]any{"a": 1}))
	})

	require.NotPanics(t, func() {
		Nop().Component("tui").Warn("ignored")
	})
}
