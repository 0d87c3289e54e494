package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBackends(t *testing.T) map[string]Storage {
	t.Helper()

	dir := t.TempDir()

	file, err := NewFile(filepath.Join(dir, "state.json"))
	require.NoError(t, err)

	bdb, err := NewBadger(filepath.Join(dir, "badger"))
	require.NoError(t, err)

	sdb, err := NewSQLite(filepath.Join(dir, "state.db"))
	require.NoError(t, err)

	backends := map[string]Storage{
		BackendMemory: NewMemory(0),
		BackendFile:   file,
		BackendBadger: bdb,
		BackendSQLite: sdb,
	}
	t.Cleanup(func() {
		for _, s := range backends {
			_ = s.Close()
		}
	})
	return backends
}

func TestBackendsRoundTrip(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.GetItem("missing")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.SetItem("b", `{"x":1}`))
			require.NoError(t, s.SetItem("a", "first"))
			require.NoError(t, s.SetItem("a", "second"))

			value, ok, err := s.GetItem("a")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "second", value)

			keys, err := s.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, keys)

			require.NoError(t, s.RemoveItem("a"))
			require.NoError(t, s.RemoveItem("never-written"))
			_, ok, err = s.GetItem("a")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Clear())
			keys, err = s.Keys()
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestBackendsRejectEmptyKey(t *testing.T) {
	for name, s := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.SetItem("  ", "v"), ErrEmptyKey)
		})
	}
}

func TestMemoryQuota(t *testing.T) {
	m := NewMemory(10)

	require.NoError(t, m.SetItem("k", "12345"))
	assert.ErrorIs(t, m.SetItem("other", "123456"), ErrQuotaExceeded)

	// Replacing a value only counts the difference.
	require.NoError(t, m.SetItem("k", "123456789"))
	value, _, err := m.GetItem("k")
	require.NoError(t, err)
	assert.Equal(t, "123456789", value)
}

func TestMemoryClosed(t *testing.T) {
	m := NewMemory(0)
	require.NoError(t, m.Close())

	_, _, err := m.GetItem("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.SetItem("k", "v"), ErrClosed)
}

func TestFileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	f, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetItem("globalSettings", `{"isDarkMode":true}`))
	require.NoError(t, f.Close())

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	reopened, err := NewFile(path)
	require.NoError(t, err)
	value, ok, err := reopened.GetItem("globalSettings")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"isDarkMode":true}`, value)
}

func TestFileKeepsMemoryInStepWithDiskOnFailedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	f, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetItem("a", "1"))
	require.NoError(t, f.SetItem("b", "2"))

	// A directory in place of the temporary file makes every save fail.
	require.NoError(t, os.Mkdir(path+".tmp", 0o755))

	assert.Error(t, f.SetItem("c", "3"))
	assert.Error(t, f.RemoveItem("a"))
	assert.Error(t, f.Clear())

	keys, err := f.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
	value, ok, err := f.GetItem("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	require.NoError(t, os.Remove(path+".tmp"))
	require.NoError(t, f.RemoveItem("a"))
	reopened, err := NewFile(path)
	require.NoError(t, err)
	keys, err = reopened.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, keys)
}

func TestFileRejectsCorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse storage file")
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	s, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.SetItem("trades-colorMode", `"side"`))
	require.NoError(t, s.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	value, ok, err := reopened.GetItem("trades-colorMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"side"`, value)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		opts    Options
		wantErr string
	}{
		{name: "memory", opts: Options{Backend: "memory"}},
		{name: "default is file", opts: Options{Path: filepath.Join(dir, "default.json")}},
		{name: "case insensitive", opts: Options{Backend: " SQLite ", Path: filepath.Join(dir, "x.db")}},
		{name: "badger", opts: Options{Backend: "badger", Path: filepath.Join(dir, "kv")}},
		{name: "unknown", opts: Options{Backend: "redis"}, wantErr: "unknown storage backend"},
		{name: "missing path", opts: Options{Backend: "file"}, wantErr: "requires a path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.opts)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, s.Close())
		})
	}
}
