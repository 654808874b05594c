package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, tc := range []struct{ json, debug bool }{{false, false}, {true, false}, {true, true}} {
		l, err := New(tc.json, tc.debug)
		require.NoError(t, err)
		assert.Equal(t, tc.debug, l.Core().Enabled(zapcore.DebugLevel))
	}
}

func TestNewTo_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")

	l, err := NewTo(path, true, false)
	require.NoError(t, err)
	l.Info("written", zap.String("key", "value"))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestComponent(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	Component(zap.New(core), " jobs ").Info("refreshed")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "jobs", entries[0].ContextMap()[FieldComponent])
}

func TestComponent_NilLogger(t *testing.T) {
	l := Component(nil, "server")
	require.NotNil(t, l)
	l.Info("does not panic")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("  abc  ", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "éé...", Truncate("ééé", 2))
}
