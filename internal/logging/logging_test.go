package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"chatty", zapcore.InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNew_WritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	cfg := DefaultConfig()
	cfg.File = path

	logger, closeFn, err := New(cfg)
	require.NoError(t, err)
	logger.Named("quiz").Info("problem fetched", zap.String("category", "addition"))
	logger.Debug("hidden at info level")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "problem fetched", entry["msg"])
	assert.Equal(t, "quiz", entry["logger"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "addition", entry["category"])
}

func TestNew_ConsoleTee(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Config{Level: "debug", Console: &buf})
	require.NoError(t, err)
	logger.Debug("listening", zap.String("addr", ":8080"))
	require.NoError(t, closeFn())

	assert.Contains(t, buf.String(), "listening")
	assert.Contains(t, buf.String(), ":8080")
}

func TestNew_NoSinks(t *testing.T) {
	logger, closeFn, err := New(Config{})
	require.NoError(t, err)
	logger.Info("dropped")
	assert.NoError(t, closeFn())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	assert.Equal(t, filepath.Join("/tmp/state", "littlemath", "littlemath.log"), DefaultLogPath())
}
