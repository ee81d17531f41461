package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("parsed", "error", errors.New("boom"), "fields", 3)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=parsed")
	require.Contains(t, out, "err=boom")
	require.Contains(t, out, "fields=3")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in    string
		level slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		level, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.level, level, tt.in)
	}

	_, err := ParseLevel("verbose")
	require.EqualError(t, err, `unknown log level "verbose"`)
}

func TestNewNop(t *testing.T) {
	require.NotPanics(t, func() { NewNop().Error("ignored") })
}
