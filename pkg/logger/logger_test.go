package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Muhammaddiyor2010/Xum-ayron-bot/pkg/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewWithSentryFanOut(t *testing.T) {
	log := New(config.LoggerConfig{Level: "error", Format: "json"}, true)
	require.NotNil(t, log)

	// No Sentry client is configured, so the mirrored record goes nowhere.
	log.Error("fan-out smoke", slog.String("component", "logger_test"))
}

func TestSetLevelAdjustsSharedLevel(t *testing.T) {
	SetLevel("error")
	defer SetLevel("info")

	require.Equal(t, slog.LevelError, level.Level())
}
