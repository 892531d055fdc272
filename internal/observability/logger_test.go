package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	t.Run("initializes_json_handler", func(t *testing.T) {
		InitLogger("info", "json")
		assert.NotNil(t, logger)
	})

	t.Run("initializes_text_handler", func(t *testing.T) {
		InitLogger("info", "text")
		assert.NotNil(t, logger)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug_level", "debug", slog.LevelDebug},
		{"info_level", "info", slog.LevelInfo},
		{"warn_level", "warn", slog.LevelWarn},
		{"error_level", "error", slog.LevelError},
		{"invalid_defaults_to_info", "unknown", slog.LevelInfo},
		{"empty_defaults_to_info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestFromContext(t *testing.T) {
	InitLogger("info", "json")

	t.Run("bare_context_returns_base_logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
	})

	t.Run("context_values_are_attached", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-1")
		ctx = WithUsername(ctx, "alice")
		assert.NotNil(t, FromContext(ctx))
	})

	t.Run("uninitialized_logger_falls_back_to_default", func(t *testing.T) {
		saved := logger
		logger = nil
		defer func() { logger = saved }()

		assert.NotNil(t, FromContext(context.Background()))
	})
}
