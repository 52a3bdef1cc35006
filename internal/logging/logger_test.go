package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	docerrors "github.com/conneroisu/sassdocgen/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("json output carries component error and fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

		logger.WithComponent("sassdoc").With("file", "button/src/_mixins.scss").
			Error(ctx, errors.New("boom"), "parse failed", "line", 12)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "parse failed", entry["msg"])
		assert.Equal(t, "sassdoc", entry["component"])
		assert.Equal(t, "boom", entry["error"])
		assert.Equal(t, "button/src/_mixins.scss", entry["file"])
		assert.EqualValues(t, 12, entry["line"])
	})

	t.Run("doc errors carry their context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&LoggerConfig{Level: LevelDebug, Format: "json", Output: &buf})

		err := docerrors.NewReferenceError(docerrors.ErrCodeUnresolvedRef, "missing").
			WithComponent("rmd-button").
			WithLocation("button/src/_mixins.scss", 7)
		logger.Warn(ctx, err, "broken link")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		fields, ok := entry["error_context"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "rmd-button", fields["symbol"])
		assert.Equal(t, "button/src/_mixins.scss", fields["file"])
		assert.Equal(t, true, fields["recoverable"])
	})

	t.Run("level filters lower messages", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&LoggerConfig{Level: LevelWarn, Output: &buf})

		logger.Debug(ctx, "hidden")
		logger.Info(ctx, "hidden")
		logger.Warn(ctx, nil, "shown")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "shown")
	})

	t.Run("with does not leak into parent", func(t *testing.T) {
		var buf bytes.Buffer
		parent := NewLogger(&LoggerConfig{Level: LevelInfo, Output: &buf})
		_ = parent.With("child", true)

		parent.Info(ctx, "parent only")
		assert.False(t, strings.Contains(buf.String(), "child"))
	})

	t.Run("discard stays silent", func(t *testing.T) {
		logger := Discard()
		logger.Error(ctx, errors.New("x"), "nothing")
	})
}

func TestStartOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelDebug, Output: &buf})

	op := StartOperation(logger, "resolve")
	op.End(context.Background(), "variables", 3)

	assert.Contains(t, buf.String(), "operation=resolve")
	assert.Contains(t, buf.String(), "variables=3")
	assert.Contains(t, buf.String(), "duration_ms=")
}
