package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("info", FormatJSON, &buf)
	require.NoError(t, err)

	t.Run("debug not logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Debug("debug message")
		assert.Zero(t, buf.Len())
	})

	t.Run("info logged as json", func(t *testing.T) {
		buf.Reset()
		logger.WithField("key", "value").Info("info message")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "info message", entry["msg"])
		assert.Equal(t, "value", entry["key"])
	})
}

func TestNewLogger_Defaults(t *testing.T) {
	logger, err := NewLogger("", "", nil)
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger("loud", FormatText, nil)
	assert.Error(t, err)

	_, err = NewLogger("info", "xml", nil)
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("debug", FormatJSON, &buf)
	require.NoError(t, err)

	ctx := WithLogger(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	FromContext(ctx).Info("handled")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.NotContains(t, entry, "trace_id")
}

func TestGetLogger_Fallback(t *testing.T) {
	assert.Equal(t, logrus.StandardLogger(), GetLogger(context.Background()))
	assert.Empty(t, GetRequestID(context.Background()))
}
