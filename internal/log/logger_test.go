package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"mediasort/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithLevel("info"))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDefaultLevelIsWarn(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("quiet")
	l.Debug("quieter")
	assert.Empty(t, buf.String())

	l.Warnf("loud %d", 1)
	assert.Contains(t, buf.String(), "loud 1")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer

	NewLogger(WithOutput(&buf), WithDebug(false)).Debug("debug message")
	assert.Empty(t, buf.String())

	l := NewLogger(WithOutput(&buf), WithDebug(true))
	l.Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestWithLevelIgnoresUnknown(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithLevel("chatty"))
	l.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithLevel("info"))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	// Chained fields accumulate
	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON(), WithLevel("info"))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured json")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "structured json", entry["message"])
	assert.Contains(t, entry, "timestamp")
	assert.Equal(t, "value1", entry["key1"])
	assert.Equal(t, float64(123), entry["key2"])
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	fileErr := errors.NewCollisionError("/out/2022/09/a.jpg")
	l.WithError(fileErr).Error("file failed")
	output := buf.String()
	assert.Contains(t, output, "file failed")
	assert.Contains(t, output, "error_kind=collision")
	assert.Contains(t, output, "path=/out/2022/09/a.jpg")
	buf.Reset()

	l.WithError(fmt.Errorf("standard error")).Error("plain failure")
	output = buf.String()
	assert.Contains(t, output, `error="standard error"`)
	assert.Contains(t, output, "error_kind=unknown")
	assert.NotContains(t, output, "path=")
	buf.Reset()

	// Should not panic
	l.WithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "error=\"<nil>\"")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	//nolint:staticcheck // nil context is tolerated
	l.WithContext(nil).Warn("nil context")
	l.WithContext(context.Background()).Warn("context message")
	assert.Contains(t, buf.String(), "nil context")
	assert.Contains(t, buf.String(), "context message")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().With(F("k", "v")).Error("dropped")
	})
}
