package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	std := logrus.StandardLogger()
	origOut, origFormatter, origLevel := std.Out, std.Formatter, std.Level

	buf := &bytes.Buffer{}
	std.SetOutput(buf)
	std.SetFormatter(&logrus.JSONFormatter{})
	std.SetLevel(logrus.DebugLevel)

	t.Cleanup(func() {
		std.SetOutput(origOut)
		std.SetFormatter(origFormatter)
		std.SetLevel(origLevel)
	})
	return buf
}

func TestWithContext_AddsRequestID(t *testing.T) {
	buf := captureOutput(t)

	ctx := ContextWithRequestID(context.Background(), "req-123")
	WithContext(ctx).WithField("step", "notify_admin").Info("sent")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "notify_admin", entry["step"])
	assert.Equal(t, "sent", entry["msg"])
}

func TestWithContext_WithoutRequestID(t *testing.T) {
	buf := captureOutput(t)

	WithContext(context.Background()).WithError(errors.New("boom")).Error("failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "request_id")
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestRequestIDFromContext(t *testing.T) {
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
	assert.Equal(t, "abc", RequestIDFromContext(ContextWithRequestID(context.Background(), "abc")))
}
