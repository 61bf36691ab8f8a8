package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, logrus.PanicLevel, Level("silent"))
	assert.Equal(t, logrus.DebugLevel, Level("DEBUG"))
	assert.Equal(t, logrus.InfoLevel, Level("bogus"))
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", "json")

	ctx := WithEntry(context.Background(), logger.WithField("request-id", "abc"))
	FromContext(ctx).Info("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["request-id"])
	assert.Equal(t, "hello", line["msg"])

	assert.NotNil(t, FromContext(context.Background()))
}

func TestRequestID(t *testing.T) {
	_, ok := RequestID(context.Background())
	assert.False(t, ok)

	id, ok := RequestID(WithRequestID(context.Background(), "r-1"))
	assert.True(t, ok)
	assert.Equal(t, "r-1", id)
}
