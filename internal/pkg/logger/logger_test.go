package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{ServiceName: "api", Level: zerolog.DebugLevel, Output: &buf})

	ctx := l.WithRequestID(context.Background(), "req-1")
	ctx = l.WithUserID(ctx, "user_42")
	l.Info(ctx, "upload stored")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "api", line["service"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "user_42", line["user_id"])
	assert.Equal(t, "upload stored", line["message"])
}

func TestLogger_ErrorCarriesCause(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{ServiceName: "api", Output: &buf})

	l.Error(context.Background(), "remote upload failed", errors.New("boom"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "boom", line["error"])
	assert.NotEmpty(t, line["stack"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
}
