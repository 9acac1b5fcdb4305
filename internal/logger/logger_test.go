package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesRoleAndCaller(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "garage-test")

	l.Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "garage-test", entry["role"])
	assert.Equal(t, "hello", entry["message"])
	assert.Contains(t, entry["func"], "TestNewLogger_WritesRoleAndCaller")
}

func TestWithContext_FromContext(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "ctx")

	ctx := l.WithContext(context.Background())
	FromContext(ctx).Warn().Msg("from ctx")

	assert.Contains(t, buf.String(), "from ctx")
	assert.Contains(t, buf.String(), `"role":"ctx"`)
}

func TestNop_DiscardsOutput(t *testing.T) {
	l := Nop()
	assert.NotPanics(t, func() {
		l.Error().Msg("discarded")
	})
}
