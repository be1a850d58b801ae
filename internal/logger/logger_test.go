package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]interface{}{"model", "gemini", "API_KEY", "abc", "dangling"})
	assert.Equal(t, []interface{}{"model", "gemini", "API_KEY", "[REDACTED]", "dangling"}, got)
}

func TestIsRedactKey(t *testing.T) {
	assert.True(t, isRedactKey("gemini_api_key"))
	assert.True(t, isRedactKey(" Authorization "))
	assert.False(t, isRedactKey("skills"))
}

func TestLogger_RedactsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("session", "s1").Info("generating", "api_key", "secret-value", "goal", 25)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.Equal(t, "s1", fields["session"])
	assert.EqualValues(t, 25, fields["goal"])
}

func TestNew(t *testing.T) {
	l, err := New("production")
	require.NoError(t, err)
	assert.NotNil(t, l.SugaredLogger)

	l, err = New("development")
	require.NoError(t, err)
	assert.NotNil(t, l.SugaredLogger)

	Nop().Info("discarded")
}
