package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: LevelWarn, Output: &buf})

	l.Debug("should not appear")
	l.Info("also should not appear")
	l.Warn("warn appears")

	out := buf.String()
	assert.NotContains(t, out, "should not appear")
	assert.Contains(t, out, "warn appears")
}

func TestLoggerTags(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&Config{Level: LevelDebug, Output: &buf})

	l.LibraryError("Spawn", errors.New("boom"))
	require.Contains(t, buf.String(), "thread library error:")

	buf.Reset()
	l.SystemError("Init", errors.New("timer unavailable"))
	require.Contains(t, buf.String(), "system error:")
}

func TestDefaultLoggerIsSwappable(t *testing.T) {
	var buf bytes.Buffer
	prior := Default()
	defer SetDefault(prior)

	SetDefault(NewLogger(&Config{Level: LevelDebug, Output: &buf}))
	Info("hello")
	assert.True(t, strings.Contains(buf.String(), "hello"))
}
