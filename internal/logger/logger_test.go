package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferLogger_CapturesMessages(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("checking %s", "git")
	l.Info("found %s at %s", "git", "/usr/bin/git")
	l.Warn("package %s missing", "gh")
	l.Error("install failed: %v", "exit status 1")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, "debug", l.Messages[0].Level)
	assert.Equal(t, "checking git", l.Messages[0].Message)
	assert.Equal(t, "found git at /usr/bin/git", l.Messages[1].Message)
	assert.Equal(t, "warn", l.Messages[2].Level)
	assert.Equal(t, "error", l.Messages[3].Level)
}

func TestBufferLogger_HasLevel(t *testing.T) {
	l := NewBufferLogger()
	l.Warn("something")

	assert.True(t, l.HasLevel("warn"))
	assert.False(t, l.HasLevel("error"))
}

func TestBufferLogger_Clear(t *testing.T) {
	l := NewBufferLogger()
	l.Info("one")
	l.Info("two")

	l.Clear()

	assert.Empty(t, l.Messages)
}

func TestNoop_DiscardsEverything(t *testing.T) {
	l := Noop()

	assert.NotPanics(t, func() {
		l.Debug("a")
		l.Info("b")
		l.Warn("c")
		l.Error("d")
	})
}

func TestEnvLogger_DebugGatedByEnv(t *testing.T) {
	t.Setenv("GITSETUP_DEBUG", "")

	l := NewEnvLogger("[test]")
	assert.NotPanics(t, func() {
		l.Debug("should be suppressed")
	})
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	buf := NewBufferLogger()
	SetDefault(buf)

	Default().Info("hello")
	require.Len(t, buf.Messages, 1)
	assert.Equal(t, "hello", buf.Messages[0].Message)
}
