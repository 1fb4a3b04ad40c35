package exec

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Run_CapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell test")
	}

	r := NewSystem()
	output, exitCode, err := r.Run("sh", "-c", "echo hello")

	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, "hello\n", string(output))
}

func TestSystem_Run_NonZeroExitIsNotError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell test")
	}

	r := NewSystem()
	_, exitCode, err := r.Run("sh", "-c", "exit 3")

	require.NoError(t, err)
	assert.Equal(t, 3, exitCode)
}

func TestSystem_Run_MissingCommand(t *testing.T) {
	r := NewSystem()
	_, exitCode, err := r.Run("definitely-not-a-real-command-xyz")

	assert.Error(t, err)
	assert.Equal(t, -1, exitCode)
}

func TestSystem_LookPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell test")
	}

	r := NewSystem()

	path, err := r.LookPath("sh")
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	_, err = r.LookPath("definitely-not-a-real-command-xyz")
	assert.Error(t, err)
}
