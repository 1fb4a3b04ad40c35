// Package exec wraps invocation of the external tools gitsetup drives
// (package managers, git, ssh, ssh-keygen). Everything goes through the
// Runner interface so flows can be tested with canned command output
// instead of touching the real system.
package exec

import (
	"os/exec"

	"gitsetup/internal/errors"
)

// Runner executes external commands and resolves executables on PATH.
type Runner interface {
	// LookPath resolves an executable name to its full path.
	LookPath(name string) (string, error)

	// Run executes a command and returns its combined output and exit code.
	// A non-zero exit code is not an error; err is only set when the
	// command could not be started at all.
	Run(name string, args ...string) (output []byte, exitCode int, err error)
}

// System is the Runner backed by the real operating system.
type System struct{}

// NewSystem creates a Runner that invokes real commands.
func NewSystem() *System {
	return &System{}
}

// LookPath resolves an executable via the OS command-resolution mechanism.
func (s *System) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the command synchronously, blocking until it returns.
func (s *System) Run(name string, args ...string) ([]byte, int, error) {
	cmd := exec.Command(name, args...)

	output, runErr := cmd.CombinedOutput()
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			return output, exitErr.ExitCode(), nil
		}
		return output, -1, errors.WrapWithCode(runErr, errors.ErrExec,
			"Couldn't run '"+name+"'",
			"Make sure the command exists and is executable.")
	}

	return output, 0, nil
}
