// Package testing provides a scripted Runner for driving flows in tests
// without invoking real external commands.
package testing

import (
	"fmt"
	"strings"
	"sync"
)

// Call records a single command invocation.
type Call struct {
	Name string
	Args []string
}

// Line returns the full command line of the call.
func (c Call) Line() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Response is a canned result for a command invocation.
type Response struct {
	Output   string
	ExitCode int
	Err      error
}

// FakeRunner implements exec.Runner with scripted responses.
//
// Responses are keyed by the full command line ("ssh -T git@github.com").
// When a key has multiple responses they are consumed in order, with the
// last one repeating. Unmatched commands get the Default response.
type FakeRunner struct {
	mu sync.Mutex

	// Paths maps executable names to resolved paths. A nil map resolves
	// everything; a non-nil map fails lookups for missing names.
	Paths map[string]string

	// Responses maps command lines to queued responses.
	Responses map[string][]Response

	// Default is returned for unmatched commands.
	Default Response

	// OnRun, if set, is called before each response is returned. Useful
	// for side effects like creating the files ssh-keygen would write.
	OnRun func(name string, args []string)

	// Calls records every invocation in order.
	Calls []Call
}

// LookPath resolves an executable from the Paths map.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Paths == nil {
		return "/usr/bin/" + name, nil
	}
	if p, ok := f.Paths[name]; ok {
		return p, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

// Run returns the scripted response for the command line.
func (f *FakeRunner) Run(name string, args ...string) ([]byte, int, error) {
	f.mu.Lock()
	call := Call{Name: name, Args: args}
	f.Calls = append(f.Calls, call)

	resp := f.Default
	if queue, ok := f.Responses[call.Line()]; ok && len(queue) > 0 {
		resp = queue[0]
		if len(queue) > 1 {
			f.Responses[call.Line()] = queue[1:]
		}
	}
	onRun := f.OnRun
	f.mu.Unlock()

	if onRun != nil {
		onRun(name, args)
	}

	return []byte(resp.Output), resp.ExitCode, resp.Err
}

// CallLines returns the recorded invocations as full command lines.
func (f *FakeRunner) CallLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		lines[i] = c.Line()
	}
	return lines
}

// CountCalls returns how many recorded calls start with the given prefix.
func (f *FakeRunner) CountCalls(prefix string) int {
	n := 0
	for _, line := range f.CallLines() {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}
