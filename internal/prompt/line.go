package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gitsetup/internal/errors"
)

// LinePrompter reads answers line by line from a reader, echoing prompts to
// a writer. It backs non-terminal sessions and scripted tests.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter creates a LinePrompter reading from in and writing
// prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// NewScript creates a LinePrompter fed by a fixed input script. Prompt
// echoes go to out (pass io.Discard to ignore them).
func NewScript(input string, out io.Writer) *LinePrompter {
	return NewLinePrompter(strings.NewReader(input), out)
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			"No more input available",
			"")
	}
	return strings.TrimSpace(line), nil
}

// Input prints "title [default]: " and reads one line.
func (p *LinePrompter) Input(title, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", title, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", title)
	}

	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// Confirm prints "title [y/N]: " (or [Y/n]) and parses a yes/no answer.
// Unrecognized answers fall back to the default.
func (p *LinePrompter) Confirm(title string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}
	fmt.Fprintf(p.out, "%s [%s]: ", title, hint)

	line, err := p.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return defaultValue, nil
	}
}

// Select prints a numbered option list and reads a 1-based choice,
// reprompting until a valid number is given.
func (p *LinePrompter) Select(title string, options []string) (int, error) {
	fmt.Fprintf(p.out, "%s\n", title)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}

	for {
		fmt.Fprintf(p.out, "Choice [1-%d]: ", len(options))

		line, err := p.readLine()
		if err != nil {
			return 0, err
		}

		n, convErr := strconv.Atoi(line)
		if convErr != nil || n < 1 || n > len(options) {
			fmt.Fprintf(p.out, "✗ Invalid selection: %s\n", line)
			continue
		}
		return n - 1, nil
	}
}
