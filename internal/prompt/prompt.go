// Package prompt abstracts operator input behind a small capability
// interface. Interactive sessions get charmbracelet/huh forms; scripts and
// tests get a line reader, so whole flows can be driven by canned input.
package prompt

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"gitsetup/internal/errors"
)

// Prompter reads operator decisions. All blocking reads in the tool go
// through this interface.
type Prompter interface {
	// Input asks for a free-form line. The default value is returned when
	// the operator submits an empty answer.
	Input(title, defaultValue string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(title string, defaultValue bool) (bool, error)

	// Select asks the operator to pick one of the options and returns its
	// index.
	Select(title string, options []string) (int, error)
}

// New returns the appropriate Prompter for the current stdin: huh forms on
// a terminal, a plain line reader otherwise.
func New() Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return &formPrompter{}
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}

// formPrompter renders huh forms for interactive terminals.
type formPrompter struct{}

func (p *formPrompter) Input(title, defaultValue string) (string, error) {
	value := defaultValue
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			"Failed to read input",
			"")
	}
	if value == "" {
		return defaultValue, nil
	}
	return value, nil
}

func (p *formPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	value := defaultValue
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Value(&value),
		),
	)

	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrExec,
			"Failed to read input",
			"")
	}
	return value, nil
}

func (p *formPrompter) Select(title string, options []string) (int, error) {
	opts := make([]huh.Option[int], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, i)
	}

	var selected int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(opts...).
				Value(&selected),
		),
	)

	if err := form.Run(); err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrExec,
			"Failed to read input",
			"")
	}
	return selected, nil
}
