// Package identity reads and updates the global git user.name/user.email
// configuration.
package identity

import (
	"regexp"
	"strings"

	"gitsetup/internal/errors"
	"gitsetup/internal/exec"
	"gitsetup/internal/prompt"
	"gitsetup/internal/ui"
)

// emailPattern is a deliberately simple local@domain.tld shape check, not
// a full RFC 5322 validator.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Identity holds the global git author fields.
type Identity struct {
	Name  string
	Email string
}

// Configurator drives the identity read/update flow.
type Configurator struct {
	runner   exec.Runner
	prompter prompt.Prompter
	printer  *ui.Printer
}

// NewConfigurator creates a Configurator.
func NewConfigurator(r exec.Runner, p prompt.Prompter, printer *ui.Printer) *Configurator {
	if printer == nil {
		printer = ui.Default
	}
	return &Configurator{runner: r, prompter: p, printer: printer}
}

// Current reads the global identity. Unset values come back empty; git's
// non-zero exit for a missing key is not an error.
func (c *Configurator) Current() Identity {
	return Identity{
		Name:  c.get("user.name"),
		Email: c.get("user.email"),
	}
}

func (c *Configurator) get(key string) string {
	output, exitCode, err := c.runner.Run("git", "config", "--global", "--get", key)
	if err != nil || exitCode != 0 {
		return ""
	}
	return strings.TrimSpace(string(output))
}

func (c *Configurator) set(key, value string) error {
	output, exitCode, err := c.runner.Run("git", "config", "--global", key, value)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return errors.New(errors.ErrIdentity,
			"Failed to set "+key,
			strings.TrimSpace(string(output)))
	}
	return nil
}

// Configure shows the current identity and walks the operator through an
// optional update. Declining is a clean no-op.
func (c *Configurator) Configure() error {
	current := c.Current()

	c.printer.Plain("Current git identity:")
	c.printer.Plain("  name:  %s", orUnset(current.Name))
	c.printer.Plain("  email: %s", orUnset(current.Email))

	update, err := c.prompter.Confirm("Update the global git identity?", false)
	if err != nil {
		return err
	}
	if !update {
		c.printer.Info("Keeping existing identity")
		return nil
	}

	var name string
	for {
		name, err = c.prompter.Input("Name", current.Name)
		if err != nil {
			return err
		}
		if name != "" {
			break
		}
		c.printer.Error("Name cannot be empty")
	}

	var email string
	for {
		email, err = c.prompter.Input("Email", current.Email)
		if err != nil {
			return err
		}
		if ValidEmail(email) {
			break
		}
		c.printer.Error("'%s' doesn't look like an email address", email)
	}

	if err := c.set("user.name", name); err != nil {
		return err
	}
	if err := c.set("user.email", email); err != nil {
		return err
	}

	c.printer.Success("Git identity set to %s <%s>", name, email)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
