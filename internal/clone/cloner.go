// Package clone collects repository locators and clones each one to an
// operator-chosen destination.
package clone

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gitsetup/internal/exec"
	"gitsetup/internal/giturl"
	"gitsetup/internal/prompt"
	"gitsetup/internal/ui"
)

// providerListLimit caps how many repositories are fetched from the
// hosting provider.
const providerListLimit = 100

// Cloner drives locator collection, destination resolution, and the
// sequential clone loop.
type Cloner struct {
	runner   exec.Runner
	prompter prompt.Prompter
	printer  *ui.Printer
	lister   Lister
	workdir  string
	chown    func(string) error
}

// NewCloner creates a Cloner defaulting destinations to the current
// working directory. A nil lister disables provider listing.
func NewCloner(r exec.Runner, p prompt.Prompter, printer *ui.Printer, lister Lister) *Cloner {
	if printer == nil {
		printer = ui.Default
	}
	wd, _ := os.Getwd()
	return &Cloner{
		runner:   r,
		prompter: p,
		printer:  printer,
		lister:   lister,
		workdir:  wd,
		chown:    fixOwnership,
	}
}

// Run collects locators and clones them. An empty selection is a warning,
// not an error; individual clone failures never abort the batch.
func (c *Cloner) Run() error {
	locators, err := c.collectLocators()
	if err != nil {
		return err
	}
	if len(locators) == 0 {
		c.printer.Warning("No repositories selected")
		return nil
	}

	shared, err := c.prompter.Confirm("Clone all repositories into one base directory?", true)
	if err != nil {
		return err
	}
	if shared {
		return c.cloneShared(locators)
	}
	return c.clonePerRepo(locators)
}

// collectLocators tries the provider listing first and falls back to
// manual entry when it is unavailable, declined, or empty.
func (c *Cloner) collectLocators() ([]string, error) {
	if c.lister != nil && c.lister.Available() {
		use, err := c.prompter.Confirm("List your repositories with gh?", true)
		if err != nil {
			return nil, err
		}
		if use {
			urls, err := c.lister.List(providerListLimit)
			switch {
			case err != nil:
				c.printer.Warning("%v", err)
			case len(urls) == 0:
				c.printer.Warning("The provider returned no repositories")
			default:
				return c.selectFromListing(urls)
			}
		}
	}
	return c.collectManual()
}

// selectFromListing presents a numbered list and reads either "all" or a
// comma-separated list of 1-based indices, reprompting until at least one
// locator is chosen.
func (c *Cloner) selectFromListing(urls []string) ([]string, error) {
	for i, u := range urls {
		c.printer.Plain("%3d) %s", i+1, u)
	}

	for {
		answer, err := c.prompter.Input(`Repositories to clone ("all" or comma-separated numbers)`, "")
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(strings.TrimSpace(answer), "all") {
			return urls, nil
		}

		selected := c.pickIndices(urls, answer)
		if len(selected) > 0 {
			return selected, nil
		}
		c.printer.Error("Nothing selected")
	}
}

// pickIndices resolves a comma-separated index list against the listing.
// Out-of-range or malformed entries are skipped with a warning.
func (c *Cloner) pickIndices(urls []string, answer string) []string {
	var selected []string
	for _, tok := range strings.Split(answer, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 1 || n > len(urls) {
			c.printer.Warning("Skipping invalid index %q", tok)
			continue
		}
		selected = append(selected, urls[n-1])
	}
	return selected
}

// collectManual reads one locator per line until an empty line. Entries
// must match the strict locator shape; exact duplicates are skipped.
func (c *Cloner) collectManual() ([]string, error) {
	c.printer.Plain("Enter repository locators (user@host:owner/name.git), empty line to finish")

	var locators []string
	seen := make(map[string]bool)
	for {
		line, err := c.prompter.Input("Locator", "")
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return locators, nil
		}
		if !giturl.ValidLocator(line) {
			c.printer.Error("%q is not a valid locator (expected user@host:owner/name.git)", line)
			continue
		}
		if seen[line] {
			c.printer.Warning("Skipping duplicate %s", line)
			continue
		}
		seen[line] = true
		locators = append(locators, line)
	}
}

// cloneShared puts every repository under one base directory. A colliding
// destination triggers an alternative-path prompt; the alternative is used
// as given, with no second existence check.
func (c *Cloner) cloneShared(locators []string) error {
	base, err := c.promptBaseDir("Base directory")
	if err != nil {
		return err
	}

	for _, locator := range locators {
		name := destName(locator)
		dest := filepath.Join(base, name)

		if nonEmptyDir(dest) {
			alt, err := c.prompter.Input(
				fmt.Sprintf("%s already exists. Alternative base for %s", dest, name), "")
			if err != nil {
				return err
			}
			dest = filepath.Join(alt, name)
		}

		c.cloneOne(locator, dest)
	}
	return nil
}

// clonePerRepo prompts for a destination per repository, reprompting on
// collision and offering a retry with a different path on clone failure.
func (c *Cloner) clonePerRepo(locators []string) error {
	for _, locator := range locators {
		name := destName(locator)

		for {
			base, err := c.promptBaseDir("Destination for " + name)
			if err != nil {
				return err
			}
			dest := filepath.Join(base, name)

			if nonEmptyDir(dest) {
				c.printer.Error("%s already exists and is not empty", dest)
				continue
			}
			if c.cloneOne(locator, dest) {
				break
			}

			retry, err := c.prompter.Confirm("Retry "+name+" with a different path?", false)
			if err != nil {
				return err
			}
			if !retry {
				break
			}
		}
	}
	return nil
}

// promptBaseDir asks for a directory until it exists or the operator
// agrees to create it.
func (c *Cloner) promptBaseDir(title string) (string, error) {
	for {
		base, err := c.prompter.Input(title, c.workdir)
		if err != nil {
			return "", err
		}
		if dirExists(base) {
			return base, nil
		}

		create, err := c.prompter.Confirm(fmt.Sprintf("%s does not exist. Create it?", base), true)
		if err != nil {
			return "", err
		}
		if !create {
			continue
		}
		if err := os.MkdirAll(base, 0o755); err != nil {
			c.printer.Error("Could not create %s: %v", base, err)
			continue
		}
		return base, nil
	}
}

// cloneOne clones a single repository and fixes ownership on success. It
// reports the outcome itself; failures are per-repository, never fatal.
func (c *Cloner) cloneOne(locator, dest string) bool {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		c.printer.Error("Could not create %s: %v", filepath.Dir(dest), err)
		return false
	}

	c.printer.Info("Cloning %s into %s", locator, dest)
	output, exitCode, err := c.runner.Run("git", "clone", locator, dest)
	if err != nil {
		c.printer.Error("Could not clone %s: %v", locator, err)
		return false
	}
	if exitCode != 0 {
		c.printer.Error("Could not clone %s: %s", locator, strings.TrimSpace(string(output)))
		return false
	}

	if err := c.chown(dest); err != nil {
		c.printer.Warning("Could not fix ownership of %s: %v", dest, err)
	}
	c.printer.Success("Cloned %s", destName(locator))
	return true
}

// destName derives the local directory name for a locator. Provider
// listings return arbitrary URL forms that bypass the strict-shape check,
// so the parsed repository name wins whenever the locator parses; the
// plain string chop covers the rest.
func destName(locator string) string {
	if u, err := giturl.Parse(locator); err == nil {
		if _, repo, ok := giturl.ExtractOwnerRepo(u); ok {
			return repo
		}
	}
	return giturl.RepoName(locator)
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// nonEmptyDir reports whether path exists and has at least one entry.
// git clone accepts an existing empty directory, so only non-empty ones
// count as collisions.
func nonEmptyDir(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) > 0
}
