package clone

import (
	"strconv"
	"strings"

	"github.com/cli/go-gh/v2"

	"gitsetup/internal/errors"
	"gitsetup/internal/exec"
)

// Lister fetches repository locators from a hosting provider.
type Lister interface {
	// Available reports whether the provider CLI can be used at all.
	Available() bool

	// List returns up to limit remote-style locators.
	List(limit int) ([]string, error)
}

// GHLister lists the authenticated user's repositories through the gh CLI.
type GHLister struct {
	runner exec.Runner
}

// NewGHLister creates a GHLister. The runner is only used to detect
// whether gh is on the command path.
func NewGHLister(r exec.Runner) *GHLister {
	return &GHLister{runner: r}
}

// Available reports whether gh is resolvable.
func (l *GHLister) Available() bool {
	_, err := l.runner.LookPath("gh")
	return err == nil
}

// List fetches SSH-style clone URLs for the viewer's repositories.
func (l *GHLister) List(limit int) ([]string, error) {
	stdout, stderr, err := gh.Exec("repo", "list",
		"--limit", strconv.Itoa(limit),
		"--json", "sshUrl",
		"--jq", ".[].sshUrl",
	)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrClone,
			"Failed to list repositories with gh: "+strings.TrimSpace(stderr.String()),
			"Run 'gh auth login' and try again")
	}

	var urls []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			urls = append(urls, line)
		}
	}
	return urls, nil
}
