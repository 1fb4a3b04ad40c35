// Package giturl validates and dissects remote repository locators.
package giturl

import (
	"net/url"
	"regexp"
	"strings"
)

// locatorPattern is the strict shape accepted during manual entry:
// user@host:owner/name.git. Provider listings may return other URL forms;
// those bypass this check.
var locatorPattern = regexp.MustCompile(`^[A-Za-z0-9._\-]+@[A-Za-z0-9.\-]+:[A-Za-z0-9._\-]+/[A-Za-z0-9._\-]+\.git$`)

// ValidLocator reports whether s matches the strict remote-locator shape.
func ValidLocator(s string) bool {
	return locatorPattern.MatchString(s)
}

// RepoName derives the local directory name for a locator by stripping any
// path prefix and the .git suffix.
func RepoName(locator string) string {
	name := locator
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, ".git")
}

// Parse normalizes a remote locator into a URL, supporting the scp-like
// syntax (git@github.com:owner/repo.git) by rewriting it as ssh://.
func Parse(raw string) (*url.URL, error) {
	if !strings.Contains(raw, "://") && strings.ContainsRune(raw, ':') {
		raw = "ssh://" + strings.Replace(raw, ":", "/", 1)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	u.Host = strings.TrimSuffix(u.Host, ":"+u.Port())
	return u, nil
}

// ExtractOwnerRepo pulls the owner and repository name out of a parsed
// locator. The repository is the last path segment with the .git suffix
// dropped; everything before it is the owner, so nested GitLab groups
// stay intact.
func ExtractOwnerRepo(u *url.URL) (owner, repo string, ok bool) {
	path := strings.Trim(u.Path, "/")
	i := strings.LastIndex(path, "/")
	if i <= 0 || i == len(path)-1 {
		return "", "", false
	}
	return path[:i], strings.TrimSuffix(path[i+1:], ".git"), true
}
