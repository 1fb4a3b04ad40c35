// Package sshutil reads the operator's ssh_config so gitsetup can respect
// keys the user already wired up for the hosting providers.
package sshutil

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/kevinburke/ssh_config"
)

// HostEntry is a concrete host block from an ssh_config file.
type HostEntry struct {
	Alias        string
	Hostname     string
	User         string
	Port         string
	IdentityFile string
}

// IdentityFileFor returns the IdentityFile the user's ssh_config names for
// host, or "" when none is configured. The path may contain a leading ~.
func IdentityFileFor(host string) string {
	path := ssh_config.Get(host, "IdentityFile")
	// The library falls back to its own default; only explicit entries
	// count here.
	if path == ssh_config.Default("IdentityFile") {
		return ""
	}
	return path
}

// ParseFile parses an ssh_config file into concrete host entries,
// skipping wildcard patterns. A missing file yields no entries, not an
// error.
func ParseFile(path string) ([]HostEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	cfg, err := ssh_config.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	var hosts []HostEntry
	seen := make(map[string]bool)

	for _, host := range cfg.Hosts {
		for _, pattern := range host.Patterns {
			alias := pattern.String()
			if strings.ContainsAny(alias, "*?") || seen[alias] {
				continue
			}
			seen[alias] = true

			entry := HostEntry{Alias: alias}
			entry.Hostname, _ = cfg.Get(alias, "HostName")
			entry.User, _ = cfg.Get(alias, "User")
			entry.Port, _ = cfg.Get(alias, "Port")
			entry.IdentityFile, _ = cfg.Get(alias, "IdentityFile")

			hosts = append(hosts, entry)
		}
	}

	return hosts, nil
}

// ConfigPath returns the ssh_config location under home.
func ConfigPath(home string) string {
	return filepath.Join(home, ".ssh", "config")
}
