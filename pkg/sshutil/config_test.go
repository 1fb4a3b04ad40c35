package sshutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseFile(t *testing.T) {
	path := writeConfig(t, `
Host github.com
    User git
    IdentityFile ~/.ssh/github_key

Host work
    HostName git.internal.corp
    Port 2222

Host *
    ServerAliveInterval 60
`)

	hosts, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, hosts, 2, "wildcard blocks are skipped")

	assert.Equal(t, "github.com", hosts[0].Alias)
	assert.Equal(t, "~/.ssh/github_key", hosts[0].IdentityFile)
	assert.Equal(t, "git", hosts[0].User)

	assert.Equal(t, "work", hosts[1].Alias)
	assert.Equal(t, "git.internal.corp", hosts[1].Hostname)
	assert.Equal(t, "2222", hosts[1].Port)
}

func TestParseFile_MissingFileIsEmpty(t *testing.T) {
	hosts, err := ParseFile(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, hosts)
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "/home/dev/.ssh/config", ConfigPath("/home/dev"))
}

func TestParseFile_DuplicateAliasesCollapse(t *testing.T) {
	path := writeConfig(t, `
Host dev
    User a

Host dev
    User b
`)

	hosts, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, hosts, 1)
}
