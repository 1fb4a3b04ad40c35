// Package keys locates and creates the SSH keypair used for provider
// authentication. Generation delegates to ssh-keygen; this package only
// manages paths, permissions, and the interactive flow around it.
package keys

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	cryptossh "golang.org/x/crypto/ssh"

	"gitsetup/internal/errors"
	"gitsetup/internal/exec"
	"gitsetup/internal/prompt"
	"gitsetup/internal/ui"
	"gitsetup/pkg/sshutil"
)

const (
	// DefaultName is the filename for a newly generated private key.
	DefaultName = "id_ed25519"

	// DefaultComment is embedded in generated public keys so they can be
	// recognized on provider key pages later.
	DefaultComment = "git-setup-key"

	dirMode     = 0o700
	privateMode = 0o600
	publicMode  = 0o644
)

// KeyPair describes one private/public key file pair on disk.
type KeyPair struct {
	Dir     string
	Name    string
	Comment string
}

// PrivatePath returns the path of the private key file.
func (k KeyPair) PrivatePath() string {
	return filepath.Join(k.Dir, k.Name)
}

// PublicPath returns the path of the public key file.
func (k KeyPair) PublicPath() string {
	return k.PrivatePath() + ".pub"
}

// Manager drives keypair discovery and creation.
type Manager struct {
	runner   exec.Runner
	prompter prompt.Prompter
	printer  *ui.Printer
	home     string

	// Offered defaults; settable from the config file.
	dir     string
	name    string
	comment string
}

// NewManager creates a Manager rooted at the invoking user's home
// directory.
func NewManager(r exec.Runner, p prompt.Prompter, printer *ui.Printer) *Manager {
	home, _ := os.UserHomeDir()
	return NewManagerAt(home, r, p, printer)
}

// NewManagerAt creates a Manager rooted at an explicit home directory.
func NewManagerAt(home string, r exec.Runner, p prompt.Prompter, printer *ui.Printer) *Manager {
	if printer == nil {
		printer = ui.Default
	}
	return &Manager{
		runner:   r,
		prompter: p,
		printer:  printer,
		home:     home,
		name:     DefaultName,
		comment:  DefaultComment,
	}
}

// SetDefaults overrides the offered directory, filename, and comment
// defaults. Empty values keep the built-ins.
func (m *Manager) SetDefaults(dir, name, comment string) {
	if dir != "" {
		m.dir = dir
	}
	if name != "" {
		m.name = name
	}
	if comment != "" {
		m.comment = comment
	}
}

// DefaultDir returns the directory offered by the key flow: the
// configured one when set, otherwise ~/.ssh.
func (m *Manager) DefaultDir() string {
	if m.dir != "" {
		return m.expandHome(m.dir)
	}
	return filepath.Join(m.home, ".ssh")
}

// DefaultPrivatePath returns the well-known default private key path.
func (m *Manager) DefaultPrivatePath() string {
	return filepath.Join(m.DefaultDir(), m.name)
}

// Exists reports whether a file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Run walks the key flow: if a key already exists at the default path the
// operator chooses between creating a new one and showing the existing
// public key. It returns the path of the private key to use for
// authentication, or "" when the operator backed out.
func (m *Manager) Run() (string, error) {
	def := m.DefaultPrivatePath()

	if Exists(def) {
		choice, err := m.prompter.Select(
			fmt.Sprintf("An SSH key already exists at %s", def),
			[]string{"Create a new key", "Show the existing public key"},
		)
		if err != nil {
			return "", err
		}
		if choice == 1 {
			if err := m.ShowPublicKey(def + ".pub"); err != nil {
				return "", err
			}
			return def, nil
		}
	}

	return m.createFlow()
}

// createFlow collects directory, filename, and comment, then generates the
// keypair. Declining to create a missing directory or to overwrite an
// existing key backs out cleanly.
func (m *Manager) createFlow() (string, error) {
	dir, err := m.prompter.Input("Key directory", m.DefaultDir())
	if err != nil {
		return "", err
	}
	dir = m.expandHome(dir)

	if !Exists(dir) {
		create, err := m.prompter.Confirm(
			fmt.Sprintf("Directory %s does not exist. Create it?", dir), true)
		if err != nil {
			return "", err
		}
		if !create {
			m.printer.Info("Key creation cancelled")
			return "", nil
		}
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrSSH,
				"Failed to create key directory "+dir,
				"Check permissions on the parent directory")
		}
	}

	name, err := m.prompter.Input("Key filename", m.name)
	if err != nil {
		return "", err
	}

	pair := KeyPair{Dir: dir, Name: name}

	if Exists(pair.PrivatePath()) {
		overwrite, err := m.prompter.Confirm(
			fmt.Sprintf("%s already exists. Overwrite it?", pair.PrivatePath()), false)
		if err != nil {
			return "", err
		}
		if !overwrite {
			m.printer.Info("Keeping existing key")
			return "", nil
		}
	}

	pair.Comment, err = m.prompter.Input("Key comment", m.comment)
	if err != nil {
		return "", err
	}

	if err := m.Generate(pair); err != nil {
		return "", err
	}

	m.printer.Success("Generated %s", pair.PrivatePath())
	if err := m.ShowPublicKey(pair.PublicPath()); err != nil {
		return "", err
	}
	return pair.PrivatePath(), nil
}

// Generate creates an Ed25519 keypair with no passphrase at the pair's
// path and tightens the file modes. A generation failure is fatal to the
// whole run.
func (m *Manager) Generate(pair KeyPair) error {
	// ssh-keygen prompts on collision; remove stale files first since the
	// operator already confirmed the overwrite.
	os.Remove(pair.PrivatePath())
	os.Remove(pair.PublicPath())

	output, exitCode, err := m.runner.Run("ssh-keygen",
		"-t", "ed25519",
		"-f", pair.PrivatePath(),
		"-N", "",
		"-C", pair.Comment,
	)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return errors.New(errors.ErrSSH,
			"ssh-keygen failed: "+strings.TrimSpace(string(output)),
			"Ensure ssh-keygen is installed and the target path is writable")
	}

	if !Exists(pair.PrivatePath()) {
		return errors.New(errors.ErrSSH,
			"Key generation completed but no key file was written",
			"Check disk space and permissions on "+pair.Dir)
	}

	if err := os.Chmod(pair.PrivatePath(), privateMode); err != nil {
		return errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to restrict private key permissions", "")
	}
	if err := os.Chmod(pair.PublicPath(), publicMode); err != nil {
		return errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to set public key permissions", "")
	}
	return nil
}

// ShowPublicKey prints the public key verbatim, with its SHA256
// fingerprint when the key parses.
func (m *Manager) ShowPublicKey(pubPath string) error {
	key, err := ReadPublicKey(pubPath)
	if err != nil {
		return err
	}

	m.printer.Plain("%s", key)
	if fp, err := Fingerprint(key); err == nil {
		m.printer.Plain("fingerprint: %s", fp)
	}
	return nil
}

// ReadPublicKey reads and trims a public key file.
func ReadPublicKey(pubPath string) (string, error) {
	data, err := os.ReadFile(pubPath)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to read public key "+pubPath,
			"Check that the file exists and is readable")
	}
	return strings.TrimSpace(string(data)), nil
}

// Fingerprint returns the SHA256 fingerprint of an authorized-keys format
// public key line.
func Fingerprint(pubKey string) (string, error) {
	parsed, _, _, _, err := cryptossh.ParseAuthorizedKey([]byte(pubKey))
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to parse public key", "")
	}
	return cryptossh.FingerprintSHA256(parsed), nil
}

// ConfiguredIdentityFile returns the IdentityFile the user's ssh_config
// names for host, expanded to an absolute path, or "" when none is
// configured. Host blocks in the home config are consulted first, by
// alias or hostname; the system-wide lookup covers entries outside it.
func (m *Manager) ConfiguredIdentityFile(host string) string {
	entries, err := sshutil.ParseFile(sshutil.ConfigPath(m.home))
	if err == nil {
		for _, e := range entries {
			if (e.Alias == host || e.Hostname == host) && e.IdentityFile != "" {
				return m.expandHome(e.IdentityFile)
			}
		}
	}

	if path := sshutil.IdentityFileFor(host); path != "" {
		return m.expandHome(path)
	}
	return ""
}

func (m *Manager) expandHome(path string) string {
	if path == "~" {
		return m.home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(m.home, path[2:])
	}
	return path
}
