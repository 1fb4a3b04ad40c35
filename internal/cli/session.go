package cli

import (
	"os"

	"gitsetup/internal/auth"
	"gitsetup/internal/clone"
	"gitsetup/internal/config"
	"gitsetup/internal/deps"
	"gitsetup/internal/errors"
	"gitsetup/internal/exec"
	"gitsetup/internal/identity"
	"gitsetup/internal/keys"
	"gitsetup/internal/platform"
	"gitsetup/internal/prompt"
	"gitsetup/internal/ui"
)

// Session carries the per-run wiring and the state the steps hand to each
// other. Everything a step needs comes from here rather than from package
// globals, so one invocation cannot leak into the next.
type Session struct {
	Config    *config.Config
	Runner    exec.Runner
	Prompter  prompt.Prompter
	Printer   *ui.Printer
	Installer *platform.Installer
	Lister    clone.Lister
	Home      string

	// KeyPath is the private key chosen or created by the key step. The
	// auth step falls back to ssh_config and the default path when empty.
	KeyPath string
}

// newSession builds a Session from the environment and the global flags.
func newSession() (*Session, error) {
	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return nil, err
	}

	runner := exec.NewSystem()
	home, _ := os.UserHomeDir()

	return &Session{
		Config:    cfg,
		Runner:    runner,
		Prompter:  prompt.New(),
		Printer:   ui.Default,
		Installer: platform.Detect(runner),
		Lister:    clone.NewGHLister(runner),
		Home:      home,
	}, nil
}

func (s *Session) keyManager() *keys.Manager {
	m := keys.NewManagerAt(s.Home, s.Runner, s.Prompter, s.Printer)
	m.SetDefaults(s.Config.Key.Dir, s.Config.Key.Name, s.Config.Key.Comment)
	return m
}

// runDeps checks the required packages. Per-package failures are reported
// individually and never fail the step as a whole.
func runDeps(s *Session) error {
	pkgs := s.Config.Packages
	if len(pkgs) == 0 {
		pkgs = deps.DefaultPackages
	}
	deps.NewChecker(s.Runner, s.Installer, s.Printer, nil).Check(pkgs)
	return nil
}

func runIdentity(s *Session) error {
	return identity.NewConfigurator(s.Runner, s.Prompter, s.Printer).Configure()
}

func runKey(s *Session) error {
	path, err := s.keyManager().Run()
	if err != nil {
		return err
	}
	if path != "" {
		s.KeyPath = path
	}
	return nil
}

// authKeyPath resolves the key the probe should use: the session's key
// first, then the ssh_config IdentityFile for github.com, then the
// default path.
func (s *Session) authKeyPath() string {
	if s.KeyPath != "" {
		return s.KeyPath
	}
	km := s.keyManager()
	if p := km.ConfiguredIdentityFile("github.com"); p != "" && keys.Exists(p) {
		return p
	}
	return km.DefaultPrivatePath()
}

func runAuth(s *Session) (bool, error) {
	return auth.NewTester(s.Runner, s.Prompter, s.Printer).Test(s.authKeyPath())
}

func runClone(s *Session) error {
	return clone.NewCloner(s.Runner, s.Prompter, s.Printer, s.Lister).Run()
}

// runAll chains every step. Authentication must succeed before the clone
// step runs; a failed probe aborts with a non-nil error so the process
// exits non-zero.
func runAll(s *Session) error {
	if err := runDeps(s); err != nil {
		return err
	}
	if err := runIdentity(s); err != nil {
		return err
	}
	if err := runKey(s); err != nil {
		return err
	}

	// The key step prints the public key when it created or showed one.
	// When the operator backed out, show the key the probe will use so
	// they can register it.
	if s.KeyPath == "" {
		if pub := s.authKeyPath() + ".pub"; keys.Exists(pub) {
			if err := s.keyManager().ShowPublicKey(pub); err != nil {
				return err
			}
		}
	}

	if _, err := s.Prompter.Confirm(
		"Have you registered the public key with your provider?", true); err != nil {
		return err
	}

	ok, err := runAuth(s)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(errors.ErrAuth,
			"Authentication failed",
			"Register the public key with your provider, then run 'gitsetup auth'")
	}

	return runClone(s)
}
