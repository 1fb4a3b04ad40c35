// Package platform resolves the host's package installer once at startup
// and exposes it as a single capability, instead of re-detecting the OS on
// every install call.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gitsetup/internal/errors"
	"gitsetup/internal/exec"
)

// Kind identifies the install strategy for the host.
type Kind int

const (
	// Unsupported means no known package manager was found.
	Unsupported Kind = iota
	// Debian covers apt-based distributions (marker: /etc/debian_version).
	Debian
	// RedHat covers yum-based distributions (marker: /etc/redhat-release).
	RedHat
	// Homebrew covers macOS with the brew front-end present.
	Homebrew
)

// String returns the human-readable installer name.
func (k Kind) String() string {
	switch k {
	case Debian:
		return "apt"
	case RedHat:
		return "yum"
	case Homebrew:
		return "homebrew"
	default:
		return "unsupported"
	}
}

// Installer installs packages using the strategy detected for this host.
type Installer struct {
	Kind   Kind
	runner exec.Runner
}

// Detect probes the live system for OS markers. Priority: Debian marker
// file, then RedHat marker file, then Darwin with Homebrew.
func Detect(r exec.Runner) *Installer {
	return DetectAt("/", runtime.GOOS, r)
}

// DetectAt probes under the given root with an explicit GOOS value.
// Split out from Detect so tests can stage marker files in a temp dir.
func DetectAt(root, goos string, r exec.Runner) *Installer {
	inst := &Installer{Kind: Unsupported, runner: r}

	if fileExists(filepath.Join(root, "etc", "debian_version")) {
		inst.Kind = Debian
		return inst
	}
	if fileExists(filepath.Join(root, "etc", "redhat-release")) {
		inst.Kind = RedHat
		return inst
	}
	if goos == "darwin" {
		if _, err := r.LookPath("brew"); err == nil {
			inst.Kind = Homebrew
		}
		return inst
	}

	return inst
}

// Install installs a single package. A failed or unsupported install is an
// error for that package only; callers continue with the rest.
func (i *Installer) Install(pkg string) error {
	var name string
	var args []string

	switch i.Kind {
	case Debian:
		name, args = "sudo", []string{"apt-get", "install", "-y", pkg}
	case RedHat:
		name, args = "sudo", []string{"yum", "install", "-y", pkg}
	case Homebrew:
		name, args = "brew", []string{"install", pkg}
	default:
		if runtime.GOOS == "darwin" {
			return errors.New(errors.ErrDeps,
				"Homebrew is required to install packages on macOS",
				"Install it from https://brew.sh and re-run")
		}
		return errors.New(errors.ErrDeps,
			"Unsupported operating system for automatic installs",
			"Install '"+pkg+"' with your system's package manager")
	}

	output, exitCode, err := i.runner.Run(name, args...)
	if err != nil {
		return err
	}
	if exitCode != 0 {
		return errors.New(errors.ErrDeps,
			"Install of '"+pkg+"' failed via "+i.Kind.String(),
			strings.TrimSpace(string(output)))
	}

	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
