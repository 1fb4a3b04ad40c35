// Package deps verifies that the external tools gitsetup drives are present
// on the command path, installing missing ones through the platform
// installer on a best-effort, per-package basis.
package deps

import (
	"gitsetup/internal/exec"
	"gitsetup/internal/logger"
	"gitsetup/internal/platform"
	"gitsetup/internal/ui"
)

// DefaultPackages are the executables required for the full setup flow.
var DefaultPackages = []string{"git", "ssh", "ssh-keygen"}

// Result is the per-package outcome of a check run. Every requested package
// gets exactly one Result; a missing package that failed to install carries
// a non-nil Err, never silence.
type Result struct {
	Package   string
	Present   bool // resolvable before any install attempt
	Installed bool // installed during this run
	Err       error
}

// OK reports whether the package is usable after the run.
func (r Result) OK() bool {
	return r.Present || r.Installed
}

// Checker verifies and installs required packages.
type Checker struct {
	runner    exec.Runner
	installer *platform.Installer
	printer   *ui.Printer
	log       logger.Logger
}

// NewChecker creates a Checker. A nil printer or logger falls back to the
// package defaults.
func NewChecker(r exec.Runner, inst *platform.Installer, p *ui.Printer, log logger.Logger) *Checker {
	if p == nil {
		p = ui.Default
	}
	if log == nil {
		log = logger.NewEnvLogger("[deps]")
	}
	return &Checker{runner: r, installer: inst, printer: p, log: log}
}

// Check verifies each package, installing missing ones. One package's
// install failure does not stop the rest.
func (c *Checker) Check(packages []string) []Result {
	results := make([]Result, 0, len(packages))

	for _, pkg := range packages {
		results = append(results, c.checkOne(pkg))
	}

	return results
}

func (c *Checker) checkOne(pkg string) Result {
	result := Result{Package: pkg}

	if path, err := c.runner.LookPath(pkg); err == nil {
		c.log.Debug("found %s at %s", pkg, path)
		result.Present = true
		c.printer.Success("%s is installed", pkg)
		return result
	}

	c.printer.Info("%s is missing, installing via %s", pkg, c.installer.Kind)

	if err := c.installer.Install(pkg); err != nil {
		result.Err = err
		c.printer.Error("Could not install %s", pkg)
		c.log.Warn("install %s: %v", pkg, err)
		return result
	}

	// Re-check so a "successful" install that left nothing on PATH is
	// still reported as a failure.
	if _, err := c.runner.LookPath(pkg); err != nil {
		result.Err = err
		c.printer.Error("%s was installed but is still not on PATH", pkg)
		return result
	}

	result.Installed = true
	c.printer.Success("Installed %s", pkg)
	return result
}
