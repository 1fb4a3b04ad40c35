// Package auth probes SSH authentication against the known hosting
// providers with a bounded retry loop.
package auth

import (
	"fmt"
	"strings"

	"gitsetup/internal/exec"
	"gitsetup/internal/prompt"
	"gitsetup/internal/ui"
)

// Provider is a hosting endpoint and the phrase it prints on a successful
// non-interactive login.
type Provider struct {
	Host          string
	ConfirmPhrase string
}

// DefaultProviders are probed in order.
var DefaultProviders = []Provider{
	{Host: "github.com", ConfirmPhrase: "successfully authenticated"},
	{Host: "gitlab.com", ConfirmPhrase: "Welcome to GitLab"},
}

// maxAttempts bounds the retry loop; one attempt probes every provider.
const maxAttempts = 3

// Tester runs the authentication probe.
type Tester struct {
	runner    exec.Runner
	prompter  prompt.Prompter
	printer   *ui.Printer
	providers []Provider
}

// NewTester creates a Tester against the default providers.
func NewTester(r exec.Runner, p prompt.Prompter, printer *ui.Printer) *Tester {
	if printer == nil {
		printer = ui.Default
	}
	return &Tester{runner: r, prompter: p, printer: printer, providers: DefaultProviders}
}

// Test probes the providers with the given private key, up to three
// attempts with an operator confirmation between them. Exhausting the
// attempts is a failure result, not an error; the caller decides what to
// do with it.
func (t *Tester) Test(keyPath string) (bool, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		for _, p := range t.providers {
			ok, err := t.probe(keyPath, p)
			if err != nil {
				return false, err
			}
			if ok {
				t.printer.Success("Authenticated with %s", p.Host)
				return true, nil
			}
		}

		t.printer.Error("Authentication failed (attempt %d of %d)", attempt, maxAttempts)
		if attempt < maxAttempts {
			// The confirm is a pause for the operator to register the key
			// on the provider before the next probe.
			if _, err := t.prompter.Confirm(
				"Have you added the public key to your provider account?", true); err != nil {
				return false, err
			}
		}
	}

	t.printer.Error("Could not authenticate after %d attempts", maxAttempts)
	return false, nil
}

// probe runs one non-interactive login restricted to the supplied key and
// matches the provider's confirmation phrase in the combined output. The
// login command exits non-zero even on success, so only the output counts.
func (t *Tester) probe(keyPath string, p Provider) (bool, error) {
	sp := ui.NewSpinner("Probing " + p.Host)
	sp.SetOutput(func(text string) { fmt.Fprint(t.printer.Out, text) })
	sp.Start()

	output, _, err := t.runner.Run("ssh",
		"-i", keyPath,
		"-o", "IdentitiesOnly=yes",
		"-o", "BatchMode=yes",
		"-o", "StrictHostKeyChecking=accept-new",
		"-T", "git@"+p.Host,
	)
	if err != nil {
		sp.Fail()
		return false, err
	}

	ok := strings.Contains(string(output), p.ConfirmPhrase)
	if ok {
		sp.Success()
	} else {
		sp.Fail()
	}
	return ok, nil
}
