package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"gitsetup/internal/config"
	"gitsetup/internal/errors"
	"gitsetup/internal/ui"
)

// withSession builds a RunE that creates a fresh Session for the step.
func withSession(fn func(*Session) error) func(*cobra.Command, []string) error {
	return func(*cobra.Command, []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		return fn(s)
	}
}

// depsCmd checks and installs the required tools
var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check and install required tools",
	Long: `Verify that git, ssh, and ssh-keygen are on the command path,
installing missing ones through the OS package manager.

Examples:
  gitsetup deps`,
	RunE: withSession(runDeps),
}

// identityCmd configures the global git identity
var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Configure the global git identity",
	Long: `Show the current global user.name and user.email and optionally
update them. The email must look like local@domain.tld.

Examples:
  gitsetup identity`,
	RunE: withSession(runIdentity),
}

// keyCmd creates or shows the SSH key
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Create an SSH key or show the existing one",
	Long: `Generate a passphrase-less Ed25519 keypair, or print the public
key that already exists at the default path.

Examples:
  gitsetup key`,
	RunE: withSession(runKey),
}

// authCmd probes SSH authentication
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Test SSH authentication against the hosting providers",
	Long: `Probe github.com and gitlab.com with the configured key, up to
three attempts. The command exits non-zero when no provider accepts the
key.

Examples:
  gitsetup auth`,
	RunE: withSession(func(s *Session) error {
		ok, err := runAuth(s)
		if err != nil {
			return err
		}
		if !ok {
			return errors.New(errors.ErrAuth,
				"Authentication failed",
				"Register the public key with your provider and try again")
		}
		return nil
	}),
}

// cloneCmd clones repositories
var cloneCmd = &cobra.Command{
	Use:   "clone",
	Short: "Clone repositories to chosen paths",
	Long: `Collect repository locators, from a gh listing or manual entry,
and clone each one to a shared or per-repository destination.

Examples:
  gitsetup clone`,
	RunE: withSession(runClone),
}

// allCmd runs the whole setup in order
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run every setup step in order",
	Long: `Run the full flow: dependency check, git identity, SSH key,
authentication probe, and repository cloning. Cloning only runs after the
key authenticates; otherwise the command exits non-zero.

Examples:
  gitsetup all`,
	RunE: withSession(runAll),
}

// configCmd groups config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the gitsetup config file",
}

// configInitCmd writes a starter config file
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter config file",
	Long: `Write the built-in defaults to a config file as a starting
point. Without a path, the file is created in the current directory.

Examples:
  gitsetup config init
  gitsetup config init ~/.gitsetup.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ConfigFileName
		if len(args) == 1 {
			path = args[0]
		}
		abs, err := filepath.Abs(path)
		if err == nil {
			path = abs
		}

		if err := config.WriteDefault(path); err != nil {
			return err
		}
		ui.PrintSuccess("Wrote %s", path)
		return nil
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for gitsetup.

Examples:
  # Bash
  gitsetup completion bash > /etc/bash_completion.d/gitsetup

  # Zsh
  gitsetup completion zsh > "${fpath[1]}/_gitsetup"

  # Fish
  gitsetup completion fish > ~/.config/fish/completions/gitsetup.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(identityCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(cloneCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}
