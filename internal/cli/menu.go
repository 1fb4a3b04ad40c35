package cli

import (
	"os"

	"golang.org/x/term"

	"gitsetup/internal/menu"
)

// menuEntries mirror the dispatch table below; keep the two in sync.
var menuEntries = []menu.Entry{
	{Label: "Check packages", Desc: "verify and install required tools"},
	{Label: "Configure git identity", Desc: "global user.name and user.email"},
	{Label: "Manage SSH key", Desc: "create a keypair or show the public key"},
	{Label: "Test authentication", Desc: "probe the hosting providers over SSH"},
	{Label: "Clone repositories", Desc: "pick repositories and destinations"},
	{Label: "Run everything", Desc: "all steps in order"},
	{Label: "Exit", Desc: "leave gitsetup"},
}

// dispatch runs the action behind a menu choice. The boolean reports
// whether the menu loop should continue.
func dispatch(s *Session, choice int) (bool, error) {
	switch choice {
	case 0:
		return true, runDeps(s)
	case 1:
		return true, runIdentity(s)
	case 2:
		return true, runKey(s)
	case 3:
		// The probe reports its own outcome; a failed probe is not fatal
		// from the menu.
		_, err := runAuth(s)
		return true, err
	case 4:
		return true, runClone(s)
	case 5:
		return true, runAll(s)
	default:
		// Exit entry, or the operator backed out of the list.
		return false, nil
	}
}

// menuLoop shows the menu until the operator exits or a step fails hard.
func menuLoop(s *Session) error {
	for {
		choice, err := pickEntry(s)
		if err != nil {
			return err
		}

		cont, err := dispatch(s, choice)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// pickEntry uses the full-screen list on a terminal and a numbered prompt
// everywhere else.
func pickEntry(s *Session) (int, error) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return menu.Pick("gitsetup", menuEntries)
	}

	labels := make([]string, len(menuEntries))
	for i, e := range menuEntries {
		labels[i] = e.Label
	}
	return s.Prompter.Select("Choose an action", labels)
}
