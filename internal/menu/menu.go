// Package menu renders the interactive action menu as a navigable list
// for terminal sessions.
package menu

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitsetup/internal/errors"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

// Entry is one selectable menu action.
type Entry struct {
	Label string
	Desc  string
}

type entryItem struct {
	entry Entry
}

func (i entryItem) Title() string       { return i.entry.Label }
func (i entryItem) Description() string { return i.entry.Desc }
func (i entryItem) FilterValue() string { return i.entry.Label }

// Model is the menu's state. The zero choice is -1, meaning the operator
// backed out without selecting.
type Model struct {
	list     list.Model
	choice   int
	quitting bool
}

// New creates a menu model over the given entries.
func New(title string, entries []Entry) Model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	return Model{list: l, choice: -1}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection keys.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			m.choice = m.list.Index()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the menu.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return docStyle.Render(m.list.View())
}

// Choice returns the selected entry index, or -1 when the operator quit.
func (m Model) Choice() int {
	return m.choice
}

// Pick runs the menu on the attached terminal and returns the selected
// entry index, or -1 when the operator backed out.
func Pick(title string, entries []Entry) (int, error) {
	final, err := tea.NewProgram(New(title, entries)).Run()
	if err != nil {
		return -1, errors.WrapWithCode(err, errors.ErrExec,
			"Menu rendering failed", "")
	}

	m, ok := final.(Model)
	if !ok {
		return -1, nil
	}
	return m.Choice(), nil
}
