package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdir/internal/directory"
	"github.com/zarlcorp/zdir/internal/user"
)

// listModel displays the reconciled user collection with live search and
// sorting. The filter and sort recompute synchronously on every change, so
// a pending remote fetch never blocks them.
type listModel struct {
	users   []user.User // reconciled, unfiltered
	visible []user.User // filtered + sorted

	search    textinput.Model
	searching bool
	sortKey   directory.SortKey
	sortOrder directory.SortOrder

	cursor  int
	loading bool
	flash   string
}

// viewUserMsg requests the detail view for a user.
type viewUserMsg struct {
	user user.User
}

// flashMsg clears the flash after a timeout.
type flashMsg struct{}

func newListModel(users []user.User, key directory.SortKey, order directory.SortOrder) listModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search name, email, company, address…"
	ti.CharLimit = 128
	ti.Width = 50

	m := listModel{
		users:     users,
		search:    ti,
		sortKey:   key,
		sortOrder: order,
	}
	m.apply()
	return m
}

// setUsers replaces the backing collection and reapplies the current query.
func (m *listModel) setUsers(users []user.User) {
	m.users = users
	m.apply()
}

// apply recomputes the visible slice from the current term and sort spec.
func (m *listModel) apply() {
	m.visible = directory.Query(m.users, m.search.Value(), m.sortKey, m.sortOrder)
	if m.cursor >= len(m.visible) {
		m.cursor = max(0, len(m.visible)-1)
	}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (listModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "/":
		m.searching = true
		m.search.Focus()
		return m, textinput.Blink

	case "a":
		return m, func() tea.Msg { return navigateMsg{view: viewForm} }

	case "s":
		if m.sortKey == directory.SortByName {
			m.sortKey = directory.SortByCompany
		} else {
			m.sortKey = directory.SortByName
		}
		m.apply()
		return m, nil

	case "o":
		if m.sortOrder == directory.Ascending {
			m.sortOrder = directory.Descending
		} else {
			m.sortOrder = directory.Ascending
		}
		m.apply()
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		if len(m.visible) == 0 {
			return m, nil
		}
		u := m.visible[m.cursor]
		return m, func() tea.Msg { return viewUserMsg{user: u} }
	}

	return m, nil
}

func (m listModel) handleSearchKey(msg tea.KeyMsg) (listModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		// esc clears the filter and leaves search mode
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.apply()
		return m, nil

	case tea.KeyEnter:
		// keep the filter, return focus to the list
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.apply()
	return m, cmd
}

func (m listModel) View() string {
	accentStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)

	s := "\n  " + m.search.View() + "\n"
	s += "  " + zstyle.MutedText.Render(m.sortLabel()) + "\n\n"

	switch {
	case m.loading && len(m.visible) == 0:
		s += "  " + zstyle.MutedText.Render("fetching users…") + "\n"

	case len(m.visible) == 0:
		s += "  " + zstyle.MutedText.Render("no users found") + "\n"

	default:
		for i, u := range m.visible {
			line := fmt.Sprintf("%-24s %-28s %-20s",
				truncate(u.Name, 24),
				truncate(u.Email, 28),
				truncate(u.Company.Name, 20),
			)
			if u.ID.IsLocal() {
				line += " " + zstyle.MutedText.Render("(local)")
			}

			if i == m.cursor {
				s += "  " + accentStyle.Render("▸") + " " + line + "\n"
			} else {
				s += "    " + line + "\n"
			}
		}
	}

	s += "\n"

	// always reserve a line for flash to prevent layout shift
	if m.flash != "" {
		s += "  " + zstyle.StatusWarn.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}

func (m listModel) sortLabel() string {
	return fmt.Sprintf("sort: %s %s   %d/%d users",
		m.sortKey, m.sortOrder, len(m.visible), len(m.users))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

func clearFlashAfter() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return flashMsg{}
	})
}
