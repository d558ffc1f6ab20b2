package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdir/internal/user"
)

// userField is one label/value row on the detail view.
type userField struct {
	label string
	value string
}

// detailModel displays a single user's full profile.
type detailModel struct {
	user   user.User
	fields []userField
	cursor int
	flash  string
}

func newDetailModel(u user.User) detailModel {
	return detailModel{
		user:   u,
		fields: userFields(u),
	}
}

// userFields flattens a user into display rows. Empty values keep their row
// so the layout is stable across users.
func userFields(u user.User) []userField {
	return []userField{
		{"id", string(u.ID)},
		{"name", u.Name},
		{"username", u.Username},
		{"email", u.Email},
		{"phone", u.Phone},
		{"website", u.Website},
		{"company", u.Company.Name},
		{"catch phrase", u.Company.CatchPhrase},
		{"business", u.Company.BS},
		{"address", u.FullAddress()},
	}
}

func (m detailModel) Init() tea.Cmd {
	return nil
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m, nil
}

func (m detailModel) handleKey(msg tea.KeyMsg) (detailModel, tea.Cmd) {
	if key.Matches(msg, zstyle.KeyQuit) {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	if key.Matches(msg, zstyle.KeyUp) {
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyDown) {
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		f := m.fields[m.cursor]
		if f.value == "" {
			return m, nil
		}
		if err := clipboard.WriteAll(f.value); err != nil {
			m.flash = "copy: " + err.Error()
			return m, clearFlashAfter()
		}
		m.flash = f.label + " copied"
		return m, clearFlashAfter()
	}

	return m, nil
}

func (m detailModel) View() string {
	s := "\n  " + zstyle.Title.Render(m.user.Name) + "\n"
	if m.user.ID.IsLocal() {
		s += "  " + zstyle.MutedText.Render("added locally") + "\n"
	}
	s += "\n"

	for i, f := range m.fields {
		value := f.value
		if value == "" {
			value = zstyle.MutedText.Render("-")
		}
		line := fmt.Sprintf("%s %s",
			zstyle.MutedText.Render(fmt.Sprintf("%-14s", f.label)), value)

		if i == m.cursor {
			s += "  " + zstyle.Highlight.Render("▸") + " " + line + "\n"
		} else {
			s += "    " + line + "\n"
		}
	}

	s += "\n"

	if m.flash != "" {
		s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
	} else {
		s += "\n"
	}

	return s
}
