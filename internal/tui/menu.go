package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
)

type menuChoice int

const (
	menuBrowse menuChoice = iota
	menuAdd
	menuSettings
	menuQuit
)

var menuItems = []string{
	"Browse users",
	"Add user",
	"Settings",
	"Quit",
}

// menuModel is the main menu view.
type menuModel struct {
	cursor     int
	version    string
	userCount  int
	localCount int
}

// navigateMsg tells the root model to switch views.
type navigateMsg struct {
	view viewID
}

func newMenuModel(version string) menuModel {
	return menuModel{version: version}
}

func (m menuModel) Init() tea.Cmd {
	return nil
}

func (m menuModel) Update(msg tea.Msg) (menuModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, zstyle.KeyQuit) {
			return m, tea.Quit
		}

		if key.Matches(msg, zstyle.KeyUp) {
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyDown) {
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
			return m, nil
		}

		if key.Matches(msg, zstyle.KeyEnter) {
			return m, m.selectItem()
		}
	}

	return m, nil
}

func (m menuModel) selectItem() tea.Cmd {
	switch menuChoice(m.cursor) {
	case menuBrowse:
		return func() tea.Msg { return navigateMsg{view: viewList} }
	case menuAdd:
		return func() tea.Msg { return navigateMsg{view: viewForm} }
	case menuSettings:
		return func() tea.Msg { return navigateMsg{view: viewSettings} }
	case menuQuit:
		return tea.Quit
	}
	return nil
}

func (m menuModel) View() string {
	title := zstyle.Title.Render("zdir")
	ver := zstyle.MutedText.Render(m.version)

	s := fmt.Sprintf("\n  %s %s\n", title, ver)

	if m.userCount > 0 {
		counts := fmt.Sprintf("%d users (%d local)", m.userCount, m.localCount)
		s += "  " + zstyle.MutedText.Render(counts) + "\n"
	}
	s += "\n"

	for i, item := range menuItems {
		cursor := "  "
		if m.cursor == i {
			s += zstyle.Highlight.Render(fmt.Sprintf("  %s> %s", cursor, item)) + "\n"
		} else {
			s += fmt.Sprintf("  %s  %s\n", cursor, item)
		}
	}

	s += "\n  " + zstyle.MutedText.Render("j/k navigate  enter select  q quit") + "\n\n"
	return s
}
