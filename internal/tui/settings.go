package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdir/internal/config"
	"github.com/zarlcorp/zdir/internal/directory"
)

const (
	settingBaseURL = iota
	settingTimeout
	settingSortKey
	settingSortOrder
	settingCount
)

var settingLabels = [settingCount]string{
	"api base url",
	"timeout (seconds)",
	"sort key (name|company)",
	"sort order (asc|desc)",
}

// settingsModel edits the persisted configuration.
type settingsModel struct {
	inputs [settingCount]textinput.Model
	focus  int
	flash  string
}

// saveSettingsMsg requests persisting a new configuration.
type saveSettingsMsg struct {
	cfg config.Config
}

func newSettingsModel(cfg config.Config) settingsModel {
	var inputs [settingCount]textinput.Model
	for i := range settingCount {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 50
		ti.Prompt = ""
		inputs[i] = ti
	}

	inputs[settingBaseURL].SetValue(cfg.API.BaseURL)
	inputs[settingTimeout].SetValue(strconv.Itoa(cfg.API.TimeoutSeconds))
	inputs[settingSortKey].SetValue(cfg.Sort.Key)
	inputs[settingSortOrder].SetValue(cfg.Sort.Order)

	m := settingsModel{inputs: inputs}
	m.inputs[m.focus].Focus()
	return m
}

func (m settingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m settingsModel) Update(msg tea.Msg) (settingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m.updateInput(msg)
}

func (m settingsModel) handleKey(msg tea.KeyMsg) (settingsModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewMenu} }
	}

	switch msg.String() {
	case "tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % settingCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink

	case "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus - 1 + settingCount) % settingCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink

	case "ctrl+s":
		return m.save()
	}

	return m.updateInput(msg)
}

func (m settingsModel) updateInput(msg tea.Msg) (settingsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m settingsModel) save() (settingsModel, tea.Cmd) {
	baseURL := strings.TrimSpace(m.inputs[settingBaseURL].Value())
	if baseURL == "" {
		m.flash = "base url is required"
		return m, clearFlashAfter()
	}

	timeout, err := strconv.Atoi(strings.TrimSpace(m.inputs[settingTimeout].Value()))
	if err != nil || timeout <= 0 {
		m.flash = "timeout must be a positive number of seconds"
		return m, clearFlashAfter()
	}

	sortKey := strings.TrimSpace(m.inputs[settingSortKey].Value())
	if _, err := directory.ParseSortKey(sortKey); err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}

	sortOrder := strings.TrimSpace(m.inputs[settingSortOrder].Value())
	if _, err := directory.ParseSortOrder(sortOrder); err != nil {
		m.flash = err.Error()
		return m, clearFlashAfter()
	}

	cfg := config.Config{}
	cfg.API.BaseURL = baseURL
	cfg.API.TimeoutSeconds = timeout
	cfg.Sort.Key = sortKey
	cfg.Sort.Order = sortOrder

	return m, func() tea.Msg { return saveSettingsMsg{cfg: cfg} }
}

func (m settingsModel) View() string {
	s := "\n  " + zstyle.Title.Render("settings") + "\n\n"

	for i := range settingCount {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-24s", settingLabels[i]))
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		s += fmt.Sprintf("  %s%s %s\n", cursor, label, m.inputs[i].View())
	}

	s += "\n"

	if m.flash != "" {
		if m.flash == "saved" {
			s += "  " + zstyle.StatusOK.Render(m.flash) + "\n"
		} else {
			s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
		}
	} else {
		s += "\n"
	}

	return s
}
