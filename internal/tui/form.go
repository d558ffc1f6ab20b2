package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdir/internal/user"
)

const (
	fieldName = iota
	fieldUsername
	fieldEmail
	fieldPhone
	fieldWebsite
	fieldCompanyName
	fieldCatchPhrase
	fieldBS
	fieldAddress
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"full name",
	"username",
	"email",
	"phone",
	"website",
	"company name",
	"catch phrase",
	"business service",
	"full address",
}

// errKeys maps form fields to validation error keys.
var errKeys = [fieldCount]string{
	"name",
	"username",
	"email",
	"phone",
	"website",
	"company.name",
	"company.catchPhrase",
	"company.bs",
	"address.full",
}

// formModel handles adding a new user. Every field is validated on submit
// and the form stays up with inline errors until the candidate is clean.
type formModel struct {
	inputs     [fieldCount]textinput.Model
	focus      int
	errors     map[string]string
	submitting bool
	flash      string
}

// submitUserMsg carries a validated candidate to the root model.
type submitUserMsg struct {
	candidate user.User
}

func newFormModel() formModel {
	var inputs [fieldCount]textinput.Model
	for i := range fieldCount {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 50
		ti.Prompt = ""
		inputs[i] = ti
	}

	m := formModel{inputs: inputs}
	m.inputs[m.focus].Focus()
	return m
}

func (m formModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m formModel) Update(msg tea.Msg) (formModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case flashMsg:
		m.flash = ""
		return m, nil
	}

	return m.updateInput(msg)
}

func (m formModel) handleKey(msg tea.KeyMsg) (formModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// a submit is in flight, don't accept edits or a second submit
	if m.submitting {
		return m, nil
	}

	if key.Matches(msg, zstyle.KeyBack) {
		return m, func() tea.Msg { return navigateMsg{view: viewList} }
	}

	switch msg.String() {
	case "tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus + 1) % fieldCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink

	case "shift+tab":
		m.inputs[m.focus].Blur()
		m.focus = (m.focus - 1 + fieldCount) % fieldCount
		m.inputs[m.focus].Focus()
		return m, textinput.Blink
	}

	if key.Matches(msg, zstyle.KeyEnter) {
		return m.submit()
	}

	return m.updateInput(msg)
}

func (m formModel) updateInput(msg tea.Msg) (formModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m formModel) candidate() user.User {
	return user.User{
		Name:     strings.TrimSpace(m.inputs[fieldName].Value()),
		Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Email:    strings.TrimSpace(m.inputs[fieldEmail].Value()),
		Phone:    strings.TrimSpace(m.inputs[fieldPhone].Value()),
		Website:  strings.TrimSpace(m.inputs[fieldWebsite].Value()),
		Company: user.Company{
			Name:        strings.TrimSpace(m.inputs[fieldCompanyName].Value()),
			CatchPhrase: strings.TrimSpace(m.inputs[fieldCatchPhrase].Value()),
			BS:          strings.TrimSpace(m.inputs[fieldBS].Value()),
		},
		Address: user.Address{
			Full: strings.TrimSpace(m.inputs[fieldAddress].Value()),
		},
	}
}

func (m formModel) submit() (formModel, tea.Cmd) {
	candidate := m.candidate()

	if errs := user.Validate(candidate); len(errs) > 0 {
		m.errors = errs
		return m, nil
	}

	m.errors = nil
	m.submitting = true
	return m, func() tea.Msg { return submitUserMsg{candidate: candidate} }
}

func (m formModel) View() string {
	s := "\n  " + zstyle.Title.Render("add user") + "\n\n"

	for i := range fieldCount {
		label := zstyle.MutedText.Render(fmt.Sprintf("  %-18s", fieldLabels[i]))
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}

		s += fmt.Sprintf("  %s%s %s\n", cursor, label, m.inputs[i].View())

		if msg, ok := m.errors[errKeys[i]]; ok {
			s += "      " + zstyle.StatusErr.Render(msg) + "\n"
		}
	}

	s += "\n"

	switch {
	case m.submitting:
		s += "  " + zstyle.MutedText.Render("adding user…") + "\n"
	case m.flash != "":
		s += "  " + zstyle.StatusErr.Render(m.flash) + "\n"
	default:
		s += "\n"
	}

	return s
}
