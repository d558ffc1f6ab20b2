// Package tui implements the root Bubble Tea model for zdir.
package tui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/zarlcorp/core/pkg/zstyle"
	"github.com/zarlcorp/zdir/internal/config"
	"github.com/zarlcorp/zdir/internal/directory"
	"github.com/zarlcorp/zdir/internal/placeholder"
	"github.com/zarlcorp/zdir/internal/user"
)

// accent is zdir's header color.
var accent = lipgloss.Color("75")

type viewID int

const (
	viewMenu viewID = iota
	viewList
	viewDetail
	viewForm
	viewSettings
)

// Model is the root TUI model.
type Model struct {
	version    string
	configPath string
	dir        *directory.Directory
	client     *placeholder.Client
	cfg        config.Config

	active   viewID
	menu     menuModel
	list     listModel
	detail   detailModel
	form     formModel
	settings settingsModel

	// remote fetch state
	loading  bool
	fetchErr error

	// terminal dimensions
	width  int
	height int
}

// New creates the root TUI model.
func New(version, configPath string, dir *directory.Directory, client *placeholder.Client, cfg config.Config) Model {
	return Model{
		version:    version,
		configPath: configPath,
		dir:        dir,
		client:     client,
		cfg:        cfg,
		active:     viewMenu,
		menu:       newMenuModel(version),
		loading:    true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetchUsers()
}

// fetchUsers loads the remote collection off the update loop; the result is
// applied in Update so the directory is only ever touched from one place.
func (m Model) fetchUsers() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		users, err := client.Users(context.Background())
		return remoteLoadedMsg{users: users, err: err}
	}
}

// createUser posts the candidate as the workflow's best-effort side channel.
func (m Model) createUser(candidate user.User) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		_, err := client.Create(context.Background(), candidate)
		return userCreatedMsg{candidate: candidate, err: err}
	}
}

// remoteLoadedMsg carries a fetched remote collection.
type remoteLoadedMsg struct {
	users []user.User
	err   error
}

// userCreatedMsg signals the remote create call finished (either way).
type userCreatedMsg struct {
	candidate user.User
	err       error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case remoteLoadedMsg:
		return m.handleRemoteLoaded(msg)

	case navigateMsg:
		return m.navigate(msg.view)

	case viewUserMsg:
		m.detail = newDetailModel(msg.user)
		m.active = viewDetail
		return m, tea.ClearScreen

	case submitUserMsg:
		m.form.submitting = true
		return m, m.createUser(msg.candidate)

	case userCreatedMsg:
		return m.handleUserCreated(msg)

	case saveSettingsMsg:
		return m.handleSaveSettings(msg.cfg)
	}

	return m.updateActive(msg)
}

func (m Model) handleRemoteLoaded(msg remoteLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.fetchErr = msg.err

	if msg.err != nil {
		// already-loaded data stays; the listing just shows local users
		if m.active == viewList {
			m.list.loading = false
			m.list.flash = "fetch failed, showing local users only"
			return m, clearFlashAfter()
		}
		return m, nil
	}

	m.dir.SetRemote(msg.users)
	if m.active == viewList {
		m.list.loading = false
		m.list.setUsers(m.dir.Users())
	}
	return m, nil
}

func (m Model) handleUserCreated(msg userCreatedMsg) (tea.Model, tea.Cmd) {
	// local acceptance does not depend on the remote outcome; the create
	// call is fire-and-report
	added, err := m.dir.Accept(msg.candidate)
	if err != nil {
		m.form.submitting = false
		m.form.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.detail = newDetailModel(added)
	if msg.err != nil {
		m.detail.flash = added.Name + " added (remote sync failed)"
	} else {
		m.detail.flash = added.Name + " added successfully!"
	}
	m.active = viewDetail
	return m, tea.Batch(tea.ClearScreen, clearFlashAfter())
}

func (m Model) handleSaveSettings(cfg config.Config) (tea.Model, tea.Cmd) {
	if err := config.Save(m.configPath, cfg); err != nil {
		m.settings.flash = "save: " + err.Error()
		return m, clearFlashAfter()
	}

	m.cfg = cfg
	m.client = placeholder.NewClient(cfg.ClientConfig())
	m.dir.SetSource(m.client)
	m.settings.flash = "saved"

	slog.Info("settings updated", "base_url", cfg.API.BaseURL)

	// refetch against the new endpoint
	m.loading = true
	return m, tea.Batch(clearFlashAfter(), m.fetchUsers())
}

func (m Model) navigate(view viewID) (tea.Model, tea.Cmd) {
	switch view {
	case viewMenu:
		mm := newMenuModel(m.version)
		mm.userCount = len(m.dir.Users())
		mm.localCount = len(m.dir.Local())
		m.menu = mm
		m.active = viewMenu
		return m, tea.ClearScreen

	case viewList:
		key, order := m.cfg.SortSpec()
		m.list = newListModel(m.dir.Users(), key, order)
		m.list.loading = m.loading
		if m.fetchErr != nil {
			m.list.flash = "fetch failed, showing local users only"
		}
		m.active = viewList
		return m, tea.Batch(tea.ClearScreen, clearFlashAfter())

	case viewForm:
		m.form = newFormModel()
		m.active = viewForm
		return m, tea.Batch(tea.ClearScreen, m.form.Init())

	case viewSettings:
		m.settings = newSettingsModel(m.cfg)
		m.active = viewSettings
		return m, tea.Batch(tea.ClearScreen, m.settings.Init())

	case viewDetail:
		m.active = viewDetail
		return m, tea.ClearScreen
	}

	return m, nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.active {
	case viewMenu:
		m.menu, cmd = m.menu.Update(msg)
	case viewList:
		m.list, cmd = m.list.Update(msg)
	case viewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case viewForm:
		m.form, cmd = m.form.Update(msg)
	case viewSettings:
		m.settings, cmd = m.settings.Update(msg)
	}

	return m, cmd
}

func (m Model) View() string {
	// the menu renders its own banner, no chrome
	if m.active == viewMenu {
		return m.menu.View()
	}

	var content string
	switch m.active {
	case viewList:
		content = m.list.View()
	case viewDetail:
		content = m.detail.View()
	case viewForm:
		content = m.form.View()
	case viewSettings:
		content = m.settings.View()
	}

	header := zstyle.RenderHeader("zdir", viewTitle(m.active), accent)
	sep := zstyle.RenderSeparator(m.width)
	footer := zstyle.RenderFooter(helpFor(m.active))

	return "\n" + header + "\n" + sep + "\n" + content + "\n" + footer + "\n"
}

// viewTitle returns the display title for each view.
func viewTitle(id viewID) string {
	switch id {
	case viewList:
		return "Users"
	case viewDetail:
		return "User Details"
	case viewForm:
		return "Add User"
	case viewSettings:
		return "Settings"
	}
	return ""
}

// helpFor returns keybinding pairs for each view's footer.
func helpFor(id viewID) []zstyle.HelpPair {
	switch id {
	case viewList:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "/", Desc: "search"},
			{Key: "s", Desc: "sort"},
			{Key: "o", Desc: "order"},
			{Key: "enter", Desc: "view"},
			{Key: "a", Desc: "add"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewDetail:
		return []zstyle.HelpPair{
			{Key: "j/k", Desc: "navigate"},
			{Key: "enter", Desc: "copy field"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	case viewForm:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "shift+tab", Desc: "prev"},
			{Key: "enter", Desc: "submit"},
			{Key: "esc", Desc: "cancel"},
		}
	case viewSettings:
		return []zstyle.HelpPair{
			{Key: "tab", Desc: "next"},
			{Key: "ctrl+s", Desc: "save"},
			{Key: "esc", Desc: "back"},
			{Key: "q", Desc: "quit"},
		}
	}
	return nil
}
