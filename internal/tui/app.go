package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harry/pay/internal/config"
	"github.com/harry/pay/internal/database/repository"
	"github.com/harry/pay/internal/service"
	"github.com/harry/pay/internal/session"
)

// App is the state holder behind every screen.
type App struct {
	ctx      context.Context
	cfg      config.Config
	services Services
	tz       *time.Location

	state  appState
	modal  modalState
	width  int
	height int

	user    *repository.User
	token   string
	links   []repository.PaymentLink
	summary repository.LinkSummary
	filter  service.Filter
	cursor  int

	summaryErr bool

	form      *form
	editingID string
	pendingID string
	parsing   bool
	status    string
	statusErr bool

	copyText   func(string) error
	saveConfig func(config.Config) error
}

type Services struct {
	Auth      *service.AuthService
	Links     *service.LinkService
	Assistant *service.AssistantService
	Sessions  *session.Store
}

type appState string

const (
	viewSplash      appState = "splash"
	viewLogin       appState = "login"
	viewRegister    appState = "register"
	viewHome        appState = "home"
	viewCreateLink  appState = "createLink"
	viewEditLink    appState = "editLink"
	viewProfile     appState = "profile"
	viewEditProfile appState = "editProfile"
	viewCommunities appState = "communities"
)

type modalState string

const (
	modalNone          modalState = ""
	modalDeleteLink    modalState = "deleteLink"
	modalLogout        modalState = "logout"
	modalDeleteProfile modalState = "deleteProfile"
	modalSaveProfile   modalState = "saveProfile"
)

func New(ctx context.Context, cfg config.Config, services Services, tz *time.Location) *App {
	if tz == nil {
		tz = time.Local
	}
	return &App{
		ctx:        ctx,
		cfg:        cfg,
		services:   services,
		tz:         tz,
		state:      viewSplash,
		filter:     service.ParseFilter(cfg.UI.DefaultFilter),
		copyText:   clipboard.WriteAll,
		saveConfig: config.Save,
	}
}

func (a *App) Init() tea.Cmd {
	if a.cfg.UI.SplashDelay <= 0 {
		return a.restoreSessionCmd()
	}
	return tea.Tick(a.cfg.UI.SplashDelay, func(time.Time) tea.Msg { return splashDoneMsg{} })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		if key.Matches(m, forceQuit) {
			return a, tea.Quit
		}
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		switch a.state {
		case viewSplash:
			return a, nil
		case viewLogin:
			return a.handleLoginKey(m)
		case viewRegister:
			return a.handleRegisterKey(m)
		case viewHome:
			return a.handleHomeKey(m)
		case viewCreateLink, viewEditLink:
			return a.handleLinkEditorKey(m)
		case viewProfile:
			return a.handleProfileKey(m)
		case viewEditProfile:
			return a.handleEditProfileKey(m)
		case viewCommunities:
			return a.handleCommunitiesKey(m)
		}
		return a, nil
	case splashDoneMsg:
		return a, a.restoreSessionCmd()
	case sessionMsg:
		if m.user == nil {
			return a, a.toLogin("")
		}
		a.user, a.token = m.user, m.token
		return a, a.toHome()
	case loggedInMsg:
		a.user, a.token = m.user, m.token
		a.setStatus("Welcome back, " + m.user.Name)
		return a, a.toHome()
	case registeredMsg:
		cmd := a.toLogin(m.name)
		a.setStatus("Registered successfully!")
		return a, cmd
	case linksMsg:
		if m.filter != a.filter {
			// a newer load for the current filter is on its way
			return a, nil
		}
		a.links = m.links
		a.summary = m.summary
		a.summaryErr = m.summaryErr != nil
		if a.summaryErr {
			a.setError("Totals unavailable: " + m.summaryErr.Error())
		}
		if a.cursor >= len(a.links) {
			a.cursor = max(0, len(a.links)-1)
		}
		return a, nil
	case linkSavedMsg:
		if m.created {
			a.setStatus("Payment link created: " + m.link.Link)
		} else {
			a.setStatus("Payment link updated")
		}
		return a, a.toHome()
	case linkDeletedMsg:
		a.setStatus("Payment link deleted")
		if a.state == viewEditLink {
			return a, a.toHome()
		}
		return a, a.loadLinks()
	case filledMsg:
		a.parsing = false
		if a.form != nil {
			a.form.set("title", m.draft.Title)
			a.form.set("description", m.draft.Description)
			a.form.set("amount", m.draft.Amount)
		}
		a.setStatus("Filled from your request")
		return a, nil
	case profileSavedMsg:
		a.user = m.user
		a.state = viewProfile
		a.form = nil
		a.setStatus("Profile updated successfully!")
		return a, nil
	case loggedOutMsg:
		a.clearUser()
		cmd := a.toLogin("")
		a.setStatus("Logged out")
		return a, cmd
	case accountDeletedMsg:
		a.clearUser()
		cmd := a.toLogin("")
		a.setStatus("Profile deleted")
		return a, cmd
	case statusMsg:
		a.setStatus(string(m))
		return a, nil
	case errMsg:
		a.parsing = false
		a.setError(a.describe(m.error))
		return a, nil
	}
	if a.form != nil {
		return a, a.form.update(msg)
	}
	return a, nil
}

func (a *App) View() string {
	var body string
	switch a.state {
	case viewSplash:
		body = a.renderSplash()
	case viewLogin:
		body = a.renderLogin()
	case viewRegister:
		body = a.renderRegister()
	case viewCreateLink, viewEditLink:
		body = a.renderLinkEditor()
	case viewProfile:
		body = a.renderProfile()
	case viewEditProfile:
		body = a.renderEditProfile()
	case viewCommunities:
		body = a.renderCommunities()
	default:
		body = a.renderHome()
	}
	if a.modal != modalNone {
		body += "\n\n" + a.renderModal()
	}
	if a.state != viewSplash {
		body += "\n\n" + a.renderStatus()
	}
	return body
}

func (a *App) toLogin(name string) tea.Cmd {
	a.state = viewLogin
	a.modal = modalNone
	a.form = newForm(
		formField{Key: "name", Label: "Username", Value: name},
		formField{Key: "password", Label: "Password", Secret: true},
	)
	if name != "" {
		a.form.move(1)
	}
	return textinput.Blink
}

func (a *App) toHome() tea.Cmd {
	a.state = viewHome
	a.modal = modalNone
	a.form = nil
	a.editingID = ""
	return a.loadLinks()
}

func (a *App) clearUser() {
	a.user = nil
	a.token = ""
	a.links = nil
	a.summary = repository.LinkSummary{}
	a.summaryErr = false
	a.cursor = 0
}

func (a *App) selected() *repository.PaymentLink {
	if a.cursor < 0 || a.cursor >= len(a.links) {
		return nil
	}
	return &a.links[a.cursor]
}

func (a *App) setStatus(s string) {
	a.status = s
	a.statusErr = false
}

func (a *App) setError(s string) {
	a.status = s
	a.statusErr = true
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, confirmYes):
		modal := a.modal
		a.modal = modalNone
		switch modal {
		case modalDeleteLink:
			return a, a.deleteLinkCmd(a.pendingID)
		case modalLogout:
			return a, a.logoutCmd()
		case modalDeleteProfile:
			return a, a.deleteAccountCmd()
		case modalSaveProfile:
			return a, a.saveProfileCmd(a.profileFromForm())
		}
	case key.Matches(m, confirmNo):
		a.modal = modalNone
		a.pendingID = ""
	}
	return a, nil
}

func (a *App) renderModal() string {
	var title, text string
	switch a.modal {
	case modalDeleteLink:
		title, text = "Delete Link", "Are you sure you want to delete this payment link?"
	case modalLogout:
		title, text = "Logout", "Are you sure you want to log out?"
	case modalDeleteProfile:
		title, text = "Delete Profile", "Are you sure you want to permanently delete your profile? This cannot be undone."
	case modalSaveProfile:
		title, text = "Update Profile", "Save these changes to your profile?"
	}
	return dialogStyle.Render(titleStyle.Render(title) + "\n" + text + "\n\n" + renderHelp(confirmYes, confirmNo))
}

func (a *App) renderStatus() string {
	msg := strings.TrimSpace(a.status)
	if msg == "" {
		msg = "Ready"
	}
	if a.statusErr {
		return renderBar(statusErrBarStyle, a.width, msg)
	}
	return renderBar(statusBarStyle, a.width, msg)
}

type splashDoneMsg struct{}

type sessionMsg struct {
	user  *repository.User
	token string
}

type loggedInMsg struct {
	user  *repository.User
	token string
}

type registeredMsg struct{ name string }

type linksMsg struct {
	filter     service.Filter
	links      []repository.PaymentLink
	summary    repository.LinkSummary
	summaryErr error
}

type linkSavedMsg struct {
	link    *repository.PaymentLink
	created bool
}

type linkDeletedMsg struct{}

type filledMsg struct{ draft service.LinkDraft }

type profileSavedMsg struct{ user *repository.User }

type loggedOutMsg struct{}

type accountDeletedMsg struct{}

type statusMsg string

type errMsg struct{ error }
