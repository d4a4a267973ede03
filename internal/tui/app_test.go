package tui

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/harry/pay/internal/assistant"
	"github.com/harry/pay/internal/config"
	"github.com/harry/pay/internal/database"
	"github.com/harry/pay/internal/database/repository"
	"github.com/harry/pay/internal/service"
	"github.com/harry/pay/internal/session"
)

type harness struct {
	links    *repository.PaymentLinkRepo
	services Services
	cfg      config.Config
	saved    []config.Config
	copied   []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sessions, err := session.Open(filepath.Join(dir, "sessions"), time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sessions.Close() })

	users := repository.NewUserRepo(db)
	links := repository.NewPaymentLinkRepo(db)
	linkSvc := &service.LinkService{Links: links, BaseURL: "https://paylink.app", TZ: time.UTC}
	return &harness{
		links: links,
		cfg: config.Config{
			UI:   config.UIConfig{Currency: "KES", DefaultFilter: "all"},
			Auth: config.AuthConfig{PasswordLength: 4},
		},
		services: Services{
			Auth:      &service.AuthService{DB: db, Users: users, Links: links, PasswordLength: 4, Cost: bcrypt.MinCost},
			Links:     linkSvc,
			Assistant: &service.AssistantService{Links: linkSvc, Extractor: assistant.NewRegexExtractor()},
			Sessions:  sessions,
		},
	}
}

// start builds an App and runs its startup commands.
func (h *harness) start(t *testing.T) *App {
	t.Helper()
	a := New(context.Background(), h.cfg, h.services, time.UTC)
	a.copyText = func(s string) error { h.copied = append(h.copied, s); return nil }
	a.saveConfig = func(c config.Config) error { h.saved = append(h.saved, c); return nil }
	run(t, a, a.Init())
	return a
}

// run executes cmd and feeds app messages back into Update until nothing is left.
// Cursor blink and other input plumbing messages are dropped.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			run(t, a, c)
		}
		return
	}
	switch msg.(type) {
	case splashDoneMsg, sessionMsg, loggedInMsg, registeredMsg, linksMsg, linkSavedMsg,
		linkDeletedMsg, filledMsg, profileSavedMsg, loggedOutMsg, accountDeletedMsg, statusMsg, errMsg:
		_, next := a.Update(msg)
		run(t, a, next)
	}
}

// keyMsg helper for tests
func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
	ctrlR    = tea.KeyMsg{Type: tea.KeyCtrlR}
	ctrlD    = tea.KeyMsg{Type: tea.KeyCtrlD}
)

func press(t *testing.T, a *App, msgs ...tea.Msg) {
	t.Helper()
	for _, m := range msgs {
		_, cmd := a.Update(m)
		run(t, a, cmd)
	}
}

// fill types values into consecutive fields starting at the focused one.
func fill(t *testing.T, a *App, values ...string) {
	t.Helper()
	for i, v := range values {
		if i > 0 {
			press(t, a, tabKey)
		}
		if v != "" {
			press(t, a, keyMsg(v))
		}
	}
}

func registerAndLogin(t *testing.T, a *App, name string) {
	t.Helper()
	press(t, a, ctrlR)
	require.Equal(t, viewRegister, a.state)
	fill(t, a, name, name+"@example.com", "0712345678", name+" Studio", "avatar.png", "1234", "1234")
	press(t, a, enterKey)
	require.Equal(t, viewLogin, a.state, a.status)
	require.Equal(t, "Registered successfully!", a.status)
	require.Equal(t, name, a.form.value("name"))
	require.Equal(t, "password", a.form.focused())

	fill(t, a, "1234")
	press(t, a, enterKey)
	require.Equal(t, viewHome, a.state, a.status)
	require.Equal(t, name, a.user.Name)
}

func createViaAssistant(t *testing.T, a *App, request string) {
	t.Helper()
	press(t, a, keyMsg("n"))
	require.Equal(t, viewCreateLink, a.state)
	require.Equal(t, "smart", a.form.focused())
	fill(t, a, request)
	press(t, a, enterKey)
	press(t, a, tabKey, enterKey)
	require.Equal(t, viewHome, a.state, a.status)
}

func TestStartsAtLoginWithoutSession(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	require.Equal(t, viewLogin, a.state)
	require.Contains(t, a.View(), "Welcome to PayLink")
}

func TestLoginRequiresBothFields(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	fill(t, a, "amina")
	press(t, a, enterKey)
	require.True(t, a.statusErr)
	require.Equal(t, "Please fill in both fields.", a.status)

	fill(t, a, "", "9999")
	press(t, a, enterKey)
	require.Equal(t, viewLogin, a.state)
	require.Equal(t, "Invalid username or password", a.status)
}

func TestRegisterValidationMessages(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	press(t, a, ctrlR)

	press(t, a, enterKey)
	require.Equal(t, "All fields are required", a.status)

	fill(t, a, "Amina", "a@example.com", "07", "Shop", "me.png", "1234", "4321")
	press(t, a, enterKey)
	require.Equal(t, "Passwords do not match", a.status)
	require.Equal(t, viewRegister, a.state)

	press(t, a, escKey)
	require.Equal(t, viewLogin, a.state)
}

func TestRegisterPasswordLengthMessage(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	press(t, a, ctrlR)
	fill(t, a, "Amina", "a@example.com", "07", "Shop", "me.png", "12", "12")
	press(t, a, enterKey)
	require.Equal(t, "Password must be 4 digits", a.status)
}

func TestCreateLinkWithAssistantAndCopy(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")

	createViaAssistant(t, a, "Request 3000 from James Otieno for branding")
	require.Len(t, a.links, 1)
	l := a.links[0]
	require.Equal(t, "James Otieno", l.Title)
	require.Equal(t, "branding", l.Description)
	require.Equal(t, int64(300000), l.AmountCents)
	require.Equal(t, "https://paylink.app/James-Otieno/3000", l.Link)
	require.Equal(t, repository.LinkSummary{Count: 1, TotalCents: 300000}, a.summary)
	require.Contains(t, a.View(), "KES 3,000.00")

	press(t, a, keyMsg("y"))
	require.Equal(t, []string{l.Link}, h.copied)
	require.Equal(t, "Link copied to clipboard", a.status)
}

func TestAssistantParseFailure(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")

	press(t, a, keyMsg("n"))
	fill(t, a, "give me money")
	press(t, a, enterKey)
	require.True(t, a.statusErr)
	require.Contains(t, a.status, "Request 3000 from James for branding")
	require.Equal(t, viewCreateLink, a.state)
	require.False(t, a.parsing)
}

func TestLinkEditorPreviewAndAmountGuard(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")

	press(t, a, keyMsg("n"))
	fill(t, a, "", "Mary Wambui", "logo", "12.34")
	press(t, a, keyMsg("5"))
	require.Equal(t, "12.34", a.form.value("amount"))
	press(t, a, keyMsg("x"))
	require.Equal(t, "12.34", a.form.value("amount"))
	require.Contains(t, a.View(), "https://paylink.app/Mary-Wambui/12.34")

	press(t, a, enterKey)
	require.Equal(t, viewHome, a.state)
	require.Equal(t, int64(1234), a.links[0].AmountCents)
}

func TestEditAndDeleteLink(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")
	createViaAssistant(t, a, "request 500 from Mike for groceries")

	press(t, a, keyMsg("e"))
	require.Equal(t, viewEditLink, a.state)
	require.Equal(t, "Mike", a.form.value("title"))
	require.Equal(t, "500", a.form.value("amount"))
	press(t, a, tabKey, tabKey, keyMsg("0"), enterKey)
	require.Equal(t, viewHome, a.state, a.status)
	require.Equal(t, "Payment link updated", a.status)
	require.Equal(t, int64(500000), a.links[0].AmountCents)
	require.Equal(t, "https://paylink.app/Mike/5000", a.links[0].Link)

	press(t, a, keyMsg("d"))
	require.Equal(t, modalDeleteLink, a.modal)
	press(t, a, keyMsg("n"))
	require.Equal(t, modalNone, a.modal)
	require.Len(t, a.links, 1)

	press(t, a, keyMsg("e"), ctrlD)
	require.Equal(t, modalDeleteLink, a.modal)
	press(t, a, keyMsg("y"))
	require.Equal(t, viewHome, a.state)
	require.Empty(t, a.links)
	require.Contains(t, a.View(), "No links found for the selected filter.")
}

func TestFilterSwitchPersists(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")
	createViaAssistant(t, a, "request 500 from Mike for groceries")
	createViaAssistant(t, a, "request 5000 from James for branding")
	require.Len(t, a.links, 2)

	press(t, a, keyMsg("3"))
	require.Equal(t, service.FilterOver1000, a.filter)
	require.Len(t, a.links, 1)
	require.Equal(t, "James", a.links[0].Title)
	require.Equal(t, 2, a.summary.Count, "totals ignore the filter")
	require.Len(t, h.saved, 1)
	require.Equal(t, "over1000", h.saved[0].UI.DefaultFilter)

	press(t, a, keyMsg("f"))
	require.Equal(t, service.FilterAll, a.filter)
	require.Len(t, a.links, 2)

	press(t, a, keyMsg("2"))
	require.Equal(t, service.FilterToday, a.filter)
	require.Len(t, a.links, 2)
}

func TestSessionRestoreAndLogout(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")

	b := h.start(t)
	require.Equal(t, viewHome, b.state)
	require.Equal(t, "Amina", b.user.Name)

	press(t, b, keyMsg("l"))
	require.Equal(t, modalLogout, b.modal)
	press(t, b, keyMsg("y"))
	require.Equal(t, viewLogin, b.state)
	require.Nil(t, b.user)

	c := h.start(t)
	require.Equal(t, viewLogin, c.state)
}

func TestEditProfile(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")

	press(t, a, keyMsg("p"))
	require.Equal(t, viewProfile, a.state)
	require.Contains(t, a.View(), "Amina Studio")

	press(t, a, keyMsg("e"))
	require.Equal(t, viewEditProfile, a.state)
	press(t, a, tabKey, tabKey, tabKey, keyMsg(" Ltd"), enterKey)
	require.Equal(t, modalSaveProfile, a.modal)
	press(t, a, keyMsg("y"))
	require.Equal(t, viewProfile, a.state, a.status)
	require.Equal(t, "Profile updated successfully!", a.status)
	require.Equal(t, "Amina Studio Ltd", a.user.BusinessName)
}

func TestDeleteProfile(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")
	createViaAssistant(t, a, "request 500 from Mike for groceries")

	press(t, a, keyMsg("p"), keyMsg("x"))
	require.Equal(t, modalDeleteProfile, a.modal)
	require.Contains(t, a.View(), "Are you sure you want to permanently delete your profile? This cannot be undone.")
	press(t, a, keyMsg("y"))
	require.Equal(t, viewLogin, a.state)
	require.Equal(t, "Profile deleted", a.status)

	fill(t, a, "Amina", "1234")
	press(t, a, enterKey)
	require.Equal(t, "Invalid username or password", a.status)

	b := h.start(t)
	require.Equal(t, viewLogin, b.state)
}

func TestCommunities(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")
	press(t, a, keyMsg("c"))
	require.Equal(t, viewCommunities, a.state)
	require.Contains(t, a.View(), "Designers Hub")
	press(t, a, escKey)
	require.Equal(t, viewHome, a.state)
}

func TestHomeListsLinksWhenTotalsOverflow(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")

	// rows written before amounts were capped
	now := database.Now()
	for _, id := range []string{"big1", "big2"} {
		require.NoError(t, h.links.Insert(context.Background(), repository.PaymentLink{
			ID: id, UserID: a.user.ID, Title: "James", Description: "legacy", AmountCents: math.MaxInt64/2 + 1,
			Link: "https://paylink.app/James/1", CreatedAt: now, UpdatedAt: now,
		}))
	}

	b := h.start(t)
	require.Equal(t, viewHome, b.state)
	require.Len(t, b.links, 2)
	require.True(t, b.summaryErr)
	require.True(t, b.statusErr)
	require.Contains(t, b.status, "Totals unavailable")
	require.Contains(t, b.View(), "n/a")

	press(t, b, keyMsg("d"))
	require.Equal(t, modalDeleteLink, b.modal)
	press(t, b, keyMsg("y"))
	require.Len(t, b.links, 1)
	require.False(t, b.summaryErr)
	require.Equal(t, 1, b.summary.Count)
}

func TestStaleLinksLoadIgnored(t *testing.T) {
	h := newHarness(t)
	a := h.start(t)
	registerAndLogin(t, a, "Amina")
	createViaAssistant(t, a, "request 500 from Mike for groceries")
	createViaAssistant(t, a, "request 5000 from James for branding")

	press(t, a, keyMsg("3"))
	require.Len(t, a.links, 1)

	stale := linksMsg{filter: service.FilterAll, links: make([]repository.PaymentLink, 2)}
	a.Update(stale)
	require.Len(t, a.links, 1)
	require.Equal(t, "James", a.links[0].Title)
}
