package tui

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harry/pay/internal/assistant"
	"github.com/harry/pay/internal/database/repository"
	"github.com/harry/pay/internal/money"
	"github.com/harry/pay/internal/service"
	"github.com/harry/pay/internal/session"
)

func (a *App) restoreSessionCmd() tea.Cmd {
	return func() tea.Msg {
		if a.services.Sessions == nil {
			return sessionMsg{}
		}
		sess, err := a.services.Sessions.Current()
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) && !errors.Is(err, session.ErrSessionExpired) {
				log.Printf("restore session: %v", err)
			}
			return sessionMsg{}
		}
		u, err := a.services.Auth.Get(a.ctx, sess.UserID)
		if err != nil {
			log.Printf("restore session user %s: %v", sess.UserID, err)
			_ = a.services.Sessions.Delete(sess.Token)
			return sessionMsg{}
		}
		return sessionMsg{user: u, token: sess.Token}
	}
}

func (a *App) loginCmd(name, password string) tea.Cmd {
	return func() tea.Msg {
		u, err := a.services.Auth.Login(a.ctx, name, password)
		if err != nil {
			return errMsg{err}
		}
		var token string
		if a.services.Sessions != nil {
			sess, err := a.services.Sessions.Create(u.ID)
			if err == nil {
				err = a.services.Sessions.SetCurrent(sess.Token)
				token = sess.Token
			}
			if err != nil {
				log.Printf("persist session: %v", err)
			}
		}
		return loggedInMsg{user: u, token: token}
	}
}

func (a *App) registerCmd(in service.RegisterInput) tea.Cmd {
	return func() tea.Msg {
		u, err := a.services.Auth.Register(a.ctx, in)
		if err != nil {
			return errMsg{err}
		}
		return registeredMsg{name: u.Name}
	}
}

func (a *App) loadLinks() tea.Cmd {
	if a.user == nil {
		return nil
	}
	userID, filter := a.user.ID, a.filter
	return func() tea.Msg {
		list, err := a.services.Links.List(a.ctx, userID, filter)
		if err != nil {
			return errMsg{err}
		}
		msg := linksMsg{filter: filter, links: list}
		// the list stays usable even when the totals can't be computed
		msg.summary, msg.summaryErr = a.services.Links.Summary(a.ctx, userID)
		if msg.summaryErr != nil {
			log.Printf("summary for %s: %v", userID, msg.summaryErr)
		}
		return msg
	}
}

func (a *App) createLinkCmd(d service.LinkDraft) tea.Cmd {
	userID := a.user.ID
	return func() tea.Msg {
		l, err := a.services.Links.Create(a.ctx, userID, d)
		if err != nil {
			return errMsg{err}
		}
		return linkSavedMsg{link: l, created: true}
	}
}

func (a *App) updateLinkCmd(id string, d service.LinkDraft) tea.Cmd {
	userID := a.user.ID
	return func() tea.Msg {
		l, err := a.services.Links.Update(a.ctx, userID, id, d)
		if err != nil {
			return errMsg{err}
		}
		return linkSavedMsg{link: l}
	}
}

func (a *App) deleteLinkCmd(id string) tea.Cmd {
	userID := a.user.ID
	a.pendingID = ""
	return func() tea.Msg {
		if err := a.services.Links.Delete(a.ctx, userID, id); err != nil {
			return errMsg{err}
		}
		return linkDeletedMsg{}
	}
}

func (a *App) fillCmd(input string) tea.Cmd {
	userID := a.user.ID
	a.parsing = true
	a.setStatus("Parsing...")
	return func() tea.Msg {
		d, err := a.services.Assistant.Fill(a.ctx, userID, input)
		if err != nil {
			return errMsg{err}
		}
		return filledMsg{draft: d}
	}
}

func (a *App) copyLinkCmd(link string) tea.Cmd {
	return func() tea.Msg {
		if err := a.copyText(link); err != nil {
			return errMsg{fmt.Errorf("copy to clipboard: %w", err)}
		}
		return statusMsg("Link copied to clipboard")
	}
}

func (a *App) saveFilterCmd() tea.Cmd {
	cfg := a.cfg
	return func() tea.Msg {
		if err := a.saveConfig(cfg); err != nil {
			log.Printf("save config: %v", err)
			return errMsg{fmt.Errorf("save preferences: %w", err)}
		}
		return nil
	}
}

func (a *App) saveProfileCmd(u repository.User) tea.Cmd {
	return func() tea.Msg {
		updated, err := a.services.Auth.UpdateProfile(a.ctx, u)
		if err != nil {
			return errMsg{err}
		}
		return profileSavedMsg{user: updated}
	}
}

func (a *App) logoutCmd() tea.Cmd {
	token := a.token
	return func() tea.Msg {
		if a.services.Sessions != nil && token != "" {
			if err := a.services.Sessions.Delete(token); err != nil {
				return errMsg{fmt.Errorf("logout: %w", err)}
			}
		}
		return loggedOutMsg{}
	}
}

func (a *App) deleteAccountCmd() tea.Cmd {
	userID := a.user.ID
	return func() tea.Msg {
		if err := a.services.Auth.DeleteAccount(a.ctx, userID); err != nil {
			return errMsg{err}
		}
		if a.services.Sessions != nil {
			if err := a.services.Sessions.RevokeUser(userID); err != nil {
				log.Printf("revoke sessions for %s: %v", userID, err)
			}
		}
		return accountDeletedMsg{}
	}
}

// describe turns service errors into the messages shown in the status line.
func (a *App) describe(err error) string {
	switch {
	case errors.Is(err, service.ErrMissingFields):
		return "All fields are required"
	case errors.Is(err, service.ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, service.ErrPasswordFormat):
		return fmt.Sprintf("Password must be %d digits", a.passwordLength())
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, service.ErrNameTaken):
		return "That name is already registered"
	case errors.Is(err, money.ErrTooLarge):
		return "Amount can't exceed " + money.Format(a.cfg.UI.Currency, money.MaxCents)
	case errors.Is(err, service.ErrInvalidAmount):
		return "Enter a valid amount greater than zero"
	case errors.Is(err, assistant.ErrNoMatch):
		return "Couldn't parse input. Try: 'Request 3000 from James for branding'"
	}
	return capitalize(err.Error())
}

func (a *App) passwordLength() int {
	if a.services.Auth != nil && a.services.Auth.PasswordLength > 0 {
		return a.services.Auth.PasswordLength
	}
	if a.cfg.Auth.PasswordLength > 0 {
		return a.cfg.Auth.PasswordLength
	}
	return 4
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSpace(string(r))
}
