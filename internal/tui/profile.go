package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harry/pay/internal/database/repository"
)

func (a *App) handleProfileKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, profileKeyMap.Back):
		return a, a.toHome()
	case key.Matches(m, profileKeyMap.Edit):
		a.toEditProfile()
		return a, textinput.Blink
	case key.Matches(m, profileKeyMap.Logout):
		a.modal = modalLogout
	case key.Matches(m, profileKeyMap.Delete):
		a.modal = modalDeleteProfile
	}
	return a, nil
}

func (a *App) renderProfile() string {
	if a.user == nil {
		return ""
	}
	u := a.user
	rows := []string{
		titleStyle.Render(u.Name),
		mutedStyle.Render("Email: ") + u.Email,
		mutedStyle.Render("Phone: ") + u.PhoneNumber,
		mutedStyle.Render("Business: ") + u.BusinessName,
		mutedStyle.Render("Picture: ") + u.ProfilePictureURI,
		mutedStyle.Render("Member since: ") + u.CreatedAt.In(a.tz).Format("02 Jan 2006"),
	}
	return titleStyle.Render("Profile") + "\n\n" +
		cardStyle.Render(strings.Join(rows, "\n")) + "\n\n" +
		renderHelp(profileKeyMap.Edit, profileKeyMap.Logout, profileKeyMap.Delete, profileKeyMap.Back)
}

func (a *App) toEditProfile() {
	a.state = viewEditProfile
	u := a.user
	a.form = newForm(
		formField{Key: "name", Label: "Name", Value: u.Name},
		formField{Key: "email", Label: "Email", Value: u.Email},
		formField{Key: "phone", Label: "Phone Number", Value: u.PhoneNumber},
		formField{Key: "business", Label: "Business Name", Value: u.BusinessName},
		formField{Key: "avatar", Label: "Profile Picture", Value: u.ProfilePictureURI},
	)
}

func (a *App) profileFromForm() repository.User {
	u := *a.user
	u.Name = a.form.value("name")
	u.Email = a.form.value("email")
	u.PhoneNumber = a.form.value("phone")
	u.BusinessName = a.form.value("business")
	u.ProfilePictureURI = a.form.value("avatar")
	return u
}

func (a *App) handleEditProfileKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, formBack):
		a.state = viewProfile
		a.form = nil
		return a, nil
	case key.Matches(m, formSubmit):
		for _, k := range []string{"name", "email", "phone", "business"} {
			if strings.TrimSpace(a.form.value(k)) == "" {
				a.setError("All fields are required")
				return a, nil
			}
		}
		a.modal = modalSaveProfile
		return a, nil
	}
	return a, a.form.update(m)
}

func (a *App) renderEditProfile() string {
	return titleStyle.Render("Edit Profile") + "\n\n" + a.form.view() + "\n\n" + renderHelp(formSubmit, formNext, formBack)
}
