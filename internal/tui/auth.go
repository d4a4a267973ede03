package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harry/pay/internal/service"
)

func (a *App) renderSplash() string {
	logo := titleStyle.Render("PayLink")
	return logo + "\n" + mutedStyle.Render("Create, share and track payment links")
}

func (a *App) handleLoginKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, formRegister):
		a.toRegister()
		return a, textinput.Blink
	case key.Matches(m, formSubmit):
		name, password := a.form.value("name"), a.form.value("password")
		if strings.TrimSpace(name) == "" || strings.TrimSpace(password) == "" {
			a.setError("Please fill in both fields.")
			return a, nil
		}
		a.setStatus("Signing in...")
		return a, a.loginCmd(name, password)
	}
	return a, a.form.update(m)
}

func (a *App) renderLogin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to PayLink") + "\n")
	b.WriteString(mutedStyle.Render("Sign in to manage your payment links") + "\n\n")
	b.WriteString(a.form.view() + "\n\n")
	b.WriteString(mutedStyle.Render("Don't have an account? Sign up") + "\n")
	b.WriteString(renderHelp(formSubmit, formNext, formRegister))
	return b.String()
}

func (a *App) toRegister() {
	a.state = viewRegister
	a.form = newForm(
		formField{Key: "name", Label: "Name"},
		formField{Key: "email", Label: "Email"},
		formField{Key: "phone", Label: "Phone Number"},
		formField{Key: "business", Label: "Business Name"},
		formField{Key: "avatar", Label: "Profile Picture"},
		formField{Key: "password", Label: "Password", Secret: true},
		formField{Key: "confirm", Label: "Confirm Password", Secret: true},
	)
}

func (a *App) handleRegisterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, formBack):
		return a, a.toLogin("")
	case key.Matches(m, formSubmit):
		in := service.RegisterInput{
			Name:              a.form.value("name"),
			Email:             a.form.value("email"),
			PhoneNumber:       a.form.value("phone"),
			BusinessName:      a.form.value("business"),
			ProfilePictureURI: a.form.value("avatar"),
			Password:          a.form.value("password"),
			ConfirmPassword:   a.form.value("confirm"),
		}
		return a, a.registerCmd(in)
	}
	return a, a.form.update(m)
}

func (a *App) renderRegister() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Create Account") + "\n")
	b.WriteString(mutedStyle.Render("Profile picture takes a file path or URL") + "\n\n")
	b.WriteString(a.form.view() + "\n\n")
	b.WriteString(renderHelp(formSubmit, formNext, formBack))
	return b.String()
}
