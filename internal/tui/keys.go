package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type homeKeys struct {
	Up, Down, New, Edit, Delete, Copy, Filter, Profile, Community, Logout, Quit key.Binding
}

var homeKeyMap = homeKeys{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new link")),
	Edit:      key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
	Filter:    key.NewBinding(key.WithKeys("f", "1", "2", "3"), key.WithHelp("f/1-3", "filter")),
	Profile:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
	Community: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "communities")),
	Logout:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logout")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k homeKeys) help() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Delete, k.Copy, k.Filter, k.Profile, k.Community, k.Logout, k.Quit}
}

type profileKeys struct {
	Edit, Logout, Delete, Back key.Binding
}

var profileKeyMap = profileKeys{
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit profile")),
	Logout: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "logout")),
	Delete: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete profile")),
	Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
}

var (
	formSubmit   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
	formNext     = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field"))
	formBack     = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	formDelete   = key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete"))
	formRegister = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "sign up"))
	confirmYes   = key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes"))
	confirmNo    = key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no"))
	forceQuit    = key.NewBinding(key.WithKeys("ctrl+c"))
)

func renderHelp(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+" "+helpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
