package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harry/pay/internal/database/repository"
	"github.com/harry/pay/internal/money"
	"github.com/harry/pay/internal/service"
)

func (a *App) handleHomeKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, homeKeyMap.Quit):
		return a, tea.Quit
	case key.Matches(m, homeKeyMap.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, homeKeyMap.Down):
		if a.cursor < len(a.links)-1 {
			a.cursor++
		}
	case key.Matches(m, homeKeyMap.New):
		a.toCreateLink()
		return a, textinput.Blink
	case key.Matches(m, homeKeyMap.Edit):
		if l := a.selected(); l != nil {
			a.toEditLink(*l)
			return a, textinput.Blink
		}
	case key.Matches(m, homeKeyMap.Delete):
		if l := a.selected(); l != nil {
			a.pendingID = l.ID
			a.modal = modalDeleteLink
		}
	case key.Matches(m, homeKeyMap.Copy):
		if l := a.selected(); l != nil {
			return a, a.copyLinkCmd(l.Link)
		}
	case key.Matches(m, homeKeyMap.Filter):
		next := nextFilter(a.filter)
		switch m.String() {
		case "1":
			next = service.FilterAll
		case "2":
			next = service.FilterToday
		case "3":
			next = service.FilterOver1000
		}
		return a, a.setFilter(next)
	case key.Matches(m, homeKeyMap.Profile):
		a.state = viewProfile
	case key.Matches(m, homeKeyMap.Community):
		a.state = viewCommunities
	case key.Matches(m, homeKeyMap.Logout):
		a.modal = modalLogout
	}
	return a, nil
}

func nextFilter(f service.Filter) service.Filter {
	for i, x := range service.Filters {
		if x == f {
			return service.Filters[(i+1)%len(service.Filters)]
		}
	}
	return service.FilterAll
}

// setFilter switches the list and remembers the choice for the next run.
func (a *App) setFilter(f service.Filter) tea.Cmd {
	if f == a.filter {
		return nil
	}
	a.filter = f
	a.cursor = 0
	a.cfg.UI.DefaultFilter = string(f)
	return tea.Batch(a.loadLinks(), a.saveFilterCmd())
}

func (a *App) renderHome() string {
	var b strings.Builder
	name := ""
	if a.user != nil {
		name = a.user.Name
		b.WriteString(titleStyle.Render("Hello, "+name) + "  " + mutedStyle.Render(a.user.BusinessName) + "\n\n")
	}

	countText, valueText := fmt.Sprintf("%d", a.summary.Count), money.Format(a.cfg.UI.Currency, a.summary.TotalCents)
	if a.summaryErr {
		countText, valueText = "n/a", "n/a"
	}
	count := cardStyle.Render(mutedStyle.Render("Total Links") + "\n" + textStyle.Bold(true).Render(countText))
	value := cardStyle.Render(mutedStyle.Render("Total Value") + "\n" + textStyle.Bold(true).Render(valueText))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, count, " ", value) + "\n\n")

	chips := make([]string, 0, len(service.Filters))
	for _, f := range service.Filters {
		if f == a.filter {
			chips = append(chips, activeChipStyle.Render(f.Label()))
		} else {
			chips = append(chips, chipStyle.Render(f.Label()))
		}
	}
	b.WriteString(strings.Join(chips, " ") + "\n\n")

	if len(a.links) == 0 {
		b.WriteString(mutedStyle.Render("No links found for the selected filter.") + "\n")
	}
	for i, l := range a.links {
		style := cardStyle
		if i == a.cursor {
			style = selectedCardStyle
		}
		b.WriteString(style.Render(a.renderLinkItem(l)) + "\n")
	}
	b.WriteString("\n" + renderHelp(homeKeyMap.help()...))
	return b.String()
}

func (a *App) renderLinkItem(l repository.PaymentLink) string {
	head := textStyle.Bold(true).Render(l.Title) + "  " + successStyle.Render(money.Format(a.cfg.UI.Currency, l.AmountCents))
	return head + "\n" +
		textStyle.Render(l.Description) + "\n" +
		mutedStyle.Render(l.Link) + "\n" +
		mutedStyle.Render("Created "+a.formatTime(l))
}

func (a *App) formatTime(l repository.PaymentLink) string {
	layout := a.cfg.UI.DateFormat
	if layout == "" {
		layout = "02 Jan 2006 15:04"
	}
	return l.CreatedAt.In(a.tz).Format(layout)
}
