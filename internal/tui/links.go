package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harry/pay/internal/database/repository"
	"github.com/harry/pay/internal/money"
	"github.com/harry/pay/internal/service"
)

func (a *App) toCreateLink() {
	a.state = viewCreateLink
	a.editingID = ""
	a.form = newForm(
		formField{Key: "smart", Label: "Smart Input"},
		formField{Key: "title", Label: "Recipient"},
		formField{Key: "description", Label: "Description"},
		formField{Key: "amount", Label: "Amount", Accept: money.Valid},
	)
}

func (a *App) toEditLink(l repository.PaymentLink) {
	a.state = viewEditLink
	a.editingID = l.ID
	a.form = newForm(
		formField{Key: "title", Label: "Recipient", Value: l.Title},
		formField{Key: "description", Label: "Description", Value: l.Description},
		formField{Key: "amount", Label: "Amount", Value: money.Plain(l.AmountCents), Accept: money.Valid},
	)
}

func (a *App) draftFromForm() service.LinkDraft {
	return service.LinkDraft{
		Title:       a.form.value("title"),
		Description: a.form.value("description"),
		Amount:      a.form.value("amount"),
	}
}

func (a *App) handleLinkEditorKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(m, formBack):
		return a, a.toHome()
	case key.Matches(m, formDelete):
		if a.state == viewEditLink {
			a.pendingID = a.editingID
			a.modal = modalDeleteLink
		}
		return a, nil
	case key.Matches(m, formSubmit):
		if a.parsing {
			return a, nil
		}
		if a.form.focused() == "smart" {
			return a, a.fillCmd(a.form.value("smart"))
		}
		if a.state == viewEditLink {
			return a, a.updateLinkCmd(a.editingID, a.draftFromForm())
		}
		return a, a.createLinkCmd(a.draftFromForm())
	}
	return a, a.form.update(m)
}

func (a *App) renderLinkEditor() string {
	var b strings.Builder
	if a.state == viewEditLink {
		b.WriteString(titleStyle.Render("Edit Payment Link") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("AI | Create Payment Link") + "\n")
		b.WriteString(mutedStyle.Render("Smart Assistant, e.g. 'Request 2500 from Mike for groceries', enter to fill") + "\n\n")
	}
	b.WriteString(a.form.view() + "\n\n")

	d := a.draftFromForm()
	preview := a.services.Links.URL(d.Title, d.Amount)
	if preview != "" {
		b.WriteString(mutedStyle.Render("Preview: ") + successStyle.Render(preview) + "\n")
	}
	if strings.TrimSpace(d.Title) != "" || strings.TrimSpace(d.Amount) != "" {
		amount := strings.TrimSpace(d.Amount)
		if v, err := money.Parse(amount); err == nil {
			amount = money.Format(a.cfg.UI.Currency, money.ToCents(v))
		}
		summary := "Requesting " + amount + " from " + strings.TrimSpace(d.Title)
		if desc := strings.TrimSpace(d.Description); desc != "" {
			summary += " for " + desc
		}
		b.WriteString(cardStyle.Render(summary) + "\n")
	}
	b.WriteString("\n")
	if a.state == viewEditLink {
		b.WriteString(renderHelp(formSubmit, formNext, formDelete, formBack))
	} else {
		b.WriteString(renderHelp(formSubmit, formNext, formBack))
	}
	return b.String()
}
