package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type circle struct {
	Name        string
	Description string
	Tags        []string
}

var circles = []circle{
	{"Tech Innovators", "A community for tech enthusiasts to share ideas and innovations.", []string{"Open", "Popular", "Active"}},
	{"Designers Hub", "A place for designers to collaborate and learn from each other.", []string{"Open", "Popular", "Active"}},
	{"Food Lovers", "Explore new recipes and culinary experiences.", []string{"Open", "Popular", "Active"}},
	{"Fitness Freaks", "Workouts, motivation, and health tips.", []string{"Open", "Popular", "Active"}},
}

func (a *App) handleCommunitiesKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, profileKeyMap.Back) {
		return a, a.toHome()
	}
	return a, nil
}

func (a *App) renderCommunities() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Community Circles") + "\n")
	b.WriteString(mutedStyle.Render("Discover and join exclusive communities tailored for creators, builders, and dreamers.") + "\n\n")
	for _, c := range circles {
		tags := make([]string, 0, len(c.Tags))
		for _, t := range c.Tags {
			tags = append(tags, chipStyle.Render(t))
		}
		b.WriteString(cardStyle.Render(textStyle.Bold(true).Render(c.Name)+"\n"+c.Description+"\n"+strings.Join(tags, " ")) + "\n")
	}
	b.WriteString("\n" + renderHelp(profileKeyMap.Back))
	return b.String()
}
