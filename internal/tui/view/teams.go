package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/teamdraft/teamdraft/internal/split"
	"github.com/teamdraft/teamdraft/internal/tui/styles"
	"github.com/teamdraft/teamdraft/internal/util"
)

// teamNameMaxWidth bounds a member line inside a team panel.
const teamNameMaxWidth = 24

// TeamsState holds what the result stage needs to render.
type TeamsState struct {
	Teams []split.Team

	// SaveStatus is the persistence outcome line, empty while in flight.
	SaveStatus string
	SaveFailed bool
}

// RenderTeams renders the finished draw, one panel per team.
func RenderTeams(state TeamsState) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("Teams"))
	b.WriteString("\n")

	panels := make([]string, 0, len(state.Teams))
	for _, team := range state.Teams {
		var p strings.Builder
		p.WriteString(styles.Primary.Render(team.Name))
		for _, name := range team.Members {
			p.WriteString("\n")
			p.WriteString(styles.Text.Render(util.TruncateString(name, teamNameMaxWidth)))
		}
		p.WriteString("\n")
		p.WriteString(styles.Muted.Render(fmt.Sprintf("%d members", len(team.Members))))
		panels = append(panels, styles.TeamBox.Render(p.String()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))

	if state.SaveStatus != "" {
		b.WriteString("\n")
		if state.SaveFailed {
			b.WriteString(styles.Error.Render(state.SaveStatus))
		} else {
			b.WriteString(styles.Secondary.Render(state.SaveStatus))
		}
	}
	return b.String()
}
