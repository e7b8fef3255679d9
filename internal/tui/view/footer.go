package view

import (
	"strings"

	"github.com/teamdraft/teamdraft/internal/tui/styles"
)

// Hint is one key binding shown in the help bar.
type Hint struct {
	Key  string
	Desc string
}

// RenderFooter renders the help bar from a set of hints.
func RenderFooter(hints []Hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, styles.HelpKey.Render("["+h.Key+"]")+" "+h.Desc)
	}
	return styles.HelpBar.Render(strings.Join(parts, "  "))
}
