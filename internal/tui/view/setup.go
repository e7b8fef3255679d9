package view

import (
	"strings"

	"github.com/teamdraft/teamdraft/internal/tui/styles"
)

// SetupState holds what the setup stages need to render.
type SetupState struct {
	// Question is the prompt shown above the input.
	Question string

	// Input is the rendered text input widget.
	Input string

	// ErrMsg is the validation failure from the last submit, if any.
	ErrMsg string
}

// RenderSetup renders one numeric question stage.
func RenderSetup(state SetupState) string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("teamdraft"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render(state.Question))
	b.WriteString("\n")
	b.WriteString(state.Input)
	if state.ErrMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.Error.Render(state.ErrMsg))
	}
	return b.String()
}
