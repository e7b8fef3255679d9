package roster

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/teamdraft/teamdraft/internal/gate"
)

// Prop keys the roster view understands.
const (
	PropMembers   = "members"
	PropCount     = "count"
	PropEditing   = "editing"
	PropCapacity  = "capacity"
	PropConfirmed = "confirmed"
	PropStatus    = "status"
)

// listSep joins member names into a single comparable prop value. It cannot
// occur in user input, which arrives line-oriented.
const listSep = "\x1f"

// EncodeMembers packs a member list into one comparable string.
func EncodeMembers(members []string) string {
	return strings.Join(members, listSep)
}

// DecodeMembers unpacks a member list packed by EncodeMembers.
func DecodeMembers(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}

var (
	viewTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	viewRowStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	viewEditingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	viewMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	viewStatusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// Row maps one rendered list line back to a member.
type Row struct {
	Index int
	Name  string
}

// View renders the roster from props alone. It keeps no model state; the
// only thing it retains between frames is the row side-table, rebuilt on
// every render so line hits always resolve against the frame on screen.
//
// The intent callbacks are set by the controller; the view never mutates
// anything itself.
type View struct {
	OnSubmit func(name string)
	OnEdit   func(index int)
	OnDelete func(index int)

	// RenderList overrides how the member block is rendered. The default
	// renders inline; the TUI injects a memoizing renderer here.
	RenderList func(members []string, editing int) string

	rows []Row
}

// Init implements the component lifecycle. The view has nothing to set up.
func (v *View) Init() {}

// Cleanup implements the component lifecycle.
func (v *View) Cleanup() { v.rows = nil }

// Rows returns the side-table from the most recent render.
func (v *View) Rows() []Row {
	out := make([]Row, len(v.rows))
	copy(out, v.rows)
	return out
}

// RowAt resolves a list position from the last render to a member index.
func (v *View) RowAt(pos int) (int, bool) {
	if pos < 0 || pos >= len(v.rows) {
		return 0, false
	}
	return v.rows[pos].Index, true
}

// Render produces the roster block for the given props.
func (v *View) Render(props gate.Props) string {
	members := DecodeMembers(stringProp(props, PropMembers))
	editing := intProp(props, PropEditing, -1)
	capacity := intProp(props, PropCapacity, 0)
	confirmed := boolProp(props, PropConfirmed)
	status := stringProp(props, PropStatus)

	v.rows = v.rows[:0]
	for i, name := range members {
		v.rows = append(v.rows, Row{Index: i, Name: name})
	}

	var b strings.Builder

	header := "Roster"
	if capacity > 0 {
		header = fmt.Sprintf("Roster (%d/%d)", len(members), capacity)
		if !confirmed {
			header += " " + viewMutedStyle.Render("unconfirmed")
		}
	}
	b.WriteString(viewTitleStyle.Render(header))
	b.WriteString("\n")

	renderList := v.RenderList
	if renderList == nil {
		renderList = renderListInline
	}
	b.WriteString(renderList(members, editing))

	if status != "" {
		b.WriteString("\n")
		b.WriteString(viewStatusStyle.Render(status))
	}

	return b.String()
}

// renderListInline is the default member block renderer.
func renderListInline(members []string, editing int) string {
	if len(members) == 0 {
		return viewMutedStyle.Render("  (no members yet)")
	}

	var b strings.Builder
	for i, name := range members {
		if i > 0 {
			b.WriteString("\n")
		}
		line := fmt.Sprintf("  %2d. %s", i+1, name)
		if i == editing {
			b.WriteString(viewEditingStyle.Render(line + " ✎"))
		} else {
			b.WriteString(viewRowStyle.Render(line))
		}
	}
	return b.String()
}

func stringProp(p gate.Props, key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

func intProp(p gate.Props, key string, fallback int) int {
	if n, ok := p[key].(int); ok {
		return n
	}
	return fallback
}

func boolProp(p gate.Props, key string) bool {
	b, _ := p[key].(bool)
	return b
}
