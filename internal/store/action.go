package store

// ActionType identifies one of the closed set of state transitions.
type ActionType string

// The closed set of action kinds.
const (
	ActionAddMember        ActionType = "roster/add"
	ActionUpdateMember     ActionType = "roster/update"
	ActionDeleteMember     ActionType = "roster/delete"
	ActionSetEditing       ActionType = "roster/set_editing"
	ActionSetTotal         ActionType = "config/set_total"
	ActionConfirmTotal     ActionType = "config/confirm_total"
	ActionSetTeamCount     ActionType = "config/set_team_count"
	ActionConfirmTeamCount ActionType = "config/confirm_team_count"
	ActionReset            ActionType = "config/reset"
)

// Action is an immutable description of a state transition. Fields beyond
// Type carry the payload; which fields are meaningful depends on the kind.
type Action struct {
	Type ActionType

	// Name is the member name for add actions.
	Name string

	// Index targets a member row for update/delete/set-editing actions.
	// SetEditing accepts -1 to leave edit mode.
	Index int

	// Suffix is the new qualifier for update actions. Blank drops the
	// qualifier.
	Suffix string

	// Value carries the number for set-total and set-team-count actions.
	Value int
}

// AddMember creates an add-member action.
func AddMember(name string) Action {
	return Action{Type: ActionAddMember, Name: name}
}

// UpdateMember creates an update action rewriting a member's suffix.
func UpdateMember(index int, suffix string) Action {
	return Action{Type: ActionUpdateMember, Index: index, Suffix: suffix}
}

// DeleteMember creates a delete action for a member row.
func DeleteMember(index int) Action {
	return Action{Type: ActionDeleteMember, Index: index}
}

// SetEditing creates an action moving edit mode to a row (-1 to clear).
func SetEditing(index int) Action {
	return Action{Type: ActionSetEditing, Index: index}
}

// SetTotal creates an action updating the target roster size.
func SetTotal(n int) Action {
	return Action{Type: ActionSetTotal, Value: n}
}

// ConfirmTotal creates an action locking the target roster size.
func ConfirmTotal() Action {
	return Action{Type: ActionConfirmTotal}
}

// SetTeamCount creates an action updating the team count.
func SetTeamCount(n int) Action {
	return Action{Type: ActionSetTeamCount, Value: n}
}

// ConfirmTeamCount creates an action locking the team count.
func ConfirmTeamCount() Action {
	return Action{Type: ActionConfirmTeamCount}
}

// Reset creates an action returning the document to its initial state.
func Reset() Action {
	return Action{Type: ActionReset}
}
