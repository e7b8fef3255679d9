package store

import (
	"github.com/teamdraft/teamdraft/internal/roster"
)

// Reducer is a pure function producing the next state for an action.
// A reducer signals "no change" by returning its input state unchanged.
type Reducer func(State, Action) State

// Reduce is the application reducer. Invalid transitions (capacity reached,
// duplicate names, locked numbers, out-of-range indexes) leave the state
// untouched; the caller surfaces feedback separately.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionAddMember:
		next, err := roster.AddName(s.Members, a.Name, s.TotalMembers, s.IsTotalConfirmed)
		if err != nil {
			return s
		}
		s.Members = next
		return s

	case ActionUpdateMember:
		next, err := roster.RenameSuffix(s.Members, a.Index, a.Suffix)
		if err != nil {
			return s
		}
		s.Members = next
		if s.EditingIndex == a.Index {
			s.EditingIndex = -1
		}
		return s

	case ActionDeleteMember:
		next, err := roster.RemoveAt(s.Members, a.Index)
		if err != nil {
			return s
		}
		s.Members = next
		// Edit mode cannot survive pointing at a removed or shifted row.
		if s.EditingIndex == a.Index {
			s.EditingIndex = -1
		} else if s.EditingIndex > a.Index {
			s.EditingIndex--
		}
		return s

	case ActionSetEditing:
		if a.Index < -1 || a.Index >= len(s.Members) {
			return s
		}
		s.EditingIndex = a.Index
		return s

	case ActionSetTotal:
		if s.IsTotalConfirmed || a.Value < 0 {
			return s
		}
		s.TotalMembers = a.Value
		return s

	case ActionConfirmTotal:
		if s.TotalMembers <= 0 {
			return s
		}
		s.IsTotalConfirmed = true
		return s

	case ActionSetTeamCount:
		if s.IsTeamCountConfirmed || a.Value < 0 {
			return s
		}
		s.TeamCount = a.Value
		return s

	case ActionConfirmTeamCount:
		if s.TeamCount <= 0 {
			return s
		}
		s.IsTeamCountConfirmed = true
		return s

	case ActionReset:
		return NewState()

	default:
		return s
	}
}
