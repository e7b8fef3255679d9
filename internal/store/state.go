// Package store holds the single canonical state document for a teamdraft
// session and the dispatch/subscribe machinery around it. All mutation flows
// through Dispatch; reducers are pure functions over (State, Action).
package store

import "slices"

// State is the application state document. The store owns the only mutable
// reference; everything handed out is a value whose Members slice must be
// treated as read-only.
type State struct {
	// Members is the ordered roster. Insertion order is significant and
	// displayed names are unique.
	Members []string

	// TotalMembers is the target roster size.
	TotalMembers int

	// TeamCount is the number of teams to split into.
	TeamCount int

	// IsTotalConfirmed locks TotalMembers pending an explicit reset.
	IsTotalConfirmed bool

	// IsTeamCountConfirmed locks TeamCount pending an explicit reset.
	IsTeamCountConfirmed bool

	// EditingIndex is the row currently in edit mode, -1 when idle.
	EditingIndex int
}

// NewState returns the initial state document.
func NewState() State {
	return State{EditingIndex: -1}
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.Members = slices.Clone(s.Members)
	return s
}

// Equal reports structural equality between two state documents.
func (s State) Equal(o State) bool {
	return s.TotalMembers == o.TotalMembers &&
		s.TeamCount == o.TeamCount &&
		s.IsTotalConfirmed == o.IsTotalConfirmed &&
		s.IsTeamCountConfirmed == o.IsTeamCountConfirmed &&
		s.EditingIndex == o.EditingIndex &&
		slices.Equal(s.Members, o.Members)
}
