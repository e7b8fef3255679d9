package roster

import (
	"sync"

	"github.com/teamdraft/teamdraft/internal/event"
	"github.com/teamdraft/teamdraft/internal/logging"
)

// Snapshot is a point-in-time copy of the model's observable state.
type Snapshot struct {
	Members      []string
	Capacity     int
	Confirmed    bool
	EditingIndex int
}

// Model owns the roster feature's state: the ordered member list, the
// capacity, and which row (if any) is in edit mode. Mutators return whether
// they changed anything; successful mutations publish events on the bus and
// notify change listeners.
type Model struct {
	mu           sync.Mutex
	members      []string
	capacity     int
	confirmed    bool
	editingIndex int

	bus       *event.Bus
	listeners []changeEntry
	nextID    uint64
	log       *logging.Logger
}

type changeEntry struct {
	id uint64
	fn func()
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithModelLogger attaches a logger for mutation diagnostics.
func WithModelLogger(l *logging.Logger) ModelOption {
	return func(m *Model) { m.log = l.WithComponent("roster") }
}

// NewModel creates an empty Model publishing to bus. bus may be nil when
// nothing else needs the events.
func NewModel(bus *event.Bus, opts ...ModelOption) *Model {
	m := &Model{
		editingIndex: -1,
		bus:          bus,
		log:          logging.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot returns a copy of the current state.
func (m *Model) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	members := make([]string, len(m.members))
	copy(members, m.members)
	return Snapshot{
		Members:      members,
		Capacity:     m.capacity,
		Confirmed:    m.confirmed,
		EditingIndex: m.editingIndex,
	}
}

// Members returns a copy of the member list.
func (m *Model) Members() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	members := make([]string, len(m.members))
	copy(members, m.members)
	return members
}

// Len returns the number of members.
func (m *Model) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.members)
}

// EditingIndex returns the row in edit mode, -1 when idle.
func (m *Model) EditingIndex() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editingIndex
}

// Capacity returns the target roster size and whether it is confirmed.
func (m *Model) Capacity() (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capacity, m.confirmed
}

// IsFull reports whether the confirmed capacity has been reached.
func (m *Model) IsFull() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirmed && m.capacity > 0 && len(m.members) >= m.capacity
}

// SetCapacity updates the target roster size. It fails once the capacity is
// confirmed or when n is negative.
func (m *Model) SetCapacity(n int) bool {
	m.mu.Lock()
	if m.confirmed || n < 0 {
		m.mu.Unlock()
		return false
	}
	m.capacity = n
	total, confirmed := m.capacity, m.confirmed
	m.mu.Unlock()

	m.publish(event.NewCapacityChangedEvent(total, confirmed))
	m.notify()
	return true
}

// ConfirmCapacity locks the target roster size. It fails while the capacity
// is unset.
func (m *Model) ConfirmCapacity() bool {
	m.mu.Lock()
	if m.capacity <= 0 || m.confirmed {
		m.mu.Unlock()
		return false
	}
	m.confirmed = true
	total := m.capacity
	m.mu.Unlock()

	m.publish(event.NewCapacityChangedEvent(total, true))
	m.notify()
	return true
}

// AddMember appends name, qualifying it against duplicates. It fails on
// blank names, exact duplicates, and a full confirmed roster.
func (m *Model) AddMember(name string) bool {
	m.mu.Lock()
	next, err := AddName(m.members, name, m.capacity, m.confirmed)
	if err != nil {
		m.mu.Unlock()
		m.log.Debug("add rejected", "name", name, "error", err)
		return false
	}
	m.members = next
	snapshot := make([]string, len(next))
	copy(snapshot, next)
	m.mu.Unlock()

	m.publish(event.NewRosterChangedEvent(snapshot))
	m.notify()
	return true
}

// UpdateMember rewrites the numeric qualifier of the row at index. A blank
// suffix drops the qualifier. Collisions and bad indexes fail; leaving edit
// mode is the caller's concern, but the model clears it when the edited row
// was the target.
func (m *Model) UpdateMember(index int, suffix string) bool {
	m.mu.Lock()
	next, err := RenameSuffix(m.members, index, suffix)
	if err != nil {
		m.mu.Unlock()
		m.log.Debug("rename rejected", "index", index, "suffix", suffix, "error", err)
		return false
	}
	m.members = next
	editCleared := false
	if m.editingIndex == index {
		m.editingIndex = -1
		editCleared = true
	}
	snapshot := make([]string, len(next))
	copy(snapshot, next)
	m.mu.Unlock()

	m.publish(event.NewRosterChangedEvent(snapshot))
	if editCleared {
		m.publish(event.NewEditingChangedEvent(-1))
	}
	m.notify()
	return true
}

// DeleteMember removes the row at index, shifting edit mode with the rows.
func (m *Model) DeleteMember(index int) bool {
	m.mu.Lock()
	next, err := RemoveAt(m.members, index)
	if err != nil {
		m.mu.Unlock()
		return false
	}
	m.members = next
	editCleared := false
	if m.editingIndex == index {
		m.editingIndex = -1
		editCleared = true
	} else if m.editingIndex > index {
		m.editingIndex--
	}
	snapshot := make([]string, len(next))
	copy(snapshot, next)
	editing := m.editingIndex
	m.mu.Unlock()

	m.publish(event.NewRosterChangedEvent(snapshot))
	if editCleared {
		m.publish(event.NewEditingChangedEvent(editing))
	}
	m.notify()
	return true
}

// SetEditing moves edit mode to index, or clears it with -1. Out-of-range
// indexes fail.
func (m *Model) SetEditing(index int) bool {
	m.mu.Lock()
	if index < -1 || index >= len(m.members) {
		m.mu.Unlock()
		return false
	}
	if m.editingIndex == index {
		m.mu.Unlock()
		return true
	}
	m.editingIndex = index
	m.mu.Unlock()

	m.publish(event.NewEditingChangedEvent(index))
	m.notify()
	return true
}

// Reset clears the roster, capacity, and edit mode.
func (m *Model) Reset() {
	m.mu.Lock()
	m.members = nil
	m.capacity = 0
	m.confirmed = false
	m.editingIndex = -1
	m.mu.Unlock()

	m.publish(event.NewRosterChangedEvent(nil))
	m.publish(event.NewCapacityChangedEvent(0, false))
	m.notify()
}

// OnChange registers a callback invoked after every successful mutation and
// returns an idempotent unsubscribe function. This makes the model a valid
// binding source.
func (m *Model) OnChange(fn func()) (unsubscribe func()) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, changeEntry{id: id, fn: fn})
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, e := range m.listeners {
			if e.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

func (m *Model) publish(e event.Event) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func (m *Model) notify() {
	m.mu.Lock()
	snapshot := make([]changeEntry, len(m.listeners))
	copy(snapshot, m.listeners)
	m.mu.Unlock()
	for _, e := range snapshot {
		e.fn()
	}
}
