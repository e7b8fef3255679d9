// Package bind connects a state source to a renderable component. A Binding
// owns the component's lifecycle: it subscribes on mount, projects state into
// props on every change, and lets a render gate decide whether the projection
// is worth a frame.
package bind

import (
	"sync"

	"github.com/teamdraft/teamdraft/internal/gate"
	"github.com/teamdraft/teamdraft/internal/logging"
)

// Source is anything whose changes a binding can observe. The store
// satisfies this directly.
type Source interface {
	// OnChange registers a callback invoked after every change and returns
	// an idempotent unsubscribe function.
	OnChange(fn func()) (unsubscribe func())
}

// Component is a renderable unit with a lifecycle.
type Component interface {
	// Init is called once, when the binding mounts.
	Init()
	// Render produces the component's output for the given props.
	Render(props gate.Props) string
	// Cleanup is called once, when the binding unmounts.
	Cleanup()
}

// Projection reads the current state and returns the props the component
// depends on. Only projection output participates in the skip comparison;
// action props are merged in afterwards.
type Projection func() gate.Props

// Binding ties a Source, a Projection, and a Component together.
//
// Action props are captured once at construction and merged under the
// projection's props on every frame, so callbacks never defeat the shallow
// comparison. On a key collision the projection wins.
type Binding struct {
	mu        sync.Mutex
	source    Source
	component Component
	project   Projection
	actions   gate.Props
	gate      *gate.Gate
	unsub     func()
	mounted   bool
	output    string
	log       *logging.Logger
}

// Option configures a Binding.
type Option func(*Binding)

// WithLogger attaches a logger for lifecycle diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(b *Binding) { b.log = l.WithComponent("bind") }
}

// Connect builds a Binding. name identifies the component in diagnostics;
// cadence controls when projected changes become frames; actions may be nil.
func Connect(name string, source Source, component Component, project Projection, actions gate.Props, cadence gate.Cadence, opts ...Option) *Binding {
	b := &Binding{
		source:    source,
		component: component,
		project:   project,
		actions:   actions,
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.gate = gate.New(name, b.renderFrame, cadence)
	return b
}

// Mount initializes the component, subscribes to the source, and renders the
// first frame. Mounting an already-mounted binding is a no-op.
func (b *Binding) Mount() {
	b.mu.Lock()
	if b.mounted {
		b.mu.Unlock()
		return
	}
	b.mounted = true
	b.mu.Unlock()

	b.component.Init()
	b.unsub = b.source.OnChange(b.refresh)
	b.refresh()
}

// Unmount unsubscribes and cleans the component up. Unmounting an unmounted
// binding is a no-op.
func (b *Binding) Unmount() {
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return
	}
	b.mounted = false
	unsub := b.unsub
	b.unsub = nil
	b.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	b.component.Cleanup()
}

// Mounted reports whether the binding is mounted.
func (b *Binding) Mounted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mounted
}

// Output returns the component's most recent render output.
func (b *Binding) Output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.output
}

// Refresh re-evaluates the projection and invalidates the gate. It is also
// the change callback registered with the source.
func (b *Binding) Refresh() {
	b.refresh()
}

func (b *Binding) refresh() {
	b.mu.Lock()
	mounted := b.mounted
	b.mu.Unlock()
	if !mounted {
		return
	}
	b.gate.Invalidate(b.project())
}

func (b *Binding) renderFrame(props gate.Props) {
	merged := make(gate.Props, len(props)+len(b.actions))
	for k, v := range b.actions {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}

	out := b.component.Render(merged)

	b.mu.Lock()
	b.output = out
	b.mu.Unlock()
}
