package roster

import (
	"sync"

	"github.com/teamdraft/teamdraft/internal/bind"
	"github.com/teamdraft/teamdraft/internal/event"
	"github.com/teamdraft/teamdraft/internal/gate"
	"github.com/teamdraft/teamdraft/internal/logging"
)

// Controller mediates between user intents and the roster model. It owns the
// view binding, so every successful mutation flows model -> binding -> gate
// -> view without the caller touching any of them.
type Controller struct {
	model   *Model
	view    *View
	binding *bind.Binding
	guard   *ComposeGuard
	bus     *event.Bus

	mu       sync.Mutex
	status   string
	pending  string
	busUnsub func()

	log *logging.Logger
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithControllerLogger attaches a logger.
func WithControllerLogger(l *logging.Logger) ControllerOption {
	return func(c *Controller) { c.log = l.WithComponent("controller") }
}

// WithListRenderer injects a renderer for the member block, replacing the
// view's inline default.
func WithListRenderer(fn func(members []string, editing int) string) ControllerOption {
	return func(c *Controller) { c.view.RenderList = fn }
}

// NewController wires a model, a fresh view, and a binding under the given
// render cadence. bus may be nil; when present the controller listens for
// save completions and surfaces them in the view's status line.
func NewController(model *Model, bus *event.Bus, cadence gate.Cadence, opts ...ControllerOption) *Controller {
	c := &Controller{
		model: model,
		view:  &View{},
		guard: &ComposeGuard{},
		bus:   bus,
		log:   logging.Discard(),
	}
	c.view.OnSubmit = func(name string) { c.SubmitName(name) }
	c.view.OnEdit = func(i int) { c.BeginEdit(i) }
	c.view.OnDelete = func(i int) { c.Delete(i) }
	for _, opt := range opts {
		opt(c)
	}
	c.binding = bind.Connect("roster", model, c.view, c.project, nil, cadence)
	return c
}

// project reads the model into comparable props for the render gate.
func (c *Controller) project() gate.Props {
	snap := c.model.Snapshot()
	c.mu.Lock()
	status := c.status
	c.mu.Unlock()
	return gate.Props{
		PropMembers:   EncodeMembers(snap.Members),
		PropCount:     len(snap.Members),
		PropEditing:   snap.EditingIndex,
		PropCapacity:  snap.Capacity,
		PropConfirmed: snap.Confirmed,
		PropStatus:    status,
	}
}

// Start mounts the binding and begins listening on the bus.
func (c *Controller) Start() {
	if c.bus != nil && c.busUnsub == nil {
		id := c.bus.Subscribe(event.TypeSaveCompleted, c.onSaveCompleted)
		c.busUnsub = func() { c.bus.Unsubscribe(id) }
	}
	c.binding.Mount()
}

// Stop unmounts the binding and detaches from the bus.
func (c *Controller) Stop() {
	c.binding.Unmount()
	if c.busUnsub != nil {
		c.busUnsub()
		c.busUnsub = nil
	}
}

// Output returns the most recent rendered frame.
func (c *Controller) Output() string {
	return c.binding.Output()
}

// View exposes the controller's view for row lookups.
func (c *Controller) View() *View {
	return c.view
}

// Model exposes the underlying model.
func (c *Controller) Model() *Model {
	return c.model
}

func (c *Controller) onSaveCompleted(e event.Event) {
	saved, ok := e.(event.SaveCompletedEvent)
	if !ok {
		return
	}
	c.mu.Lock()
	if saved.Success {
		c.status = "saved: " + saved.Message
	} else {
		c.status = "save failed: " + saved.Message
	}
	c.mu.Unlock()
	c.binding.Refresh()
}

// SubmitName adds a member. While a composition is open the intent is held
// back and replayed when the composition ends; only the latest held-back
// name survives.
func (c *Controller) SubmitName(name string) bool {
	if c.guard.Intercept() {
		c.mu.Lock()
		c.pending = name
		c.mu.Unlock()
		c.log.Debug("submit deferred", "name", name)
		return false
	}
	return c.model.AddMember(name)
}

// BeginComposition marks the start of an IME sequence or paste.
func (c *Controller) BeginComposition() {
	c.guard.Begin()
}

// EndComposition closes the composition and replays a held-back submit.
func (c *Controller) EndComposition() {
	if !c.guard.End() {
		return
	}
	c.mu.Lock()
	name := c.pending
	c.pending = ""
	c.mu.Unlock()
	if name != "" {
		c.model.AddMember(name)
	}
}

// BeginEdit moves edit mode to a row.
func (c *Controller) BeginEdit(index int) bool {
	return c.model.SetEditing(index)
}

// CommitEdit rewrites the edited row's qualifier and leaves edit mode.
func (c *Controller) CommitEdit(index int, suffix string) bool {
	return c.model.UpdateMember(index, suffix)
}

// CancelEdit leaves edit mode without changing anything.
func (c *Controller) CancelEdit() {
	c.model.SetEditing(-1)
}

// Delete removes a row.
func (c *Controller) Delete(index int) bool {
	return c.model.DeleteMember(index)
}
