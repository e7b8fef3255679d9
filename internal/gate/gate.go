// Package gate decides whether and when a component re-renders. A Gate wraps
// a render function behind a shallow props comparison and a cadence policy,
// so redundant state notifications cost one map compare instead of a frame.
package gate

import (
	"reflect"
	"sync"
	"time"

	"github.com/teamdraft/teamdraft/internal/errors"
	"github.com/teamdraft/teamdraft/internal/logging"
	"github.com/teamdraft/teamdraft/internal/sched"
)

// Props is the flat bag of values a render depends on.
type Props map[string]any

// ShallowEqual reports whether two props bags hold the same keys with
// strictly equal values. Values of non-comparable types never compare equal,
// which errs on the side of rendering.
func (p Props) ShallowEqual(o Props) bool {
	if len(p) != len(o) {
		return false
	}
	for k, v := range p {
		w, ok := o[k]
		if !ok {
			return false
		}
		if v == nil || w == nil {
			if v != w {
				return false
			}
			continue
		}
		if !reflect.TypeOf(v).Comparable() || !reflect.TypeOf(w).Comparable() {
			return false
		}
		if v != w {
			return false
		}
	}
	return true
}

// State is the gate's position in the render lifecycle.
type State int

const (
	// StateIdle means no render is requested or running.
	StateIdle State = iota
	// StatePending means a render is requested but not yet running.
	StatePending
	// StateRendering means the render function is executing.
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// Cadence decides when a requested render actually runs.
type Cadence interface {
	// request asks the cadence to run fire, now or later.
	request(fire func())
}

type immediate struct{}

func (immediate) request(fire func()) { fire() }

// Immediate runs renders synchronously inside Invalidate.
func Immediate() Cadence { return immediate{} }

type deferred struct {
	s   *sched.Scheduler
	key string
}

func (d deferred) request(fire func()) { d.s.Enqueue(d.key, fire) }

// Deferred queues renders on a scheduler under the given key, coalescing
// with any other work for that key until the next flush.
func Deferred(s *sched.Scheduler, key string) Cadence {
	return deferred{s: s, key: key}
}

type rateLimited struct {
	mu       sync.Mutex
	interval time.Duration
	now      func() time.Time
	after    func(time.Duration, func())
	last     time.Time
	waiting  bool
}

// RateOption configures a RateLimited cadence.
type RateOption func(*rateLimited)

// WithClock overrides the cadence's time source.
func WithClock(now func() time.Time) RateOption {
	return func(r *rateLimited) { r.now = now }
}

// WithAfter overrides how the trailing render is delayed.
func WithAfter(after func(time.Duration, func())) RateOption {
	return func(r *rateLimited) { r.after = after }
}

// RateLimited runs at most one render per interval. A request inside the
// window schedules a single trailing render at the window's edge; further
// requests inside the same window coalesce into it.
func RateLimited(interval time.Duration, opts ...RateOption) Cadence {
	r := &rateLimited{
		interval: interval,
		now:      time.Now,
		after:    func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *rateLimited) request(fire func()) {
	r.mu.Lock()
	if r.waiting {
		r.mu.Unlock()
		return
	}
	now := r.now()
	if elapsed := now.Sub(r.last); r.last.IsZero() || elapsed >= r.interval {
		r.last = now
		r.mu.Unlock()
		fire()
		return
	}
	r.waiting = true
	wait := r.interval - now.Sub(r.last)
	r.mu.Unlock()

	r.after(wait, func() {
		r.mu.Lock()
		r.waiting = false
		r.last = r.now()
		r.mu.Unlock()
		fire()
	})
}

// Gate guards one component's render function.
type Gate struct {
	mu       sync.Mutex
	name     string
	render   func(Props)
	cadence  Cadence
	last     Props
	rendered bool
	pending  Props
	hasWork  bool
	state    State
	log      *logging.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger attaches a logger for render diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(g *Gate) { g.log = l.WithComponent("gate") }
}

// New creates a Gate around render, named for diagnostics, with the given
// cadence.
func New(name string, render func(Props), cadence Cadence, opts ...Option) *Gate {
	g := &Gate{
		name:    name,
		render:  render,
		cadence: cadence,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// State returns the gate's current lifecycle state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Invalidate requests a render with props. It returns false when the request
// was skipped outright because props shallow-equal the last rendered props
// and nothing else is in flight. Requests made while a render is pending or
// running replace the pending props and coalesce into one frame.
func (g *Gate) Invalidate(props Props) bool {
	g.mu.Lock()
	switch g.state {
	case StateIdle:
		if g.rendered && props.ShallowEqual(g.last) {
			g.mu.Unlock()
			g.log.Debug("render skipped", "component", g.name)
			return false
		}
		g.pending = props
		g.hasWork = true
		g.state = StatePending
		g.mu.Unlock()
		g.cadence.request(g.fire)
		return true
	default:
		// Pending or rendering: fold into the frame already in flight.
		g.pending = props
		g.hasWork = true
		g.mu.Unlock()
		return true
	}
}

// fire drains pending renders. It loops so that props arriving while a frame
// is rendering get their own frame afterwards.
func (g *Gate) fire() {
	for {
		g.mu.Lock()
		if !g.hasWork {
			g.state = StateIdle
			g.mu.Unlock()
			return
		}
		props := g.pending
		g.pending = nil
		g.hasWork = false
		if g.rendered && props.ShallowEqual(g.last) {
			g.state = StateIdle
			g.mu.Unlock()
			g.log.Debug("render skipped", "component", g.name)
			return
		}
		g.state = StateRendering
		g.mu.Unlock()

		g.runRender(props)
	}
}

// runRender executes one frame. A panicking render is recovered and logged;
// the frame's props are not recorded, so the next invalidation retries it.
func (g *Gate) runRender(props Props) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.NewRenderError(g.name, r)
			g.log.Error("render failed", "component", g.name, "error", err)
			return
		}
		g.mu.Lock()
		g.last = props
		g.rendered = true
		g.mu.Unlock()
	}()
	g.render(props)
}
