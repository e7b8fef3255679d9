// Package sched provides a coalescing work queue for deferring callbacks to
// the end of the current event-loop turn. Callbacks are keyed; re-enqueueing
// a key before the queue is flushed keeps the original queue position and
// runs the callback once.
package sched

import (
	"sync"

	"github.com/teamdraft/teamdraft/internal/logging"
)

// Callback is a unit of deferred work.
type Callback func()

type entry struct {
	key string
	fn  Callback
}

// Scheduler batches keyed callbacks and runs each queued key exactly once
// per flush, in first-enqueue order.
//
// The scheduler does not own a goroutine. Whoever integrates it supplies a
// signal function at construction; the scheduler invokes it whenever the
// queue transitions from empty to non-empty, and the integration arranges
// for Flush to run on its event loop.
type Scheduler struct {
	mu      sync.Mutex
	queue   []entry
	queued  map[string]int // key -> index into queue
	signal  func()
	flushes uint64
	log     *logging.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger attaches a logger for flush diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(s *Scheduler) { s.log = l.WithComponent("sched") }
}

// New creates a Scheduler. signal is called (outside the scheduler's lock)
// each time the queue becomes non-empty; it may be nil for pull-only use.
func New(signal func(), opts ...Option) *Scheduler {
	s := &Scheduler{
		queued: make(map[string]int),
		signal: signal,
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue adds fn under key. If the key is already queued the stored
// callback is replaced but keeps its original position, so a key enqueued
// five times before a flush still runs once.
func (s *Scheduler) Enqueue(key string, fn Callback) {
	s.mu.Lock()
	if i, ok := s.queued[key]; ok {
		s.queue[i].fn = fn
		s.mu.Unlock()
		return
	}
	wasEmpty := len(s.queue) == 0
	s.queued[key] = len(s.queue)
	s.queue = append(s.queue, entry{key: key, fn: fn})
	s.mu.Unlock()

	if wasEmpty && s.signal != nil {
		s.signal()
	}
}

// Flush runs every queued callback once, in enqueue order. The queue is
// snapshotted and cleared before anything runs, so callbacks that enqueue
// more work schedule a fresh batch (and re-fire the signal) rather than
// extending the current one.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	batch := s.queue
	s.queue = nil
	s.queued = make(map[string]int)
	s.flushes++
	n := s.flushes
	s.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	s.log.Debug("flushing batch", "flush", n, "callbacks", len(batch))

	for _, e := range batch {
		e.fn()
	}
}

// Len returns the number of distinct keys currently queued.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
