package roster

import "sync"

// ComposeGuard prevents a submit intent from firing in the middle of a text
// composition (an IME sequence or a bracketed paste). While a composition is
// open, at most one submit intent is held back; it fires when the
// composition ends.
type ComposeGuard struct {
	mu        sync.Mutex
	composing bool
	deferred  bool
}

// Begin marks the start of a composition. Nested begins collapse into one.
func (g *ComposeGuard) Begin() {
	g.mu.Lock()
	g.composing = true
	g.mu.Unlock()
}

// End marks the end of the composition and reports whether a submit intent
// was deferred while it was open. The deferred flag is consumed.
func (g *ComposeGuard) End() (fireDeferred bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.composing {
		return false
	}
	g.composing = false
	fireDeferred = g.deferred
	g.deferred = false
	return fireDeferred
}

// Intercept is called on a submit intent. It returns true when the intent
// must be held back because a composition is open; repeated intents inside
// one composition collapse into a single deferred submit.
func (g *ComposeGuard) Intercept() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.composing {
		return false
	}
	g.deferred = true
	return true
}

// Composing reports whether a composition is open.
func (g *ComposeGuard) Composing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.composing
}
