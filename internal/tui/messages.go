package tui

// flushMsg tells the model to drain the coalescing scheduler. It is sent
// whenever the scheduler's queue goes from empty to non-empty.
type flushMsg struct{}

// refocusMsg re-focuses the text input shortly after a stage transition,
// once any in-flight key events from the previous stage have drained.
type refocusMsg struct{}

// saveResultMsg carries the outcome of the asynchronous team save.
type saveResultMsg struct {
	success bool
	skipped bool
	message string
}
