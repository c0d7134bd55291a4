package stream

// Listener observes the lifecycle of streams on a Connection. Events fire
// synchronously, in listener-registration order, on whatever goroutine
// drives the triggering operation. A Listener must not re-enter an
// operation that would invalidate the event currently being dispatched
// (e.g. closing a stream from inside StreamRemoved) — use a deferring
// RemovalPolicy if that is needed.
//
// A panicking Listener aborts the remaining notifications for that event;
// the dispatcher does not recover.
type Listener interface {
	// StreamAdded fires after a stream is registered in the connection's
	// stream map and tree, before it is activated.
	StreamAdded(s *Stream)
	// StreamActive fires when a stream enters the active set.
	StreamActive(s *Stream)
	// StreamHalfClosed fires on the OPEN -> HALF_CLOSED_* transition.
	StreamHalfClosed(s *Stream)
	// StreamInactive fires when a stream leaves the active set, just
	// before it is externally observable as CLOSED.
	StreamInactive(s *Stream)
	// StreamRemoved fires before a closed stream is unlinked from the
	// registry and the tree.
	StreamRemoved(s *Stream)
	// StreamPriorityChanged fires when a stream's weight or dependency
	// changed without requiring tree restructuring.
	StreamPriorityChanged(s, prevParent *Stream)
	// StreamPrioritySubtreeChanged fires when reparenting s required
	// hoisting newParent to avoid a cycle.
	StreamPrioritySubtreeChanged(s, subtreeRoot *Stream)
}

// BaseListener is a no-op Listener embeddable by callers that only care
// about a subset of events.
type BaseListener struct{}

func (BaseListener) StreamAdded(*Stream)                          {}
func (BaseListener) StreamActive(*Stream)                         {}
func (BaseListener) StreamHalfClosed(*Stream)                     {}
func (BaseListener) StreamInactive(*Stream)                       {}
func (BaseListener) StreamRemoved(*Stream)                        {}
func (BaseListener) StreamPriorityChanged(_, _ *Stream)           {}
func (BaseListener) StreamPrioritySubtreeChanged(_, _ *Stream)    {}
