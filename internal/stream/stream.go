package stream

import (
	"fmt"

	"golang.org/x/net/http2"
)

// Weight bounds and default per RFC 7540 Section 5.3.2.
const (
	MinWeight     = 1
	MaxWeight     = 256
	DefaultWeight = 16
)

// Stream is a single HTTP/2 stream: identity, state-machine state, its
// slot in the priority dependency tree, and opaque flow-control handles.
// A zero Stream is not usable; construct one through a Connection.
type Stream struct {
	id           uint32
	isConnStream bool
	state        State
	weight       int
	parent       *Stream
	children     childSet

	inboundFlow  any
	outboundFlow any

	conn *Connection
}

func newStream(id uint32, conn *Connection) *Stream {
	return &Stream{
		id:       id,
		state:    StateIdle,
		weight:   DefaultWeight,
		children: newChildSet(),
		conn:     conn,
	}
}

// ID returns the stream's immutable 31-bit identifier. 0 is the
// connection stream.
func (s *Stream) ID() uint32 { return s.id }

// State returns the stream's current position in the state machine.
func (s *Stream) State() State { return s.state }

// Weight returns the stream's priority weight, in [MinWeight, MaxWeight].
func (s *Stream) Weight() int { return s.weight }

// TotalChildWeights returns the cached sum of direct children's weights.
func (s *Stream) TotalChildWeights() int { return s.children.totalWeight() }

// Parent returns the stream's parent in the priority tree, or nil if the
// stream is the root (the connection stream) or has been removed.
func (s *Stream) Parent() *Stream { return s.parent }

// IsRoot reports whether this stream has no parent.
func (s *Stream) IsRoot() bool { return s.parent == nil }

// IsLeaf reports whether this stream has no children.
func (s *Stream) IsLeaf() bool { return s.children.len() == 0 }

// NumChildren returns the number of direct children.
func (s *Stream) NumChildren() int { return s.children.len() }

// Child returns the direct child with the given ID, if any.
func (s *Stream) Child(id uint32) (*Stream, bool) { return s.children.get(id) }

// HasChild reports whether id names a direct child of this stream.
func (s *Stream) HasChild(id uint32) bool {
	_, ok := s.children.get(id)
	return ok
}

// Children returns the direct children in insertion order. The returned
// slice is a snapshot; mutating the tree afterward does not affect it.
func (s *Stream) Children() []*Stream {
	out := make([]*Stream, 0, s.children.len())
	s.children.forEach(func(c *Stream) { out = append(out, c) })
	return out
}

// IsDescendantOf reports whether other is an ancestor of this stream.
func (s *Stream) IsDescendantOf(other *Stream) bool {
	next := s.parent
	for next != nil {
		if next == other {
			return true
		}
		next = next.parent
	}
	return false
}

// InboundFlow returns the opaque inbound flow-control handle previously
// set by the flow-control subsystem, or nil.
func (s *Stream) InboundFlow() any { return s.inboundFlow }

// SetInboundFlow installs the inbound flow-control handle. It may be set
// only once; a second call is a programmer error.
func (s *Stream) SetInboundFlow(state any) error {
	if s.inboundFlow != nil {
		return fmt.Errorf("inbound flow state already set for stream %d", s.id)
	}
	s.inboundFlow = state
	return nil
}

// OutboundFlow returns the opaque outbound flow-control handle previously
// set by the flow-control subsystem, or nil.
func (s *Stream) OutboundFlow() any { return s.outboundFlow }

// SetOutboundFlow installs the outbound flow-control handle. It may be
// set only once; a second call is a programmer error.
func (s *Stream) SetOutboundFlow(state any) error {
	if s.outboundFlow != nil {
		return fmt.Errorf("outbound flow state already set for stream %d", s.id)
	}
	s.outboundFlow = state
	return nil
}

// RemoteSideOpen reports whether the peer may still send on this stream.
func (s *Stream) RemoteSideOpen() bool {
	switch s.state {
	case StateHalfClosedLocal, StateOpen, StateReservedRemote:
		return true
	default:
		return false
	}
}

// LocalSideOpen reports whether this endpoint may still send on this
// stream.
func (s *Stream) LocalSideOpen() bool {
	switch s.state {
	case StateHalfClosedRemote, StateOpen, StateReservedLocal:
		return true
	default:
		return false
	}
}

// VerifyState fails with a caller-supplied error code unless the stream
// is currently in one of the allowed states.
func (s *Stream) VerifyState(code http2.ErrCode, allowed ...State) error {
	if s.isConnStream {
		return fmt.Errorf("unsupported operation on the connection stream")
	}
	for _, a := range allowed {
		if s.state == a {
			return nil
		}
	}
	return protocolError(code, "stream %d in unexpected state: %s", s.id, s.state)
}

// setWeight updates this stream's weight, keeping the parent's cached
// totalChildWeights in sync. Mirrors the Java original's weight-before-restructure
// ordering in SetPriority: the weight change is applied even if a later
// tree-restructuring step in the caller were to be skipped.
func (s *Stream) setWeight(w int) {
	if s.parent != nil && w != s.weight {
		delta := w - s.weight
		s.parent.children.adjustWeight(delta)
	}
	s.weight = w
}

// addChild attaches child under s. If exclusive, every existing child of
// s is first moved to become a child of child, so child ends up as the
// sole direct child of s.
func (s *Stream) addChild(child *Stream, exclusive bool) {
	if exclusive {
		for _, grandchild := range s.children.takeAll() {
			child.addChild(grandchild, false)
		}
	}
	child.parent = s
	s.children.put(child)
}

// removeChild unlinks child from s permanently, promoting child's own
// children to become direct children of s (dependency-promoting removal).
func (s *Stream) removeChild(child *Stream) {
	if _, ok := s.children.remove(child.id); !ok {
		return
	}
	child.parent = nil
	for _, grandchild := range child.children.takeAll() {
		s.addChild(grandchild, false)
	}
}

// removeChildBranch detaches child, together with its entire subtree,
// from s. Used by SetPriority, where the subtree must move as a whole.
func (s *Stream) removeChildBranch(child *Stream) {
	if _, ok := s.children.remove(child.id); ok {
		child.parent = nil
	}
}

// SetPriority reprioritizes this stream under parentStreamID with the
// given weight, optionally becoming parentStreamID's exclusive child. See
// spec.md Section 4.2 for the restructuring algorithm.
func (s *Stream) SetPriority(parentStreamID uint32, weight int, exclusive bool) error {
	if s.isConnStream {
		return fmt.Errorf("cannot reprioritize the connection stream")
	}
	if weight < MinWeight || weight > MaxWeight {
		return fmt.Errorf("invalid weight %d: must be between %d and %d inclusive", weight, MinWeight, MaxWeight)
	}
	newParent, ok := s.conn.stream(parentStreamID)
	if !ok {
		return protocolError(http2.ErrCodeProtocol, "priority parent stream %d does not exist", parentStreamID)
	}
	if s == newParent {
		return fmt.Errorf("stream %d cannot depend on itself", s.id)
	}

	// Weight is applied before any restructuring, even though a later
	// step could in principle be skipped (see spec.md Section 9).
	s.setWeight(weight)

	needToRestructure := newParent.IsDescendantOf(s)
	oldParent := s.parent

	if newParent == oldParent && !exclusive {
		return nil
	}

	oldParent.removeChildBranch(s)

	if needToRestructure {
		// newParent currently lives under s; hoist it above s's old
		// parent to avoid creating a cycle when s is reattached below it.
		newParent.parent.removeChildBranch(newParent)
		oldParent.addChild(newParent, false)
	}

	newParent.addChild(s, exclusive)

	if needToRestructure {
		s.conn.notifyPrioritySubtreeChanged(s, newParent)
	} else {
		s.conn.notifyPriorityChanged(s, oldParent)
	}
	return nil
}

// OpenForPush promotes a reserved stream to half-closed and activates it.
func (s *Stream) OpenForPush() error {
	if s.isConnStream {
		return fmt.Errorf("unsupported operation on the connection stream")
	}
	switch s.state {
	case StateReservedLocal:
		s.state = StateHalfClosedRemote
	case StateReservedRemote:
		s.state = StateHalfClosedLocal
	default:
		return protocolError(http2.ErrCodeProtocol, "attempting to open non-reserved stream %d for push", s.id)
	}
	s.conn.activate(s)
	return nil
}

// Close transitions the stream to CLOSED. Idempotent once CLOSED.
func (s *Stream) Close() error {
	if s.isConnStream {
		return fmt.Errorf("unsupported operation on the connection stream")
	}
	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	s.conn.deactivate(s)
	s.conn.removalPolicy.MarkForRemoval(s)
	return nil
}

// CloseLocalSide half-closes the local side, or fully closes the stream
// if it was already half-closed remotely (or reserved).
func (s *Stream) CloseLocalSide() error {
	if s.isConnStream {
		return fmt.Errorf("unsupported operation on the connection stream")
	}
	switch s.state {
	case StateOpen:
		s.state = StateHalfClosedLocal
		s.conn.notifyHalfClosed(s)
		return nil
	case StateHalfClosedLocal:
		return nil
	default:
		return s.Close()
	}
}

// CloseRemoteSide half-closes the remote side, or fully closes the stream
// if it was already half-closed locally (or reserved).
func (s *Stream) CloseRemoteSide() error {
	if s.isConnStream {
		return fmt.Errorf("unsupported operation on the connection stream")
	}
	switch s.state {
	case StateOpen:
		s.state = StateHalfClosedRemote
		s.conn.notifyHalfClosed(s)
		return nil
	case StateHalfClosedRemote:
		return nil
	default:
		return s.Close()
	}
}
