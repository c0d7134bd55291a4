package stream

import "golang.org/x/net/http2"

// Connection is the bookkeeping core of a single HTTP/2 endpoint: the
// registry of every stream known to this connection, the priority tree
// rooted at the connection stream, the two per-role Endpoints, and the
// listeners watching stream lifecycle. Connection is not safe for
// concurrent use; callers are expected to serialize access externally
// (see spec.md Section 5).
type Connection struct {
	server bool

	streams       map[uint32]*Stream
	activeStreams childSet
	connStream    *Stream

	local  *Endpoint
	remote *Endpoint

	listeners []Listener

	removalPolicy RemovalPolicy

	goAwaySent     bool
	goAwayReceived bool
}

// NewConnection creates a Connection for the given role using the default
// immediate RemovalPolicy.
func NewConnection(server bool) *Connection {
	return NewConnectionWithPolicy(server, NewImmediateRemovalPolicy())
}

// NewConnectionWithPolicy creates a Connection for the given role using a
// caller-supplied RemovalPolicy. It panics if policy is nil.
func NewConnectionWithPolicy(server bool, policy RemovalPolicy) *Connection {
	if policy == nil {
		panic("stream: removal policy must not be nil")
	}

	c := &Connection{
		server:        server,
		streams:       make(map[uint32]*Stream),
		activeStreams: newChildSet(),
		removalPolicy: policy,
	}

	c.connStream = newStream(0, c)
	c.connStream.isConnStream = true
	c.streams[0] = c.connStream

	c.local = newEndpoint(c, server)
	c.remote = newEndpoint(c, !server)

	policy.SetAction(func(s *Stream) { c.removeStream(s) })

	return c
}

// IsServer reports whether this connection's local endpoint is a server.
func (c *Connection) IsServer() bool { return c.server }

// Local returns the endpoint representing this connection's local role.
func (c *Connection) Local() *Endpoint { return c.local }

// Remote returns the endpoint representing the peer's role.
func (c *Connection) Remote() *Endpoint { return c.remote }

// ConnectionStream returns the synthetic stream 0 that roots the priority
// tree. It cannot be created, closed, or reprioritized by callers.
func (c *Connection) ConnectionStream() *Stream { return c.connStream }

// Stream looks up a stream by ID, including the connection stream.
func (c *Connection) Stream(id uint32) (*Stream, bool) {
	return c.stream(id)
}

func (c *Connection) stream(id uint32) (*Stream, bool) {
	s, ok := c.streams[id]
	return s, ok
}

// RequireStream looks up a stream by ID, returning a ProtocolError if it
// does not exist.
func (c *Connection) RequireStream(id uint32) (*Stream, error) {
	s, ok := c.streams[id]
	if !ok {
		return nil, protocolError(http2.ErrCodeProtocol, "stream %d does not exist or is already closed", id)
	}
	return s, nil
}

// NumActiveStreams returns the number of streams currently in OPEN,
// HALF_CLOSED_LOCAL, or HALF_CLOSED_REMOTE.
func (c *Connection) NumActiveStreams() int { return c.activeStreams.len() }

// ActiveStreams returns the active streams in the order they became
// active.
func (c *Connection) ActiveStreams() []*Stream {
	out := make([]*Stream, 0, c.activeStreams.len())
	c.activeStreams.forEach(func(s *Stream) { out = append(out, s) })
	return out
}

// AddListener registers a Listener. Listeners are notified in
// registration order.
func (c *Connection) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// RemoveListener unregisters a previously added Listener.
func (c *Connection) RemoveListener(l Listener) {
	for i, existing := range c.listeners {
		if existing == l {
			c.listeners = append(c.listeners[:i], c.listeners[i+1:]...)
			return
		}
	}
}

// GoAwaySent records that this endpoint sent a GOAWAY. The flag is
// monotone: once set it cannot be cleared.
func (c *Connection) GoAwaySent() { c.goAwaySent = true }

// GoAwayReceived records that the peer sent a GOAWAY. The flag is
// monotone: once set it cannot be cleared.
func (c *Connection) GoAwayReceived() { c.goAwayReceived = true }

// IsGoAwaySent reports whether GoAwaySent has been called.
func (c *Connection) IsGoAwaySent() bool { return c.goAwaySent }

// IsGoAwayReceived reports whether GoAwayReceived has been called.
func (c *Connection) IsGoAwayReceived() bool { return c.goAwayReceived }

// IsGoAway reports whether either side has sent a GOAWAY.
func (c *Connection) IsGoAway() bool { return c.goAwaySent || c.goAwayReceived }

// addStream registers a freshly allocated stream under the connection
// stream and notifies listeners. Called by Endpoint.CreateStream and
// Endpoint.ReservePushStream.
func (c *Connection) addStream(s *Stream) {
	c.streams[s.id] = s
	c.connStream.addChild(s, false)
	for _, l := range c.listeners {
		l.StreamAdded(s)
	}
}

// activate moves a stream into the active set and notifies listeners.
func (c *Connection) activate(s *Stream) {
	if c.activeStreams.put(s) {
		for _, l := range c.listeners {
			l.StreamActive(s)
		}
	}
}

// deactivate removes a stream from the active set and notifies
// listeners, if it was active.
func (c *Connection) deactivate(s *Stream) {
	if _, ok := c.activeStreams.remove(s.id); ok {
		for _, l := range c.listeners {
			l.StreamInactive(s)
		}
	}
}

// removeStream unlinks a closed stream from the registry and the
// priority tree, promoting its children to its parent. This is the
// action a RemovalPolicy invokes via MarkForRemoval.
func (c *Connection) removeStream(s *Stream) {
	if _, ok := c.streams[s.id]; !ok {
		return
	}
	for _, l := range c.listeners {
		l.StreamRemoved(s)
	}
	if parent := s.parent; parent != nil {
		parent.removeChild(s)
	}
	delete(c.streams, s.id)
}

func (c *Connection) notifyPriorityChanged(s, prevParent *Stream) {
	for _, l := range c.listeners {
		l.StreamPriorityChanged(s, prevParent)
	}
}

func (c *Connection) notifyPrioritySubtreeChanged(s, subtreeRoot *Stream) {
	for _, l := range c.listeners {
		l.StreamPrioritySubtreeChanged(s, subtreeRoot)
	}
}

func (c *Connection) notifyHalfClosed(s *Stream) {
	for _, l := range c.listeners {
		l.StreamHalfClosed(s)
	}
}
