package stream

import (
	"fmt"
	"math"

	"golang.org/x/net/http2"
)

// maxStreamID is the largest legal HTTP/2 stream ID: the field is 31
// bits wide (RFC 7540 Section 5.1.1).
const maxStreamID = 1<<31 - 1

// Endpoint is the per-role half of a Connection: it owns stream-ID
// allocation and the settings that gate creating new streams from that
// role (spec.md Section 4.3).
type Endpoint struct {
	conn   *Connection
	server bool

	nextStreamID      uint32
	lastStreamCreated uint32
	exhausted         bool

	maxStreams          uint32
	allowPushTo         bool
	allowCompressedData bool
}

func newEndpoint(conn *Connection, server bool) *Endpoint {
	e := &Endpoint{
		conn:       conn,
		server:     server,
		maxStreams: math.MaxInt32,
	}
	// Client-initiated streams are odd, server-initiated are even.
	// Stream 1 is reserved for responding to an HTTP/1.1 upgrade.
	if server {
		e.nextStreamID = 2
	} else {
		e.nextStreamID = 1
	}
	e.allowPushTo = !server
	return e
}

// IsServer reports whether this endpoint represents the server role.
func (e *Endpoint) IsServer() bool { return e.server }

// Opposite returns the Endpoint representing the other role on the same
// Connection.
func (e *Endpoint) Opposite() *Endpoint {
	if e == e.conn.local {
		return e.conn.remote
	}
	return e.conn.local
}

// NextStreamID returns the ID that would be assigned to the next stream
// created by this endpoint, without consuming it. For manually created
// client-side streams, 1 is reserved for HTTP/1.1 upgrade, so this
// reports 3 whenever the internal counter is still <= 1 (spec.md
// Section 9, open question 4 — kept as written).
func (e *Endpoint) NextStreamID() uint32 {
	if e.nextStreamID > 1 {
		return e.nextStreamID
	}
	return e.nextStreamID + 2
}

// LastStreamCreated returns the ID of the most recently created or
// reserved stream for this endpoint, or 0 if none yet.
func (e *Endpoint) LastStreamCreated() uint32 { return e.lastStreamCreated }

// MaxStreams returns the maximum number of streams this endpoint will
// allow to exist at once.
func (e *Endpoint) MaxStreams() uint32 { return e.maxStreams }

// SetMaxStreams sets the maximum number of concurrent streams.
func (e *Endpoint) SetMaxStreams(max uint32) { e.maxStreams = max }

// AllowPushTo reports whether this endpoint permits the peer to push
// streams to it.
func (e *Endpoint) AllowPushTo() bool { return e.allowPushTo }

// SetAllowPushTo sets whether this endpoint permits the peer to push
// streams to it. It is a programmer error to enable push on a server
// endpoint: servers never receive pushed streams.
func (e *Endpoint) SetAllowPushTo(allow bool) error {
	if allow && e.server {
		return fmt.Errorf("servers do not allow push")
	}
	e.allowPushTo = allow
	return nil
}

// AllowCompressedData reports whether this endpoint accepts compressed
// DATA frames.
func (e *Endpoint) AllowCompressedData() bool { return e.allowCompressedData }

// SetAllowCompressedData sets whether this endpoint accepts compressed
// DATA frames.
func (e *Endpoint) SetAllowCompressedData(allow bool) { e.allowCompressedData = allow }

func (e *Endpoint) isLocal() bool { return e == e.conn.local }

// verifyStreamID rejects streamID if this endpoint's allocation counter
// is exhausted, if streamID is behind the counter, or if streamID has
// the wrong parity for this endpoint's role.
func (e *Endpoint) verifyStreamID(streamID uint32) error {
	if e.exhausted {
		return protocolError(http2.ErrCodeProtocol, "no more streams can be created on this connection")
	}
	if streamID < e.nextStreamID {
		return protocolError(http2.ErrCodeProtocol, "request stream %d is behind the next expected stream %d", streamID, e.nextStreamID)
	}
	even := streamID%2 == 0
	if e.server != even {
		return protocolError(http2.ErrCodeProtocol, "request stream %d is not correct for %s connection", streamID, e.roleName())
	}
	return nil
}

// advanceStreamID moves the allocation counter past streamID, marking
// this endpoint exhausted instead of wrapping if doing so would cross
// the 31-bit stream-ID space.
func (e *Endpoint) advanceStreamID(streamID uint32) {
	if streamID > maxStreamID-2 {
		e.exhausted = true
		return
	}
	e.nextStreamID = streamID + 2
}

func (e *Endpoint) roleName() string {
	if e.server {
		return "server"
	}
	return "client"
}

// checkNewStreamAllowed enforces the GOAWAY, ID, and stream-count
// invariants before a new stream may be created from this endpoint.
func (e *Endpoint) checkNewStreamAllowed(streamID uint32) error {
	if e.conn.IsGoAway() {
		return protocolError(http2.ErrCodeProtocol, "cannot create a stream since the connection is going away")
	}
	if err := e.verifyStreamID(streamID); err != nil {
		return err
	}
	if uint32(len(e.conn.streams)) > e.maxStreams {
		return protocolError(http2.ErrCodeRefusedStream, "maximum streams exceeded for this endpoint")
	}
	return nil
}

// CreateStream allocates and registers a new stream with the given ID,
// which must match this endpoint's allocation rules. halfClosed marks
// the stream HALF_CLOSED_LOCAL (if this is the local endpoint creating
// it) or HALF_CLOSED_REMOTE (if the peer created it); otherwise the
// stream opens in OPEN.
func (e *Endpoint) CreateStream(streamID uint32, halfClosed bool) (*Stream, error) {
	if err := e.checkNewStreamAllowed(streamID); err != nil {
		return nil, err
	}

	s := newStream(streamID, e.conn)
	if halfClosed {
		if e.isLocal() {
			s.state = StateHalfClosedLocal
		} else {
			s.state = StateHalfClosedRemote
		}
	} else {
		s.state = StateOpen
	}

	e.advanceStreamID(streamID)
	e.lastStreamCreated = streamID
	e.conn.addStream(s)
	e.conn.activate(s)
	return s, nil
}

// ReservePushStream reserves streamID as a push promise target, gated on
// parent's openness on the sending side and the opposite endpoint's push
// permission. Unlike CreateStream, this runs neither verifyStreamID nor
// the GOAWAY/stream-count checks: the original this is grounded on never
// calls checkNewStreamAllowed from reservePushStream either (spec.md
// Section 9, open question — recorded in SPEC_FULL.md Section 4). The
// reserved stream is registered under the connection stream, exactly as
// every other stream is; it is not reparented under parent.
func (e *Endpoint) ReservePushStream(streamID uint32, parent *Stream) (*Stream, error) {
	if parent == nil {
		return nil, fmt.Errorf("cannot reserve push stream %d: parent stream is nil", streamID)
	}

	var parentOpen bool
	if e.isLocal() {
		parentOpen = parent.LocalSideOpen()
	} else {
		parentOpen = parent.RemoteSideOpen()
	}
	if !parentOpen {
		return nil, protocolError(http2.ErrCodeProtocol, "stream %d is not open for sending push promise", parent.id)
	}
	if !e.Opposite().allowPushTo {
		return nil, protocolError(http2.ErrCodeProtocol, "server push not allowed to opposite endpoint")
	}

	s := newStream(streamID, e.conn)
	if e.isLocal() {
		s.state = StateReservedLocal
	} else {
		s.state = StateReservedRemote
	}

	e.advanceStreamID(streamID)
	e.lastStreamCreated = streamID
	e.conn.addStream(s)
	return s, nil
}
