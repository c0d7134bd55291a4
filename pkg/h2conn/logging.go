package h2conn

import (
	"go.uber.org/zap"

	"github.com/albertbausili/h2conn/internal/stream"
)

// loggingListener logs stream lifecycle events with a named, structured
// logger, the way the pack's H2 client logs on its hot path rather than
// building messages with fmt.Sprintf.
type loggingListener struct {
	log *zap.Logger
}

func newLoggingListener(base *zap.Logger) *loggingListener {
	return &loggingListener{log: base.Named("h2conn")}
}

func (l *loggingListener) StreamAdded(s *stream.Stream) {
	l.log.Debug("stream added", zap.Uint32("streamID", s.ID()))
}

func (l *loggingListener) StreamActive(s *stream.Stream) {
	l.log.Debug("stream active", zap.Uint32("streamID", s.ID()), zap.Stringer("state", s.State()))
}

func (l *loggingListener) StreamHalfClosed(s *stream.Stream) {
	l.log.Debug("stream half-closed", zap.Uint32("streamID", s.ID()), zap.Stringer("state", s.State()))
}

func (l *loggingListener) StreamInactive(s *stream.Stream) {
	l.log.Debug("stream inactive", zap.Uint32("streamID", s.ID()))
}

func (l *loggingListener) StreamRemoved(s *stream.Stream) {
	l.log.Debug("stream removed", zap.Uint32("streamID", s.ID()))
}

func (l *loggingListener) StreamPriorityChanged(s, prevParent *stream.Stream) {
	prevID := uint32(0)
	if prevParent != nil {
		prevID = prevParent.ID()
	}
	l.log.Debug("stream priority changed",
		zap.Uint32("streamID", s.ID()),
		zap.Uint32("prevParentID", prevID),
		zap.Uint32("parentID", parentID(s)),
		zap.Int("weight", s.Weight()),
	)
}

func (l *loggingListener) StreamPrioritySubtreeChanged(s, subtreeRoot *stream.Stream) {
	l.log.Debug("stream priority subtree changed",
		zap.Uint32("streamID", s.ID()),
		zap.Uint32("subtreeRootID", subtreeRoot.ID()),
	)
}

func parentID(s *stream.Stream) uint32 {
	if p := s.Parent(); p != nil {
		return p.ID()
	}
	return 0
}
