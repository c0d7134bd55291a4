package stream

import "fmt"

// recordingListener captures lifecycle events in firing order, for tests
// that assert on the exact sequence spec.md's scenarios describe.
type recordingListener struct {
	events []string
}

func (l *recordingListener) StreamAdded(s *Stream) {
	l.events = append(l.events, fmt.Sprintf("added:%d", s.ID()))
}

func (l *recordingListener) StreamActive(s *Stream) {
	l.events = append(l.events, fmt.Sprintf("active:%d", s.ID()))
}

func (l *recordingListener) StreamHalfClosed(s *Stream) {
	l.events = append(l.events, fmt.Sprintf("halfClosed:%d", s.ID()))
}

func (l *recordingListener) StreamInactive(s *Stream) {
	l.events = append(l.events, fmt.Sprintf("inactive:%d", s.ID()))
}

func (l *recordingListener) StreamRemoved(s *Stream) {
	l.events = append(l.events, fmt.Sprintf("removed:%d", s.ID()))
}

func (l *recordingListener) StreamPriorityChanged(s, prevParent *Stream) {
	l.events = append(l.events, fmt.Sprintf("priorityChanged:%d", s.ID()))
}

func (l *recordingListener) StreamPrioritySubtreeChanged(s, subtreeRoot *Stream) {
	l.events = append(l.events, fmt.Sprintf("subtreeChanged:%d,%d", s.ID(), subtreeRoot.ID()))
}
