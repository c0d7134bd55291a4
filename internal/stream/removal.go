package stream

// RemovalPolicy decides when a closed stream is actually unlinked from its
// Connection. The Connection binds the real removal action at
// construction time via SetAction; MarkForRemoval is then invoked once per
// stream, from Stream.Close, whenever the policy should consider the
// stream for removal.
type RemovalPolicy interface {
	SetAction(action func(*Stream))
	MarkForRemoval(s *Stream)
}

// ImmediateRemovalPolicy invokes the bound action synchronously, inside
// MarkForRemoval. This is the default policy: a stream is unlinked from
// the connection the instant it closes.
type ImmediateRemovalPolicy struct {
	action func(*Stream)
}

// NewImmediateRemovalPolicy returns a RemovalPolicy that removes streams
// synchronously on close.
func NewImmediateRemovalPolicy() *ImmediateRemovalPolicy {
	return &ImmediateRemovalPolicy{}
}

func (p *ImmediateRemovalPolicy) SetAction(action func(*Stream)) {
	p.action = action
}

func (p *ImmediateRemovalPolicy) MarkForRemoval(s *Stream) {
	if p.action != nil {
		p.action(s)
	}
}
