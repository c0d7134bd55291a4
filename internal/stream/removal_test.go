package stream

import "testing"

func TestImmediateRemovalPolicy_InvokesBoundAction(t *testing.T) {
	p := NewImmediateRemovalPolicy()

	var got *Stream
	p.SetAction(func(s *Stream) { got = s })

	want := &Stream{id: 5}
	p.MarkForRemoval(want)

	if got != want {
		t.Errorf("action received %v, want %v", got, want)
	}
}

func TestImmediateRemovalPolicy_NoActionIsSafe(t *testing.T) {
	p := NewImmediateRemovalPolicy()
	p.MarkForRemoval(&Stream{id: 1})
}

func TestConnectionWithPolicy_PanicsOnNilPolicy(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewConnectionWithPolicy(nil) did not panic")
		}
	}()
	NewConnectionWithPolicy(true, nil)
}

func TestConnection_CustomRemovalPolicyDefersRemoval(t *testing.T) {
	policy := &deferredPolicy{}
	conn := NewConnectionWithPolicy(true, policy)

	s, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if _, ok := conn.Stream(2); !ok {
		t.Fatal("stream removed immediately despite deferred policy")
	}

	policy.flush()

	if _, ok := conn.Stream(2); ok {
		t.Fatal("stream still present after flushing deferred policy")
	}
}

// deferredPolicy buffers streams marked for removal until flush is
// called, exercising RemovalPolicy as an injection point distinct from
// the default immediate behavior.
type deferredPolicy struct {
	action  func(*Stream)
	pending []*Stream
}

func (p *deferredPolicy) SetAction(action func(*Stream)) { p.action = action }

func (p *deferredPolicy) MarkForRemoval(s *Stream) {
	p.pending = append(p.pending, s)
}

func (p *deferredPolicy) flush() {
	for _, s := range p.pending {
		p.action(s)
	}
	p.pending = nil
}
