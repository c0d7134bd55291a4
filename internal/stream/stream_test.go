package stream

import "testing"

// Scenario 2: exclusive reparenting moves siblings.
func TestStream_ExclusiveReparentMovesSiblings(t *testing.T) {
	conn := NewConnection(true)

	s3, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("create 2: %v", err)
	}
	s5, err := conn.Local().CreateStream(4, false)
	if err != nil {
		t.Fatalf("create 4: %v", err)
	}
	s7, err := conn.Local().CreateStream(6, false)
	if err != nil {
		t.Fatalf("create 6: %v", err)
	}

	root := conn.ConnectionStream()

	if err := s7.SetPriority(0, DefaultWeight, true); err != nil {
		t.Fatalf("SetPriority: %v", err)
	}

	if root.NumChildren() != 1 {
		t.Fatalf("root has %d children, want 1", root.NumChildren())
	}
	if !root.HasChild(s7.ID()) {
		t.Fatalf("root's only child is not stream %d", s7.ID())
	}

	if s7.NumChildren() != 2 {
		t.Fatalf("stream %d has %d children, want 2", s7.ID(), s7.NumChildren())
	}
	if !s7.HasChild(s3.ID()) || !s7.HasChild(s5.ID()) {
		t.Fatalf("stream %d's children are not {%d, %d}", s7.ID(), s3.ID(), s5.ID())
	}

	gotOrder := s7.Children()
	if gotOrder[0].ID() != s3.ID() || gotOrder[1].ID() != s5.ID() {
		t.Errorf("insertion order not preserved after exclusive reparent: got %d, %d", gotOrder[0].ID(), gotOrder[1].ID())
	}

	if root.TotalChildWeights() != DefaultWeight {
		t.Errorf("root.TotalChildWeights() = %d, want %d", root.TotalChildWeights(), DefaultWeight)
	}
	if s7.TotalChildWeights() != 2*DefaultWeight {
		t.Errorf("stream %d.TotalChildWeights() = %d, want %d", s7.ID(), s7.TotalChildWeights(), 2*DefaultWeight)
	}
}

// Scenario 3: reparent under own descendant triggers a hoist.
func TestStream_ReparentUnderOwnDescendantHoists(t *testing.T) {
	conn := NewConnection(true)

	s3, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("create 2: %v", err)
	}
	if err := s3.SetPriority(0, DefaultWeight, false); err != nil {
		t.Fatalf("SetPriority under root: %v", err)
	}

	s5, err := conn.Local().CreateStream(4, false)
	if err != nil {
		t.Fatalf("create 4: %v", err)
	}
	if err := s5.SetPriority(s3.ID(), DefaultWeight, false); err != nil {
		t.Fatalf("SetPriority under stream %d: %v", s3.ID(), err)
	}

	rec := &recordingListener{}
	conn.AddListener(rec)

	if err := s3.SetPriority(s5.ID(), DefaultWeight, false); err != nil {
		t.Fatalf("SetPriority (hoist): %v", err)
	}

	root := conn.ConnectionStream()
	if !root.HasChild(s5.ID()) {
		t.Fatalf("root's child is not stream %d after hoist", s5.ID())
	}
	if !s5.HasChild(s3.ID()) {
		t.Fatalf("stream %d is not a child of stream %d after hoist", s3.ID(), s5.ID())
	}
	if s3.NumChildren() != 0 {
		t.Fatalf("stream %d has %d children after hoist, want 0", s3.ID(), s3.NumChildren())
	}

	var subtreeEvents, priorityEvents int
	for _, e := range rec.events {
		switch {
		case len(e) >= 14 && e[:14] == "subtreeChanged":
			subtreeEvents++
		case len(e) >= 15 && e[:15] == "priorityChanged":
			priorityEvents++
		}
	}
	if subtreeEvents != 1 {
		t.Errorf("subtreeChanged events = %d, want 1", subtreeEvents)
	}
	if priorityEvents != 0 {
		t.Errorf("priorityChanged events = %d, want 0", priorityEvents)
	}
}

func TestStream_SetPriority_RejectsSelfDependency(t *testing.T) {
	conn := NewConnection(true)
	s, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.SetPriority(s.ID(), DefaultWeight, false); err == nil {
		t.Fatal("SetPriority onto self succeeded, want error")
	}
}

func TestStream_SetPriority_RejectsInvalidWeight(t *testing.T) {
	conn := NewConnection(true)
	s, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.SetPriority(0, MaxWeight+1, false); err == nil {
		t.Fatal("SetPriority with weight above MaxWeight succeeded, want error")
	}
	if err := s.SetPriority(0, MinWeight-1, false); err == nil {
		t.Fatal("SetPriority with weight below MinWeight succeeded, want error")
	}
}

func TestStream_SetPriority_SameParentNonExclusiveIsNoop(t *testing.T) {
	conn := NewConnection(true)
	s, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.SetPriority(0, 50, false); err != nil {
		t.Fatalf("first SetPriority: %v", err)
	}
	if err := s.SetPriority(0, 50, false); err != nil {
		t.Fatalf("second SetPriority: %v", err)
	}
	if s.Weight() != 50 {
		t.Errorf("weight = %d, want 50", s.Weight())
	}
	if conn.ConnectionStream().TotalChildWeights() != 50 {
		t.Errorf("root.TotalChildWeights() = %d, want 50", conn.ConnectionStream().TotalChildWeights())
	}
}

func TestStream_CloseIdempotent(t *testing.T) {
	conn := NewConnection(true)
	s, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if s.State() != StateClosed {
		t.Errorf("state = %v, want closed", s.State())
	}
}

func TestStream_CloseLocalSideIdempotentWhenAlreadyHalfClosed(t *testing.T) {
	conn := NewConnection(true)
	s, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CloseLocalSide(); err != nil {
		t.Fatalf("first CloseLocalSide: %v", err)
	}
	if err := s.CloseLocalSide(); err != nil {
		t.Fatalf("second CloseLocalSide: %v", err)
	}
	if s.State() != StateHalfClosedLocal {
		t.Errorf("state = %v, want half-closed(local)", s.State())
	}
}

func TestStream_VerifyState(t *testing.T) {
	conn := NewConnection(true)
	s, err := conn.Local().CreateStream(2, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.VerifyState(0, StateOpen); err != nil {
		t.Errorf("VerifyState(open) on open stream: %v", err)
	}
	if err := s.VerifyState(0, StateClosed); err == nil {
		t.Error("VerifyState(closed) on open stream succeeded, want error")
	}
}
