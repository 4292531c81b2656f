package schedule

import "testing"

func TestInFlight_StartAndContains(t *testing.T) {
	f := NewInFlight[int]()
	f.Start(1, func() {}, 10)
	if !f.Contains(1) {
		t.Error("Contains(1) = false after Start")
	}
	if f.Contains(2) {
		t.Error("Contains(2) = true, want false")
	}
}

func TestInFlight_FinishRemoves(t *testing.T) {
	f := NewInFlight[int]()
	f.Start(1, func() {}, 10)
	f.Finish(1)
	if f.Contains(1) {
		t.Error("Contains(1) = true after Finish")
	}
}

func TestInFlight_CancelInvokesCancelFunc(t *testing.T) {
	f := NewInFlight[int]()
	called := false
	f.Start(1, func() { called = true }, 10)
	f.Cancel(1)
	if !called {
		t.Error("Cancel should invoke the stored cancel func")
	}
	if f.Contains(1) {
		t.Error("Cancel should remove the entry")
	}
}

func TestInFlight_CancelOnUnknownIDIsSafe(t *testing.T) {
	f := NewInFlight[int]()
	f.Cancel(99) // must not panic
}

func TestInFlight_SweepStaleCancelsOldEntries(t *testing.T) {
	f := NewInFlight[int]()
	cancelled := map[int]bool{}
	f.Start(1, func() { cancelled[1] = true }, 5)
	f.Start(2, func() { cancelled[2] = true }, 9)
	f.Touch(2, 10)

	stale := f.SweepStale(10)
	if len(stale) != 1 || stale[0] != 1 {
		t.Fatalf("SweepStale = %v, want [1]", stale)
	}
	if !cancelled[1] {
		t.Error("stale entry's cancel func should have been invoked")
	}
	if f.Contains(1) {
		t.Error("stale entry should be removed")
	}
	if !f.Contains(2) {
		t.Error("fresh entry (touched this frame) should survive")
	}
}

func TestInFlight_Len(t *testing.T) {
	f := NewInFlight[int]()
	f.Start(1, func() {}, 0)
	f.Start(2, func() {}, 0)
	if f.Len() != 2 {
		t.Errorf("Len() = %d, want 2", f.Len())
	}
}
