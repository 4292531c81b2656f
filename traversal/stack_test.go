package traversal

import "testing"

func TestStack_PushPopOrderIsLIFO(t *testing.T) {
	var s stack
	s.push(1, false)
	s.push(2, true)
	s.push(3, false)

	f, ok := s.pop()
	if !ok || f.id != 3 || f.parentPending {
		t.Fatalf("first pop = %+v, want id=3 parentPending=false", f)
	}
	f, ok = s.pop()
	if !ok || f.id != 2 || !f.parentPending {
		t.Fatalf("second pop = %+v, want id=2 parentPending=true", f)
	}
	f, ok = s.pop()
	if !ok || f.id != 1 {
		t.Fatalf("third pop = %+v, want id=1", f)
	}
	if !s.empty() {
		t.Error("stack should be empty after draining all pushes")
	}
}

func TestStack_PopOnEmptyReturnsFalse(t *testing.T) {
	var s stack
	if _, ok := s.pop(); ok {
		t.Error("pop on empty stack should return ok=false")
	}
}

func TestStack_Reset(t *testing.T) {
	var s stack
	s.push(1, false)
	s.push(2, false)
	s.reset()
	if !s.empty() {
		t.Error("reset should drain the stack")
	}
}

func TestStackPool_RoundTripIsClean(t *testing.T) {
	s := getStack()
	s.push(1, false)
	putStack(s)

	s2 := getStack()
	if !s2.empty() {
		t.Error("stack returned from the pool should have been reset")
	}
	putStack(s2)
}
