package traversal

import (
	"reflect"
	"testing"
)

func TestScore_LessOrdersByReverseSSEFirst(t *testing.T) {
	high := Score{ReverseSSE: -100}
	low := Score{ReverseSSE: -1}
	if !high.Less(low) {
		t.Error("larger SSE (more negative ReverseSSE) should sort first")
	}
}

func TestScore_LessFallsThroughTieBreaks(t *testing.T) {
	a := Score{ReverseSSE: -5, Distance: 10, Foveated: 0.1, Depth: 2}
	b := Score{ReverseSSE: -5, Distance: 10, Foveated: 0.1, Depth: 3}
	if !a.Less(b) {
		t.Error("shallower depth should win when all else ties")
	}
	c := Score{ReverseSSE: -5, Distance: 5, Foveated: 0.9, Depth: 9}
	d := Score{ReverseSSE: -5, Distance: 10, Foveated: 0.0, Depth: 0}
	if !c.Less(d) {
		t.Error("closer distance should win ahead of foveated/depth")
	}
}

func TestNewScore(t *testing.T) {
	c := Classification{SSE: 12, Distance: 40, Foveated: 0.3, Depth: 4}
	s := NewScore(c)
	want := Score{Progressive: 1, ReverseSSE: -12, Distance: 40, Foveated: 0.3, Depth: 4}
	if s != want {
		t.Errorf("NewScore = %+v, want %+v", s, want)
	}

	ready := NewScore(Classification{SSE: 12, ProgressiveReady: true})
	if ready.Progressive != 0 {
		t.Errorf("ProgressiveReady classification should score Progressive=0, got %v", ready.Progressive)
	}
}

func TestScore_LessOrdersByProgressiveBeforeSSE(t *testing.T) {
	progressive := Score{Progressive: 0, ReverseSSE: -1}
	nonProgressive := Score{Progressive: 1, ReverseSSE: -100}
	if !progressive.Less(nonProgressive) {
		t.Error("a ProgressiveReady tile should outrank a higher-SSE tile that isn't")
	}
}

func TestSortRequested(t *testing.T) {
	scores := map[NodeID]Score{
		1: {ReverseSSE: -5},
		2: {ReverseSSE: -50},
		3: {ReverseSSE: -1},
	}
	ids := []NodeID{1, 2, 3}
	SortRequested(ids, func(id NodeID) Score { return scores[id] })
	if !reflect.DeepEqual(ids, []NodeID{2, 1, 3}) {
		t.Errorf("SortRequested = %v, want [2 1 3] (highest SSE first)", ids)
	}
}
