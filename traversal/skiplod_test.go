package traversal

import (
	"reflect"
	"testing"
)

func TestSkipLOD_SelectsIndividuallySufficientNode(t *testing.T) {
	tr := newFakeTree()
	tr.add(1, fakeNode{children: []NodeID{2, 3}, refine: RefineReplace, content: true, ready: false, sse: 100})
	tr.add(2, fakeNode{content: true, ready: true, sse: 5})
	tr.add(3, fakeNode{content: true, ready: false, sse: 5})

	res := SkipLOD(tr, 16, SkipLODConfig{SkipSSEFactor: 1})
	if got := sortedIDs(res.Selected); !reflect.DeepEqual(got, []NodeID{2}) {
		t.Fatalf("Selected = %v, want [2] (mixed detail, no fallback to parent)", got)
	}
	if got := sortedIDs(res.Requested); !reflect.DeepEqual(got, []NodeID{3}) {
		t.Fatalf("Requested = %v, want [3]", got)
	}
}

func TestSkipLOD_SkipLevelsDescendsPastLoadingNode(t *testing.T) {
	tr := newFakeTree()
	tr.add(1, fakeNode{children: []NodeID{2}, refine: RefineReplace, content: true, ready: false, sse: 100})
	tr.add(2, fakeNode{content: true, ready: true, sse: 5})

	res := SkipLOD(tr, 16, SkipLODConfig{SkipSSEFactor: 1, SkipLevels: 2})
	if got := sortedIDs(res.Selected); !reflect.DeepEqual(got, []NodeID{2}) {
		t.Fatalf("Selected = %v, want [2]", got)
	}
	if got := sortedIDs(res.Requested); !reflect.DeepEqual(got, []NodeID{1}) {
		t.Fatalf("Requested = %v, want [1] (still loading ancestor)", got)
	}
}

func TestSkipLOD_LoadSiblingsRequestsWholeLevel(t *testing.T) {
	tr := newFakeTree()
	tr.add(1, fakeNode{children: []NodeID{2, 3}, refine: RefineReplace, content: true, ready: false, sse: 100})
	tr.add(2, fakeNode{content: true, ready: false, sse: 100})
	tr.add(3, fakeNode{content: true, ready: false, sse: 100})

	res := SkipLOD(tr, 16, SkipLODConfig{SkipSSEFactor: 1, SkipLevels: 0, LoadSiblings: true})
	// With SkipLevels 0 no skip triggers, so the LoadSiblings branch is
	// not reached and node 1 is not requested: the walk descends past it
	// and requests each of its unready leaf children on its own.
	if got := sortedIDs(res.Requested); !reflect.DeepEqual(got, []NodeID{2, 3}) {
		t.Fatalf("Requested = %v, want [2 3]", got)
	}
}

func TestSkipLOD_EmptyTileRecorded(t *testing.T) {
	tr := newFakeTree()
	tr.add(1, fakeNode{content: false, sse: 5})

	res := SkipLOD(tr, 16, SkipLODConfig{SkipSSEFactor: 1})
	if !reflect.DeepEqual(res.Empty, []NodeID{1}) {
		t.Fatalf("Empty = %v, want [1]", res.Empty)
	}
}
