package traversal

import "sort"

// Score is the composite per-frame priority key from §4.D's "Tie-breaks &
// ordering": first Progressive (see the field below), then reverse_sse
// (larger SSE first), distance (closer first), foveated_factor (on-axis
// first), and depth (shallower first). It is lexicographic, so the request queue
// sorts in a single pass with "lower score is more important".
type Score struct {
	// Progressive ranks ProgressiveReady tiles (0) ahead of the rest (1),
	// so a first quick layer of coarse-but-significant tiles wins the
	// fetch queue over fine SSE ordering among tiles that don't need it.
	Progressive float64
	ReverseSSE  float64 // -SSE: ascending order puts larger SSE first
	Distance    float64
	Foveated    float64
	Depth       int
}

// NewScore builds a Score from a node's Classification.
func NewScore(c Classification) Score {
	progressive := 1.0
	if c.ProgressiveReady {
		progressive = 0
	}
	return Score{
		Progressive: progressive,
		ReverseSSE:  -c.SSE,
		Distance:    c.Distance,
		Foveated:    c.Foveated,
		Depth:       c.Depth,
	}
}

// Less implements the lexicographic comparison described above.
func (s Score) Less(other Score) bool {
	if s.Progressive != other.Progressive {
		return s.Progressive < other.Progressive
	}
	if s.ReverseSSE != other.ReverseSSE {
		return s.ReverseSSE < other.ReverseSSE
	}
	if s.Distance != other.Distance {
		return s.Distance < other.Distance
	}
	if s.Foveated != other.Foveated {
		return s.Foveated < other.Foveated
	}
	return s.Depth < other.Depth
}

// SortRequested sorts ids ascending by score(id), per §4.E step 2: "Sorts
// ascending by priority score (lower = more important)". This is the one
// sort.Slice pass §8 requires happen immediately before fetch initiation.
func SortRequested(ids []NodeID, score func(NodeID) Score) {
	sort.Slice(ids, func(i, j int) bool {
		return score(ids[i]).Less(score(ids[j]))
	})
}
