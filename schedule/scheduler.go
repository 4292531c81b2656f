package schedule

import "context"

// Request is one fetch the traversal pass wants issued, already sorted
// into priority order by the caller (traversal.SortRequested) before
// being handed to Issue — the scheduler itself never re-sorts, matching
// §8's "the requested list is sorted exactly once, immediately before
// fetch initiation" invariant.
type Request[ID comparable] struct {
	ID    ID
	URI   string
	Frame uint64
	Fetch func(ctx context.Context) ([]byte, error)
}

// Result is a completed (or failed) fetch, delivered asynchronously via
// Drain.
type Result[ID comparable] struct {
	ID   ID
	Data []byte
	Err  error
}

// Scheduler issues fetches through a bounded Pool, tracks them with an
// InFlight table, and buffers completions for the caller to drain once
// per pass — matching the engine's "completion delivered as a single
// event processed next frame" concurrency model.
type Scheduler[ID comparable] struct {
	pool     *Pool
	inflight *InFlight[ID]
	results  chan Result[ID]
}

// NewScheduler starts a scheduler with the given worker count. resultBuffer
// sizes the completion channel; a pass that issues more fetches than this
// between Drain calls will have later completions block their worker
// until Drain runs, which is the desired backpressure.
func NewScheduler[ID comparable](workers, resultBuffer int) *Scheduler[ID] {
	if resultBuffer <= 0 {
		resultBuffer = 64
	}
	return &Scheduler[ID]{
		pool:     NewPool(workers),
		inflight: NewInFlight[ID](),
		results:  make(chan Result[ID], resultBuffer),
	}
}

// Issue submits every request not already in flight. Requests already
// running have their touched frame refreshed instead of being
// re-submitted.
func (s *Scheduler[ID]) Issue(reqs []Request[ID]) {
	for _, r := range reqs {
		if s.inflight.Contains(r.ID) {
			s.inflight.Touch(r.ID, r.Frame)
			continue
		}
		ctx, cancel := context.WithCancel(context.Background())
		s.inflight.Start(r.ID, cancel, r.Frame)

		req := r
		reqCtx := ctx
		s.pool.Submit(func() {
			data, err := req.Fetch(reqCtx)
			s.inflight.Finish(req.ID)
			s.results <- Result[ID]{ID: req.ID, Data: data, Err: err}
		})
	}
}

// Cancel stops id's in-flight fetch, if any.
func (s *Scheduler[ID]) Cancel(id ID) { s.inflight.Cancel(id) }

// SweepStale cancels every fetch whose touched frame is stale relative to
// currentFrame (§4.E cancellation rule) and returns the cancelled ids.
func (s *Scheduler[ID]) SweepStale(currentFrame uint64) []ID {
	return s.inflight.SweepStale(currentFrame)
}

// Drain returns every completion buffered since the last Drain, without
// blocking.
func (s *Scheduler[ID]) Drain() []Result[ID] {
	var out []Result[ID]
	for {
		select {
		case r := <-s.results:
			out = append(out, r)
		default:
			return out
		}
	}
}

// InFlightCount returns the number of fetches currently outstanding.
func (s *Scheduler[ID]) InFlightCount() int { return s.inflight.Len() }

// Workers returns the configured worker count of the underlying pool.
func (s *Scheduler[ID]) Workers() int { return s.pool.Workers() }

// QueuedWork approximates the number of submitted fetches still waiting
// for a free worker.
func (s *Scheduler[ID]) QueuedWork() int { return s.pool.QueuedWork() }

// Close shuts the underlying pool down, waiting for in-flight work.
func (s *Scheduler[ID]) Close() { s.pool.Close() }
