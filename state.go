package tile3d

// state.go implements the tile lifecycle transitions from §4.B:
//
//	UNLOADED --request--> LOADING --fetch-ok--> PROCESSING --processed--> READY
//	  ^                      |                      |
//	  |                      +--fetch-fail----------+--> FAILED
//	  |                                                    |
//	  +-----------evicted or subtree-destroyed-------------+
//	READY --expired--> EXPIRED --re-request--> LOADING
//
// Go has no tagged union, so each transition function below is
// responsible for clearing the side-data fields that belonged to the
// state it leaves — that is the invariant "only one side-data field is
// meaningful per state" in its entirety; there is no separate checker.

// beginLoading transitions an UNLOADED or EXPIRED tile to LOADING,
// recording the cancel function the scheduler will call if the tile
// stops being touched before the fetch completes.
func (t *tileData) beginLoading(requestFrame uint64, cancel func()) {
	t.State = StateLoading
	t.RequestFrame = requestFrame
	t.fetchCancel = cancel
	t.FailureMessage = ""
	t.FailureURI = ""
}

// fetchSucceeded transitions a LOADING tile to PROCESSING.
func (t *tileData) fetchSucceeded() {
	t.State = StateProcessing
	t.fetchCancel = nil
}

// fetchFailed transitions a LOADING tile to FAILED, recording the
// tile-failed hook payload.
func (t *tileData) fetchFailed(uri, message string) {
	t.State = StateFailed
	t.fetchCancel = nil
	t.FailureURI = uri
	t.FailureMessage = message
}

// processed transitions a PROCESSING tile to READY once its content
// decodes successfully.
func (t *tileData) processed(data any, byteLength int64) {
	t.State = StateReady
	t.Data = data
	t.ByteLength = byteLength
}

// processingFailed transitions a PROCESSING tile to FAILED when its
// decoder drops the result (cooperative cancellation) or errors.
func (t *tileData) processingFailed(message string) {
	t.State = StateFailed
	t.FailureMessage = message
}

// cancelLoading restores a LOADING tile to UNLOADED. Idempotent: calling
// it on a tile that is not LOADING is a no-op, matching §5's "a cancel on
// a LOADING tile is idempotent and safe".
func (t *tileData) cancelLoading() {
	if t.State != StateLoading {
		return
	}
	if t.fetchCancel != nil {
		t.fetchCancel()
		t.fetchCancel = nil
	}
	t.State = StateUnloaded
}

// evict releases a READY tile's content and byte cost, returning it to
// UNLOADED so it can be re-requested if it becomes visible again.
func (t *tileData) evict() {
	t.State = StateUnloaded
	t.Data = nil
	t.ByteLength = 0
}

// expire transitions a READY tile to EXPIRED; it is re-requested (moved
// back to LOADING) the next time it is visited and found stale.
func (t *tileData) expire() {
	t.State = StateExpired
	t.Data = nil
	t.ByteLength = 0
}
