package tile3d

import "testing"

func TestStateTransitions_HappyPath(t *testing.T) {
	var row tileData
	cancelled := false
	row.beginLoading(1, func() { cancelled = true })
	if row.State != StateLoading {
		t.Fatalf("State = %v, want LOADING", row.State)
	}

	row.fetchSucceeded()
	if row.State != StateProcessing {
		t.Fatalf("State = %v, want PROCESSING", row.State)
	}
	if row.fetchCancel != nil {
		t.Error("fetchSucceeded should clear fetchCancel")
	}

	row.processed("decoded", 1024)
	if row.State != StateReady {
		t.Fatalf("State = %v, want READY", row.State)
	}
	if row.ByteLength != 1024 || row.Data != "decoded" {
		t.Errorf("processed did not record data/byteLength: %+v", row)
	}
	_ = cancelled
}

func TestStateTransitions_FetchFailure(t *testing.T) {
	var row tileData
	row.beginLoading(1, func() {})
	row.fetchFailed("http://x/tile.b3dm", "404")
	if row.State != StateFailed {
		t.Fatalf("State = %v, want FAILED", row.State)
	}
	if row.FailureURI != "http://x/tile.b3dm" || row.FailureMessage != "404" {
		t.Errorf("failure payload not recorded: %+v", row)
	}
}

func TestStateTransitions_CancelIsIdempotent(t *testing.T) {
	var row tileData
	calls := 0
	row.beginLoading(1, func() { calls++ })
	row.cancelLoading()
	if row.State != StateUnloaded {
		t.Fatalf("State = %v, want UNLOADED", row.State)
	}
	if calls != 1 {
		t.Fatalf("cancel func called %d times, want 1", calls)
	}
	// Calling again on a non-LOADING tile must be a no-op.
	row.cancelLoading()
	if calls != 1 {
		t.Errorf("cancelLoading on non-LOADING tile invoked cancel again: calls=%d", calls)
	}
}

func TestStateTransitions_EvictAndReready(t *testing.T) {
	var row tileData
	row.beginLoading(1, func() {})
	row.fetchSucceeded()
	row.processed("data", 512)

	row.evict()
	if row.State != StateUnloaded {
		t.Fatalf("State after evict = %v, want UNLOADED", row.State)
	}
	if row.Data != nil || row.ByteLength != 0 {
		t.Errorf("evict should clear Data/ByteLength: %+v", row)
	}

	row.beginLoading(2, func() {})
	row.fetchSucceeded()
	row.processed("data", 512)
	if row.State != StateReady || row.ByteLength != 512 {
		t.Errorf("re-ready after evict: State = %v ByteLength = %d, want READY 512", row.State, row.ByteLength)
	}
}

func TestStateTransitions_Expire(t *testing.T) {
	var row tileData
	row.beginLoading(1, func() {})
	row.fetchSucceeded()
	row.processed("data", 512)

	row.expire()
	if row.State != StateExpired {
		t.Fatalf("State after expire = %v, want EXPIRED", row.State)
	}

	row.beginLoading(2, func() {})
	if row.State != StateLoading {
		t.Fatalf("re-request after expiry: State = %v, want LOADING", row.State)
	}
}

func TestStateTransitions_ProcessingFailedDropsResult(t *testing.T) {
	var row tileData
	row.beginLoading(1, func() {})
	row.fetchSucceeded()
	row.processingFailed("decoder cancelled")
	if row.State != StateFailed {
		t.Fatalf("State = %v, want FAILED", row.State)
	}
}
