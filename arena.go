package tile3d

import "sync/atomic"

// arena owns every tile in a Tileset as a single flat slice indexed by
// TileID, following the "tree as arena + indices" pattern: a tile holds
// its parent id and a contiguous first-child/count range instead of
// pointers, so building and walking the tree touches one slice instead of
// scattering nodes across the heap.
//
// Slot 0 is a permanent sentinel (the null TileID); the manifest root is
// always allocated at index 1 or later.
type arena struct {
	rows []tileData

	// touched is a lock-free per-TileID bitmap: prePass clears it, each
	// traversal pass ORs in the tiles it visits, and cancellation/eviction
	// read it without taking a lock. Grounded directly on the teacher's
	// atomic dirty-region bitmap.
	touched []atomic.Uint64
}

func newArena() *arena {
	a := &arena{rows: make([]tileData, 1)}
	a.growTouched()
	return a
}

// alloc appends a new, zero-value row and returns its id.
func (a *arena) alloc() TileID {
	a.rows = append(a.rows, tileData{})
	id := TileID(len(a.rows) - 1)
	a.growTouched()
	return id
}

// growTouched extends the touched bitmap to cover the current row count.
func (a *arena) growTouched() {
	need := (len(a.rows) + 63) / 64
	for len(a.touched) < need {
		a.touched = append(a.touched, atomic.Uint64{})
	}
}

// get returns a pointer to id's row. Callers must not retain the pointer
// across an alloc, since append may reallocate the backing slice.
func (a *arena) get(id TileID) *tileData {
	return &a.rows[id]
}

// valid reports whether id addresses an allocated, non-sentinel row.
func (a *arena) valid(id TileID) bool {
	return id != 0 && int(id) < len(a.rows)
}

// children returns id's direct child ids.
func (a *arena) children(id TileID) []TileID {
	row := a.get(id)
	if row.NumChildren == 0 {
		return nil
	}
	ids := make([]TileID, row.NumChildren)
	for i := range ids {
		ids[i] = row.FirstChild + TileID(i)
	}
	return ids
}

// allocChildren reserves a contiguous run of n new rows as id's children
// and returns their ids in order. Reserving the whole run up front keeps
// FirstChild/NumChildren valid even though later recursion into those
// children's own subtrees allocates further, unrelated rows.
func (a *arena) allocChildren(id TileID, n int) []TileID {
	if n == 0 {
		return nil
	}
	first := TileID(len(a.rows))
	a.rows = append(a.rows, make([]tileData, n)...)
	a.growTouched()
	for i := range n {
		a.get(first + TileID(i)).Parent = id
	}
	row := a.get(id)
	row.FirstChild = first
	row.NumChildren = uint16(n)
	ids := make([]TileID, n)
	for i := range n {
		ids[i] = first + TileID(i)
	}
	return ids
}

// clearTouched zeroes the touched bitmap at the start of prePass.
func (a *arena) clearTouched() {
	for i := range a.touched {
		a.touched[i].Store(0)
	}
}

// markTouched sets id's touched bit. Safe to call concurrently with
// isTouched and with other markTouched calls.
func (a *arena) markTouched(id TileID) {
	if !a.valid(id) {
		return
	}
	word, bit := id/64, id%64
	a.touched[word].Or(1 << bit)
}

// isTouched reports whether id's touched bit was set since the last
// clearTouched.
func (a *arena) isTouched(id TileID) bool {
	if !a.valid(id) {
		return false
	}
	word, bit := id/64, id%64
	return a.touched[word].Load()&(1<<bit) != 0
}

// count returns the number of allocated rows, excluding the sentinel.
func (a *arena) count() int {
	return len(a.rows) - 1
}
