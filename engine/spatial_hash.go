package engine

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/lixenwraith/collide/constants"
	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/vmath"
)

// CellKey addresses one cell of the spatial hash grid
type CellKey struct {
	X, Y int
}

// String returns the "x:y" form of the key
func (k CellKey) String() string {
	return strconv.Itoa(k.X) + ":" + strconv.Itoa(k.Y)
}

// cellRect is the inclusive range of cells a region touches
type cellRect struct {
	x0, y0, x1, y1 int
}

func (c cellRect) contains(k CellKey) bool {
	return k.X >= c.x0 && k.X <= c.x1 && k.Y >= c.y0 && k.Y <= c.y1
}

func (c cellRect) overlaps(o cellRect) bool {
	return c.x0 <= o.x1 && c.x1 >= o.x0 && c.y0 <= o.y1 && c.y1 >= o.y0
}

// count returns the number of cells covered, saturating at math.MaxInt
func (c cellRect) count() int {
	w := c.x1 - c.x0 + 1
	h := c.y1 - c.y0 + 1
	if w <= 0 || h <= 0 {
		return 0
	}
	if w > math.MaxInt/h {
		return math.MaxInt
	}
	return w * h
}

// SpatialHash is a uniform grid broad phase with power-of-two cells
// A body spanning several cells is stored in every bucket it touches; bodies
// covering more than HashMaxBodyCells cells are kept once in a wide list
type SpatialHash struct {
	exp     uint
	buckets map[CellKey][]core.Body
	records map[core.Handle]cellRect
	wide    []core.Body

	// Tracked bodies whose region was never valid, stored on their first valid Move
	pending map[core.Handle]core.Body
}

// NewSpatialHash creates a hash whose cell size is gridSize rounded down to a power of two
func NewSpatialHash(gridSize float64) (*SpatialHash, error) {
	if !(gridSize > 0) || math.IsInf(gridSize, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGridSize, gridSize)
	}
	return &SpatialHash{
		exp:     vmath.ClosestExponentOfTwo(gridSize),
		buckets: make(map[CellKey][]core.Body),
		records: make(map[core.Handle]cellRect),
		pending: make(map[core.Handle]core.Body),
	}, nil
}

// Exponent returns k where the cell size is 2^k
func (h *SpatialHash) Exponent() uint {
	return h.exp
}

// CellSize returns the effective cell edge length in world units
func (h *SpatialHash) CellSize() float64 {
	return float64(uint64(1) << h.exp)
}

// Len returns the number of tracked bodies
func (h *SpatialHash) Len() int {
	return len(h.records) + len(h.pending)
}

// WideLen returns the number of bodies held outside the grid
func (h *SpatialHash) WideLen() int {
	return len(h.wide)
}

// CellCount returns the number of non-empty buckets
func (h *SpatialHash) CellCount() int {
	return len(h.buckets)
}

// cellsFor floors the region corners into cell coordinates
func (h *SpatialHash) cellsFor(r core.Region) (cellRect, bool) {
	if !r.Valid() {
		return cellRect{}, false
	}
	return cellRect{
		x0: vmath.FloorShift(r.Left, h.exp),
		y0: vmath.FloorShift(r.Top, h.exp),
		x1: vmath.FloorShift(r.Right, h.exp),
		y1: vmath.FloorShift(r.Bottom, h.exp),
	}, true
}

// Add inserts the body into every cell its region touches
// A body already present is removed first so it never appears twice in a bucket
// A body with an invalid region is tracked but unqueryable until a Move finds it valid
func (h *SpatialHash) Add(b core.Body) {
	h.Remove(b)

	cells, ok := h.cellsFor(b.Region())
	if !ok {
		h.pending[b.Handle()] = b
		return
	}
	h.insert(b, cells)
}

func (h *SpatialHash) insert(b core.Body, cells cellRect) {
	h.records[b.Handle()] = cells
	if cells.count() > constants.HashMaxBodyCells {
		h.wide = append(h.wide, b)
		return
	}
	for y := cells.y0; y <= cells.y1; y++ {
		for x := cells.x0; x <= cells.x1; x++ {
			key := CellKey{X: x, Y: y}
			h.buckets[key] = append(h.buckets[key], b)
		}
	}
}

// Remove drops the body from every bucket recorded for it
func (h *SpatialHash) Remove(b core.Body) {
	handle := b.Handle()
	delete(h.pending, handle)
	cells, ok := h.records[handle]
	if !ok {
		return
	}
	delete(h.records, handle)

	if cells.count() > constants.HashMaxBodyCells {
		h.removeWide(handle)
		return
	}
	for y := cells.y0; y <= cells.y1; y++ {
		for x := cells.x0; x <= cells.x1; x++ {
			h.removeFromBucket(CellKey{X: x, Y: y}, handle)
		}
	}
}

func (h *SpatialHash) removeWide(handle core.Handle) {
	i := slices.IndexFunc(h.wide, func(b core.Body) bool {
		return b.Handle() == handle
	})
	if i < 0 {
		return
	}
	last := len(h.wide) - 1
	h.wide[i] = h.wide[last]
	h.wide[last] = nil
	h.wide = h.wide[:last]
}

// removeFromBucket swap-removes a body; empty buckets are deleted
func (h *SpatialHash) removeFromBucket(key CellKey, handle core.Handle) {
	bucket := h.buckets[key]
	for i, other := range bucket {
		if other.Handle() != handle {
			continue
		}
		last := len(bucket) - 1
		bucket[i] = bucket[last]
		bucket[last] = nil
		bucket = bucket[:last]
		break
	}

	if len(bucket) == 0 {
		delete(h.buckets, key)
		return
	}
	h.buckets[key] = bucket
}

// Move reindexes a body only when the set of cells it touches changed
// An invalid region keeps the body at its last valid cells
func (h *SpatialHash) Move(b core.Body) {
	handle := b.Handle()
	old, tracked := h.records[handle]
	_, pending := h.pending[handle]
	if !tracked && !pending {
		return
	}

	cells, valid := h.cellsFor(b.Region())
	if !valid || (tracked && cells == old) {
		return
	}

	h.Remove(b)
	h.insert(b, cells)
}

// Query appends the contents of every bucket r touches, then the wide bodies r reaches
// Bodies spanning several of those cells are appended once per cell
func (h *SpatialHash) Query(r core.Region, buf []core.Body) []core.Body {
	cells, ok := h.cellsFor(r)
	if !ok {
		return buf
	}

	// Sparse grid under a wide query: scan buckets instead of every cell
	if cells.count() > 4*len(h.buckets) {
		buf = h.queryBuckets(cells, buf)
	} else {
		for y := cells.y0; y <= cells.y1; y++ {
			for x := cells.x0; x <= cells.x1; x++ {
				buf = append(buf, h.buckets[CellKey{X: x, Y: y}]...)
			}
		}
	}

	for _, b := range h.wide {
		if h.records[b.Handle()].overlaps(cells) {
			buf = append(buf, b)
		}
	}
	return buf
}

// queryBuckets collects matching buckets in row-major key order
func (h *SpatialHash) queryBuckets(cells cellRect, buf []core.Body) []core.Body {
	keys := make([]CellKey, 0, len(h.buckets))
	for key := range h.buckets {
		if cells.contains(key) {
			keys = append(keys, key)
		}
	}
	sortKeys(keys)
	for _, key := range keys {
		buf = append(buf, h.buckets[key]...)
	}
	return buf
}

// Cleanup is a no-op: empty buckets are deleted eagerly on removal
func (h *SpatialHash) Cleanup() {}

// Clear drops all buckets and records
func (h *SpatialHash) Clear() {
	clear(h.buckets)
	clear(h.records)
	clear(h.pending)
	clear(h.wide)
	h.wide = h.wide[:0]
}

// CellsOf returns the keys of the cells holding the body, sorted row-major
// Returns nil for untracked, pending and wide bodies
func (h *SpatialHash) CellsOf(b core.Body) []CellKey {
	cells, ok := h.records[b.Handle()]
	if !ok || cells.count() > constants.HashMaxBodyCells {
		return nil
	}

	keys := make([]CellKey, 0, (cells.x1-cells.x0+1)*(cells.y1-cells.y0+1))
	for y := cells.y0; y <= cells.y1; y++ {
		for x := cells.x0; x <= cells.x1; x++ {
			keys = append(keys, CellKey{X: x, Y: y})
		}
	}
	return keys
}

// Bucket returns the bodies stored in one cell
// INTERNAL USE ONLY - the slice is owned by the hash, callers must not modify it
func (h *SpatialHash) Bucket(key CellKey) []core.Body {
	return h.buckets[key]
}

func sortKeys(keys []CellKey) {
	slices.SortFunc(keys, func(a, b CellKey) int {
		if a.Y != b.Y {
			return cmp.Compare(a.Y, b.Y)
		}
		return cmp.Compare(a.X, b.X)
	})
}
