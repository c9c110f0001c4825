package engine

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/lixenwraith/collide/constants"
	"github.com/lixenwraith/collide/core"
)

func mustHash(t testing.TB, gridSize float64) *SpatialHash {
	t.Helper()
	h, err := NewSpatialHash(gridSize)
	if err != nil {
		t.Fatalf("NewSpatialHash(%v): %v", gridSize, err)
	}
	return h
}

func keyStrings(keys []CellKey) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

func containsBody(list []core.Body, b core.Body) bool {
	for _, other := range list {
		if other.Handle() == b.Handle() {
			return true
		}
	}
	return false
}

func countBody(list []core.Body, b core.Body) int {
	n := 0
	for _, other := range list {
		if other.Handle() == b.Handle() {
			n++
		}
	}
	return n
}

func TestSpatialHashInvalidGridSize(t *testing.T) {
	for _, size := range []float64{0, -64, math.NaN(), math.Inf(1)} {
		if _, err := NewSpatialHash(size); !errors.Is(err, ErrInvalidGridSize) {
			t.Errorf("NewSpatialHash(%v) error = %v, want ErrInvalidGridSize", size, err)
		}
	}
}

func TestSpatialHashCellSize(t *testing.T) {
	tests := []struct {
		grid float64
		exp  uint
		size float64
	}{
		{64, 6, 64},
		{100, 6, 64},
		{128, 7, 128},
		{1, 0, 1},
		{0.25, 0, 1},
	}
	for _, tt := range tests {
		h := mustHash(t, tt.grid)
		if h.Exponent() != tt.exp || h.CellSize() != tt.size {
			t.Errorf("grid %v: exponent %d size %v, want %d %v", tt.grid, h.Exponent(), h.CellSize(), tt.exp, tt.size)
		}
	}
}

// TestSpatialHashSpanningBody tests a body straddling four cells of a 64 grid
func TestSpatialHashSpanningBody(t *testing.T) {
	h := mustHash(t, 64)
	b := core.NewObject(65, 65, 10, 10) // (60,60)-(70,70)
	h.Add(b)

	got := keyStrings(h.CellsOf(b))
	want := []string{"0:0", "1:0", "0:1", "1:1"}
	if !slices.Equal(got, want) {
		t.Fatalf("CellsOf = %v, want %v", got, want)
	}
	for _, k := range []CellKey{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if !containsBody(h.Bucket(k), b) {
			t.Errorf("bucket %s missing body", k)
		}
	}
	if h.CellCount() != 4 {
		t.Errorf("CellCount = %d, want 4", h.CellCount())
	}
}

func TestSpatialHashAddIsIdempotent(t *testing.T) {
	h := mustHash(t, 64)
	b := core.NewObject(65, 65, 10, 10)

	h.Add(b)
	h.Add(b)

	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
	for _, k := range h.CellsOf(b) {
		if n := countBody(h.Bucket(k), b); n != 1 {
			t.Errorf("bucket %s holds body %d times", k, n)
		}
	}
}

func TestSpatialHashRemove(t *testing.T) {
	h := mustHash(t, 64)
	a := core.NewObject(65, 65, 10, 10)
	b := core.NewObject(20, 20, 10, 10)
	h.Add(a)
	h.Add(b)

	h.Remove(a)
	if h.CellsOf(a) != nil {
		t.Error("removed body still has a record")
	}
	if res := h.Query(core.Region{Left: 0, Top: 0, Right: 200, Bottom: 200}, nil); containsBody(res, a) {
		t.Error("removed body still returned by query")
	}
	if h.CellCount() != 1 {
		t.Errorf("CellCount = %d, want 1 (empty buckets deleted)", h.CellCount())
	}

	// Untracked remove and move are no-ops
	h.Remove(a)
	h.Move(a)
	if h.Len() != 1 {
		t.Errorf("Len = %d, want 1", h.Len())
	}
}

func TestSpatialHashMove(t *testing.T) {
	h := mustHash(t, 64)
	b := core.NewObject(20, 20, 10, 10)
	h.Add(b)

	// Within the same cell: record unchanged
	b.P.X = 30
	h.Move(b)
	if got := keyStrings(h.CellsOf(b)); !slices.Equal(got, []string{"0:0"}) {
		t.Errorf("CellsOf after small move = %v", got)
	}

	// Across a cell boundary
	b.P.X = 100
	h.Move(b)
	if got := keyStrings(h.CellsOf(b)); !slices.Equal(got, []string{"1:0"}) {
		t.Errorf("CellsOf after crossing = %v, want [1:0]", got)
	}
	if len(h.Bucket(CellKey{0, 0})) != 0 {
		t.Error("old bucket still holds the body")
	}
	if !containsBody(h.Bucket(CellKey{1, 0}), b) {
		t.Error("new bucket missing the body")
	}
}

func TestSpatialHashNegativeCoordinates(t *testing.T) {
	h := mustHash(t, 64)
	b := core.NewObject(-5, -70, 4, 4) // (-7,-72)-(-3,-68)
	h.Add(b)

	got := keyStrings(h.CellsOf(b))
	if !slices.Equal(got, []string{"-1:-2"}) {
		t.Errorf("CellsOf = %v, want [-1:-2]", got)
	}

	// Straddling the origin
	c := core.NewObject(0, 0, 4, 4)
	h.Add(c)
	got = keyStrings(h.CellsOf(c))
	want := []string{"-1:-1", "0:-1", "-1:0", "0:0"}
	if !slices.Equal(got, want) {
		t.Errorf("CellsOf = %v, want %v", got, want)
	}

	res := h.Query(core.Region{Left: -10, Top: -80, Right: -1, Bottom: -60}, nil)
	if !containsBody(res, b) {
		t.Error("query over negative cells missed the body")
	}
}

func TestSpatialHashQuery(t *testing.T) {
	h := mustHash(t, 64)
	near := core.NewObject(65, 65, 10, 10)
	far := core.NewObject(1000, 1000, 10, 10)
	h.Add(near)
	h.Add(far)

	res := h.Query(core.Region{Left: 0, Top: 0, Right: 127, Bottom: 127}, nil)
	if countBody(res, near) != 4 {
		t.Errorf("spanning body returned %d times, want once per cell (4)", countBody(res, near))
	}
	if containsBody(res, far) {
		t.Error("far body returned")
	}

	// Wide query over a sparse grid takes the bucket scan path
	res = h.Query(core.Region{Left: -1e5, Top: -1e5, Right: 1e5, Bottom: 1e5}, nil)
	if !containsBody(res, near) || !containsBody(res, far) {
		t.Error("wide query missed bodies")
	}

	// Results are appended to buf
	buf := []core.Body{far}
	res = h.Query(core.Region{Left: 60, Top: 60, Right: 61, Bottom: 61}, buf)
	if len(res) != 2 || res[0] != far {
		t.Errorf("Query did not append to buf: %v", res)
	}
}

func TestSpatialHashDegenerateQuery(t *testing.T) {
	h := mustHash(t, 64)
	h.Add(core.NewObject(10, 10, 4, 4))

	for _, r := range []core.Region{
		{Left: 10, Right: 0, Top: 0, Bottom: 10},
		{Left: 0, Right: 10, Top: 10, Bottom: 0},
		{Left: math.NaN(), Right: 10, Top: 0, Bottom: 10},
	} {
		if res := h.Query(r, nil); len(res) != 0 {
			t.Errorf("degenerate query %+v returned %d bodies", r, len(res))
		}
	}

	empty := mustHash(t, 64)
	if res := empty.Query(core.Region{Right: 100, Bottom: 100}, nil); len(res) != 0 {
		t.Errorf("empty hash returned %d bodies", len(res))
	}
}

func TestSpatialHashClear(t *testing.T) {
	h := mustHash(t, 64)
	b := core.NewObject(65, 65, 10, 10)
	h.Add(b)
	h.Clear()

	if h.Len() != 0 || h.CellCount() != 0 {
		t.Errorf("after Clear: Len %d CellCount %d", h.Len(), h.CellCount())
	}
	if res := h.Query(core.Region{Right: 200, Bottom: 200}, nil); len(res) != 0 {
		t.Errorf("query after Clear returned %d bodies", len(res))
	}

	h.Add(b)
	if h.Len() != 1 {
		t.Error("hash unusable after Clear")
	}
}

// TestSpatialHashInfiniteQuery tests that an unbounded query reaches every body
// and matches the quadtree for the same contents
func TestSpatialHashInfiniteQuery(t *testing.T) {
	h := mustHash(t, 64)
	q := mustTree(t, QuadTreeConfig{Region: square(800), MaxDepth: 4, MaxNodePop: 4})
	b := core.NewObject(100, 100, 10, 10)
	h.Add(b)
	q.Add(b)

	all := core.Region{Left: math.Inf(-1), Top: math.Inf(-1), Right: math.Inf(1), Bottom: math.Inf(1)}
	if !all.Valid() {
		t.Fatal("infinite region reported invalid")
	}
	if got := h.Query(all, nil); !containsBody(got, b) {
		t.Errorf("hash infinite query returned %d bodies, want the body", len(got))
	}
	if got := q.Query(all, nil); !containsBody(got, b) {
		t.Errorf("quadtree infinite query returned %d bodies, want the body", len(got))
	}

	// Half-infinite strips are bounded on one axis only
	strip := core.Region{Left: math.Inf(-1), Top: 90, Right: math.Inf(1), Bottom: 110}
	if got := h.Query(strip, nil); !containsBody(got, b) {
		t.Error("horizontal strip query missed the body")
	}
	miss := core.Region{Left: math.Inf(-1), Top: 500, Right: math.Inf(1), Bottom: 600}
	if got := h.Query(miss, nil); containsBody(got, b) {
		t.Error("strip below the body returned it")
	}
}

// TestSpatialHashWideBody tests bodies too large to store per cell, including
// extents beyond the integer range
func TestSpatialHashWideBody(t *testing.T) {
	h := mustHash(t, 64)
	floor := core.NewStaticObject(0, 0, 2e19, 2e19)
	small := core.NewObject(10, 10, 4, 4)
	h.Add(floor)
	h.Add(small)

	if h.WideLen() != 1 || h.Len() != 2 {
		t.Fatalf("WideLen %d Len %d, want 1 and 2", h.WideLen(), h.Len())
	}
	if h.CellsOf(floor) != nil {
		t.Error("wide body reported grid cells")
	}
	if h.CellCount() != 1 {
		t.Errorf("CellCount = %d, want 1 (only the small body is bucketed)", h.CellCount())
	}

	near := h.Query(core.Region{Left: -10, Top: -10, Right: 10, Bottom: 10}, nil)
	if countBody(near, floor) != 1 || !containsBody(near, small) {
		t.Errorf("query near origin: floor x%d small %v", countBody(near, floor), containsBody(near, small))
	}
	far := h.Query(core.Region{Left: 1e18, Top: 1e18, Right: 1e18 + 1, Bottom: 1e18 + 1}, nil)
	if !containsBody(far, floor) || containsBody(far, small) {
		t.Error("far query should find only the wide body")
	}

	// Shrinking below the threshold moves it into the grid
	if constants.HashMaxBodyCells >= 65*65 {
		t.Fatal("test body no longer exceeds the wide threshold")
	}
	wide := core.NewObject(0, 0, 64*64, 64*64)
	h.Add(wide)
	if h.WideLen() != 2 {
		t.Fatalf("WideLen = %d, want 2", h.WideLen())
	}
	wide.Width, wide.Height = 64, 64
	h.Move(wide)
	if h.WideLen() != 1 || len(h.CellsOf(wide)) == 0 {
		t.Errorf("shrunk body: WideLen %d cells %v", h.WideLen(), h.CellsOf(wide))
	}

	h.Remove(floor)
	if h.WideLen() != 0 {
		t.Errorf("WideLen after Remove = %d", h.WideLen())
	}
	if res := h.Query(core.Region{Left: 1e18, Top: 1e18, Right: 1e18 + 1, Bottom: 1e18 + 1}, nil); containsBody(res, floor) {
		t.Error("removed wide body still returned")
	}

	h.Add(floor)
	h.Clear()
	if h.WideLen() != 0 || h.Len() != 0 {
		t.Errorf("after Clear: WideLen %d Len %d", h.WideLen(), h.Len())
	}
}

// TestSpatialHashInvalidRegionKeepsBody tests that a body whose region turns
// invalid stays tracked and is reindexed once it recovers
func TestSpatialHashInvalidRegionKeepsBody(t *testing.T) {
	h := mustHash(t, 64)
	b := core.NewObject(100, 100, 10, 10)
	h.Add(b)

	b.P.X = math.NaN()
	h.Move(b)
	if h.Len() != 1 {
		t.Fatalf("Len after invalid move = %d, want 1", h.Len())
	}
	if got := keyStrings(h.CellsOf(b)); !slices.Equal(got, []string{"1:1"}) {
		t.Errorf("CellsOf after invalid move = %v, want last valid [1:1]", got)
	}

	b.P.X = 300
	h.Move(b)
	if got := keyStrings(h.CellsOf(b)); !slices.Equal(got, []string{"4:1"}) {
		t.Errorf("CellsOf after recovery = %v, want [4:1]", got)
	}
	if res := h.Query(core.Region{Left: 290, Top: 90, Right: 310, Bottom: 110}, nil); !containsBody(res, b) {
		t.Error("recovered body not found")
	}

	// Added while invalid: tracked, stored on the first valid Move
	c := core.NewObject(math.NaN(), 20, 4, 4)
	h.Add(c)
	if h.Len() != 2 || h.CellsOf(c) != nil {
		t.Fatalf("invalid Add: Len %d cells %v", h.Len(), h.CellsOf(c))
	}
	c.P.X = 20
	h.Move(c)
	if got := keyStrings(h.CellsOf(c)); !slices.Equal(got, []string{"0:0"}) {
		t.Errorf("CellsOf after first valid move = %v, want [0:0]", got)
	}
	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}

	c.P.X = math.NaN()
	h.Remove(c)
	h.Move(c)
	if h.Len() != 1 {
		t.Errorf("Len after Remove = %d, want 1", h.Len())
	}
}
