package tilemap

import (
	"errors"
	"testing"

	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/vmath"
)

func mustMap(t *testing.T, size float64, rows [][]int) *TileMap {
	t.Helper()
	m, err := New(size, rows)
	if err != nil {
		t.Fatalf("New(%v): %v", size, err)
	}
	return m
}

func TestNewInvalidTileSize(t *testing.T) {
	for _, size := range []float64{0, -32, 3, 48, 31.5} {
		if _, err := New(size, nil); !errors.Is(err, ErrInvalidTileSize) {
			t.Errorf("New(%v) error = %v, want ErrInvalidTileSize", size, err)
		}
	}
	for _, size := range []float64{1, 2, 32, 1024} {
		if _, err := New(size, nil); err != nil {
			t.Errorf("New(%v) unexpected error: %v", size, err)
		}
	}
}

func TestTileFaces(t *testing.T) {
	m := mustMap(t, 32, [][]int{
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, 0},
	})

	tests := []struct {
		col, row int
		faces    core.Faces
	}{
		// Left end of the bar: map edge on the west counts as open
		{0, 1, core.Faces{N: true, S: true, W: true, E: false}},
		// Middle of the bar: stem below
		{1, 1, core.Faces{N: true, S: false, W: false, E: false}},
		{2, 1, core.Faces{N: true, S: true, W: false, E: true}},
		{1, 2, core.Faces{N: false, S: true, W: true, E: true}},
	}
	for _, tt := range tests {
		tile, ok := m.Tile(tt.col, tt.row)
		if !ok || !tile.Solid {
			t.Fatalf("Tile(%d,%d) missing or not solid", tt.col, tt.row)
		}
		if tile.Faces != tt.faces {
			t.Errorf("Tile(%d,%d).Faces = %+v, want %+v", tt.col, tt.row, tile.Faces, tt.faces)
		}
	}

	tile, _ := m.Tile(2, 2)
	want := core.Region{Top: 64, Left: 64, Right: 96, Bottom: 96}
	if tile.Solid || tile.Region != want {
		t.Errorf("Tile(2,2) = %+v, want open tile at %+v", tile, want)
	}
}

func TestTilesInRegion(t *testing.T) {
	m := mustMap(t, 32, [][]int{
		{0, 0, 0, 0},
		{0, 1, 1, 0},
		{0, 0},
	})

	// Region (40,40)-(70,70) touches cols 1..2, rows 1..2
	r := core.Region{Left: 40, Top: 40, Right: 70, Bottom: 70}
	all := m.TilesInRegion(r, nil)
	// Row 2 is ragged: only col 1 exists
	if len(all) != 3 {
		t.Fatalf("TilesInRegion returned %d tiles, want 3", len(all))
	}
	solid := m.SolidTilesInRegion(r, nil)
	if len(solid) != 2 {
		t.Errorf("SolidTilesInRegion returned %d tiles, want 2", len(solid))
	}

	// Edges are inclusive: x = 32 touches col 1
	edge := m.SolidTilesInRegion(core.Region{Left: 0, Top: 32, Right: 32, Bottom: 40}, nil)
	if len(edge) != 1 || edge[0].Region.Left != 32 {
		t.Errorf("inclusive edge query = %+v", edge)
	}

	// Outside and negative regions
	if got := m.TilesInRegion(core.Region{Left: -100, Top: -100, Right: -10, Bottom: -10}, nil); len(got) != 0 {
		t.Errorf("negative region returned %d tiles", len(got))
	}
	if got := m.TilesInRegion(core.Region{Left: 10, Right: 0, Bottom: 10}, nil); len(got) != 0 {
		t.Errorf("degenerate region returned %d tiles", len(got))
	}

	// Appends to buf
	buf := make([]core.Tile, 1)
	if got := m.SolidTilesInRegion(r, buf); len(got) != 3 {
		t.Errorf("SolidTilesInRegion with buf len = %d, want 3", len(got))
	}
}

func TestTileMapBounds(t *testing.T) {
	m := mustMap(t, 16, [][]int{{1}, {0, 0, 1}})
	if b := m.Bounds(); b != (core.Region{Right: 48, Bottom: 32}) {
		t.Errorf("Bounds = %+v", b)
	}
	if m.SolidCount() != 2 || m.Cols() != 3 || m.Rows() != 2 {
		t.Errorf("SolidCount %d Cols %d Rows %d", m.SolidCount(), m.Cols(), m.Rows())
	}
	if col, row := m.TileAtPoint(vmath.V(-1, 17)); col != -1 || row != 1 {
		t.Errorf("TileAtPoint = %d,%d, want -1,1", col, row)
	}
	if _, ok := m.TileAt(1, 0); ok {
		t.Error("TileAt past ragged row end should not exist")
	}
	if got := m.SolidTiles(nil); len(got) != 2 {
		t.Errorf("SolidTiles = %d, want 2", len(got))
	}
}

func TestFromGrid(t *testing.T) {
	m, err := FromGrid(8, [][]bool{{true, false}, {false, true}})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := m.TileAt(0, 0); v != Solid {
		t.Error("expected solid at 0,0")
	}
	if v, _ := m.TileAt(1, 0); v != Empty {
		t.Error("expected empty at 1,0")
	}
}
