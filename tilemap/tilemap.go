// Package tilemap is a static grid of square tiles that bodies collide with
package tilemap

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/vmath"
)

// Tile values
const (
	Empty = 0
	Solid = 1
)

var ErrInvalidTileSize = errors.New("invalid tile size")

// TileMap maps world coordinates to tiles by shifting with the tile size exponent
// Rows may be ragged; cells past the end of a row do not exist
type TileMap struct {
	exp   uint
	size  float64
	rows  [][]int
	cols  int
	solid int
}

// New creates a map of rows[row][col] tile values; tileSize must be a power of two
func New(tileSize float64, rows [][]int) (*TileMap, error) {
	n := int(tileSize)
	if float64(n) != tileSize || !vmath.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %v is not a power of two", ErrInvalidTileSize, tileSize)
	}

	m := &TileMap{
		exp:  vmath.ClosestExponentOfTwo(tileSize),
		size: tileSize,
		rows: rows,
	}
	for _, row := range rows {
		m.cols = max(m.cols, len(row))
		for _, v := range row {
			if v == Solid {
				m.solid++
			}
		}
	}
	return m, nil
}

// FromGrid builds a map from a wall grid where true is solid
func FromGrid(tileSize float64, grid [][]bool) (*TileMap, error) {
	rows := make([][]int, len(grid))
	for y, line := range grid {
		rows[y] = make([]int, len(line))
		for x, wall := range line {
			if wall {
				rows[y][x] = Solid
			}
		}
	}
	return New(tileSize, rows)
}

// TileSize returns the tile edge length in world units
func (m *TileMap) TileSize() float64 {
	return m.size
}

// Rows returns the number of rows
func (m *TileMap) Rows() int {
	return len(m.rows)
}

// Cols returns the length of the longest row
func (m *TileMap) Cols() int {
	return m.cols
}

// SolidCount returns the number of solid tiles
func (m *TileMap) SolidCount() int {
	return m.solid
}

// Bounds returns the world region covered by the map
func (m *TileMap) Bounds() core.Region {
	return core.Region{
		Right:  float64(m.cols) * m.size,
		Bottom: float64(len(m.rows)) * m.size,
	}
}

// TileAt returns the value at col, row; false when the cell does not exist
func (m *TileMap) TileAt(col, row int) (int, bool) {
	if row < 0 || row >= len(m.rows) {
		return 0, false
	}
	line := m.rows[row]
	if col < 0 || col >= len(line) {
		return 0, false
	}
	return line[col], true
}

// isSolid treats missing cells as open
func (m *TileMap) isSolid(col, row int) bool {
	v, ok := m.TileAt(col, row)
	return ok && v == Solid
}

// TileAtPoint returns the column and row containing world point p
func (m *TileMap) TileAtPoint(p vmath.Vec2) (col, row int) {
	return vmath.FloorShift(p.X, m.exp), vmath.FloorShift(p.Y, m.exp)
}

// Tile describes the cell at col, row for the collision core
// A face is solid when the neighbor across it is not solid, map edges included
func (m *TileMap) Tile(col, row int) (core.Tile, bool) {
	v, ok := m.TileAt(col, row)
	if !ok {
		return core.Tile{}, false
	}
	left := float64(col) * m.size
	top := float64(row) * m.size
	return core.Tile{
		Region: core.Region{Top: top, Left: left, Right: left + m.size, Bottom: top + m.size},
		Solid:  v == Solid,
		Faces: core.Faces{
			N: !m.isSolid(col, row-1),
			S: !m.isSolid(col, row+1),
			W: !m.isSolid(col-1, row),
			E: !m.isSolid(col+1, row),
		},
	}, true
}

// TilesInRegion appends every existing tile r touches, edges inclusive
func (m *TileMap) TilesInRegion(r core.Region, buf []core.Tile) []core.Tile {
	if !r.Valid() {
		return buf
	}
	c0 := max(vmath.FloorShift(r.Left, m.exp), 0)
	r0 := max(vmath.FloorShift(r.Top, m.exp), 0)
	c1 := min(vmath.FloorShift(r.Right, m.exp), m.cols-1)
	r1 := min(vmath.FloorShift(r.Bottom, m.exp), len(m.rows)-1)

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if tile, ok := m.Tile(col, row); ok {
				buf = append(buf, tile)
			}
		}
	}
	return buf
}

// SolidTilesInRegion is TilesInRegion filtered to solid tiles
func (m *TileMap) SolidTilesInRegion(r core.Region, buf []core.Tile) []core.Tile {
	start := len(buf)
	buf = m.TilesInRegion(r, buf)
	kept := buf[:start]
	for _, tile := range buf[start:] {
		if tile.Solid {
			kept = append(kept, tile)
		}
	}
	return kept
}

// SolidTiles appends every solid tile of the map, row by row
func (m *TileMap) SolidTiles(buf []core.Tile) []core.Tile {
	for row, line := range m.rows {
		for col, v := range line {
			if v != Solid {
				continue
			}
			tile, _ := m.Tile(col, row)
			buf = append(buf, tile)
		}
	}
	return buf
}
