package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/engine"
	"github.com/lixenwraith/collide/vmath"
)

var (
	styleBg     = tcell.StyleDefault.Background(tcell.NewRGBColor(26, 27, 38))
	styleWall   = styleBg.Foreground(tcell.NewRGBColor(86, 95, 137))
	styleStatic = styleBg.Foreground(tcell.NewRGBColor(169, 177, 214))
	styleLink   = styleBg.Foreground(tcell.NewRGBColor(59, 66, 97))
	styleStatus = tcell.StyleDefault.Background(tcell.NewRGBColor(36, 40, 59)).Foreground(tcell.NewRGBColor(192, 202, 245))

	// Node outlines cycle through these by depth
	depthColors = []tcell.Color{
		tcell.NewRGBColor(122, 162, 247),
		tcell.NewRGBColor(158, 206, 106),
		tcell.NewRGBColor(224, 175, 104),
		tcell.NewRGBColor(187, 154, 247),
		tcell.NewRGBColor(125, 207, 255),
		tcell.NewRGBColor(247, 118, 142),
	}
)

// view maps world coordinates onto the terminal, leaving the last row for status
type view struct {
	screen tcell.Screen
	world  core.Region
	cols   int
	rows   int
	sx, sy float64
}

func newView(screen tcell.Screen, world core.Region) *view {
	v := &view{screen: screen, world: world}
	v.resize()
	return v
}

func (v *view) resize() {
	w, h := v.screen.Size()
	v.cols = max(w, 1)
	v.rows = max(h-1, 1)
	v.sx = v.world.Width() / float64(v.cols)
	v.sy = v.world.Height() / float64(v.rows)
}

// cell converts a world point to cell units
func (v *view) cell(p vmath.Vec2) vmath.Vec2 {
	return vmath.V((p.X-v.world.Left)/v.sx, (p.Y-v.world.Top)/v.sy)
}

func (v *view) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= v.cols || y >= v.rows {
		return
	}
	v.screen.SetContent(x, y, r, nil, style)
}

// fill paints every cell r covers, at least the one holding its center
func (v *view) fill(r core.Region, ch rune, style tcell.Style) {
	a := v.cell(vmath.V(r.Left, r.Top))
	b := v.cell(vmath.V(r.Right, r.Bottom))
	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Ceil(b.X))-1, int(math.Ceil(b.Y))-1
	if x1 < x0 || y1 < y0 {
		c := v.cell(r.Center())
		v.set(int(c.X), int(c.Y), ch, style)
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			v.set(x, y, ch, style)
		}
	}
}

// outline draws the border of r in cell space
func (v *view) outline(r core.Region, style tcell.Style) {
	a := v.cell(vmath.V(r.Left, r.Top))
	b := v.cell(vmath.V(r.Right, r.Bottom))
	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Ceil(b.X))-1, int(math.Ceil(b.Y))-1
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for x := x0 + 1; x < x1; x++ {
		v.set(x, y0, '─', style)
		v.set(x, y1, '─', style)
	}
	for y := y0 + 1; y < y1; y++ {
		v.set(x0, y, '│', style)
		v.set(x1, y, '│', style)
	}
	v.set(x0, y0, '┌', style)
	v.set(x1, y0, '┐', style)
	v.set(x0, y1, '└', style)
	v.set(x1, y1, '┘', style)
}

// line traces a dotted segment between two world points
func (v *view) line(a, b vmath.Vec2, style tcell.Style) {
	t := vmath.NewGridTraverser(v.cell(a), v.cell(b))
	for t.Next() {
		x, y := t.Pos()
		v.set(x, y, '·', style)
	}
}

// bodyStyle colors movable bodies by speed, cold to hot
func bodyStyle(b core.Body) tcell.Style {
	if b.Mass() == core.InfiniteMass {
		return styleStatic
	}
	heat := math.Min(b.Kinetics().V.Len()/200, 1)
	return styleBg.Foreground(tcell.NewRGBColor(
		int32(80+175*heat),
		int32(200-120*heat),
		int32(255-175*heat),
	))
}

// treeCanvas draws quadtree nodes and body links
type treeCanvas struct {
	v *view
}

func (c treeCanvas) NodeBounds(r core.Region, depth int) {
	c.v.outline(r, styleBg.Foreground(depthColors[depth%len(depthColors)]))
}

func (c treeCanvas) NodeLink(nodeCenter, bodyCenter vmath.Vec2) {
	c.v.line(nodeCenter, bodyCenter, styleLink)
}

var _ engine.DebugCanvas = treeCanvas{}

// drawHashCells outlines every occupied spatial hash cell once
func drawHashCells(v *view, h *engine.SpatialHash, bodies []core.Body) {
	size := h.CellSize()
	seen := make(map[engine.CellKey]struct{})
	style := styleBg.Foreground(depthColors[0])
	for _, b := range bodies {
		for _, k := range h.CellsOf(b) {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			left, top := float64(k.X)*size, float64(k.Y)*size
			v.outline(core.Region{Left: left, Top: top, Right: left + size, Bottom: top + size}, style)
		}
	}
}

func drawString(v *view, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
