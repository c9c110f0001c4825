package vmath

import "math"

// GridTraverser is a zero-allocation iterator over every unit cell a segment crosses (supercover DDA)
// Coordinates are in cell units; cell (x, y) covers [x, x+1) x [y, y+1)
type GridTraverser struct {
	currX, currY     int
	targetX, targetY int
	stepX, stepY     int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	started bool
	done    bool
}

// NewGridTraverser creates an iterator from a to b
func NewGridTraverser(a, b Vec2) GridTraverser {
	t := GridTraverser{
		currX: int(math.Floor(a.X)), currY: int(math.Floor(a.Y)),
		targetX: int(math.Floor(b.X)), targetY: int(math.Floor(b.Y)),
		stepX: 1, stepY: 1,
		tMaxX: math.Inf(1), tMaxY: math.Inf(1),
	}

	dx, dy := b.X-a.X, b.Y-a.Y
	if dx < 0 {
		t.stepX = -1
		dx = -dx
	}
	if dy < 0 {
		t.stepY = -1
		dy = -dy
	}

	fx := a.X - math.Floor(a.X)
	fy := a.Y - math.Floor(a.Y)
	if dx > 0 {
		t.tDeltaX = 1 / dx
		if t.stepX > 0 {
			t.tMaxX = (1 - fx) * t.tDeltaX
		} else {
			t.tMaxX = fx * t.tDeltaX
		}
	}
	if dy > 0 {
		t.tDeltaY = 1 / dy
		if t.stepY > 0 {
			t.tMaxY = (1 - fy) * t.tDeltaY
		} else {
			t.tMaxY = fy * t.tDeltaY
		}
	}
	return t
}

// Next advances to the next cell; the first call yields the start cell
func (t *GridTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}
	if t.currX == t.targetX && t.currY == t.targetY {
		t.done = true
		return false
	}

	switch {
	case t.tMaxX < t.tMaxY && t.currX != t.targetX, t.currY == t.targetY:
		t.currX += t.stepX
		t.tMaxX += t.tDeltaX
	case t.tMaxY < t.tMaxX || t.currX == t.targetX:
		t.currY += t.stepY
		t.tMaxY += t.tDeltaY
	default:
		// Exact corner crossing: step both so the path stays 8-connected
		t.currX += t.stepX
		t.tMaxX += t.tDeltaX
		t.currY += t.stepY
		t.tMaxY += t.tDeltaY
	}
	return true
}

// Pos returns the current cell
func (t *GridTraverser) Pos() (int, int) {
	return t.currX, t.currY
}
