package physics

import (
	"math"

	"github.com/lixenwraith/collide/constants"
	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/vmath"
)

// Manifold describes how two overlapping bodies should be pulled apart
type Manifold struct {
	A, B core.Body
	// Normal is the unit axis from A toward B along which the overlap is resolved
	Normal vmath.Vec2
	// Overlap is the penetration depth along Normal
	Overlap float64
}

// TileManifold describes a body penetrating a solid tile face
type TileManifold struct {
	Body core.Body
	Tile core.Tile
	// Normal points from the body toward the tile face it hit
	Normal  vmath.Vec2
	Overlap float64
}

// SeparateBodies resolves a collision between two overlapping bodies
// Returns true if velocity and position were corrected
func SeparateBodies(a, b core.Body) bool {
	return Resolve(BodyVsBody(a, b))
}

// SeparateBodyFromTile resolves a collision between a body and a static tile
// Returns true if a correction was applied
func SeparateBodyFromTile(b core.Body, tile core.Tile) bool {
	m, ok := BodyVsTile(b, tile)
	if !ok {
		return false
	}
	return ResolveTile(m)
}

// BodyVsBody picks the separation axis for two bodies
// Only one axis is corrected: the one with less overlap, so the push is minimal
// Equal overlaps resolve along Y
func BodyVsBody(a, b core.Body) Manifold {
	ka, kb := a.Kinetics(), b.Kinetics()
	wa, ha := a.Size()
	wb, hb := b.Size()

	dx := kb.P.X - ka.P.X
	dy := kb.P.Y - ka.P.Y
	overlapX := wa/2 + wb/2 - math.Abs(dx)
	overlapY := ha/2 + hb/2 - math.Abs(dy)

	if overlapX < overlapY {
		return Manifold{A: a, B: b, Normal: vmath.V(vmath.Sign(dx), 0), Overlap: overlapX}
	}
	return Manifold{A: a, B: b, Normal: vmath.V(0, vmath.Sign(dy)), Overlap: overlapY}
}

// Resolve applies elastic response and positional correction weighted by inverse mass
// Pairs already separating along the normal are left untouched, which makes a
// second visit of the same pair a no-op
func Resolve(m Manifold) bool {
	ka, kb := m.A.Kinetics(), m.B.Kinetics()

	velAlongNormal := m.Normal.Dot(kb.V.Sub(ka.V))
	if velAlongNormal >= 0 {
		return false
	}

	shareA, shareB := InverseMassShares(m.A, m.B)

	// (1 + e): one part cancels the approach, e parts send it back
	push := -(1 + constants.Restitution) * velAlongNormal
	dv := m.Normal.Scale(push)
	ka.V = ka.V.Sub(dv.Scale(shareA))
	kb.V = kb.V.Add(dv.Scale(shareB))

	// Impact resets applied forces so the next integration starts clean
	ka.A = vmath.Vec2{}
	kb.A = vmath.Vec2{}

	dp := m.Normal.Scale(m.Overlap)
	ka.P = ka.P.Sub(dp.Scale(shareA))
	kb.P = kb.P.Add(dp.Scale(shareB))
	return true
}

// BodyVsTile picks the solid tile face with least overlap on the side facing the body
// Faces shared with neighboring solid tiles are never candidates, so bodies are not
// caught on internal seams; no candidate face means no collision this frame
func BodyVsTile(b core.Body, tile core.Tile) (TileManifold, bool) {
	k := b.Kinetics()
	w, h := b.Size()
	tr := tile.Region

	dx := tr.MidX() - k.P.X
	dy := tr.MidY() - k.P.Y
	overlapX := w/2 + tr.Width()/2 - math.Abs(dx)
	overlapY := h/2 + tr.Height()/2 - math.Abs(dy)

	minOverlap := math.MaxFloat64
	var normal vmath.Vec2
	found := false

	// Tile to the right, its west face is solid
	if dx > 0 && tile.Faces.W && overlapX < minOverlap {
		normal, minOverlap, found = vmath.V(1, 0), overlapX, true
	}
	// Tile to the left, its east face is solid
	if dx < 0 && tile.Faces.E && overlapX < minOverlap {
		normal, minOverlap, found = vmath.V(-1, 0), overlapX, true
	}
	// Tile below, its north face is solid
	if dy > 0 && tile.Faces.N && overlapY < minOverlap {
		normal, minOverlap, found = vmath.V(0, 1), overlapY, true
	}
	// Tile above, its south face is solid
	if dy < 0 && tile.Faces.S && overlapY < minOverlap {
		normal, minOverlap, found = vmath.V(0, -1), overlapY, true
	}

	if !found {
		return TileManifold{}, false
	}
	return TileManifold{Body: b, Tile: tile, Normal: normal, Overlap: minOverlap}, true
}

// ResolveTile corrects a body against a static tile of infinite mass
// The body takes the full correction; same early exit as body pairs
func ResolveTile(m TileManifold) bool {
	k := m.Body.Kinetics()

	// Tile is stationary: relative velocity is -v
	velAlongNormal := m.Normal.Dot(k.V.Neg())
	if velAlongNormal >= 0 {
		return false
	}

	push := -(1 + constants.Restitution) * velAlongNormal
	k.V = k.V.Sub(m.Normal.Scale(push))
	k.A = vmath.Vec2{}
	k.P = k.P.Sub(m.Normal.Scale(m.Overlap))
	return true
}

// InverseMassShares returns each body's share (0..1) of the summed inverse mass
// The lighter body gets the larger share; infinite mass gets none
// Two infinite-mass bodies both get zero instead of 0/0
//
//	masses 2 and 10: total = 1/2 + 1/10, shares ~0.83 and ~0.17
func InverseMassShares(a, b core.Body) (shareA, shareB float64) {
	invA := core.InverseMass(a)
	invB := core.InverseMass(b)
	total := invA + invB
	if total == 0 {
		return 0, 0
	}
	return invA / total, invB / total
}
