package engine

import (
	"math"
	"testing"

	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/vmath"
)

func TestWorldStepIntegratesAndResolves(t *testing.T) {
	bounds := square(512)
	s := NewCollisionSystem(mustTree(t, DefaultQuadTreeConfig(bounds)))
	w := NewWorld(bounds, s)

	a := core.NewObject(100, 100, 32, 32)
	b := core.NewObject(134, 100, 32, 32)
	a.V = vmath.V(60, 0)
	b.V = vmath.V(-60, 0)
	s.AddAll(a, b)

	// 2px gap closes after one 1/10 s step: each moves 6, overlap 10
	w.Step(0.1)

	if a.V != vmath.V(-60, 0) || b.V != vmath.V(60, 0) {
		t.Errorf("velocities %v %v, want reflected", a.V, b.V)
	}
	if d := b.P.X - a.P.X; math.Abs(d-32) > 1e-9 {
		t.Errorf("center distance %v, want 32", d)
	}
	if w.Tick() != 1 {
		t.Errorf("Tick = %d, want 1", w.Tick())
	}
}

func TestWorldContainment(t *testing.T) {
	bounds := square(100)
	s := NewCollisionSystem(mustHash(t, 32))
	w := NewWorld(bounds, s, WithContainment(true))

	b := core.NewObject(90, 50, 10, 10)
	b.V = vmath.V(100, 0)
	s.Add(b)

	w.Step(0.1)

	if b.P.X != 95 || b.V.X != -100 {
		t.Errorf("P.X %v V.X %v, want 95 and -100", b.P.X, b.V.X)
	}

	// Without containment the body leaves the world
	free := core.NewObject(90, 50, 10, 10)
	free.V = vmath.V(100, 0)
	s2 := NewCollisionSystem(mustHash(t, 32))
	s2.Add(free)
	NewWorld(bounds, s2).Step(0.1)
	if free.P.X != 100 {
		t.Errorf("uncontained P.X = %v, want 100", free.P.X)
	}
}

func TestWorldTilePass(t *testing.T) {
	bounds := square(128)
	s := NewCollisionSystem(mustHash(t, 64))
	floor := &gridTiles{tiles: []core.Tile{
		{Region: core.Region{Left: 0, Top: 64, Right: 64, Bottom: 128}, Solid: true, Faces: core.Faces{N: true, S: true, E: true, W: true}},
	}}
	w := NewWorld(bounds, s, WithTiles(floor))

	b := core.NewObject(32, 50, 20, 20) // bottom at 60
	b.V = vmath.V(0, 60)                // bottom reaches 66
	s.Add(b)

	w.Step(0.1)

	if b.V.Y != -60 {
		t.Errorf("V.Y = %v, want -60", b.V.Y)
	}
	if math.Abs(b.P.Y-54) > 1e-9 {
		t.Errorf("P.Y = %v, want 54", b.P.Y)
	}
	if s.LastStats().TileHits != 1 {
		t.Errorf("TileHits = %d, want 1", s.LastStats().TileHits)
	}

	w.SetTiles(nil)
	if w.Tiles() != nil {
		t.Error("SetTiles(nil) should disable the tile pass")
	}
}

func TestWorldCleanupInterval(t *testing.T) {
	bounds := square(256)
	tree := mustTree(t, QuadTreeConfig{Region: bounds, MaxDepth: 4, MaxNodePop: 1})
	s := NewCollisionSystem(tree)
	w := NewWorld(bounds, s, WithCleanupInterval(3))

	a := core.NewObject(20, 20, 4, 4)
	b := core.NewObject(200, 200, 4, 4)
	s.AddAll(a, b)
	if tree.IsLeaf() {
		t.Fatal("tree should have subdivided")
	}
	s.RemoveAll(a, b)

	w.Step(0.01)
	w.Step(0.01)
	if tree.IsLeaf() {
		t.Error("cleanup ran before the interval elapsed")
	}
	w.Step(0.01)
	if !tree.IsLeaf() {
		t.Error("cleanup did not run on the third step")
	}
}
