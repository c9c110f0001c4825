package engine

import (
	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/physics"
	"github.com/lixenwraith/collide/vmath"
)

// CollisionStats counts the work done by the last resolution passes
type CollisionStats struct {
	Bodies     int
	Candidates int
	Overlaps   int
	Resolved   int
	TileHits   int
}

// CollisionSystem owns the master body set and drives a broad-phase index
// Iteration order is insertion order, with removals swapping the last body into the hole
type CollisionSystem struct {
	index Index

	bodies []core.Body
	slots  map[core.Handle]int

	stats CollisionStats

	candidates []core.Body
	tiles      []core.Tile
	seen       map[core.Handle]struct{}
}

// NewCollisionSystem creates a system resolving through index
func NewCollisionSystem(index Index) *CollisionSystem {
	return &CollisionSystem{
		index: index,
		slots: make(map[core.Handle]int),
		seen:  make(map[core.Handle]struct{}),
	}
}

// Index returns the active broad phase
func (s *CollisionSystem) Index() Index {
	return s.index
}

// SetIndex swaps the broad phase, re-adding every body to the new index
func (s *CollisionSystem) SetIndex(index Index) {
	s.index.Clear()
	s.index = index
	s.index.Clear()
	for _, b := range s.bodies {
		s.index.Add(b)
	}
}

// Len returns the number of bodies in the master set
func (s *CollisionSystem) Len() int {
	return len(s.bodies)
}

// Bodies returns the master set
// INTERNAL USE ONLY - the slice is owned by the system, callers must not modify it
func (s *CollisionSystem) Bodies() []core.Body {
	return s.bodies
}

// LastStats returns the counters of the most recent resolution passes
func (s *CollisionSystem) LastStats() CollisionStats {
	return s.stats
}

// Add tracks a body in the master set and the index
func (s *CollisionSystem) Add(b core.Body) {
	if _, ok := s.slots[b.Handle()]; !ok {
		s.slots[b.Handle()] = len(s.bodies)
		s.bodies = append(s.bodies, b)
	}
	s.index.Add(b)
}

// AddAll adds each body in order
func (s *CollisionSystem) AddAll(bodies ...core.Body) {
	for _, b := range bodies {
		s.Add(b)
	}
}

// Remove drops a body from the master set and the index
func (s *CollisionSystem) Remove(b core.Body) {
	handle := b.Handle()
	slot, ok := s.slots[handle]
	if !ok {
		return
	}
	s.index.Remove(b)

	last := len(s.bodies) - 1
	if slot != last {
		moved := s.bodies[last]
		s.bodies[slot] = moved
		s.slots[moved.Handle()] = slot
	}
	s.bodies[last] = nil
	s.bodies = s.bodies[:last]
	delete(s.slots, handle)
}

// RemoveAll removes each body in order
func (s *CollisionSystem) RemoveAll(bodies ...core.Body) {
	for _, b := range bodies {
		s.Remove(b)
	}
}

// Move reindexes a tracked body after it changed position or size
func (s *CollisionSystem) Move(b core.Body) {
	if _, ok := s.slots[b.Handle()]; !ok {
		return
	}
	s.index.Move(b)
}

// MoveAll reindexes every tracked body
func (s *CollisionSystem) MoveAll() {
	for _, b := range s.bodies {
		s.index.Move(b)
	}
}

// Cleanup compacts the index
func (s *CollisionSystem) Cleanup() {
	s.index.Cleanup()
}

// ResolveCollisions separates every overlapping pair found through the index
// Each pair is visited from both sides; the second visit is a no-op because the
// resolver ignores pairs that are already separating
func (s *CollisionSystem) ResolveCollisions() {
	stats := CollisionStats{Bodies: len(s.bodies)}

	for _, b := range s.bodies {
		handle := b.Handle()
		s.candidates = s.index.Query(b.Region(), s.candidates[:0])
		stats.Candidates += len(s.candidates)

		for _, other := range s.candidates {
			if other.Handle() == handle {
				continue
			}
			// Earlier resolutions in this pass may have moved either body
			if !b.Region().Overlaps(other.Region()) {
				continue
			}
			stats.Overlaps++
			if physics.SeparateBodies(b, other) {
				stats.Resolved++
			}
		}
	}

	clear(s.candidates)
	s.stats = stats
}

// ResolveTiles pushes bodies out of the solid faces of static tiles
func (s *CollisionSystem) ResolveTiles(src TileSource) {
	hits := 0
	for _, b := range s.bodies {
		s.tiles = src.TilesInRegion(b.Region(), s.tiles[:0])
		for _, tile := range s.tiles {
			if !tile.Solid {
				continue
			}
			if physics.SeparateBodyFromTile(b, tile) {
				hits++
			}
		}
	}
	s.stats.TileHits = hits
}

// Query returns each body whose region overlaps r, once
func (s *CollisionSystem) Query(r core.Region) []core.Body {
	s.candidates = s.index.Query(r, s.candidates[:0])
	return s.dedupe(s.candidates, func(b core.Body) bool {
		return b.Region().Overlaps(r)
	})
}

// QueryByRadius returns bodies whose center lies strictly within radius of center
func (s *CollisionSystem) QueryByRadius(center vmath.Vec2, radius float64) []core.Body {
	if !(radius > 0) {
		return nil
	}
	r := core.RegionAround(center, 2*radius, 2*radius)
	s.candidates = s.index.Query(r, s.candidates[:0])
	return s.dedupe(s.candidates, func(b core.Body) bool {
		return vmath.WithinDistance(center, b.Kinetics().P, radius)
	})
}

// dedupe copies matching candidates into a fresh slice, dropping repeats
func (s *CollisionSystem) dedupe(candidates []core.Body, keep func(core.Body) bool) []core.Body {
	clear(s.seen)
	var out []core.Body
	for _, b := range candidates {
		if _, dup := s.seen[b.Handle()]; dup {
			continue
		}
		s.seen[b.Handle()] = struct{}{}
		if keep(b) {
			out = append(out, b)
		}
	}
	clear(candidates)
	return out
}
