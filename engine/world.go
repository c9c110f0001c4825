package engine

import (
	"github.com/lixenwraith/collide/constants"
	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/physics"
)

// World drives one fixed simulation step over a collision system
type World struct {
	bounds  core.Region
	system  *CollisionSystem
	tiles   TileSource
	contain bool

	cleanupInterval int
	tick            uint64
}

// WorldOption configures a World at construction
type WorldOption func(*World)

// WithContainment bounces bodies off the world bounds each step
func WithContainment(enabled bool) WorldOption {
	return func(w *World) {
		w.contain = enabled
	}
}

// WithTiles enables the tile collision pass against src
func WithTiles(src TileSource) WorldOption {
	return func(w *World) {
		w.tiles = src
	}
}

// WithCleanupInterval compacts the index every n steps; n < 1 means every step
func WithCleanupInterval(n int) WorldOption {
	return func(w *World) {
		w.cleanupInterval = n
	}
}

// NewWorld creates a world over system spanning bounds
func NewWorld(bounds core.Region, system *CollisionSystem, opts ...WorldOption) *World {
	w := &World{
		bounds:          bounds,
		system:          system,
		cleanupInterval: constants.CleanupInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.cleanupInterval < 1 {
		w.cleanupInterval = 1
	}
	return w
}

// Bounds returns the world region
func (w *World) Bounds() core.Region {
	return w.bounds
}

// System returns the collision system
func (w *World) System() *CollisionSystem {
	return w.system
}

// Tiles returns the tile source, nil when the tile pass is disabled
func (w *World) Tiles() TileSource {
	return w.tiles
}

// SetTiles replaces the tile source; nil disables the tile pass
func (w *World) SetTiles(src TileSource) {
	w.tiles = src
}

// Tick returns the number of completed steps
func (w *World) Tick() uint64 {
	return w.tick
}

// Step advances the simulation by dt seconds:
// integrate, contain, reindex, resolve bodies, resolve tiles, then periodic cleanup
func (w *World) Step(dt float64) {
	bodies := w.system.Bodies()

	for _, b := range bodies {
		physics.Step(b, dt)
		if w.contain {
			physics.ContainWithin(b, w.bounds)
		}
	}

	w.system.MoveAll()
	w.system.ResolveCollisions()
	if w.tiles != nil {
		w.system.ResolveTiles(w.tiles)
	}

	w.tick++
	if w.tick%uint64(w.cleanupInterval) == 0 {
		w.system.Cleanup()
	}
}
