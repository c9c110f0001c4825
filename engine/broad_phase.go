package engine

import (
	"errors"

	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/vmath"
)

var (
	ErrInvalidGridSize = errors.New("invalid grid size")
	ErrInvalidRegion   = errors.New("invalid region")
	ErrInvalidDepth    = errors.New("invalid max depth")
	ErrInvalidNodePop  = errors.New("invalid max node population")
)

// Index is a broad-phase structure tracking moving bodies by their AABB
// Implementations do not own bodies; callers must Remove a body before dropping it
type Index interface {
	// Add inserts a body, replacing any previous record for the same handle
	Add(b core.Body)
	// Remove drops a body; untracked bodies are ignored
	Remove(b core.Body)
	// Move reindexes a body after its region changed; untracked bodies are ignored
	Move(b core.Body)
	// Query appends candidates whose stored location touches r to buf
	// Results may contain false positives and duplicates
	Query(r core.Region, buf []core.Body) []core.Body
	// Cleanup reclaims structure emptied by moves; called once per tick at most
	Cleanup()
	// Clear drops every body
	Clear()
	// Len returns the number of tracked bodies
	Len() int
}

// DebugCanvas receives the quadtree structure for visualization
type DebugCanvas interface {
	NodeBounds(r core.Region, depth int)
	NodeLink(nodeCenter, bodyCenter vmath.Vec2)
}

// TileSource exposes static map geometry for the tile collision pass
type TileSource interface {
	TilesInRegion(r core.Region, buf []core.Tile) []core.Tile
}

var (
	_ Index = (*SpatialHash)(nil)
	_ Index = (*QuadTree)(nil)
)
