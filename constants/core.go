package constants

import "time"

// Simulation Loop Timing
const (
	// FixedStep is the simulated duration of one physics step (60 steps per second)
	FixedStep = time.Second / 60

	// MaxStepsPerFrame bounds catch-up work after a stalled frame
	// Accumulated time beyond this many steps is dropped
	MaxStepsPerFrame = 10

	// MaxFrameDelta clamps a single wall-clock delta before accumulation
	MaxFrameDelta = time.Second

	// FrameUpdateInterval is the rendering frame interval of the sandboxes (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// CleanupInterval is the number of steps between quadtree compactions
	CleanupInterval = 1
)

// Broad Phase Defaults
const (
	// DefaultGridSize is the spatial hash cell size before power-of-two rounding
	DefaultGridSize = 64

	// DefaultMaxDepth is the quadtree recursion ceiling
	DefaultMaxDepth = 10

	// DefaultMaxNodePop is the quadtree leaf occupancy that triggers subdivision
	DefaultMaxNodePop = 4

	// SystemGridSize, SystemMaxDepth and SystemMaxNodePop are the tuned values
	// the collision system uses for live simulations
	SystemGridSize   = 128
	SystemMaxDepth   = 7
	SystemMaxNodePop = 4

	// HashMaxBodyCells is the cell count above which the spatial hash keeps a body
	// in its wide list instead of one bucket per cell
	HashMaxBodyCells = 1024
)

// Collision Response
const (
	// Restitution is the fixed coefficient of restitution (perfectly elastic)
	Restitution = 1.0

	// BoundsAccelDamping scales the reversed acceleration after a world-bounds bounce
	BoundsAccelDamping = 0.9
)
