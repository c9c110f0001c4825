package config

import (
	"fmt"
	"math/rand"

	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/engine"
	"github.com/lixenwraith/collide/tilemap"
	"github.com/lixenwraith/collide/vmath"
)

// Bounds returns the world region anchored at the origin
func (c Config) Bounds() core.Region {
	return core.Region{Right: c.World.Width, Bottom: c.World.Height}
}

// NewIndex builds the broad phase named by backend with the configured tuning
func (c Config) NewIndex(backend string) (engine.Index, error) {
	switch backend {
	case BackendQuadTree:
		qt, err := engine.NewQuadTree(engine.QuadTreeConfig{
			Region:     c.Bounds(),
			MaxDepth:   c.BroadPhase.MaxDepth,
			MaxNodePop: c.BroadPhase.MaxNodePop,
		})
		if err != nil {
			return nil, err
		}
		return qt, nil
	case BackendHash:
		h, err := engine.NewSpatialHash(c.BroadPhase.GridSize)
		if err != nil {
			return nil, err
		}
		return h, nil
	default:
		return nil, fmt.Errorf("%w: backend %q", ErrInvalidConfig, backend)
	}
}

// OtherBackend returns the backend a sandbox swaps to from backend
func OtherBackend(backend string) string {
	if backend == BackendQuadTree {
		return BackendHash
	}
	return BackendQuadTree
}

// Scene is a world populated from a Config
type Scene struct {
	World *engine.World
	Tiles *tilemap.TileMap
	// Bodies in spawn order
	Bodies []*core.Object

	cfg Config
	rng *rand.Rand
}

// Build validates c and populates a world with its tile map and bodies
func Build(c Config) (*Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	index, err := c.NewIndex(c.BroadPhase.Backend)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		cfg: c,
		rng: rand.New(rand.NewSource(c.Bodies.Seed)),
	}

	opts := []engine.WorldOption{
		engine.WithContainment(c.Sim.Contain),
		engine.WithCleanupInterval(c.Sim.CleanupInterval),
	}
	if c.Tiles.Enabled {
		grid := tilemap.GenerateMaze(tilemap.MazeConfig{
			Cols:     int(c.World.Width / c.Tiles.TileSize),
			Rows:     int(c.World.Height / c.Tiles.TileSize),
			Braiding: c.Tiles.Braiding,
			Seed:     c.Bodies.Seed,
		})
		tm, err := tilemap.FromGrid(c.Tiles.TileSize, grid)
		if err != nil {
			return nil, fmt.Errorf("failed to build tile map: %w", err)
		}
		s.Tiles = tm
		opts = append(opts, engine.WithTiles(tm))
	}

	s.World = engine.NewWorld(c.Bounds(), engine.NewCollisionSystem(index), opts...)
	s.Spawn(c.Bodies.Count)
	return s, nil
}

// Spawn adds n random bodies to the world
// With a tile map, bodies start centered in open tiles and fit inside a passage
func (s *Scene) Spawn(n int) {
	bc := s.cfg.Bodies
	for range n {
		size := bc.MinSize + s.rng.Float64()*(bc.MaxSize-bc.MinSize)
		var p vmath.Vec2
		if s.Tiles != nil {
			size = min(size, s.Tiles.TileSize()*0.75)
			p = s.openTileCenter()
		} else {
			p = vmath.V(
				size/2+s.rng.Float64()*max(s.cfg.World.Width-size, 0),
				size/2+s.rng.Float64()*max(s.cfg.World.Height-size, 0),
			)
		}

		o := core.NewObject(p.X, p.Y, size, size)
		if s.rng.Float64() < bc.InfiniteFraction {
			o.M = core.InfiniteMass
		} else {
			// Mass grows with area, normalized to the smallest body
			o.M = (size * size) / (bc.MinSize * bc.MinSize)
			o.V = vmath.V(
				(s.rng.Float64()*2-1)*bc.MaxSpeed,
				(s.rng.Float64()*2-1)*bc.MaxSpeed,
			)
			o.LookAtVelocity()
		}

		s.Bodies = append(s.Bodies, o)
		s.World.System().Add(o)
	}
}

// Despawn removes up to n of the most recently spawned bodies
func (s *Scene) Despawn(n int) {
	n = min(n, len(s.Bodies))
	if n <= 0 {
		return
	}
	cut := len(s.Bodies) - n
	for _, o := range s.Bodies[cut:] {
		s.World.System().Remove(o)
	}
	clear(s.Bodies[cut:])
	s.Bodies = s.Bodies[:cut]
}

// SwapBackend moves every body to a freshly built backend and returns its name
func (s *Scene) SwapBackend(backend string) error {
	index, err := s.cfg.NewIndex(backend)
	if err != nil {
		return err
	}
	s.World.System().SetIndex(index)
	s.cfg.BroadPhase.Backend = backend
	return nil
}

// Backend returns the name of the active broad phase
func (s *Scene) Backend() string {
	return s.cfg.BroadPhase.Backend
}

func (s *Scene) openTileCenter() vmath.Vec2 {
	size := s.Tiles.TileSize()
	for {
		col := s.rng.Intn(s.Tiles.Cols())
		row := s.rng.Intn(s.Tiles.Rows())
		if v, ok := s.Tiles.TileAt(col, row); ok && v == tilemap.Empty {
			return vmath.V((float64(col)+0.5)*size, (float64(row)+0.5)*size)
		}
	}
}
