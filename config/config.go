// Package config loads sandbox settings from TOML and builds worlds from them
package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/collide/constants"
)

var ErrInvalidConfig = errors.New("invalid config")

// Broad phase backend names
const (
	BackendQuadTree = "quadtree"
	BackendHash     = "hash"
)

// Config is the full sandbox configuration
type Config struct {
	World      WorldConfig      `toml:"world"`
	BroadPhase BroadPhaseConfig `toml:"broadphase"`
	Bodies     BodiesConfig     `toml:"bodies"`
	Tiles      TilesConfig      `toml:"tiles"`
	Sim        SimConfig        `toml:"sim"`
}

type WorldConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

type BroadPhaseConfig struct {
	Backend    string  `toml:"backend"`
	GridSize   float64 `toml:"grid_size"`
	MaxDepth   int     `toml:"max_depth"`
	MaxNodePop int     `toml:"max_node_pop"`
}

// BodiesConfig describes the randomly spawned population
type BodiesConfig struct {
	Count   int     `toml:"count"`
	MinSize float64 `toml:"min_size"`
	MaxSize float64 `toml:"max_size"`
	// MaxSpeed bounds the initial speed on each axis
	MaxSpeed float64 `toml:"max_speed"`
	// InfiniteFraction of the bodies spawn immovable
	InfiniteFraction float64 `toml:"infinite_fraction"`
	Seed             int64   `toml:"seed"`
}

// TilesConfig enables a generated maze as static geometry
type TilesConfig struct {
	Enabled  bool    `toml:"enabled"`
	TileSize float64 `toml:"tile_size"`
	Braiding float64 `toml:"braiding"`
}

type SimConfig struct {
	CleanupInterval int  `toml:"cleanup_interval"`
	Contain         bool `toml:"contain"`
}

// Default returns a runnable configuration
func Default() Config {
	return Config{
		World: WorldConfig{Width: 2000, Height: 2000},
		BroadPhase: BroadPhaseConfig{
			Backend:    BackendQuadTree,
			GridSize:   constants.SystemGridSize,
			MaxDepth:   constants.SystemMaxDepth,
			MaxNodePop: constants.SystemMaxNodePop,
		},
		Bodies: BodiesConfig{
			Count:            400,
			MinSize:          16,
			MaxSize:          48,
			MaxSpeed:         120,
			InfiniteFraction: 0.02,
			Seed:             1,
		},
		Tiles: TilesConfig{
			TileSize: 64,
			Braiding: 0.3,
		},
		Sim: SimConfig{
			CleanupInterval: constants.CleanupInterval,
			Contain:         true,
		},
	}
}

// Load reads path over the defaults; keys missing from the file keep their default
// Unknown keys are an error
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

// LoadOrDefault loads path, or validates and returns Default when path is empty
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return Load(path)
}

// Write encodes cfg as TOML
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate reports the first setting the world builder cannot use
func (c Config) Validate() error {
	switch {
	case !positive(c.World.Width) || !positive(c.World.Height):
		return fmt.Errorf("%w: world size %vx%v", ErrInvalidConfig, c.World.Width, c.World.Height)
	case c.BroadPhase.Backend != BackendQuadTree && c.BroadPhase.Backend != BackendHash:
		return fmt.Errorf("%w: backend %q, want %q or %q", ErrInvalidConfig, c.BroadPhase.Backend, BackendQuadTree, BackendHash)
	case !positive(c.BroadPhase.GridSize):
		return fmt.Errorf("%w: grid_size %v", ErrInvalidConfig, c.BroadPhase.GridSize)
	case c.BroadPhase.MaxDepth < 0:
		return fmt.Errorf("%w: max_depth %d", ErrInvalidConfig, c.BroadPhase.MaxDepth)
	case c.BroadPhase.MaxNodePop < 1:
		return fmt.Errorf("%w: max_node_pop %d", ErrInvalidConfig, c.BroadPhase.MaxNodePop)
	case c.Bodies.Count < 0:
		return fmt.Errorf("%w: body count %d", ErrInvalidConfig, c.Bodies.Count)
	case !positive(c.Bodies.MinSize) || c.Bodies.MaxSize < c.Bodies.MinSize:
		return fmt.Errorf("%w: body size range %v..%v", ErrInvalidConfig, c.Bodies.MinSize, c.Bodies.MaxSize)
	case c.Bodies.MaxSpeed < 0:
		return fmt.Errorf("%w: max_speed %v", ErrInvalidConfig, c.Bodies.MaxSpeed)
	case c.Bodies.InfiniteFraction < 0 || c.Bodies.InfiniteFraction > 1:
		return fmt.Errorf("%w: infinite_fraction %v", ErrInvalidConfig, c.Bodies.InfiniteFraction)
	case c.Tiles.Enabled && !positive(c.Tiles.TileSize):
		return fmt.Errorf("%w: tile_size %v", ErrInvalidConfig, c.Tiles.TileSize)
	case c.Tiles.Braiding < 0 || c.Tiles.Braiding > 1:
		return fmt.Errorf("%w: braiding %v", ErrInvalidConfig, c.Tiles.Braiding)
	case c.Sim.CleanupInterval < 1:
		return fmt.Errorf("%w: cleanup_interval %d", ErrInvalidConfig, c.Sim.CleanupInterval)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
