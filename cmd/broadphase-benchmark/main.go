package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/lixenwraith/collide/config"
	"github.com/lixenwraith/collide/constants"
)

var (
	bodies   = flag.Int("bodies", 8000, "number of bodies")
	ticks    = flag.Int("ticks", 300, "world steps per run")
	runs     = flag.Int("runs", 3, "runs per backend")
	size     = flag.Float64("world", 8000, "world edge length")
	seed     = flag.Int64("seed", 1, "spawn seed")
	tiles    = flag.Bool("tiles", false, "add a maze tile map")
	backends = flag.String("backend", "all", "backend to measure: all|quadtree|hash")
)

type result struct {
	backend    string
	perTick    time.Duration
	candidates int
	resolved   int
	allocs     uint64
}

func main() {
	flag.Parse()

	var names []string
	switch *backends {
	case "all":
		names = []string{config.BackendQuadTree, config.BackendHash}
	case config.BackendQuadTree, config.BackendHash:
		names = []string{*backends}
	default:
		fmt.Fprintf(os.Stderr, "Unknown backend %q\n", *backends)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.World.Width = *size
	cfg.World.Height = *size
	cfg.Bodies.Count = *bodies
	cfg.Bodies.Seed = *seed
	cfg.Tiles.Enabled = *tiles

	fmt.Printf("Broad phase benchmark: %d bodies, %vx%v world, %d ticks x %d runs\n",
		*bodies, *size, *size, *ticks, *runs)

	for _, name := range names {
		cfg.BroadPhase.Backend = name
		best := result{backend: name}
		for i := 0; i < *runs; i++ {
			r, err := measure(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Run failed: %v\n", err)
				os.Exit(1)
			}
			if best.perTick == 0 || r.perTick < best.perTick {
				best = r
			}
		}
		fmt.Printf("  %-9s best %10v/tick  candidates %8d  resolved %6d  allocs/tick %d\n",
			best.backend, best.perTick, best.candidates, best.resolved, best.allocs)
	}
}

// measure builds a fresh seeded world and times ticks fixed steps
func measure(cfg config.Config) (result, error) {
	scene, err := config.Build(cfg)
	if err != nil {
		return result{}, err
	}
	dt := constants.FixedStep.Seconds()

	// Warm up slices and tree nodes before timing
	for i := 0; i < 10; i++ {
		scene.World.Step(dt)
	}
	runtime.GC()

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()
	for i := 0; i < *ticks; i++ {
		scene.World.Step(dt)
	}
	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	stats := scene.World.System().LastStats()
	return result{
		backend:    cfg.BroadPhase.Backend,
		perTick:    elapsed / time.Duration(max(*ticks, 1)),
		candidates: stats.Candidates,
		resolved:   stats.Resolved,
		allocs:     (after.Mallocs - before.Mallocs) / uint64(max(*ticks, 1)),
	}, nil
}
