package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/tilemap"
)

var (
	cols     = flag.Int("cols", 35, "maze width in tiles, rounded down to odd")
	rows     = flag.Int("rows", 19, "maze height in tiles, rounded down to odd")
	braid    = flag.Float64("braid", 0.2, "chance of opening each dead end, 0..1")
	seed     = flag.Int64("seed", 0, "generation seed, 0 for time based")
	tileSize = flag.Float64("tile", 64, "tile edge in world units, power of two")
	faces    = flag.Bool("faces", false, "mark walls by their collidable faces")
)

func main() {
	flag.Parse()

	start := time.Now()
	grid := tilemap.GenerateMaze(tilemap.MazeConfig{
		Cols:     *cols,
		Rows:     *rows,
		Braiding: *braid,
		Seed:     *seed,
	})
	elapsed := time.Since(start)

	tm, err := tilemap.FromGrid(*tileSize, grid)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build tile map: %v\n", err)
		os.Exit(1)
	}

	b := tm.Bounds()
	fmt.Printf("Generated %dx%d in %v\n", tm.Cols(), tm.Rows(), elapsed)
	fmt.Printf("World %vx%v, %d solid of %d tiles\n", b.Width(), b.Height(), tm.SolidCount(), tm.Cols()*tm.Rows())

	draw(tm)
}

// draw prints walls as blocks, or with -faces by how many faces can be hit
func draw(tm *tilemap.TileMap) {
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for row := 0; row < tm.Rows(); row++ {
		for col := 0; col < tm.Cols(); col++ {
			t, ok := tm.Tile(col, row)
			switch {
			case !ok || !t.Solid:
				w.WriteRune(' ')
			case *faces:
				w.WriteRune(faceGlyph(t.Faces))
			default:
				w.WriteRune('█')
			}
		}
		w.WriteRune('\n')
	}
}

// faceGlyph shades a wall by the number of exposed faces; interior walls stay solid
func faceGlyph(f core.Faces) rune {
	n := 0
	for _, open := range [4]bool{f.N, f.S, f.E, f.W} {
		if open {
			n++
		}
	}
	return [5]rune{'█', '▓', '▒', '░', '·'}[n]
}
