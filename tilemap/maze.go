package tilemap

import (
	"math/rand"
	"time"
)

// MazeConfig controls GenerateMaze
type MazeConfig struct {
	// Cols and Rows are rounded down to odd values, minimum 3
	Cols, Rows int

	// Braiding is the chance (0..1) that a dead end is opened into a loop
	Braiding float64

	// Seed makes generation repeatable; 0 picks a time-based seed
	Seed int64
}

type cell struct {
	x, y int
}

var (
	jumps = [4]cell{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
	steps = [4]cell{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
)

// GenerateMaze carves a walled maze with a recursive backtracker
// Rooms sit on odd coordinates; the outer ring is always wall
func GenerateMaze(cfg MazeConfig) [][]bool {
	cols := oddAtLeast3(cfg.Cols)
	rows := oddAtLeast3(cfg.Rows)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	grid := make([][]bool, rows)
	for y := range grid {
		grid[y] = make([]bool, cols)
		for x := range grid[y] {
			grid[y][x] = true
		}
	}

	carve(grid, rng)
	if cfg.Braiding > 0 {
		braid(grid, cfg.Braiding, rng)
	}
	return grid
}

// carve walks from (1,1) knocking down the wall toward a random unvisited room
func carve(grid [][]bool, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])
	stack := []cell{{1, 1}}
	grid[1][1] = false

	var open []cell
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		open = open[:0]
		for _, j := range jumps {
			nx, ny := cur.x+j.x, cur.y+j.y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && grid[ny][nx] {
				open = append(open, j)
			}
		}
		if len(open) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		j := open[rng.Intn(len(open))]
		grid[cur.y+j.y/2][cur.x+j.x/2] = false
		next := cell{cur.x + j.x, cur.y + j.y}
		grid[next.y][next.x] = false
		stack = append(stack, next)
	}
}

// braid opens dead ends into loops without creating 2x2 open areas
func braid(grid [][]bool, chance float64, rng *rand.Rand) {
	rows, cols := len(grid), len(grid[0])

	var walls []cell
	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if grid[y][x] || exits(grid, x, y) != 1 || rng.Float64() >= chance {
				continue
			}

			walls = walls[:0]
			for _, j := range jumps {
				nx, ny := x+j.x, y+j.y
				wx, wy := x+j.x/2, y+j.y/2
				if nx <= 0 || nx >= cols-1 || ny <= 0 || ny >= rows-1 {
					continue
				}
				if grid[wy][wx] && !grid[ny][nx] && !opensPlaza(grid, wx, wy) {
					walls = append(walls, cell{wx, wy})
				}
			}
			if len(walls) > 0 {
				w := walls[rng.Intn(len(walls))]
				grid[w.y][w.x] = false
			}
		}
	}
}

func exits(grid [][]bool, x, y int) int {
	n := 0
	for _, s := range steps {
		if !grid[y+s.y][x+s.x] {
			n++
		}
	}
	return n
}

// opensPlaza reports whether clearing (x, y) completes a 2x2 block of passages
func opensPlaza(grid [][]bool, x, y int) bool {
	open := func(cx, cy int) bool {
		return cy >= 0 && cy < len(grid) && cx >= 0 && cx < len(grid[cy]) && !grid[cy][cx]
	}
	for _, dy := range [2]int{-1, 1} {
		for _, dx := range [2]int{-1, 1} {
			if open(x+dx, y) && open(x, y+dy) && open(x+dx, y+dy) {
				return true
			}
		}
	}
	return false
}

func oddAtLeast3(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
