package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/collide/audio"
	"github.com/lixenwraith/collide/config"
	"github.com/lixenwraith/collide/constants"
	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/engine"
	"github.com/lixenwraith/collide/vmath"
)

var (
	configPath = flag.String("config", "", "TOML config file")
	backend    = flag.String("backend", "", "broad phase backend: quadtree or hash")
	bodyCount  = flag.Int("bodies", -1, "number of bodies to spawn")
	debugFlag  = flag.Bool("debug", false, "write logs to logs/collide.log")
	windowSize = flag.Int("size", 900, "window edge length in pixels")
)

// bodyStep is how many bodies +/- adds or removes
const bodyStep = 25

var (
	colorBg     = color.RGBA{R: 26, G: 27, B: 38, A: 255}
	colorWall   = color.RGBA{R: 86, G: 95, B: 137, A: 255}
	colorStatic = color.RGBA{R: 169, G: 177, B: 214, A: 255}
	colorLink   = color.RGBA{R: 255, G: 255, B: 255, A: 24}
	colorCell   = color.RGBA{R: 122, G: 162, B: 247, A: 90}

	depthColors = []color.RGBA{
		{R: 122, G: 162, B: 247, A: 160},
		{R: 158, G: 206, B: 106, A: 160},
		{R: 224, G: 175, B: 104, A: 160},
		{R: 187, G: 154, B: 247, A: 160},
		{R: 125, G: 207, B: 255, A: 160},
		{R: 247, G: 118, B: 142, A: 160},
	}
)

// errQuit ends RunGame cleanly
var errQuit = errors.New("quit")

// Game adapts the collision world to ebiten's fixed 60 TPS update loop
type Game struct {
	scene  *config.Scene
	bounds core.Region
	walls  *ebiten.Image
	sound  *audio.ImpactPlayer

	paused    bool
	debugView bool
}

func main() {
	flag.Parse()

	logFile := config.SetupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *backend != "" {
		cfg.BroadPhase.Backend = *backend
	}
	if *bodyCount >= 0 {
		cfg.Bodies.Count = *bodyCount
	}

	scene, err := config.Build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build world: %v\n", err)
		os.Exit(1)
	}

	g := &Game{
		scene:  scene,
		bounds: scene.World.Bounds(),
		sound:  audio.NewImpactPlayer(nil),
	}
	if err := g.sound.Initialize(); err != nil {
		log.Printf("audio initialization failed: %v", err)
	}
	defer g.sound.Close()

	// Window keeps the world aspect ratio
	aspect := g.bounds.Height() / g.bounds.Width()
	ebiten.SetWindowSize(*windowSize, int(math.Round(float64(*windowSize)*aspect)))
	ebiten.SetWindowTitle("collide")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(int(math.Round(1 / constants.FixedStep.Seconds())))

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, errQuit) {
		log.Printf("game loop ended: %v", err)
		fmt.Fprintf(os.Stderr, "Game loop ended: %v\n", err)
		os.Exit(1)
	}
}

// Update handles input and advances the world by one fixed step
func (g *Game) Update() error {
	if g.handleInput() {
		return errQuit
	}
	if g.paused {
		return nil
	}

	g.scene.World.Step(constants.FixedStep.Seconds())
	stats := g.scene.World.System().LastStats()
	if hits := stats.Resolved + stats.TileHits; hits > 0 {
		g.sound.Impact(hits)
	}
	return nil
}

// handleInput reports whether the user asked to quit
func (g *Game) handleInput() bool {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return true
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		next := config.OtherBackend(g.scene.Backend())
		if err := g.scene.SwapBackend(next); err != nil {
			log.Printf("backend swap to %s failed: %v", next, err)
		} else {
			log.Printf("backend swapped to %s", next)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		g.debugView = !g.debugView
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		g.scene.Spawn(bodyStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		g.scene.Despawn(bodyStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.sound.ToggleMute()
	}
	return false
}

// Draw renders walls, the optional broad phase overlay, bodies and the status text
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBg)

	if g.scene.Tiles != nil {
		if g.walls == nil {
			g.walls = g.renderWalls()
		}
		screen.DrawImage(g.walls, nil)
	}

	system := g.scene.World.System()
	if g.debugView {
		switch idx := system.Index().(type) {
		case *engine.QuadTree:
			idx.Render(imageCanvas{dst: screen})
		case *engine.SpatialHash:
			drawHashCells(screen, idx, system.Bodies())
		}
	}

	for _, b := range system.Bodies() {
		r := b.Region()
		vector.DrawFilledRect(screen, float32(r.Left), float32(r.Top), float32(r.Width()), float32(r.Height()), bodyColor(b), false)
	}

	stats := system.LastStats()
	state := "running"
	if g.paused {
		state = "paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s | %s | tps %.0f fps %.0f\nbodies %d candidates %d hits %d tiles %d\n[space] pause [b] backend [d] debug [+/-] bodies [m] mute [q] quit",
		state, g.scene.Backend(), ebiten.ActualTPS(), ebiten.ActualFPS(),
		stats.Bodies, stats.Candidates, stats.Resolved, stats.TileHits))
}

// Layout keeps world units as the logical screen; ebiten scales to the window
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.bounds.Width()), int(g.bounds.Height())
}

func (g *Game) renderWalls() *ebiten.Image {
	img := ebiten.NewImage(int(g.bounds.Width()), int(g.bounds.Height()))
	for _, t := range g.scene.Tiles.SolidTiles(nil) {
		r := t.Region
		vector.DrawFilledRect(img, float32(r.Left), float32(r.Top), float32(r.Width()), float32(r.Height()), colorWall, false)
	}
	return img
}

func bodyColor(b core.Body) color.RGBA {
	if b.Mass() == core.InfiniteMass {
		return colorStatic
	}
	heat := math.Min(b.Kinetics().V.Len()/200, 1)
	return color.RGBA{
		R: uint8(80 + 175*heat),
		G: uint8(200 - 120*heat),
		B: uint8(255 - 175*heat),
		A: 255,
	}
}

// imageCanvas draws quadtree nodes as outlines and body links as faint lines
type imageCanvas struct {
	dst *ebiten.Image
}

func (c imageCanvas) NodeBounds(r core.Region, depth int) {
	vector.StrokeRect(c.dst, float32(r.Left), float32(r.Top), float32(r.Width()), float32(r.Height()),
		2, depthColors[depth%len(depthColors)], false)
}

func (c imageCanvas) NodeLink(nodeCenter, bodyCenter vmath.Vec2) {
	vector.StrokeLine(c.dst, float32(nodeCenter.X), float32(nodeCenter.Y),
		float32(bodyCenter.X), float32(bodyCenter.Y), 1, colorLink, false)
}

var _ engine.DebugCanvas = imageCanvas{}

// drawHashCells outlines every occupied spatial hash cell once
func drawHashCells(dst *ebiten.Image, h *engine.SpatialHash, bodies []core.Body) {
	size := float32(h.CellSize())
	seen := make(map[engine.CellKey]struct{})
	for _, b := range bodies {
		for _, k := range h.CellsOf(b) {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			vector.StrokeRect(dst, float32(k.X)*size, float32(k.Y)*size, size, size, 1, colorCell, false)
		}
	}
}
