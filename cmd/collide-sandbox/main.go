package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/collide/audio"
	"github.com/lixenwraith/collide/config"
	"github.com/lixenwraith/collide/constants"
	"github.com/lixenwraith/collide/core"
	"github.com/lixenwraith/collide/engine"
)

var (
	configPath = flag.String("config", "", "TOML config file")
	backend    = flag.String("backend", "", "broad phase backend: quadtree or hash")
	bodyCount  = flag.Int("bodies", -1, "number of bodies to spawn")
	debugFlag  = flag.Bool("debug", false, "write logs to logs/collide.log")
	muteFlag   = flag.Bool("mute", false, "start with impact sounds off")
	printFlag  = flag.Bool("print-config", false, "print the effective config and exit")
)

// bodyStep is how many bodies +/- adds or removes
const bodyStep = 25

type sandbox struct {
	screen tcell.Screen
	view   *view
	scene  *config.Scene
	clock  *engine.PausableClock
	step   *engine.FixedStepper
	sound  *audio.ImpactPlayer
	muted  bool

	debugView bool
	walls     []core.Tile

	frames    int
	steps     int
	lastStats time.Time
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
	if *printFlag {
		if err := cfg.Write(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to print config: %v\n", err)
			os.Exit(1)
		}
		return
	}

	scene, err := config.Build(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build world: %v\n", err)
		os.Exit(1)
	}
	log.Printf("world %vx%v backend %s bodies %d tiles %v",
		cfg.World.Width, cfg.World.Height, scene.Backend(), len(scene.Bodies), cfg.Tiles.Enabled)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Panic recovery: restore the terminal before printing the crash
	core.SetCrashRestore(screen.Fini)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	defer screen.Fini()

	screen.SetStyle(styleBg)
	screen.HideCursor()

	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	sb := &sandbox{
		screen:    screen,
		view:      newView(screen, scene.World.Bounds()),
		scene:     scene,
		clock:     clock,
		step:      engine.NewFixedStepper(clock),
		sound:     audio.NewImpactPlayer(nil),
		lastStats: time.Now(),
	}
	if scene.Tiles != nil {
		sb.walls = scene.Tiles.SolidTiles(nil)
	}

	if err := sb.sound.Initialize(); err != nil {
		// Non-fatal, the sandbox runs silent
		log.Printf("audio initialization failed: %v", err)
	}
	defer sb.sound.Close()
	if *muteFlag {
		sb.muted = !sb.sound.ToggleMute()
	}

	sb.run()
}

func (sb *sandbox) run() {
	ticker := time.NewTicker(constants.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	for {
		select {
		case ev := <-eventChan:
			if !sb.handleEvent(ev) {
				return
			}

		case <-ticker.C:
			sb.update()
			sb.draw()
		}
	}
}

func (sb *sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		sb.view.resize()
		sb.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				paused := sb.clock.Toggle()
				log.Printf("paused=%v after %v paused in total", paused, sb.clock.TotalPauseDuration())
			case 'b':
				next := config.OtherBackend(sb.scene.Backend())
				if err := sb.scene.SwapBackend(next); err != nil {
					log.Printf("backend swap to %s failed: %v", next, err)
					break
				}
				log.Printf("backend swapped to %s", next)
			case 'd':
				sb.debugView = !sb.debugView
			case '+', '=':
				sb.scene.Spawn(bodyStep)
			case '-', '_':
				sb.scene.Despawn(bodyStep)
			case 'm':
				sb.muted = !sb.sound.ToggleMute()
			}
		}
	}
	return true
}

// update runs the fixed steps owed since the last frame and cues one impact sound for them
func (sb *sandbox) update() {
	hits := 0
	n := sb.step.Advance(func(dt float64) {
		sb.scene.World.Step(dt)
		stats := sb.scene.World.System().LastStats()
		hits += stats.Resolved + stats.TileHits
	})
	sb.steps += n
	sb.frames++

	if hits > 0 && !sb.muted {
		sb.sound.Impact(hits)
	}

	if time.Since(sb.lastStats) >= constants.StatsLogInterval {
		stats := sb.scene.World.System().LastStats()
		log.Printf("tick %d backend %s frames %d steps %d dropped %v stats %+v",
			sb.scene.World.Tick(), sb.scene.Backend(), sb.frames, sb.steps, sb.step.Dropped(), stats)
		sb.frames, sb.steps = 0, 0
		sb.lastStats = time.Now()
	}
}

func (sb *sandbox) draw() {
	sb.screen.Clear()
	system := sb.scene.World.System()

	for _, t := range sb.walls {
		sb.view.fill(t.Region, '█', styleWall)
	}

	if sb.debugView {
		switch idx := system.Index().(type) {
		case *engine.QuadTree:
			idx.Render(treeCanvas{v: sb.view})
		case *engine.SpatialHash:
			drawHashCells(sb.view, idx, system.Bodies())
		}
	}

	for _, b := range system.Bodies() {
		sb.view.fill(b.Region(), '█', bodyStyle(b))
	}

	sb.drawStatus()
	sb.screen.Show()
}

func (sb *sandbox) drawStatus() {
	w, h := sb.screen.Size()
	y := h - 1
	for x := 0; x < w; x++ {
		sb.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	stats := sb.scene.World.System().LastStats()
	state := "running"
	if sb.clock.IsPaused() {
		state = "PAUSED"
	}
	sound := "on"
	if sb.muted {
		sound = "off"
	}
	text := fmt.Sprintf(" %s | %s | bodies %d | candidates %d | hits %d | tiles %d | sound %s | [space] pause [b] backend [d] debug [+/-] bodies [m] mute [q] quit",
		state, sb.scene.Backend(), stats.Bodies, stats.Candidates, stats.Resolved, stats.TileHits, sound)
	drawString(sb.view, 0, y, text, styleStatus)
}
