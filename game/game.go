package game

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// profileWarmup ignores slow ticks while the window is still settling
const profileWarmup = 3 * time.Second

// Game drives the simulation from ebiten's frame loop.
// The simulation is built on the first Layout call and rebuilt whenever the
// window size changes.
type Game struct {
	config Config
	rng    *rand.Rand

	sim      *Simulation
	backdrop *Backdrop
	twinkle  *Twinkle
	drawer   *ScreenDrawer

	// Viewport the simulation was built for
	width, height int

	// Performance profiling
	monitor   *FrameMonitor
	profiler  *Profiler
	startTime time.Time
}

// NewGame creates a new game instance
func NewGame(config Config) (*Game, error) {
	sprite, err := LoadGlowSprite()
	if err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		config:    config,
		rng:       rand.New(rand.NewSource(seed)),
		drawer:    NewScreenDrawer(ebiten.NewImageFromImage(sprite)),
		monitor:   NewFrameMonitor(500 * time.Millisecond),
		startTime: time.Now(),
	}
	if config.Twinkle > 0 {
		g.twinkle = NewTwinkle(config.Twinkle, seed)
	}
	if config.Profile.Enabled {
		g.profiler = NewProfiler(config.Profile.Dir)
	}
	return g, nil
}

// rebuild (re)builds the simulation and background art for a viewport size
func (g *Game) rebuild(width, height int) {
	log.Printf("Viewport %dx%d: rebuilding scene", width, height)

	g.width, g.height = width, height
	if g.sim == nil {
		g.sim = NewSimulation(g.config, g.rng, float64(width), float64(height))
	} else {
		g.sim.Reset(float64(width), float64(height))
	}

	g.drawer.Forget()
	g.backdrop = NewBackdrop(width, height, g.config.Background.Mountains)
}

// Update advances the simulation by one tick
func (g *Game) Update() error {
	if g.sim == nil {
		return nil
	}

	g.sim.Step()
	g.watchFrameRate()
	return nil
}

// watchFrameRate captures a profile when the tick rate drops
func (g *Game) watchFrameRate() {
	tps, ok := g.monitor.Tick(time.Now())
	if !ok || g.profiler == nil {
		return
	}
	if tps >= g.config.Profile.MinTPS || time.Since(g.startTime) < profileWarmup {
		return
	}

	reason := fmt.Sprintf("tps%.0f-particles%d-fragments%d", tps, len(g.sim.Particles()), len(g.sim.Fragments()))
	if err := g.profiler.CaptureProfile(reason); err == nil {
		log.Printf("Tick rate drop detected (%.0f TPS). Capturing performance profile...", tps)
	}
}

// Draw renders the scene
func (g *Game) Draw(screen *ebiten.Image) {
	if g.sim == nil {
		screen.Fill(colorSkyTop)
		return
	}

	g.drawer.Begin(screen)
	g.sim.Draw(g.drawer, g.backdrop, g.twinkle)
}

// Layout uses the window size as the logical screen size and rebuilds the
// scene when it changes
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		outsideWidth, outsideHeight = g.config.ScreenWidth, g.config.ScreenHeight
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.rebuild(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Simulation returns the running simulation, or nil before the first layout
func (g *Game) Simulation() *Simulation {
	return g.sim
}
