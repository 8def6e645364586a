package game

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// fixedRand always returns the same value
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// scriptedRand returns its values in order, cycling when exhausted
type scriptedRand struct {
	values []float64
	next   int
}

func (r *scriptedRand) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

const (
	testWidth  = 800.0
	testHeight = 600.0
)

// newTestSimulation creates a simulation with no background stars and a centered random source
func newTestSimulation(t *testing.T) *Simulation {
	t.Helper()
	config := DefaultConfig()
	config.BackgroundStars = 0
	return NewSimulation(config, fixedRand(0.5), testWidth, testHeight)
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSpawnSchedulerFirstSpawn(t *testing.T) {
	s := newTestSimulation(t)

	// Tick 0 is never checked: the counter is incremented before the check
	for i := 1; i < 75; i++ {
		s.Step()
		if len(s.Particles()) != 0 {
			t.Fatalf("unexpected spawn at tick %d", s.Tick())
		}
	}

	s.Step()
	if s.Tick() != 75 {
		t.Fatalf("expected tick 75, got %d", s.Tick())
	}
	if len(s.Particles()) != 1 {
		t.Fatalf("expected 1 star at tick 75, got %d", len(s.Particles()))
	}

	p := s.Particles()[0]
	// x = max(r, 0.5*800 - r)
	if p.X != 391 || p.Y != -100 || p.Radius != 9 {
		t.Errorf("unexpected spawn state: x=%.1f y=%.1f r=%.1f", p.X, p.Y, p.Radius)
	}
	if p.VX != 0 || p.VY != starInitialVY || p.Gravity != starGravity || p.Friction != starFriction {
		t.Errorf("unexpected spawn kinematics: %+v", p.Body)
	}
	if p.Color != colorStar {
		t.Errorf("expected star color, got %v", p.Color)
	}

	// floor(0.5 * 76) + 125
	if s.SpawnInterval() != 163 {
		t.Errorf("expected next interval 163, got %d", s.SpawnInterval())
	}
}

func TestSpawnSchedulerSpawnsOnMultiples(t *testing.T) {
	s := newTestSimulation(t)
	s.spawnInterval = 75
	s.rng = &scriptedRand{values: []float64{0.5}}
	s.config.Spawn.MinInterval = 75
	s.config.Spawn.MaxInterval = 75

	seen := make(map[*Particle]bool)
	spawnTicks := []int64{}
	for i := 0; i < 300; i++ {
		s.Step()
		for _, p := range s.Particles() {
			if !seen[p] {
				seen[p] = true
				spawnTicks = append(spawnTicks, s.Tick())
			}
		}
	}

	want := []int64{75, 150, 225, 300}
	if len(spawnTicks) != len(want) {
		t.Fatalf("expected spawns at %v, got %v", want, spawnTicks)
	}
	for i := range want {
		if spawnTicks[i] != want[i] {
			t.Errorf("spawn %d: expected tick %d, got %d", i, want[i], spawnTicks[i])
		}
	}
}

func TestSpawnSchedulerWrap(t *testing.T) {
	s := newTestSimulation(t)
	s.tick = s.config.Spawn.WrapBound - 1
	s.spawnInterval = 163

	s.Step()

	if s.Tick() != 0 {
		t.Fatalf("expected tick to wrap to 0, got %d", s.Tick())
	}
	// 0 mod n == 0, so the wrapped tick is a spawn tick
	if len(s.Particles()) != 1 {
		t.Errorf("expected a spawn on wrap, got %d stars", len(s.Particles()))
	}

	s.Step()
	if s.Tick() != 1 || len(s.Particles()) != 1 {
		t.Errorf("expected no spawn at tick 1, got tick=%d stars=%d", s.Tick(), len(s.Particles()))
	}
}

func TestRollInterval(t *testing.T) {
	tests := []struct {
		name string
		u    float64
		want int
	}{
		{name: "lowest", u: 0, want: 125},
		{name: "middle", u: 0.5, want: 163},
		{name: "highest", u: 0.999999, want: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSimulation(t)
			s.rng = fixedRand(tt.u)
			if got := s.rollInterval(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSpawnClampsLeftEdge(t *testing.T) {
	s := newTestSimulation(t)
	s.rng = fixedRand(0)

	s.spawn()

	if got := s.Particles()[0].X; got != 9 {
		t.Errorf("expected x clamped to the radius (9), got %.1f", got)
	}
}

func TestResetClearsState(t *testing.T) {
	config := DefaultConfig()
	rng := &scriptedRand{values: []float64{0.1, 0.7, 0.99, 0.3, 0.5}}
	s := NewSimulation(config, rng, testWidth, testHeight)

	for i := 0; i < 80; i++ {
		s.Step()
	}
	s.addFragment(s.newFragment(10, 10))
	if len(s.Particles()) == 0 || len(s.Fragments()) == 0 {
		t.Fatal("expected live entities before reset")
	}

	s.Reset(320, 240)

	if len(s.Particles()) != 0 || len(s.Fragments()) != 0 {
		t.Errorf("expected no live entities after reset, got %d stars %d fragments",
			len(s.Particles()), len(s.Fragments()))
	}
	if s.Tick() != 0 || s.SpawnInterval() != config.Spawn.InitialInterval {
		t.Errorf("expected scheduler restart, got tick=%d interval=%d", s.Tick(), s.SpawnInterval())
	}
	if w, h := s.Size(); w != 320 || h != 240 {
		t.Errorf("expected size 320x240, got %.0fx%.0f", w, h)
	}

	stars := s.BackgroundStars()
	if len(stars) != 200 {
		t.Fatalf("expected 200 background stars, got %d", len(stars))
	}
	for i, star := range stars {
		if star.Radius < 0 || star.Radius >= 3 {
			t.Errorf("star %d: radius %.2f out of [0,3)", i, star.Radius)
		}
		if star.X < 0 || star.X >= 320 || star.Y < 0 || star.Y >= 240 {
			t.Errorf("star %d: position (%.1f, %.1f) outside the viewport", i, star.X, star.Y)
		}
	}
}

func TestGroundLine(t *testing.T) {
	s := newTestSimulation(t)
	if !approxEqual(s.GroundHeight(), 54) {
		t.Errorf("expected ground height 54, got %f", s.GroundHeight())
	}
	if !approxEqual(s.GroundLine(), 546) {
		t.Errorf("expected ground line 546, got %f", s.GroundLine())
	}
}

func TestPruneKeepsNeighbors(t *testing.T) {
	s := newTestSimulation(t)

	// Two adjacent fragments expire together; removing in place while
	// iterating forward would skip the second one.
	for _, ttl := range []int{1, 1, 5, 1} {
		f := s.newFragment(400, 100)
		f.TTL = ttl
		s.addFragment(f)
	}

	s.Step()

	if len(s.Fragments()) != 1 {
		t.Fatalf("expected 1 surviving fragment, got %d", len(s.Fragments()))
	}
	if s.Fragments()[0].TTL != 4 {
		t.Errorf("expected the ttl=5 fragment to survive, got ttl=%d", s.Fragments()[0].TTL)
	}
}

func TestFragmentsFromShatterUpdateSameTick(t *testing.T) {
	s := newTestSimulation(t)
	s.AddParticle(&Particle{Body: Body{X: 400, Y: 540, VY: 5, Radius: 9, Gravity: 1, Friction: 0.8}})

	s.Step()

	if len(s.Fragments()) != 8 {
		t.Fatalf("expected 8 fragments, got %d", len(s.Fragments()))
	}
	for _, f := range s.Fragments() {
		if f.TTL != 99 {
			t.Errorf("expected fragments to age in the tick they were born, got ttl=%d", f.TTL)
		}
	}
}

// recordingDrawer counts drawing calls
type recordingDrawer struct {
	clears  int
	rects   int
	circles []color.Color
	images  int
}

func (d *recordingDrawer) Clear() { d.clears++ }

func (d *recordingDrawer) FillRect(x, y, width, height float64, clr color.Color) { d.rects++ }

func (d *recordingDrawer) FillCircle(x, y, radius float64, clr color.Color, glow bool) {
	d.circles = append(d.circles, clr)
}

func (d *recordingDrawer) DrawImage(img image.Image, x, y float64) { d.images++ }

func TestSimulationDraw(t *testing.T) {
	config := DefaultConfig()
	s := NewSimulation(config, fixedRand(0.5), testWidth, testHeight)
	s.AddParticle(NewParticle(100, 100, 9, colorStar, fixedRand(0.5)))
	s.addFragment(s.newFragment(200, 200))

	expired := s.newFragment(300, 300)
	expired.Opacity = -0.5
	s.addFragment(expired)

	backdrop := &Backdrop{
		Sky:       image.NewRGBA(image.Rect(0, 0, 8, 8)),
		Mountains: image.NewRGBA(image.Rect(0, 0, 8, 8)),
	}
	d := &recordingDrawer{}
	s.Draw(d, backdrop, nil)

	if d.clears != 1 {
		t.Errorf("expected 1 clear, got %d", d.clears)
	}
	if d.images != 2 {
		t.Errorf("expected sky and mountain images, got %d", d.images)
	}
	if d.rects != 1 {
		t.Errorf("expected only the ground rect, got %d", d.rects)
	}
	// 200 background stars, 1 star, 1 visible fragment
	if len(d.circles) != 202 {
		t.Errorf("expected 202 circles, got %d", len(d.circles))
	}
}

func TestSimulationDrawWithoutBackdrop(t *testing.T) {
	s := newTestSimulation(t)
	d := &recordingDrawer{}

	s.Draw(d, nil, nil)

	if d.images != 0 || d.rects != 2 {
		t.Errorf("expected sky and ground rects only, got images=%d rects=%d", d.images, d.rects)
	}
}
