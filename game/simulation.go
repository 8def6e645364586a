package game

import (
	"image/color"
	"math"
)

// Rand is the randomness source of the simulation.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Float64 returns a uniform value in [0, 1)
	Float64() float64
}

// Simulation holds every live star and fragment plus the spawn scheduler.
// It is single-threaded: all mutation happens inside Step.
type Simulation struct {
	config Config
	rng    Rand

	// Viewport size in pixels
	width, height float64

	particles       []*Particle
	fragments       []*Fragment
	backgroundStars []Star

	// Spawn scheduler
	tick          int64
	spawnInterval int
}

// NewSimulation creates a simulation for a viewport of the given size
func NewSimulation(config Config, rng Rand, width, height float64) *Simulation {
	s := &Simulation{
		config: config,
		rng:    rng,
	}
	s.Reset(width, height)
	return s
}

// Reset discards all stars and fragments and rebuilds the background stars
// for a new viewport size. The spawn scheduler starts over.
func (s *Simulation) Reset(width, height float64) {
	s.width = width
	s.height = height

	s.particles = make([]*Particle, 0, 16)
	s.fragments = make([]*Fragment, 0, 256)
	s.tick = 0
	s.spawnInterval = s.config.Spawn.InitialInterval

	s.backgroundStars = make([]Star, s.config.BackgroundStars)
	for i := range s.backgroundStars {
		s.backgroundStars[i] = Star{
			X:      s.rng.Float64() * width,
			Y:      s.rng.Float64() * height,
			Radius: s.rng.Float64() * backgroundStarMaxRadius,
		}
	}
}

// Size returns the viewport size the simulation was built for
func (s *Simulation) Size() (float64, float64) {
	return s.width, s.height
}

// GroundHeight returns the height of the ground strip in pixels
func (s *Simulation) GroundHeight() float64 {
	return s.config.GroundRatio * s.height
}

// GroundLine returns the y coordinate bodies bounce on
func (s *Simulation) GroundLine() float64 {
	return s.height - s.GroundHeight()
}

// Tick returns the scheduler's tick counter
func (s *Simulation) Tick() int64 {
	return s.tick
}

// SpawnInterval returns the current spawn interval in ticks
func (s *Simulation) SpawnInterval() int {
	return s.spawnInterval
}

// Particles returns the live stars. The slice is owned by the simulation.
func (s *Simulation) Particles() []*Particle {
	return s.particles
}

// Fragments returns the live fragments. The slice is owned by the simulation.
func (s *Simulation) Fragments() []*Fragment {
	return s.fragments
}

// BackgroundStars returns the static background stars
func (s *Simulation) BackgroundStars() []Star {
	return s.backgroundStars
}

// AddParticle puts a star into the simulation
func (s *Simulation) AddParticle(p *Particle) {
	s.particles = append(s.particles, p)
}

// addFragment takes ownership of a fragment emitted by a shatter
func (s *Simulation) addFragment(f *Fragment) {
	s.fragments = append(s.fragments, f)
}

// Step advances the simulation by one tick.
// Stars are updated first; fragments they emit are updated in the same tick.
func (s *Simulation) Step() {
	for _, p := range s.particles {
		p.Update(s)
	}
	s.particles = prune(s.particles)

	for _, f := range s.fragments {
		f.Update(s)
	}
	s.fragments = prune(s.fragments)

	s.advanceScheduler()
}

// advanceScheduler counts one tick and spawns a star when the interval is hit.
// The wrap happens before the modulus check, so a wrap to 0 spawns.
func (s *Simulation) advanceScheduler() {
	s.tick++
	if s.tick >= s.config.Spawn.WrapBound {
		s.tick = 0
	}

	if s.tick%int64(s.spawnInterval) == 0 {
		s.spawn()
		s.spawnInterval = s.rollInterval()
	}
}

// spawn drops a new star above the viewport at a random column
func (s *Simulation) spawn() {
	radius := s.config.Spawn.Radius
	x := math.Max(radius, s.rng.Float64()*s.width-radius)
	s.AddParticle(NewParticle(x, s.config.Spawn.StartY, radius, colorStar, s.rng))
}

// rollInterval picks the next spawn interval uniformly in [MinInterval, MaxInterval]
func (s *Simulation) rollInterval() int {
	span := s.config.Spawn.MaxInterval - s.config.Spawn.MinInterval + 1
	return int(math.Floor(s.rng.Float64()*float64(span))) + s.config.Spawn.MinInterval
}

// prune drops dead entities, reusing the backing array.
// Pruning runs after the update pass so no element is skipped.
func prune[E Entity](entities []E) []E {
	kept := entities[:0]
	for _, e := range entities {
		if !e.Dead() {
			kept = append(kept, e)
		}
	}
	// Release pointers past the new length
	var zero E
	for i := len(kept); i < len(entities); i++ {
		entities[i] = zero
	}
	return kept
}

// Draw renders the whole scene.
// Background art is provided by the backdrop; nil draws only the sky fill and ground.
func (s *Simulation) Draw(d Drawer, bd *Backdrop, twinkle *Twinkle) {
	d.Clear()

	if bd != nil && bd.Sky != nil {
		d.DrawImage(bd.Sky, 0, 0)
	} else {
		d.FillRect(0, 0, s.width, s.height, colorSkyTop)
	}

	for i, star := range s.backgroundStars {
		clr := colorBackgroundStar
		if twinkle != nil {
			clr = fade(clr, twinkle.Alpha(i, s.tick))
		}
		d.FillCircle(star.X, star.Y, star.Radius, clr, true)
	}

	if bd != nil && bd.Mountains != nil {
		d.DrawImage(bd.Mountains, 0, 0)
	}

	d.FillRect(0, s.GroundLine(), s.width, s.GroundHeight(), colorGround)

	for _, p := range s.particles {
		p.Draw(d)
	}
	for _, f := range s.fragments {
		f.Draw(d)
	}
}

// clamp restricts v to [lo, hi]
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// fade scales a color's alpha by a factor in [0, 1]
func fade(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * clamp(alpha, 0, 1))
	return c
}
