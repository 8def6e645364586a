package game

import (
	"image/color"
)

// Body is the kinematic state shared by falling stars and their fragments
type Body struct {
	// Position in screen coordinates
	X, Y float64

	// Velocity in pixels per tick
	VX, VY float64

	// Radius in pixels (0 or less means the body is used up)
	Radius float64

	Color color.NRGBA

	// Gravity is added to VY on every tick without a ground impact
	Gravity float64

	// Friction is the share of velocity kept after a bounce
	Friction float64
}

// Entity is anything the simulation advances once per tick
type Entity interface {
	// Update advances the entity by one tick
	Update(s *Simulation)

	// Dead reports whether the entity should be pruned
	Dead() bool

	// Draw renders the entity
	Draw(d Drawer)
}

// bounceGround applies the ground rule shared by stars and fragments.
// It returns true when the body hit the ground this tick.
func (b *Body) bounceGround(groundLine float64) bool {
	if b.Y+b.Radius+b.VY > groundLine {
		b.VY = -b.VY * b.Friction
		return true
	}
	b.VY += b.Gravity
	return false
}

// hitsWall reports whether the body touches or is about to cross a side wall
func (b *Body) hitsWall(width float64) bool {
	return b.X+b.Radius+b.VX > width || b.X-b.Radius <= 0
}

// integrate moves the body by its (already updated) velocity
func (b *Body) integrate() {
	b.X += b.VX
	b.Y += b.VY
}

// Particle is a falling star: it bounces off the ground and the side walls
// and shatters on every impact.
type Particle struct {
	Body
}

// NewParticle creates a falling star with the default star kinematics
func NewParticle(x, y, radius float64, clr color.NRGBA, rng Rand) *Particle {
	return &Particle{
		Body: Body{
			X:        x,
			Y:        y,
			VX:       (rng.Float64() - 0.5) * starMaxDriftX,
			VY:       starInitialVY,
			Radius:   radius,
			Color:    clr,
			Gravity:  starGravity,
			Friction: starFriction,
		},
	}
}

// Update advances the star by one tick.
// Ground and wall impacts are checked independently, so a star hitting a
// corner shatters twice in the same tick.
func (p *Particle) Update(s *Simulation) {
	if p.bounceGround(s.GroundLine()) {
		p.shatter(s)
	}

	if p.hitsWall(s.width) {
		p.VX = -p.VX * p.Friction
		p.shatter(s)
	}

	p.integrate()
}

// Dead reports whether the star has shattered away completely
func (p *Particle) Dead() bool {
	return p.Radius <= 0
}

// Draw renders the star as a glowing disc
func (p *Particle) Draw(d Drawer) {
	if p.Radius <= 0 {
		return
	}
	d.FillCircle(p.X, p.Y, p.Radius, p.Color, true)
}

// Fragment is a short-lived piece of a shattered star.
// It bounces off the ground but never shatters and ignores the side walls.
type Fragment struct {
	Body

	// TTL is the number of ticks left to live
	TTL int

	// Opacity only affects rendering
	Opacity float64
}

// Update advances the fragment by one tick and fades it
func (f *Fragment) Update(s *Simulation) {
	f.bounceGround(s.GroundLine())
	f.integrate()

	f.TTL--
	f.Opacity -= fragmentFadeRate * float64(f.TTL)
}

// Dead reports whether the fragment has run out of time
func (f *Fragment) Dead() bool {
	return f.TTL <= 0
}

// Draw renders the fragment with its current opacity
func (f *Fragment) Draw(d Drawer) {
	alpha := clamp(f.Opacity, 0, 1)
	if alpha == 0 {
		return
	}
	d.FillCircle(f.X, f.Y, f.Radius, fade(f.Color, alpha), true)
}

// Star is a static background star; it is drawn but never simulated
type Star struct {
	X, Y   float64
	Radius float64
}
