package game

// shatter shrinks the star and bursts fragments out of its current position.
// The fragments belong to the simulation from here on.
func (p *Particle) shatter(s *Simulation) {
	p.Radius -= s.config.Shatter.Step

	for i := 0; i < s.config.Shatter.Fragments; i++ {
		s.addFragment(s.newFragment(p.X, p.Y))
	}
}

// newFragment creates a fragment at the given point with a random burst velocity
func (s *Simulation) newFragment(x, y float64) *Fragment {
	return &Fragment{
		Body: Body{
			X:        x,
			Y:        y,
			VX:       (s.rng.Float64() - 0.5) * fragmentMaxSpeedX,
			VY:       (s.rng.Float64() - 0.5) * fragmentMaxSpeedY,
			Radius:   s.config.Fragment.Radius,
			Color:    colorStar,
			Gravity:  fragmentGravity,
			Friction: fragmentFriction,
		},
		TTL:     s.config.Fragment.TTL,
		Opacity: 1,
	}
}
