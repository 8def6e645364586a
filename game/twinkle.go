package game

import (
	"github.com/aquilax/go-perlin"
)

// Twinkle modulates background star brightness over time with Perlin noise.
// It only computes alphas; the stars themselves never change.
type Twinkle struct {
	noise     *perlin.Perlin
	amplitude float64
}

// NewTwinkle creates a twinkle generator. Amplitude is the largest alpha drop.
func NewTwinkle(amplitude float64, seed int64) *Twinkle {
	return &Twinkle{
		noise:     perlin.NewPerlin(2, 2, 3, seed),
		amplitude: clamp(amplitude, 0, 1),
	}
}

// Alpha returns the brightness of background star i at the given tick, in [1-amplitude, 1]
func (t *Twinkle) Alpha(i int, tick int64) float64 {
	if t.amplitude == 0 {
		return 1
	}
	n := t.noise.Noise2D(float64(i)*twinkleSpread, float64(tick)*twinkleSpeed)
	n = clamp((n+1)/2, 0, 1)
	return 1 - t.amplitude*n
}
