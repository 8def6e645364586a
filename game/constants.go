package game

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// Star kinematics
const (
	starGravity   = 1.0
	starFriction  = 0.8
	starInitialVY = 3.0
	starMaxDriftX = 8.0 // spawn VX is uniform in [-4, 4)
)

// Fragment kinematics
const (
	fragmentGravity   = 0.1
	fragmentFriction  = 0.8
	fragmentMaxSpeedX = 10.0
	fragmentMaxSpeedY = 30.0
	fragmentFadeRate  = 0.0001 // opacity lost per remaining tick of life
)

// Background constants
const (
	backgroundStarMaxRadius = 3.0
	mountainWaveFreq        = 0.8
	mountainWaveAmp         = 0.2
	twinkleSpeed            = 0.02
	twinkleSpread           = 0.37
	glowScale               = 4.0 // glow sprite diameter relative to the star diameter
)

// Color constants
var (
	colorStar           = color.NRGBA{R: 0xE3, G: 0xEA, B: 0xEF, A: 255}
	colorBackgroundStar = color.NRGBA(colornames.White)
	colorSkyTop         = color.NRGBA{R: 0x17, G: 0x1E, B: 0x26, A: 255}
	colorSkyBottom      = color.NRGBA{R: 0x3F, G: 0x58, B: 0x6B, A: 255}
	colorGround         = color.NRGBA{R: 0x18, G: 0x20, B: 0x28, A: 255}
	colorMountainFar    = color.NRGBA{R: 0x38, G: 0x45, B: 0x51, A: 255}
	colorMountainMid    = color.NRGBA{R: 0x2B, G: 0x38, B: 0x43, A: 255}
	colorMountainNear   = color.NRGBA{R: 0x26, G: 0x33, B: 0x3E, A: 255}
)

// mountainLayer describes one silhouette of the mountain range
type mountainLayer struct {
	peaks int
	base  float64 // height of the layer's mean line as a fraction of the viewport height
	color color.NRGBA
	seed  float64
}

// Layers are listed back to front
var mountainLayers = []mountainLayer{
	{peaks: 6, base: 0.65, color: colorMountainFar, seed: 1},
	{peaks: 8, base: 0.50, color: colorMountainMid, seed: 2},
	{peaks: 10, base: 0.35, color: colorMountainNear, seed: 3},
}
