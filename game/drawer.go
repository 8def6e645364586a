package game

import (
	"image"
	"image/color"
)

// Drawer is the immediate-mode drawing surface the simulation renders onto.
// The simulation calls it once per entity per frame and never reads pixels back.
type Drawer interface {
	// Clear wipes the whole surface
	Clear()

	// FillRect fills an axis-aligned rectangle
	FillRect(x, y, width, height float64, clr color.Color)

	// FillCircle fills a disc centered on (x, y), optionally with a soft glow around it
	FillCircle(x, y, radius float64, clr color.Color, glow bool)

	// DrawImage draws a pre-rendered image with its top-left corner at (x, y)
	DrawImage(img image.Image, x, y float64)
}
