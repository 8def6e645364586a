package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ScreenDrawer draws onto an ebiten screen image
type ScreenDrawer struct {
	screen *ebiten.Image

	// Glow sprite drawn under glowing circles (nil disables glow)
	glow *ebiten.Image

	// Uploaded copies of images that were not ebiten images already
	uploads map[image.Image]*ebiten.Image
}

// NewScreenDrawer creates a drawer using the given glow sprite
func NewScreenDrawer(glow *ebiten.Image) *ScreenDrawer {
	return &ScreenDrawer{
		glow:    glow,
		uploads: make(map[image.Image]*ebiten.Image),
	}
}

// Begin sets the screen image for the current frame
func (d *ScreenDrawer) Begin(screen *ebiten.Image) {
	d.screen = screen
}

// Clear wipes the screen
func (d *ScreenDrawer) Clear() {
	d.screen.Clear()
}

// FillRect fills a rectangle
func (d *ScreenDrawer) FillRect(x, y, width, height float64, clr color.Color) {
	vector.DrawFilledRect(d.screen, float32(x), float32(y), float32(width), float32(height), clr, true)
}

// FillCircle fills a disc, with the glow sprite centered under it when requested
func (d *ScreenDrawer) FillCircle(x, y, radius float64, clr color.Color, glow bool) {
	if radius <= 0 {
		return
	}

	if glow && d.glow != nil {
		_, _, _, a := clr.RGBA()
		size := radius * 2 * glowScale
		scale := size / float64(d.glow.Bounds().Dx())

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(x-size/2, y-size/2)
		op.ColorScale.ScaleAlpha(float32(a) / 0xffff)
		d.screen.DrawImage(d.glow, op)
	}

	vector.DrawFilledCircle(d.screen, float32(x), float32(y), float32(radius), clr, true)
}

// DrawImage draws a pre-rendered image. Non-ebiten images are uploaded once and cached.
func (d *ScreenDrawer) DrawImage(img image.Image, x, y float64) {
	src, ok := img.(*ebiten.Image)
	if !ok {
		src, ok = d.uploads[img]
		if !ok {
			src = ebiten.NewImageFromImage(img)
			d.uploads[img] = src
		}
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	d.screen.DrawImage(src, op)
}

// Forget drops cached uploads, e.g. after the backdrop was rebuilt
func (d *ScreenDrawer) Forget() {
	for key, img := range d.uploads {
		img.Deallocate()
		delete(d.uploads, key)
	}
}
