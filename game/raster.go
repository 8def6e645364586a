package game

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// circleKappa places cubic control points so four segments approximate a circle
const circleKappa = 0.5522847498

// Glow halos drawn by the software renderer, outermost first
var rasterGlowHalos = []struct {
	scale float64
	alpha float64
}{
	{scale: 2.5, alpha: 0.08},
	{scale: 1.6, alpha: 0.2},
}

// RasterDrawer draws into an in-memory RGBA image without a GPU.
// It is used for headless snapshots.
type RasterDrawer struct {
	img        *image.RGBA
	rasterizer *vector.Rasterizer
}

// NewRasterDrawer creates a drawer with a transparent canvas of the given size
func NewRasterDrawer(width, height int) *RasterDrawer {
	return &RasterDrawer{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		rasterizer: vector.NewRasterizer(1, 1),
	}
}

// Image returns the canvas
func (d *RasterDrawer) Image() *image.RGBA {
	return d.img
}

// Clear makes the canvas fully transparent
func (d *RasterDrawer) Clear() {
	draw.Draw(d.img, d.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

// FillRect fills a rectangle, clipped to the canvas
func (d *RasterDrawer) FillRect(x, y, width, height float64, clr color.Color) {
	rect := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+width)), int(math.Ceil(y+height)),
	)
	draw.Draw(d.img, rect.Intersect(d.img.Bounds()), image.NewUniform(clr), image.Point{}, draw.Over)
}

// FillCircle fills an anti-aliased disc; glow is approximated with translucent halos
func (d *RasterDrawer) FillCircle(x, y, radius float64, clr color.Color, glow bool) {
	if radius <= 0 {
		return
	}

	if glow {
		base := color.NRGBAModel.Convert(clr).(color.NRGBA)
		for _, halo := range rasterGlowHalos {
			d.fillDisc(x, y, radius*halo.scale, fade(base, halo.alpha))
		}
	}
	d.fillDisc(x, y, radius, clr)
}

// fillDisc rasterizes a disc inside its bounding box only
func (d *RasterDrawer) fillDisc(cx, cy, radius float64, clr color.Color) {
	box := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius))+1, int(math.Ceil(cy+radius))+1,
	).Intersect(d.img.Bounds())
	if box.Empty() {
		return
	}

	// Path coordinates are relative to the clipped box; the rasterizer
	// clips the parts of the outline that fall outside it.
	ox, oy := cx-float64(box.Min.X), cy-float64(box.Min.Y)
	k := radius * circleKappa

	r := d.rasterizer
	r.Reset(box.Dx(), box.Dy())
	r.MoveTo(float32(ox+radius), float32(oy))
	r.CubeTo(float32(ox+radius), float32(oy+k), float32(ox+k), float32(oy+radius), float32(ox), float32(oy+radius))
	r.CubeTo(float32(ox-k), float32(oy+radius), float32(ox-radius), float32(oy+k), float32(ox-radius), float32(oy))
	r.CubeTo(float32(ox-radius), float32(oy-k), float32(ox-k), float32(oy-radius), float32(ox), float32(oy-radius))
	r.CubeTo(float32(ox+k), float32(oy-radius), float32(ox+radius), float32(oy-k), float32(ox+radius), float32(oy))
	r.ClosePath()
	r.Draw(d.img, box, image.NewUniform(clr), image.Point{})
}

// DrawImage composites an image over the canvas
func (d *RasterDrawer) DrawImage(img image.Image, x, y float64) {
	b := img.Bounds()
	dst := b.Sub(b.Min).Add(image.Pt(int(math.Round(x)), int(math.Round(y))))
	draw.Draw(d.img, dst, img, b.Min, draw.Over)
}
