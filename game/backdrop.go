package game

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Backdrop holds the background layers that are rendered once per viewport size
type Backdrop struct {
	// Sky is the diagonal gradient behind everything
	Sky image.Image

	// Mountains is the layered silhouette drawn in front of the background stars.
	// Nil when mountains are disabled.
	Mountains image.Image
}

// NewBackdrop renders the sky and, optionally, the mountain range for a viewport
func NewBackdrop(width, height int, mountains bool) *Backdrop {
	bd := &Backdrop{
		Sky: renderSky(width, height),
	}
	if mountains {
		bd.Mountains = renderMountains(width, height)
	}
	return bd
}

// renderSky fills a diagonal gradient from the top-left to the bottom-right corner
func renderSky(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	w, h := float64(width), float64(height)
	lengthSq := w*w + h*h
	if lengthSq == 0 {
		return img
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			// Project the pixel onto the (0,0)->(w,h) axis
			t := (float64(x)*w + float64(y)*h) / lengthSq
			img.SetRGBA(x, y, lerpColor(colorSkyTop, colorSkyBottom, t))
		}
	}
	return img
}

// lerpColor blends two opaque colors
func lerpColor(a, b color.NRGBA, t float64) color.RGBA {
	t = clamp(t, 0, 1)
	mix := func(p, q uint8) uint8 {
		return uint8(math.Round(float64(p) + (float64(q)-float64(p))*t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// point is a 2D point of the mountain outline
type point struct {
	x, y float64
}

// bezier is a cubic segment of a mountain outline
type bezier struct {
	c1, c2, end point
}

// mountainPeaks returns the peak points of a layer, evenly spaced across the width
func mountainPeaks(layer mountainLayer, width, height float64) []point {
	if layer.peaks < 2 {
		return nil
	}
	base := layer.base * height
	segment := width / float64(layer.peaks-1)

	peaks := make([]point, layer.peaks)
	for i := range peaks {
		heightVar := math.Sin((float64(i)+layer.seed)*mountainWaveFreq) * base * mountainWaveAmp
		peaks[i] = point{
			x: float64(i) * segment,
			y: height - base + heightVar,
		}
	}
	return peaks
}

// mountainCurve joins consecutive peaks with smooth cubic segments.
// Each segment keeps its start height for the first control point and its
// end height for the second one, so peaks and valleys are flat at the top.
func mountainCurve(peaks []point) []bezier {
	if len(peaks) < 2 {
		return nil
	}
	curve := make([]bezier, 0, len(peaks)-1)
	for i := 0; i < len(peaks)-1; i++ {
		curr, next := peaks[i], peaks[i+1]
		dx := next.x - curr.x
		curve = append(curve, bezier{
			c1:  point{curr.x + dx/3, curr.y},
			c2:  point{curr.x + 2*dx/3, next.y},
			end: next,
		})
	}
	return curve
}

// renderMountains rasterizes every mountain layer, back to front
func renderMountains(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	w, h := float64(width), float64(height)

	for _, layer := range mountainLayers {
		peaks := mountainPeaks(layer, w, h)
		curve := mountainCurve(peaks)
		if len(curve) == 0 {
			continue
		}

		// The outline is closed along the bottom edge. The first and last peaks
		// sit on the viewport edges, so closing there covers the same pixels as
		// closing outside the viewport.
		r := vector.NewRasterizer(width, height)
		r.DrawOp = draw.Over
		r.MoveTo(0, float32(h))
		r.LineTo(float32(peaks[0].x), float32(peaks[0].y))
		for _, seg := range curve {
			r.CubeTo(
				float32(seg.c1.x), float32(seg.c1.y),
				float32(seg.c2.x), float32(seg.c2.y),
				float32(seg.end.x), float32(seg.end.y),
			)
		}
		r.LineTo(float32(w), float32(h))
		r.ClosePath()
		r.Draw(img, img.Bounds(), image.NewUniform(layer.color), image.Point{})
	}
	return img
}
