package game

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/glow.svg
var glowSVGData []byte

// glowSpriteSize is the edge length of the rasterized glow sprite
const glowSpriteSize = 64

// LoadGlowSprite rasterizes the embedded glow sprite
func LoadGlowSprite() (*image.RGBA, error) {
	img, err := svgToImage(glowSVGData, glowSpriteSize, glowSpriteSize)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize glow sprite: %w", err)
	}

	// Optionally save PNG for debugging
	if os.Getenv("STARFALL_DEBUG_SPRITES") == "1" {
		saveDebugPNG(img, "debug_glow.png")
	}

	return img, nil
}

// svgToImage rasterizes SVG data into an RGBA image of the given size
func svgToImage(svgData []byte, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// saveDebugPNG saves a PNG image for debugging purposes
func saveDebugPNG(img image.Image, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("Failed to create debug PNG: %v", err)
		return
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		log.Printf("Failed to encode debug PNG: %v", err)
	}
}
