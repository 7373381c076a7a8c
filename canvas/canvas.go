// Package canvas provides the output raster for the compositor behind two
// interchangeable backends: a plain in-process buffer for small collages
// and a memory-mapped temp file for canvases too large to hold in memory.
package canvas

import (
	"image"
	"image/color"
	"image/draw"
)

// background is the initial canvas fill: fully transparent white.
var background = color.NRGBA{R: 255, G: 255, B: 255, A: 0}

// Canvas is a fixed-size 4-channel raster written one region at a time.
// Writes replace the region outright, so rewriting a region leaves only
// the last data, and writes to disjoint regions may happen concurrently.
type Canvas interface {
	// Bounds returns the canvas rectangle.
	Bounds() image.Rectangle

	// SetRegion copies src into the region r of the canvas.
	SetRegion(r image.Rectangle, src *image.NRGBA)

	// Image returns the finished canvas as an NRGBA image ready for
	// encoding. It never fails while the backing store is intact.
	Image() *image.NRGBA

	// Close releases the backing store. The image returned by Image must
	// not be used afterwards. Safe to call more than once.
	Close() error
}

// New selects a backend for a width×height canvas: the mmap-backed store
// when the 4-channel buffer would exceed memoryLimit bytes, the in-memory
// store otherwise.
func New(width, height int, memoryLimit int64) (Canvas, error) {
	if int64(width)*int64(height)*4 > memoryLimit {
		return newMapped(width, height)
	}
	return newMemory(width, height), nil
}

func setRegion(dst *image.NRGBA, r image.Rectangle, src *image.NRGBA) {
	draw.Draw(dst, r, src, src.Rect.Min, draw.Src)
}

// fill sets every pixel of the buffer to the background color using a
// doubling copy over the raw pixel data.
func fill(pix []byte) {
	if len(pix) < 4 {
		return
	}
	pix[0], pix[1], pix[2], pix[3] = background.R, background.G, background.B, background.A
	for n := 4; n < len(pix); n *= 2 {
		copy(pix[n:], pix[:n])
	}
}
