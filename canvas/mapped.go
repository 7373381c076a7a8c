package canvas

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// mappedCanvas backs the canvas with a memory-mapped temp file so that the
// pixel buffer never has to fit in process memory. The file is created
// before any writes and removed on Close, on every exit path.
type mappedCanvas struct {
	file   *os.File
	mapped mmap.MMap
	img    *image.NRGBA
}

func newMapped(width, height int) (*mappedCanvas, error) {
	size := int64(width) * int64(height) * 4

	f, err := os.CreateTemp("", "collage-*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create canvas temp file: %w", err)
	}
	if err := f.Truncate(size); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("size canvas temp file: %w", err)
	}

	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("map canvas temp file: %w", err)
	}

	img := &image.NRGBA{
		Pix:    m,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	fill(img.Pix)

	return &mappedCanvas{file: f, mapped: m, img: img}, nil
}

func (c *mappedCanvas) Bounds() image.Rectangle {
	return c.img.Rect
}

func (c *mappedCanvas) SetRegion(r image.Rectangle, src *image.NRGBA) {
	setRegion(c.img, r, src)
}

// Image returns the canvas aliasing the mapped bytes directly, avoiding a
// second full-canvas buffer. If flushing the mapping fails, the pixels are
// copied out instead so finalization still succeeds.
func (c *mappedCanvas) Image() *image.NRGBA {
	if err := c.mapped.Flush(); err != nil {
		slog.Warn("flush of mapped canvas failed, copying pixels", "error", err)
		cp := image.NewNRGBA(c.img.Rect)
		copy(cp.Pix, c.img.Pix)
		return cp
	}
	return c.img
}

func (c *mappedCanvas) Close() error {
	if c.file == nil {
		return nil
	}
	var errs []error
	if err := c.mapped.Unmap(); err != nil {
		errs = append(errs, fmt.Errorf("unmap canvas: %w", err))
	}
	if err := c.file.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close canvas temp file: %w", err))
	}
	if err := os.Remove(c.file.Name()); err != nil {
		errs = append(errs, fmt.Errorf("remove canvas temp file: %w", err))
	}
	c.file = nil
	c.mapped = nil
	c.img = nil
	return errors.Join(errs...)
}
