package canvas

import "image"

// memoryCanvas keeps the whole canvas in a regular NRGBA buffer.
type memoryCanvas struct {
	img *image.NRGBA
}

func newMemory(width, height int) *memoryCanvas {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	fill(img.Pix)
	return &memoryCanvas{img: img}
}

func (c *memoryCanvas) Bounds() image.Rectangle {
	return c.img.Rect
}

func (c *memoryCanvas) SetRegion(r image.Rectangle, src *image.NRGBA) {
	setRegion(c.img, r, src)
}

func (c *memoryCanvas) Image() *image.NRGBA {
	return c.img
}

func (c *memoryCanvas) Close() error {
	c.img = nil
	return nil
}
