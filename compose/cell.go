package compose

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// fitDimensions returns the size of a srcW×srcH image scaled so its longer
// side fills a cell of the given size. One continuous scale factor is
// applied to both axes and the results are floored, so the aspect ratio is
// preserved exactly and the image never exceeds the cell.
func fitDimensions(srcW, srcH, cell int) (w, h int) {
	longest := srcW
	if srcH > longest {
		longest = srcH
	}
	scale := float64(cell) / float64(longest)
	return int(float64(srcW) * scale), int(float64(srcH) * scale)
}

// renderCell scales src into a transparent cell-sized buffer, centered
// with symmetric padding on the shorter axis.
func renderCell(src image.Image, cell int) *image.NRGBA {
	b := src.Bounds()
	newW, newH := fitDimensions(b.Dx(), b.Dy(), cell)

	buf := image.NewNRGBA(image.Rect(0, 0, cell, cell))
	draw.Draw(buf, buf.Rect, image.NewUniform(color.NRGBA{255, 255, 255, 0}), image.Point{}, draw.Src)

	offX := (cell - newW) / 2
	offY := (cell - newH) / 2
	target := image.Rect(offX, offY, offX+newW, offY+newH)
	xdraw.CatmullRom.Scale(buf, target, src, b, xdraw.Over, nil)
	return buf
}
