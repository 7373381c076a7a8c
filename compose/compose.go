// Package compose builds the collage: it derives the grid from the
// placement sequence, writes every image into its cell through a canvas
// backend, and encodes the finished canvas to the output file.
package compose

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"collage/canvas"
	"collage/codec"
	"collage/discover"
	"collage/grid"
)

// CellResult records one image that could not be placed. Its cell stays
// transparent in the output; the run itself is unaffected.
type CellResult struct {
	Index int
	Path  string
	Err   error
}

// Result summarizes a finished run.
type Result struct {
	Geometry   grid.Geometry
	Skipped    []CellResult
	OutputFile string
}

// Empty reports whether the run had no images to place, in which case no
// output file was written.
func (r *Result) Empty() bool {
	return r.Geometry.Empty()
}

// Compositor places images onto a canvas one cell at a time. Cell
// rectangles are disjoint by construction, so up to Workers images are
// decoded and written concurrently without locking the canvas.
type Compositor struct {
	CellSize    int
	MemoryLimit int64
	Workers     int
}

// Compose runs the full pipeline for one listing and writes the collage to
// outputFile. Per-image failures are logged and returned in the result;
// only configuration, canvas and encode failures abort the run. A listing
// with no images is a no-op with a nil error.
func (c *Compositor) Compose(ctx context.Context, listing discover.Listing, outputFile string) (*Result, error) {
	if c.Workers <= 0 {
		return nil, fmt.Errorf("workers must be positive (got %d)", c.Workers)
	}
	if err := codec.ValidateOutput(outputFile); err != nil {
		return nil, err
	}

	geom, err := grid.New(listing.Total(), c.CellSize)
	if err != nil {
		return nil, err
	}
	if geom.Empty() {
		slog.Info("no images to place, skipping collage")
		return &Result{Geometry: geom}, nil
	}

	cv, err := canvas.New(geom.Width, geom.Height, c.MemoryLimit)
	if err != nil {
		return nil, err
	}
	defer cv.Close()

	skipped, err := c.placeAll(ctx, cv, geom, listing.Images)
	if err != nil {
		return nil, err
	}

	img := cv.Image()
	flatten(img)
	if err := codec.EncodeFile(outputFile, img); err != nil {
		return nil, err
	}

	return &Result{Geometry: geom, Skipped: skipped, OutputFile: outputFile}, nil
}

// placeAll runs the placement loop over a bounded worker pool. Each worker
// owns exactly one cell index, so region writes never overlap. The only
// error it returns is context cancellation.
func (c *Compositor) placeAll(ctx context.Context, cv canvas.Canvas, geom grid.Geometry, images []string) ([]CellResult, error) {
	var (
		mu      sync.Mutex
		skipped []CellResult
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for i, path := range images {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := placeCell(cv, geom, i, path); err != nil {
				slog.Warn("skipping image", "path", path, "error", err)
				mu.Lock()
				skipped = append(skipped, CellResult{Index: i, Path: path, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(skipped, func(a, b int) bool { return skipped[a].Index < skipped[b].Index })
	return skipped, nil
}

func placeCell(cv canvas.Canvas, geom grid.Geometry, index int, path string) error {
	src, err := codec.DecodeFile(path)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	cell := renderCell(src, geom.CellSize)
	x, y := geom.CellOrigin(index)
	cv.SetRegion(image.Rect(x, y, x+geom.CellSize, y+geom.CellSize), cell)
	return nil
}

// flatten makes img fully opaque, discarding the alpha channel. Cells that
// stayed transparent become the white background.
func flatten(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
