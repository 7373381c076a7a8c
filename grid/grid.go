package grid

import (
	"errors"
	"math"
)

// ErrInvalidCellSize is returned when the requested cell size is not a
// positive number of pixels.
var ErrInvalidCellSize = errors.New("cell size must be positive")

// Geometry describes the collage grid derived from the number of images
// and the cell size. The grid is as square as possible, favoring extra
// columns over extra rows.
type Geometry struct {
	TotalItems int
	CellSize   int
	Columns    int
	Rows       int
	Width      int
	Height     int
}

// New computes the grid geometry for totalItems square cells of cellSize
// pixels. totalItems == 0 is valid and yields a zero geometry; callers
// should treat it as "nothing to render".
func New(totalItems, cellSize int) (Geometry, error) {
	if cellSize <= 0 {
		return Geometry{}, ErrInvalidCellSize
	}
	if totalItems == 0 {
		return Geometry{TotalItems: 0, CellSize: cellSize}, nil
	}

	cols := int(math.Ceil(math.Sqrt(float64(totalItems))))
	rows := int(math.Ceil(float64(totalItems) / float64(cols)))

	return Geometry{
		TotalItems: totalItems,
		CellSize:   cellSize,
		Columns:    cols,
		Rows:       rows,
		Width:      cols * cellSize,
		Height:     rows * cellSize,
	}, nil
}

// Empty reports whether the geometry describes a grid with no cells.
func (g Geometry) Empty() bool {
	return g.TotalItems == 0
}

// CellOrigin returns the top-left canvas coordinates of the cell at index,
// using row-major placement: left to right, then top to bottom.
func (g Geometry) CellOrigin(index int) (x, y int) {
	col := index % g.Columns
	row := index / g.Columns
	return col * g.CellSize, row * g.CellSize
}

// ByteSize returns the size in bytes of a 4-channel canvas covering the
// grid.
func (g Geometry) ByteSize() int64 {
	return int64(g.Width) * int64(g.Height) * 4
}
