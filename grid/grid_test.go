package grid

import (
	"errors"
	"math"
	"testing"
)

func TestNewGeometry(t *testing.T) {
	const cell = 200

	for _, n := range []int{1, 2, 3, 4, 5, 10, 16, 17} {
		g, err := New(n, cell)
		if err != nil {
			t.Fatalf("New(%d, %d): %v", n, cell, err)
		}

		wantCols := int(math.Ceil(math.Sqrt(float64(n))))
		wantRows := int(math.Ceil(float64(n) / float64(wantCols)))
		if g.Columns != wantCols || g.Rows != wantRows {
			t.Errorf("n=%d: got %dx%d grid, want %dx%d", n, g.Columns, g.Rows, wantCols, wantRows)
		}
		if g.Columns*g.Rows < n {
			t.Errorf("n=%d: grid %dx%d has too few cells", n, g.Columns, g.Rows)
		}
		if g.Columns*(g.Rows-1) >= n {
			t.Errorf("n=%d: grid %dx%d has an empty row", n, g.Columns, g.Rows)
		}
		if g.Width != g.Columns*cell || g.Height != g.Rows*cell {
			t.Errorf("n=%d: canvas %dx%d does not match grid", n, g.Width, g.Height)
		}
	}
}

func TestNewZeroItems(t *testing.T) {
	g, err := New(0, 200)
	if err != nil {
		t.Fatalf("New(0, 200): %v", err)
	}
	if !g.Empty() {
		t.Error("zero items should yield an empty geometry")
	}
	if g.Width != 0 || g.Height != 0 {
		t.Errorf("empty geometry has canvas %dx%d, want 0x0", g.Width, g.Height)
	}
}

func TestNewInvalidCellSize(t *testing.T) {
	for _, cell := range []int{0, -1, -200} {
		if _, err := New(4, cell); !errors.Is(err, ErrInvalidCellSize) {
			t.Errorf("New(4, %d) = %v, want ErrInvalidCellSize", cell, err)
		}
	}
}

func TestCellOrigin(t *testing.T) {
	g, err := New(10, 100) // 4 columns, 3 rows
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		index, x, y int
	}{
		{0, 0, 0},
		{1, 100, 0},
		{3, 300, 0},
		{4, 0, 100},
		{9, 100, 200},
	}
	for _, c := range cases {
		x, y := g.CellOrigin(c.index)
		if x != c.x || y != c.y {
			t.Errorf("CellOrigin(%d) = (%d,%d), want (%d,%d)", c.index, x, y, c.x, c.y)
		}
	}
}

func TestByteSize(t *testing.T) {
	g, err := New(4, 100) // 200x200 canvas
	if err != nil {
		t.Fatal(err)
	}
	if got := g.ByteSize(); got != 200*200*4 {
		t.Errorf("ByteSize() = %d, want %d", got, 200*200*4)
	}
}
