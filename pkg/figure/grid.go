package figure

import (
	"math"

	"github.com/sparced/benchviz/pkg/errors"
)

// Grid is a square S×S arrangement of subplot cells.
type Grid struct {
	Side int
}

// PlanGrid returns the grid for n plot groups: side ceil(sqrt(n)).
// The grid stays square even when a rectangle would be tighter.
func PlanGrid(n int) (Grid, error) {
	if n < 1 {
		return Grid{}, errors.NewConfigError("plotId", "at least one plot group is required, got %d", n)
	}
	s := int(math.Ceil(math.Sqrt(float64(n))))
	// Guard against floating point rounding at perfect squares.
	for s*s < n {
		s++
	}
	for s > 1 && (s-1)*(s-1) >= n {
		s--
	}
	return Grid{Side: s}, nil
}

// Rows returns the number of grid rows.
func (g Grid) Rows() int { return g.Side }

// Cols returns the number of grid columns.
func (g Grid) Cols() int { return g.Side }

// Cells returns the number of grid cells, S².
func (g Grid) Cells() int { return g.Side * g.Side }

// Position returns the cell of plot group i: row i mod S, column i div S.
func (g Grid) Position(i int) (row, col int) {
	return i % g.Side, i / g.Side
}

// Index is the inverse of Position.
func (g Grid) Index(row, col int) int {
	return col*g.Side + row
}

// Matrix returns the S×S matrix of group indices, indexed [row][col].
// It equals the row-major arrangement of 0..S²-1, transposed.
func (g Grid) Matrix() [][]int {
	m := make([][]int, g.Side)
	for r := range m {
		m[r] = make([]int, g.Side)
		for c := range m[r] {
			m[r][c] = g.Index(r, c)
		}
	}
	return m
}
