package figure

import (
	stderrors "errors"
	"testing"

	"github.com/sparced/benchviz/pkg/errors"
)

func TestPlanGridSide(t *testing.T) {
	tests := []struct {
		n    int
		side int
	}{
		{1, 1},
		{2, 2},
		{4, 2},
		{5, 3},
		{9, 3},
		{10, 4},
		{16, 4},
		{17, 5},
		{100, 10},
		{101, 11},
	}
	for _, tt := range tests {
		g, err := PlanGrid(tt.n)
		if err != nil {
			t.Fatalf("PlanGrid(%d): %v", tt.n, err)
		}
		if g.Side != tt.side {
			t.Errorf("PlanGrid(%d).Side = %d, want %d", tt.n, g.Side, tt.side)
		}
		if g.Rows() != g.Cols() {
			t.Errorf("PlanGrid(%d) not square: %dx%d", tt.n, g.Rows(), g.Cols())
		}
		if g.Cells() < tt.n {
			t.Errorf("PlanGrid(%d) has %d cells", tt.n, g.Cells())
		}
	}
}

func TestPlanGridRejectsEmpty(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := PlanGrid(n)
		var cfg *errors.ConfigError
		if !stderrors.As(err, &cfg) {
			t.Errorf("PlanGrid(%d) error = %v, want ConfigError", n, err)
		}
	}
}

func TestGridPositionColumnMajor(t *testing.T) {
	g, _ := PlanGrid(5)
	tests := []struct {
		i        int
		row, col int
	}{
		{0, 0, 0},
		{1, 1, 0},
		{2, 2, 0},
		{3, 0, 1},
		{4, 1, 1},
		{8, 2, 2},
	}
	for _, tt := range tests {
		row, col := g.Position(tt.i)
		if row != tt.row || col != tt.col {
			t.Errorf("Position(%d) = (%d,%d), want (%d,%d)", tt.i, row, col, tt.row, tt.col)
		}
		if got := g.Index(row, col); got != tt.i {
			t.Errorf("Index(%d,%d) = %d, want %d", row, col, got, tt.i)
		}
	}
}

func TestGridMatrixIsTransposedArange(t *testing.T) {
	g, _ := PlanGrid(9)
	want := [][]int{
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
	}
	m := g.Matrix()
	for r := range want {
		for c := range want[r] {
			if m[r][c] != want[r][c] {
				t.Errorf("Matrix[%d][%d] = %d, want %d", r, c, m[r][c], want[r][c])
			}
		}
	}
}
