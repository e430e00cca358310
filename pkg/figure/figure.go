package figure

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/sparced/benchviz/pkg/errors"
	"github.com/sparced/benchviz/pkg/results"
	"github.com/sparced/benchviz/pkg/viz"
)

// Figure is a finished grid of subplots with one consolidated legend.
// Build returns a new Figure on every call and keeps no reference to it.
type Figure struct {
	Grid   Grid
	Axes   []*Axes // kept subplots, grid index order; len == number of plot groups
	Legend []LegendEntry
	Style  Style
}

// Rows returns the number of grid rows.
func (f *Figure) Rows() int { return f.Grid.Rows() }

// Cols returns the number of grid columns.
func (f *Figure) Cols() int { return f.Grid.Cols() }

// Width returns the figure width in pixels: one cell per column.
func (f *Figure) Width() float64 { return float64(f.Cols()) * f.Style.CellPixels() }

// Height returns the figure height in pixels: one cell per row.
func (f *Figure) Height() float64 { return float64(f.Rows()) * f.Style.CellPixels() }

// Axis returns the subplot for plotID.
func (f *Figure) Axis(plotID string) (*Axes, bool) {
	for _, ax := range f.Axes {
		if ax.PlotID == plotID {
			return ax, true
		}
	}
	return nil, false
}

// ArtistCount returns the number of artists across all subplots.
func (f *Figure) ArtistCount() int {
	n := 0
	for _, ax := range f.Axes {
		n += len(ax.Artists)
	}
	return n
}

// Build renders rows against st into a new Figure.
//
// Rows are processed in table order. Each distinct plotId, in order of first
// appearance, gets the next grid index. Build stops at the first error and
// returns no figure.
func Build(rows []viz.Row, st *results.Store, style Style) (*Figure, error) {
	if st == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "results store is required")
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	ids := viz.PlotIDs(rows)
	if len(ids) == 0 {
		return nil, errors.NewConfigError("plotId", "visualization table has no rows")
	}
	for i, row := range rows {
		if err := row.Validate(i); err != nil {
			return nil, err
		}
	}

	grid, err := PlanGrid(len(ids))
	if err != nil {
		return nil, err
	}

	cells := make([]*Axes, grid.Cells())
	for i := range cells {
		cells[i] = newAxes(i, grid)
	}
	group := make(map[string]int, len(ids))
	for i, id := range ids {
		group[id] = i
		cells[i].PlotID = id
	}

	d := newDispatcher(st, style)
	for i, row := range rows {
		ax := cells[group[row.PlotID]]
		if err := d.render(ax, i, row); err != nil {
			return nil, fmt.Errorf("render row %d (plot %s): %w", i, row.PlotID, err)
		}
	}

	// Cells at index ≥ N carry no plot group and are removed.
	kept := cells[:len(ids):len(ids)]

	return &Figure{
		Grid:   grid,
		Axes:   kept,
		Legend: ConsolidateLegend(figureOrder(kept)),
		Style:  style,
	}, nil
}

// figureOrder returns axes sorted row-major over the grid, the order in which
// the figure lists its subplots. Groups fill down columns, so this differs
// from grid index order once the grid has more than one column in use.
func figureOrder(axes []*Axes) []*Axes {
	out := slices.Clone(axes)
	slices.SortFunc(out, func(a, b *Axes) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return out
}
