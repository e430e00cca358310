package figure

import (
	"math"
	"strings"

	"github.com/sparced/benchviz/pkg/viz"
)

// Artist is one drawn series: a single replicate of a single row. A pointer
// to an Artist is the legend handle for that series.
type Artist struct {
	ID        int          // draw order across the whole figure
	Kind      viz.PlotKind // scatter, line or bar
	Label     string       // legend label, empty for none
	Color     string       // stroke/fill color
	LineWidth float64      // stroke width (lines, scatter marker edges)
	Size      float64      // marker radius (scatter) or bar width in x units (bar)
	Replicate string       // replicate the data came from
	X, Y      []float64
}

// Legendable reports whether the artist contributes a legend entry.
// Labels starting with "_" are reserved for hidden series.
func (a *Artist) Legendable() bool {
	return a.Label != "" && !strings.HasPrefix(a.Label, "_")
}

// Axes is one subplot cell of the grid.
type Axes struct {
	Index   int    // grid index (== plot group index for kept axes)
	Row     int    // grid row
	Col     int    // grid column
	PlotID  string // plot group shown here
	Title   string
	XLabel  string
	YLabel  string
	XScale  viz.Scale
	YScale  viz.Scale
	Artists []*Artist // in draw order
}

func newAxes(index int, g Grid) *Axes {
	row, col := g.Position(index)
	return &Axes{
		Index:  index,
		Row:    row,
		Col:    col,
		XScale: viz.ScaleLinear,
		YScale: viz.ScaleLinear,
	}
}

// Limits is the data extent of an axes.
type Limits struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DataLimits returns the extent of all artists on the axes. Non-positive
// values are skipped on log-scaled axes. ok is false when nothing can be
// plotted. Bars extend to y=0 and by half their width in x.
func (a *Axes) DataLimits() (lim Limits, ok bool) {
	lim = Limits{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
	}
	xLog, yLog := a.XScale == viz.ScaleLog, a.YScale == viz.ScaleLog
	usable := func(v float64, logScale bool) bool {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
		return !logScale || v > 0
	}
	for _, art := range a.Artists {
		n := min(len(art.X), len(art.Y))
		for i := 0; i < n; i++ {
			x, y := art.X[i], art.Y[i]
			if !usable(x, xLog) || !usable(y, yLog) {
				continue
			}
			ok = true
			x0, x1 := x, x
			if art.Kind == viz.KindBar {
				x0, x1 = x-art.Size/2, x+art.Size/2
				if !yLog {
					lim.YMin = math.Min(lim.YMin, 0)
					lim.YMax = math.Max(lim.YMax, 0)
				}
			}
			lim.XMin = math.Min(lim.XMin, x0)
			lim.XMax = math.Max(lim.XMax, x1)
			lim.YMin = math.Min(lim.YMin, y)
			lim.YMax = math.Max(lim.YMax, y)
		}
	}
	if !ok {
		return Limits{}, false
	}
	return lim, true
}
