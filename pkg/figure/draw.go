package figure

import (
	"github.com/sparced/benchviz/pkg/errors"
	"github.com/sparced/benchviz/pkg/results"
	"github.com/sparced/benchviz/pkg/viz"
)

// dispatcher draws table rows onto axes. It owns the figure-wide artist
// counter and nothing else.
type dispatcher struct {
	store    *results.Store
	resolver *Resolver
	style    Style
	nextID   int
}

func newDispatcher(st *results.Store, style Style) *dispatcher {
	return &dispatcher{store: st, resolver: NewResolver(st), style: style}
}

// render draws every replicate of row onto ax, then applies the row's
// cosmetics. i is the row's table index, used in errors.
func (d *dispatcher) render(ax *Axes, i int, row viz.Row) error {
	draw, err := d.drawer(row.Kind, i)
	if err != nil {
		return err
	}

	reps, err := d.store.Replicates(row.DatasetID)
	if err != nil {
		return err
	}

	color := row.Color
	if color == "" {
		color = d.style.PaletteColor(len(ax.Artists))
	}
	for _, rep := range reps {
		x, y, err := d.resolver.Resolve(row, rep)
		if err != nil {
			return err
		}
		art := &Artist{
			ID:        d.nextID,
			Kind:      row.Kind,
			Label:     row.LegendEntry,
			Color:     color,
			LineWidth: d.style.LineWidth,
			Replicate: rep,
			X:         x,
			Y:         y,
		}
		d.nextID++
		draw(art)
		ax.Artists = append(ax.Artists, art)
	}

	applyCosmetics(ax, row)
	return nil
}

// drawer picks the per-kind drawing routine. The switch is exhaustive over
// viz.PlotKind; anything else is rejected here.
func (d *dispatcher) drawer(kind viz.PlotKind, i int) (func(*Artist), error) {
	switch kind {
	case viz.KindScatter:
		return d.drawScatter, nil
	case viz.KindLine:
		return d.drawLine, nil
	case viz.KindBar:
		return d.drawBar, nil
	default:
		return nil, &errors.UnsupportedPlotTypeError{Kind: string(kind), Row: i}
	}
}

func (d *dispatcher) drawScatter(a *Artist) {
	a.Size = d.style.MarkerSize
}

func (d *dispatcher) drawLine(a *Artist) {
	a.Size = 0
}

func (d *dispatcher) drawBar(a *Artist) {
	a.Size = d.style.BarWidth
}

// applyCosmetics overwrites the axes' labels, scales and title. Repeated
// rows for the same plot group therefore resolve last-write-wins.
func applyCosmetics(ax *Axes, row viz.Row) {
	ax.XLabel = row.XLabel
	ax.YLabel = row.YLabel
	ax.XScale = scaleOrLinear(row.XScale)
	ax.YScale = scaleOrLinear(row.YScale)
	ax.Title = row.PlotName
	if ax.Title == "" {
		ax.Title = row.PlotID
	}
}

func scaleOrLinear(s viz.Scale) viz.Scale {
	if parsed, ok := viz.ParseScale(string(s)); ok {
		return parsed
	}
	return viz.ScaleLinear
}
