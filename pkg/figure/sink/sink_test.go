package sink

import (
	"fmt"
	"testing"

	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/results"
	"github.com/sparced/benchviz/pkg/viz"
)

// testFigure builds a figure with n plot groups, cycling through the three
// plot kinds.
func testFigure(t *testing.T, n int) *figure.Figure {
	t.Helper()
	st := results.NewStore()
	for _, rep := range []string{"cell 0", "cell 1"} {
		err := st.Add("EGF", rep, "ppERK", results.Series{
			Times:  []float64{0, 3600, 7200, 10800},
			Values: []float64{0.1, 1, 10, 100},
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	kinds := []viz.PlotKind{viz.KindLine, viz.KindScatter, viz.KindBar}
	var rows []viz.Row
	for i := 0; i < n; i++ {
		rows = append(rows, viz.Row{
			PlotID:      fmt.Sprintf("plot%d", i),
			PlotName:    fmt.Sprintf("Plot <%d>", i),
			Kind:        kinds[i%len(kinds)],
			DatasetID:   "EGF",
			XValues:     "time",
			YValues:     "ppERK",
			XLabel:      "time [h]",
			YLabel:      "ppERK",
			LegendEntry: fmt.Sprintf("series %d", i%2),
		})
	}
	fig, err := figure.Build(rows, st, figure.DefaultStyle())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return fig
}
