package viz

import (
	"strings"

	"github.com/sparced/benchviz/pkg/errors"
)

// TimeKey is the xValues sentinel that selects the time axis of the y series.
const TimeKey = "time"

// PlotKind is the rendering kind of a row. The set is closed: Scatter, Line
// and Bar. Other values can be carried by a Row but fail at render time.
type PlotKind string

// Supported plot kinds, spelled as in the plotTypeSimulation column.
const (
	KindScatter PlotKind = "ScatterPlot"
	KindLine    PlotKind = "LinePlot"
	KindBar     PlotKind = "BarPlot"
)

// Valid reports whether k is one of the supported kinds.
func (k PlotKind) Valid() bool {
	switch k {
	case KindScatter, KindLine, KindBar:
		return true
	}
	return false
}

// Scale is an axis scale.
type Scale string

// Supported axis scales.
const (
	ScaleLinear Scale = "linear"
	ScaleLog    Scale = "log"
)

// ParseScale maps the PEtab scale spellings onto a Scale.
// Empty input means linear.
func ParseScale(s string) (Scale, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lin", "linear":
		return ScaleLinear, true
	case "log", "log10":
		return ScaleLog, true
	}
	return "", false
}

// Row is one line of the visualization table.
type Row struct {
	PlotID      string   `json:"plotId"`
	PlotName    string   `json:"plotName,omitempty"`
	Kind        PlotKind `json:"plotTypeSimulation"`
	DatasetID   string   `json:"datasetId"`
	XValues     string   `json:"xValues,omitempty"`
	YValues     string   `json:"yValues"`
	XScale      Scale    `json:"xScale,omitempty"`
	YScale      Scale    `json:"yScale,omitempty"`
	XLabel      string   `json:"xLabel,omitempty"`
	YLabel      string   `json:"yLabel,omitempty"`
	LegendEntry string   `json:"legendEntry,omitempty"`
	Color       string   `json:"color,omitempty"`
}

// UsesTime reports whether the x axis is the time axis of the y series.
func (r Row) UsesTime() bool {
	return r.XValues == "" || r.XValues == TimeKey
}

// Normalize fills PEtab defaults: xValues "time" and linear scales.
func (r *Row) Normalize() {
	if r.XValues == "" {
		r.XValues = TimeKey
	}
	if r.XScale == "" {
		r.XScale = ScaleLinear
	}
	if r.YScale == "" {
		r.YScale = ScaleLinear
	}
}

// Validate checks the fields the renderer depends on.
// The row index i is used in error messages.
func (r Row) Validate(i int) error {
	required := []struct{ col, val string }{
		{ColPlotID, r.PlotID},
		{ColDatasetID, r.DatasetID},
		{ColYValues, r.YValues},
	}
	for _, f := range required {
		if err := errors.ValidateKey(f.col, f.val); err != nil {
			return &errors.ConfigError{Column: f.col, Row: i, Reason: errors.UserMessage(err)}
		}
	}
	if _, ok := ParseScale(string(r.XScale)); !ok {
		return &errors.ConfigError{Column: ColXScale, Row: i, Reason: "unknown scale " + string(r.XScale)}
	}
	if _, ok := ParseScale(string(r.YScale)); !ok {
		return &errors.ConfigError{Column: ColYScale, Row: i, Reason: "unknown scale " + string(r.YScale)}
	}
	return nil
}

// PlotIDs returns the distinct plot identifiers in order of first appearance.
func PlotIDs(rows []Row) []string {
	seen := make(map[string]bool, len(rows))
	var ids []string
	for _, r := range rows {
		if !seen[r.PlotID] {
			seen[r.PlotID] = true
			ids = append(ids, r.PlotID)
		}
	}
	return ids
}
