package sink

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/sparced/benchviz/pkg/figure"
)

type jsonOutput struct {
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
	Rows   int          `json:"rows"`
	Cols   int          `json:"cols"`
	Style  figure.Style `json:"style"`
	Axes   []jsonAxes   `json:"axes"`
	Legend []jsonLegend `json:"legend,omitempty"`
}

type jsonAxes struct {
	Index   int          `json:"index"`
	Row     int          `json:"row"`
	Col     int          `json:"col"`
	PlotID  string       `json:"plot_id"`
	Title   string       `json:"title,omitempty"`
	XLabel  string       `json:"x_label,omitempty"`
	YLabel  string       `json:"y_label,omitempty"`
	XScale  string       `json:"x_scale"`
	YScale  string       `json:"y_scale"`
	Artists []jsonArtist `json:"artists"`
}

type jsonArtist struct {
	ID        int        `json:"id"`
	Kind      string     `json:"kind"`
	Label     string     `json:"label,omitempty"`
	Color     string     `json:"color"`
	LineWidth float64    `json:"line_width"`
	Size      float64    `json:"size,omitempty"`
	Replicate string     `json:"replicate"`
	X         jsonFloats `json:"x"`
	Y         jsonFloats `json:"y"`
}

type jsonLegend struct {
	Label  string `json:"label"`
	Artist int    `json:"artist"`
}

// jsonFloats encodes NaN and ±Inf as null instead of failing.
type jsonFloats []float64

func (f jsonFloats) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// RenderJSON encodes the figure structure. Legend entries refer to artists
// by ID.
func RenderJSON(fig *figure.Figure) ([]byte, error) {
	out := jsonOutput{
		Width:  fig.Width(),
		Height: fig.Height(),
		Rows:   fig.Rows(),
		Cols:   fig.Cols(),
		Style:  fig.Style,
		Axes:   make([]jsonAxes, 0, len(fig.Axes)),
	}
	for _, ax := range fig.Axes {
		ja := jsonAxes{
			Index:   ax.Index,
			Row:     ax.Row,
			Col:     ax.Col,
			PlotID:  ax.PlotID,
			Title:   ax.Title,
			XLabel:  ax.XLabel,
			YLabel:  ax.YLabel,
			XScale:  string(ax.XScale),
			YScale:  string(ax.YScale),
			Artists: make([]jsonArtist, 0, len(ax.Artists)),
		}
		for _, a := range ax.Artists {
			ja.Artists = append(ja.Artists, jsonArtist{
				ID:        a.ID,
				Kind:      string(a.Kind),
				Label:     a.Label,
				Color:     cssColor(a.Color, fig.Style),
				LineWidth: a.LineWidth,
				Size:      a.Size,
				Replicate: a.Replicate,
				X:         a.X,
				Y:         a.Y,
			})
		}
		out.Axes = append(out.Axes, ja)
	}
	for _, e := range fig.Legend {
		out.Legend = append(out.Legend, jsonLegend{Label: e.Label, Artist: e.Handle.ID})
	}
	return json.MarshalIndent(out, "", "  ")
}
