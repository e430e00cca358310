package figure

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/sparced/benchviz/pkg/errors"
)

// Style holds the shared cosmetic settings of a figure. It is a plain value:
// Build and the sinks read it but never modify it.
type Style struct {
	LabelSize  float64  `toml:"label_size" json:"label_size"`   // axis label font size (pt)
	TickSize   float64  `toml:"tick_size" json:"tick_size"`     // tick label font size (pt)
	LegendSize float64  `toml:"legend_size" json:"legend_size"` // legend font size (pt)
	TitleSize  float64  `toml:"title_size" json:"title_size"`   // subplot title font size (pt)
	FontWeight string   `toml:"font_weight" json:"font_weight"` // "normal" or "bold"
	FontFamily string   `toml:"font_family" json:"font_family"` // CSS font-family list
	LineWidth  float64  `toml:"line_width" json:"line_width"`   // stroke width of every series
	MarkerSize float64  `toml:"marker_size" json:"marker_size"` // scatter marker radius (px)
	BarWidth   float64  `toml:"bar_width" json:"bar_width"`     // bar width in x data units
	CellSize   float64  `toml:"cell_size" json:"cell_size"`     // subplot edge length (inches)
	DPI        float64  `toml:"dpi" json:"dpi"`                 // pixels per inch
	Background string   `toml:"background" json:"background"`   // figure background color
	Palette    []string `toml:"palette" json:"palette"`         // colors for rows without one
}

// DefaultStyle returns the benchmark plotting defaults: 14pt bold labels,
// 12pt ticks and legend, 3px lines and 4 inch cells.
func DefaultStyle() Style {
	return Style{
		LabelSize:  14,
		TickSize:   12,
		LegendSize: 12,
		TitleSize:  14,
		FontWeight: "bold",
		FontFamily: "DejaVu Sans, Arial, sans-serif",
		LineWidth:  3,
		MarkerSize: 3,
		BarWidth:   0.8,
		CellSize:   4,
		DPI:        100,
		Background: "white",
		Palette: []string{
			"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
			"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
		},
	}
}

// CellPixels returns the subplot edge length in pixels.
func (s Style) CellPixels() float64 { return s.CellSize * s.DPI }

// Bold reports whether labels and titles are drawn bold.
func (s Style) Bold() bool { return s.FontWeight == "bold" }

// PaletteColor returns the i-th palette color, cycling.
func (s Style) PaletteColor(i int) string {
	if len(s.Palette) == 0 {
		return "black"
	}
	return s.Palette[i%len(s.Palette)]
}

// Validate checks that sizes are positive and the weight is known.
func (s Style) Validate() error {
	sizes := []struct {
		name string
		v    float64
	}{
		{"label_size", s.LabelSize},
		{"tick_size", s.TickSize},
		{"legend_size", s.LegendSize},
		{"title_size", s.TitleSize},
		{"line_width", s.LineWidth},
		{"marker_size", s.MarkerSize},
		{"bar_width", s.BarWidth},
		{"cell_size", s.CellSize},
		{"dpi", s.DPI},
	}
	for _, sz := range sizes {
		if sz.v <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "style %s must be positive, got %g", sz.name, sz.v)
		}
	}
	if s.FontWeight != "normal" && s.FontWeight != "bold" {
		return errors.New(errors.ErrCodeInvalidInput, "style font_weight must be normal or bold, got %q", s.FontWeight)
	}
	return nil
}

// ParseStyle decodes TOML on top of [DefaultStyle]. Keys that are not set
// keep their default.
func ParseStyle(data string) (Style, error) {
	s := DefaultStyle()
	md, err := toml.Decode(data, &s)
	if err != nil {
		return Style{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse style")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Style{}, errors.New(errors.ErrCodeInvalidInput, "unknown style key %q", undecoded[0].String())
	}
	if err := s.Validate(); err != nil {
		return Style{}, err
	}
	return s, nil
}

// LoadStyle reads a TOML style file. An empty path returns [DefaultStyle].
func LoadStyle(path string) (Style, error) {
	if path == "" {
		return DefaultStyle(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Style{}, fmt.Errorf("read style: %w", err)
	}
	return ParseStyle(string(data))
}
