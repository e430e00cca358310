// Package pipeline provides the load → build → render pipeline of benchviz.
//
// The CLI and the render service both drive figures through a [Runner], so
// inputs are loaded, validated, cached and logged the same way everywhere.
//
// # Stages
//
//  1. Load: read the visualization table (TSV, CSV, XLSX or a PEtab problem
//     file), the results store (JSON or SQLite) and an optional style file
//  2. Build: assemble the subplot grid and the consolidated legend
//  3. Render: encode the figure as SVG, PNG, PDF or JSON
//
// Rendered artifacts are cached by a hash of the loaded inputs, so a cache
// hit skips both Build and Render.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Table:   "visualization.tsv",
//	    Results: "results.json",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sparced/benchviz/pkg/cache"
	"github.com/sparced/benchviz/pkg/errors"
	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/figure/sink"
)

// DefaultScale is the PNG pixel multiplier.
const DefaultScale = 1.0

// Options configures one pipeline run.
type Options struct {
	// Inputs
	Table     string `json:"table,omitempty"`   // visualization table (.tsv, .csv, .xlsx)
	Problem   string `json:"problem,omitempty"` // PEtab problem YAML, used when Table is empty
	Sheet     string `json:"sheet,omitempty"`   // XLSX sheet, first sheet when empty
	Results   string `json:"results"`         // results store (.json, .db)
	StyleFile string `json:"style_file,omitempty"`

	// Outputs
	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	NoLegend bool     `json:"no_legend,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	RSVG     bool     `json:"rsvg,omitempty"`    // rasterize PNG through rsvg-convert
	Refresh  bool     `json:"refresh,omitempty"` // bypass cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	Style  *figure.Style `json:"-"` // overrides StyleFile when set
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Figure is nil when every artifact came from the cache.
	Figure *figure.Figure

	// InputHash is the content hash of table rows, results and style.
	InputHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Conditions int
	Subplots   int
	Artists    int
	LoadTime   time.Duration
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // all artifacts came from cache
}

// SetDefaults fills unset output and runtime options.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(sink.FormatSVG)}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateInputs checks that the input paths needed by Load are present.
func (o *Options) ValidateInputs() error {
	if o.Table == "" && o.Problem == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a visualization table or problem file is required")
	}
	if o.Results == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a results file is required")
	}
	for _, p := range []string{o.Table, o.Problem, o.Results, o.StyleFile} {
		if p == "" {
			continue
		}
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
	}
	return nil
}

// ValidateOutputs applies defaults and checks formats and scale. Format
// names are normalized in place ("SVG" and ".svg" become "svg").
func (o *Options) ValidateOutputs() error {
	o.SetDefaults()
	o.Formats = append([]string(nil), o.Formats...)
	for i, name := range o.Formats {
		f, err := sink.ParseFormat(name)
		if err != nil {
			return err
		}
		o.Formats[i] = string(f)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return nil
}

// Validate checks the options of a full run and applies defaults.
func (o *Options) Validate() error {
	if err := o.ValidateInputs(); err != nil {
		return err
	}
	return o.ValidateOutputs()
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format: format,
		Title:  o.Title,
		Legend: !o.NoLegend,
	}
	if format == string(sink.FormatPNG) {
		opts.Scale = o.Scale
		opts.RSVG = o.RSVG
	}
	return opts
}
