package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sparced/benchviz/pkg/cache"
	"github.com/sparced/benchviz/pkg/errors"
	"github.com/sparced/benchviz/pkg/figure"
)

const testTable = "plotId\tplotName\tplotTypeSimulation\tdatasetId\txValues\tyValues\tlegendEntry\tColor\n" +
	"p1\tERK\tLinePlot\tEGF\ttime\tppERK\tEGF\tred\n" +
	"p2\tAKT\tScatterPlot\tEGF\ttime\tppAKT\tEGF\tred\n"

const testResults = `{"EGF": {
  "cell 0": {"ppERK": {"toutS": [0, 3600, 7200], "xoutS": [1, 2, 3]},
             "ppAKT": {"toutS": [0, 3600, 7200], "xoutS": [4, 5, 6]}},
  "cell 1": {"ppERK": {"toutS": [0, 3600, 7200], "xoutS": [2, 3, 4]},
             "ppAKT": {"toutS": [0, 3600, 7200], "xoutS": [5, 6, 7]}}
}}`

func writeInputs(t *testing.T, table, res string) Options {
	t.Helper()
	dir := t.TempDir()
	opts := Options{
		Table:   filepath.Join(dir, "visualization.tsv"),
		Results: filepath.Join(dir, "results.json"),
	}
	if err := os.WriteFile(opts.Table, []byte(table), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(opts.Results, []byte(res), 0644); err != nil {
		t.Fatal(err)
	}
	return opts
}

func newTestRunner(t *testing.T) (*Runner, *cache.FileCache) {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, log.NewWithOptions(io.Discard, log.Options{}))
	t.Cleanup(func() { r.Close() })
	return r, fc
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"valid", Options{Table: "v.tsv", Results: "r.json"}, ""},
		{"problem instead of table", Options{Problem: "problem.yaml", Results: "r.json"}, ""},
		{"extension format", Options{Table: "v.tsv", Results: "r.json", Formats: []string{".PNG"}}, ""},
		{"no table", Options{Results: "r.json"}, errors.ErrCodeInvalidInput},
		{"no results", Options{Table: "v.tsv"}, errors.ErrCodeInvalidInput},
		{"bad path", Options{Table: "v\x00.tsv", Results: "r.json"}, errors.ErrCodeInvalidPath},
		{"bad format", Options{Table: "v.tsv", Results: "r.json", Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Table: "v.tsv", Results: "r.json", Scale: -1}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateOutputsDefaults(t *testing.T) {
	formats := []string{"SVG", ".json"}
	opts := Options{Formats: formats}
	if err := opts.ValidateOutputs(); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(opts.Formats, ","); got != "svg,json" {
		t.Errorf("Formats = %s, want svg,json", got)
	}
	if formats[0] != "SVG" {
		t.Errorf("caller slice modified: %v", formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger not defaulted")
	}

	var empty Options
	empty.SetDefaults()
	if len(empty.Formats) != 1 || empty.Formats[0] != "svg" {
		t.Errorf("default Formats = %v, want [svg]", empty.Formats)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Title: "T", NoLegend: true, Scale: 2, RSVG: true}

	svg := opts.ArtifactKeyOpts("svg")
	if svg.Scale != 0 || svg.RSVG {
		t.Errorf("svg key carries PNG options: %+v", svg)
	}
	if svg.Legend || svg.Title != "T" {
		t.Errorf("svg key = %+v", svg)
	}

	png := opts.ArtifactKeyOpts("png")
	if png.Scale != 2 || !png.RSVG {
		t.Errorf("png key = %+v", png)
	}
}

func TestExecute(t *testing.T) {
	r, fc := newTestRunner(t)
	opts := writeInputs(t, testTable, testResults)
	opts.Formats = []string{"svg", "json"}
	ctx := context.Background()

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if first.CacheInfo.RenderHit {
		t.Error("first run reported a cache hit")
	}
	if first.Figure == nil {
		t.Fatal("first run returned no figure")
	}
	if first.Stats.Subplots != 2 || first.Stats.Artists != 4 {
		t.Errorf("Stats = %+v, want 2 subplots and 4 artists", first.Stats)
	}
	if first.Stats.Rows != 2 || first.Stats.Conditions != 1 {
		t.Errorf("Stats = %+v, want 2 rows and 1 condition", first.Stats)
	}
	if got := bytes.Count(first.Artifacts["svg"], []byte(`<g class="axes"`)); got != 2 {
		t.Errorf("svg has %d axes groups, want 2", got)
	}
	if len(first.Artifacts["json"]) == 0 {
		t.Error("json artifact is empty")
	}
	if entries, _, _ := fc.Stats(); entries != 2 {
		t.Errorf("cache entries = %d, want 2", entries)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run missed the cache")
	}
	if second.Figure != nil {
		t.Error("cache hit still built a figure")
	}
	if second.InputHash != first.InputHash {
		t.Errorf("InputHash changed: %s != %s", second.InputHash, first.InputHash)
	}
	for _, f := range opts.Formats {
		if !bytes.Equal(first.Artifacts[f], second.Artifacts[f]) {
			t.Errorf("%s artifact differs between runs", f)
		}
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.RenderHit || third.Figure == nil {
		t.Error("refresh did not rebuild the figure")
	}
}

func TestExecuteOptionsChangeKey(t *testing.T) {
	r, _ := newTestRunner(t)
	opts := writeInputs(t, testTable, testResults)
	ctx := context.Background()

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	opts.NoLegend = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("changing the legend option reused the cached artifact")
	}
	if bytes.Contains(res.Artifacts["svg"], []byte(`class="legend"`)) {
		t.Error("legend rendered with NoLegend")
	}
}

func TestExecuteStyleChangesHash(t *testing.T) {
	r, _ := newTestRunner(t)
	opts := writeInputs(t, testTable, testResults)
	ctx := context.Background()

	a, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	style := figure.DefaultStyle()
	style.LineWidth = 1
	opts.Style = &style
	b, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if a.InputHash == b.InputHash {
		t.Error("style change kept the input hash")
	}
	if b.CacheInfo.RenderHit {
		t.Error("style change hit the cache")
	}
}

func TestExecuteStyleFile(t *testing.T) {
	r, _ := newTestRunner(t)
	opts := writeInputs(t, testTable, testResults)
	opts.StyleFile = filepath.Join(filepath.Dir(opts.Table), "style.toml")
	if err := os.WriteFile(opts.StyleFile, []byte("cell_size = 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Figure.Width(); got != 400 {
		t.Errorf("Width() = %g, want 400 (2 columns of 2in at 100dpi)", got)
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name  string
		table string
		code  errors.Code
	}{
		{
			name:  "missing condition",
			table: "plotId\tplotTypeSimulation\tdatasetId\tyValues\np1\tLinePlot\tHRG\tppERK\n",
			code:  errors.ErrCodeMissingData,
		},
		{
			name:  "missing series",
			table: "plotId\tplotTypeSimulation\tdatasetId\tyValues\np1\tLinePlot\tEGF\tppMEK\n",
			code:  errors.ErrCodeMissingData,
		},
		{
			name:  "unsupported kind",
			table: "plotId\tplotTypeSimulation\tdatasetId\tyValues\np1\tPieChart\tEGF\tppERK\n",
			code:  errors.ErrCodeUnsupportedPlotType,
		},
		{
			name:  "missing column",
			table: "plotId\tdatasetId\tyValues\np1\tEGF\tppERK\n",
			code:  errors.ErrCodeConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, fc := newTestRunner(t)
			opts := writeInputs(t, tt.table, testResults)
			_, err := r.Execute(context.Background(), opts)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Execute() error = %v, want code %s", err, tt.code)
			}
			if entries, _, _ := fc.Stats(); entries != 0 {
				t.Errorf("failed run cached %d artifacts", entries)
			}
		})
	}
}

func TestLoadProblem(t *testing.T) {
	r, _ := newTestRunner(t)
	opts := writeInputs(t, testTable, testResults)
	dir := filepath.Dir(opts.Table)
	opts.Problem = filepath.Join(dir, "problem.yaml")
	problem := "format_version: 1\nproblems:\n  - visualization_files: [visualization.tsv]\n"
	if err := os.WriteFile(opts.Problem, []byte(problem), 0644); err != nil {
		t.Fatal(err)
	}
	opts.Table = ""

	in, err := r.Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(in.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(in.Rows))
	}
	if in.Hash == "" {
		t.Error("input hash is empty")
	}
}

func TestNewInputNilStore(t *testing.T) {
	if _, err := NewInput(nil, nil, figure.DefaultStyle()); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewInput(nil store) error = %v, want INVALID_INPUT", err)
	}
}
