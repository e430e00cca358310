package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sparced/benchviz/pkg/figure/sink"
	"github.com/sparced/benchviz/pkg/pipeline"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [visualization.tsv]",
		Short: "Render a visualization table and simulation results as a plot grid",
		Long: `Render a visualization table and simulation results as a plot grid.

Every distinct plotId of the table becomes one subplot. Subplots fill a
square grid column by column, and all series share one legend.

The table is read from the argument, from --table, or from the
visualization files of a PEtab problem (--problem). Results are JSON or
SQLite (.db). Rendered figures are cached by input content.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Table = args[0]
			}
			opts.Formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "visualization table (.tsv, .csv, .xlsx)")
	cmd.Flags().StringVarP(&opts.Problem, "problem", "p", "", "PEtab problem YAML naming the visualization tables")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "XLSX sheet (default: first sheet)")
	cmd.Flags().StringVarP(&opts.Results, "results", "r", "", "simulation results (.json, .db)")
	cmd.Flags().StringVarP(&opts.StyleFile, "style", "s", "", "TOML style file")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "figure title")
	cmd.Flags().BoolVar(&opts.NoLegend, "no-legend", false, "omit the legend")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.RSVG, "rsvg", false, "rasterize PNG with rsvg-convert")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached figures")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.MarkFlagRequired("results")

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = loggerFromContext(ctx)

	prog := newProgress(opts.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering figure...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Rendered %s", strings.Join(opts.Formats, ", ")))

	input := opts.Table
	if input == "" {
		input = opts.Problem
	}
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	printSuccess("Rendered %s", filepath.Base(input))
	printStats(result.Stats.Subplots, result.Stats.Artists, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each format to its own file and returns the paths.
// A single format goes to output as given; "-" writes it to stdout.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if len(p.formats) == 1 && p.output != "" {
		data := p.artifacts[p.formats[0]]
		if p.output == "-" {
			_, err := os.Stdout.Write(data)
			return nil, err
		}
		if err := writeFile(p.output, data); err != nil {
			return nil, err
		}
		return []string{p.output}, nil
	}

	base := basePath(p.output, p.input)
	paths := make([]string, 0, len(p.formats))
	for _, f := range p.formats {
		path := base + sink.Format(f).Ext()
		if err := writeFile(path, p.artifacts[f]); err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the output path without extension. An empty output
// falls back to the input name; a known format extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if _, err := sink.ParseFormat(ext); ext != "" && err == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
