package pipeline

import (
	"context"
	"fmt"

	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/figure/sink"
)

// RenderFigure encodes fig in every format of opts. Options must already be
// validated.
func RenderFigure(ctx context.Context, fig *figure.Figure, opts Options) (map[string][]byte, error) {
	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch sink.Format(format) {
		case sink.FormatSVG:
			data = sink.RenderSVG(fig, svgOpts...)
		case sink.FormatPNG:
			data, err = sink.RenderPNG(fig, buildPNGOptions(ctx, opts, svgOpts)...)
		case sink.FormatPDF:
			data, err = sink.RenderPDF(ctx, fig, sink.WithPDFSVGOptions(svgOpts...))
		case sink.FormatJSON:
			data, err = sink.RenderJSON(fig)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Title != "" {
		out = append(out, sink.WithTitle(opts.Title))
	}
	if opts.NoLegend {
		out = append(out, sink.WithoutLegend())
	}
	return out
}

func buildPNGOptions(ctx context.Context, opts Options, svgOpts []sink.SVGOption) []sink.PNGOption {
	out := []sink.PNGOption{sink.WithScale(opts.Scale)}
	if opts.NoLegend {
		out = append(out, sink.WithoutPNGLegend())
	}
	if opts.RSVG {
		out = append(out, sink.WithRSVG(ctx, svgOpts...))
	}
	return out
}
