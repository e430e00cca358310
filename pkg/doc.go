// Package pkg provides the core libraries for benchviz.
//
// # Overview
//
// benchviz turns simulation time-series results into a grid of plots laid
// out by a visualization table. The pkg directory is organized into:
//
//  1. [viz] - Visualization table rows, plot kinds and table loaders
//  2. [results] - Results store (condition, replicate, series) and loaders
//  3. [figure] - Grid planning, series resolution, drawing and legends
//  4. [figure/sink] - SVG, PNG, PDF and JSON encoders
//  5. [pipeline] - Orchestration (load → build → render) with caching
//  6. [initcond] and [bench] - Model collaborators
//
// # Architecture
//
// The typical data flow through benchviz:
//
//	Visualization table + results
//	         ↓
//	    [viz] / [results] packages (load and validate)
//	         ↓
//	    [figure] package (grid, subplots, legend)
//	         ↓
//	    [figure/sink] package (encode)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
//	rows, _ := viz.LoadTable("visualization.tsv")
//	store, _ := results.Load(ctx, "results.json")
//
//	fig, err := figure.Build(rows, store, figure.DefaultStyle())
//	if err != nil {
//	    return err
//	}
//	svg := sink.RenderSVG(fig)
//
// Or through the pipeline, which adds caching and hooks:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Table:   "visualization.tsv",
//	    Results: "results.json",
//	    Formats: []string{"svg", "png"},
//	})
//
// # Supporting Packages
//
//   - [errors]: coded errors (CONFIG_ERROR, MISSING_DATA, UNSUPPORTED_PLOT_TYPE)
//   - [cache]: file, redis and null artifact caches
//   - [render]: SVG to PDF/PNG conversion through rsvg-convert
//   - [observability]: pipeline, cache and HTTP hooks
//   - [buildinfo]: version information set at link time
//
// [viz]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/viz
// [results]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/results
// [figure]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/figure
// [figure/sink]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/figure/sink
// [pipeline]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/pipeline
// [initcond]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/initcond
// [bench]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/bench
// [errors]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/errors
// [cache]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/cache
// [render]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/render
// [observability]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/sparced/benchviz/pkg/buildinfo
package pkg
