// Package figure builds a grid of subplots from a visualization table and a
// results store.
//
// # Overview
//
// [Build] is the entry point. It runs five steps:
//
//  1. Plan a square grid for the distinct plot groups ([PlanGrid])
//  2. Resolve each row's x/y data per replicate ([Resolver])
//  3. Draw one [Artist] per replicate into the row's subplot, dispatching on
//     the row's plot kind
//  4. Drop grid cells that no plot group uses
//  5. Consolidate one legend across all subplots ([ConsolidateLegend])
//
// The result is an in-memory [Figure]. Encoding it as SVG, PNG, PDF or JSON
// is the job of the [sink] package.
//
// # Grid Placement
//
// With N plot groups the grid side is S = ceil(sqrt(N)) and the grid is
// always S×S. Plot group i sits at row i mod S, column i div S: groups fill
// down each column before moving right. Cells with index ≥ N are removed.
//
// # Cosmetics
//
// Axis labels, scales and the title are written every time a row targets a
// subplot, so the last row of a plot group wins. Shared visual settings
// (font sizes, weights, line width) come from an explicit [Style] value
// passed to [Build]; nothing is read from package state.
//
// # Errors
//
// Build fails fast. A lookup miss returns *errors.MissingDataError, a plot
// kind outside Scatter/Line/Bar returns *errors.UnsupportedPlotTypeError,
// and an empty table returns *errors.ConfigError. No partial figure is
// returned.
//
// [sink]: github.com/sparced/benchviz/pkg/figure/sink
package figure
