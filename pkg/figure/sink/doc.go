// Package sink encodes a finished [figure.Figure] as SVG, PNG, PDF or JSON.
//
// # Formats
//
//   - [RenderSVG]: vector output built directly from the figure. Every kept
//     subplot becomes one <g class="axes"> group; the consolidated legend is
//     a single <g class="legend"> in the upper right corner.
//   - [RenderPNG]: one go-chart raster per subplot, tiled onto a canvas
//     with the legend drawn on top.
//   - [RenderPDF]: the SVG output converted with rsvg-convert.
//   - [RenderJSON]: the figure structure (axes, artists, legend) for
//     clients that draw it themselves.
//
// [Render] dispatches on a [Format] value.
//
// # Options
//
// Renderers take functional options (SVGOption, PNGOption, ...):
//
//	svg := sink.RenderSVG(fig, sink.WithTitle("EGF response"))
//	png, err := sink.RenderPNG(fig, sink.WithScale(2))
//
// [figure.Figure]: github.com/sparced/benchviz/pkg/figure.Figure
package sink
