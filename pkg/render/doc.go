// Package render converts SVG documents to other formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg). The figure
// sinks use ToPDF for PDF output; PNG output is rasterized natively and only
// falls back to rsvg-convert when asked to.
//
//	svg := sink.RenderSVG(fig)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
//
// [Available] reports whether the tool is installed, so callers can fail
// before doing any work.
package render
