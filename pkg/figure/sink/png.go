package sink

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/render"
	"github.com/sparced/benchviz/pkg/viz"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale   float64
	legend  bool
	viaSVG  bool
	ctx     context.Context
	svgOpts []SVGOption
}

// WithScale sets the output scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithoutPNGLegend suppresses the consolidated legend.
func WithoutPNGLegend() PNGOption {
	return func(r *pngRenderer) { r.legend = false }
}

// WithRSVG rasterizes the SVG output with rsvg-convert instead of drawing
// each subplot with go-chart.
func WithRSVG(ctx context.Context, opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.viaSVG, r.ctx, r.svgOpts = true, ctx, opts }
}

// RenderPNG rasterizes fig. Each subplot is drawn as its own chart and
// tiled into the grid; the legend is drawn on top in the upper right corner.
func RenderPNG(fig *figure.Figure, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1, legend: true}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("png scale must be positive, got %g", r.scale)
	}
	if r.viaSVG {
		if !r.legend {
			r.svgOpts = append(r.svgOpts, WithoutLegend())
		}
		return render.ToPNG(r.ctx, RenderSVG(fig, r.svgOpts...), r.scale)
	}

	style := fig.Style
	cell := int(math.Round(style.CellPixels()))
	canvas := image.NewRGBA(image.Rect(0, 0, fig.Cols()*cell, fig.Rows()*cell))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(resolveColor(style.Background, style)), image.Point{}, draw.Src)

	for _, ax := range fig.Axes {
		tile, err := renderTile(ax, style, cell)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", ax.PlotID, err)
		}
		at := image.Pt(ax.Col*cell, ax.Row*cell)
		draw.Draw(canvas, tile.Bounds().Add(at), tile, tile.Bounds().Min, draw.Over)
	}
	if r.legend && len(fig.Legend) > 0 {
		drawLegend(canvas, fig.Legend, style)
	}

	var out image.Image = canvas
	if r.scale != 1 {
		b := canvas.Bounds()
		scaled := image.NewRGBA(image.Rect(0, 0, int(float64(b.Dx())*r.scale), int(float64(b.Dy())*r.scale)))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), canvas, b, draw.Src, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderTile draws one subplot with go-chart. Subplots without drawable
// points get a blank tile with just the title.
func renderTile(ax *figure.Axes, style figure.Style, cell int) (image.Image, error) {
	xr, yr := axisRanges(ax)
	series := chartSeries(ax, xr, yr, style, cell)
	if len(series) == 0 {
		tile := image.NewRGBA(image.Rect(0, 0, cell, cell))
		drawText(tile, ax.Title, cell/2-font.MeasureString(basicfont.Face7x13, ax.Title).Ceil()/2, 20, color.Black)
		return tile, nil
	}

	fontColor := drawing.ColorBlack
	ch := chart.Chart{
		Title:      ax.Title,
		TitleStyle: chart.Style{FontSize: style.TitleSize, FontColor: fontColor},
		Width:      cell,
		Height:     cell,
		DPI:        style.DPI,
		Background: chart.Style{
			Padding:   chart.Box{Top: cell / 8, Left: cell / 20, Right: cell / 20, Bottom: cell / 40},
			FillColor: chartColor(style.Background, style),
		},
		Canvas: chart.Style{FillColor: chartColor(style.Background, style)},
		XAxis: chart.XAxis{
			Name:      ax.XLabel,
			NameStyle: chart.Style{FontSize: style.LabelSize, FontColor: fontColor},
			Style:     chart.Style{FontSize: style.TickSize, FontColor: fontColor},
			Range:     &chart.ContinuousRange{Min: xr.lo, Max: xr.hi},
			Ticks:     chartTicks(xr),
		},
		YAxis: chart.YAxis{
			Name:      ax.YLabel,
			NameStyle: chart.Style{FontSize: style.LabelSize, FontColor: fontColor},
			Style:     chart.Style{FontSize: style.TickSize, FontColor: fontColor},
			Range:     &chart.ContinuousRange{Min: yr.lo, Max: yr.hi},
			Ticks:     chartTicks(yr),
		},
		Series: series,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}

func chartTicks(r axisRange) []chart.Tick {
	ts := r.ticks()
	out := make([]chart.Tick, 0, len(ts))
	for _, t := range ts {
		out = append(out, chart.Tick{Value: t.value, Label: t.label})
	}
	return out
}

// chartSeries converts the artists of ax into go-chart series in axis space.
// Bars become one vertical stroke per bar.
func chartSeries(ax *figure.Axes, xr, yr axisRange, style figure.Style, cell int) []chart.Series {
	var out []chart.Series
	for _, a := range ax.Artists {
		c := chartColor(a.Color, style)
		n := min(len(a.X), len(a.Y))
		var xs, ys []float64
		for i := 0; i < n; i++ {
			x, okX := xr.toAxis(a.X[i])
			y, okY := yr.toAxis(a.Y[i])
			if okX && okY {
				xs, ys = append(xs, x), append(ys, y)
			}
		}
		if len(xs) == 0 {
			continue
		}

		switch a.Kind {
		case viz.KindLine:
			out = append(out, chart.ContinuousSeries{
				Name:    a.Label,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: c, StrokeWidth: a.LineWidth},
			})
		case viz.KindScatter:
			out = append(out, chart.ContinuousSeries{
				Name:    a.Label,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeWidth: chart.Disabled, DotWidth: a.Size, DotColor: c},
			})
		case viz.KindBar:
			base := yr.lo
			if !yr.log {
				base = math.Max(yr.lo, 0)
			}
			barPx := a.Size / (xr.hi - xr.lo) * float64(cell) * 0.8
			for i := range xs {
				out = append(out, chart.ContinuousSeries{
					XValues: []float64{xs[i], xs[i]},
					YValues: []float64{base, ys[i]},
					Style:   chart.Style{StrokeColor: c, StrokeWidth: math.Max(barPx, 1)},
				})
			}
		}
	}
	return out
}

func chartColor(spec string, style figure.Style) drawing.Color {
	c := resolveColor(spec, style)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// drawLegend paints the consolidated legend box in the upper right corner.
func drawLegend(dst *image.RGBA, entries []figure.LegendEntry, style figure.Style) {
	face := basicfont.Face7x13
	const (
		lineH  = 18
		swatch = 24
		pad    = 6
	)
	textW := 0
	for _, e := range entries {
		textW = max(textW, font.MeasureString(face, e.Label).Ceil())
	}
	w := pad + swatch + pad + textW + pad
	h := pad + len(entries)*lineH + pad
	x0 := dst.Bounds().Dx() - w - 8
	box := image.Rect(x0, 8, x0+w, 8+h)

	draw.Draw(dst, box, image.NewUniform(color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}), image.Point{}, draw.Src)
	draw.Draw(dst, box.Inset(1), image.White, image.Point{}, draw.Src)

	for i, e := range entries {
		cy := box.Min.Y + pad + i*lineH + lineH/2
		sx := box.Min.X + pad
		c := image.NewUniform(resolveColor(e.Handle.Color, style))
		var sw image.Rectangle
		switch e.Handle.Kind {
		case viz.KindBar:
			sw = image.Rect(sx, cy-5, sx+swatch, cy+5)
		case viz.KindScatter:
			r := int(math.Max(e.Handle.Size, 2))
			sw = image.Rect(sx+swatch/2-r, cy-r, sx+swatch/2+r, cy+r)
		default:
			half := int(math.Max(e.Handle.LineWidth/2, 1))
			sw = image.Rect(sx, cy-half, sx+swatch, cy+half)
		}
		draw.Draw(dst, sw, c, image.Point{}, draw.Src)
		drawText(dst, e.Label, sx+swatch+pad, cy+4, color.Black)
	}
}

func drawText(dst draw.Image, s string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
