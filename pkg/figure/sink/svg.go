package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/viz"
)

// Subplot margins as fractions of the cell size.
const (
	marginLeft   = 0.20
	marginRight  = 0.05
	marginTop    = 0.10
	marginBottom = 0.16
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	title  string
	legend bool
}

// WithTitle adds a figure-wide title above the grid.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithoutLegend suppresses the consolidated legend.
func WithoutLegend() SVGOption { return func(r *svgRenderer) { r.legend = false } }

// RenderSVG draws fig as a standalone SVG document.
func RenderSVG(fig *figure.Figure, opts ...SVGOption) []byte {
	r := svgRenderer{legend: true}
	for _, opt := range opts {
		opt(&r)
	}
	style := fig.Style
	width, height := fig.Width(), fig.Height()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="%s">`+"\n",
		width, height, width, height, escapeXML(style.FontFamily))
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", cssColor(style.Background, style))

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="suptitle" x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f" font-weight="%s">%s</text>`+"\n",
			width/2, fontPx(style.TitleSize, style)*1.1, fontPx(style.TitleSize, style), style.FontWeight, escapeXML(r.title))
	}
	for _, ax := range fig.Axes {
		renderAxes(&buf, ax, style)
	}
	if r.legend && len(fig.Legend) > 0 {
		renderLegend(&buf, fig.Legend, width, style)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// fontPx converts a point size to pixels at the style's DPI.
func fontPx(pt float64, style figure.Style) float64 {
	return pt * style.DPI / 72
}

// panel is the plotting rectangle of one subplot, in cell coordinates.
type panel struct {
	x0, y0, w, h float64
	xr, yr       axisRange
}

func newPanel(ax *figure.Axes, style figure.Style) panel {
	c := style.CellPixels()
	p := panel{
		x0: c * marginLeft,
		y0: c * marginTop,
		w:  c * (1 - marginLeft - marginRight),
		h:  c * (1 - marginTop - marginBottom),
	}
	p.xr, p.yr = axisRanges(ax)
	return p
}

// point maps a data point to cell pixels.
func (p panel) point(x, y float64) (px, py float64, ok bool) {
	ax, okX := p.xr.toAxis(x)
	ay, okY := p.yr.toAxis(y)
	if !okX || !okY {
		return 0, 0, false
	}
	return p.x0 + p.xr.frac(ax)*p.w, p.y0 + (1-p.yr.frac(ay))*p.h, true
}

func renderAxes(buf *bytes.Buffer, ax *figure.Axes, style figure.Style) {
	c := style.CellPixels()
	p := newPanel(ax, style)

	fmt.Fprintf(buf, `  <g class="axes" id="axes-%d" data-plot-id="%s" transform="translate(%.1f,%.1f)">`+"\n",
		ax.Index, escapeXML(ax.PlotID), float64(ax.Col)*c, float64(ax.Row)*c)

	fmt.Fprintf(buf, `    <text class="title" x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f" font-weight="%s">%s</text>`+"\n",
		p.x0+p.w/2, p.y0-fontPx(style.TitleSize, style)*0.5, fontPx(style.TitleSize, style), style.FontWeight, escapeXML(ax.Title))

	renderTicks(buf, p, style)

	fmt.Fprintf(buf, `    <clipPath id="clip-%d"><rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/></clipPath>`+"\n",
		ax.Index, p.x0, p.y0, p.w, p.h)
	fmt.Fprintf(buf, `    <g clip-path="url(#clip-%d)">`+"\n", ax.Index)
	for _, a := range ax.Artists {
		renderArtist(buf, a, p, style)
	}
	buf.WriteString("    </g>\n")

	fmt.Fprintf(buf, `    <rect class="frame" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="black" stroke-width="1"/>`+"\n",
		p.x0, p.y0, p.w, p.h)

	labelPx := fontPx(style.LabelSize, style)
	if ax.XLabel != "" {
		fmt.Fprintf(buf, `    <text class="xlabel" x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f" font-weight="%s">%s</text>`+"\n",
			p.x0+p.w/2, c-labelPx*0.4, labelPx, style.FontWeight, escapeXML(ax.XLabel))
	}
	if ax.YLabel != "" {
		x, y := labelPx*1.0, p.y0+p.h/2
		fmt.Fprintf(buf, `    <text class="ylabel" x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f" font-weight="%s" transform="rotate(-90 %.1f %.1f)">%s</text>`+"\n",
			x, y, labelPx, style.FontWeight, x, y, escapeXML(ax.YLabel))
	}
	buf.WriteString("  </g>\n")
}

func renderTicks(buf *bytes.Buffer, p panel, style figure.Style) {
	tickPx := fontPx(style.TickSize, style)
	for _, t := range p.xr.ticks() {
		x := p.x0 + p.xr.frac(t.value)*p.w
		y := p.y0 + p.h
		fmt.Fprintf(buf, `    <g class="xtick"><line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/><text x="%.1f" y="%.1f" text-anchor="middle" font-size="%.1f">%s</text></g>`+"\n",
			x, y, x, y+5, x, y+5+tickPx, tickPx, escapeXML(t.label))
	}
	for _, t := range p.yr.ticks() {
		y := p.y0 + (1-p.yr.frac(t.value))*p.h
		fmt.Fprintf(buf, `    <g class="ytick"><line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black"/><text x="%.1f" y="%.1f" text-anchor="end" font-size="%.1f">%s</text></g>`+"\n",
			p.x0-5, y, p.x0, y, p.x0-7, y+tickPx*0.35, tickPx, escapeXML(t.label))
	}
}

func renderArtist(buf *bytes.Buffer, a *figure.Artist, p panel, style figure.Style) {
	col := cssColor(a.Color, style)
	n := min(len(a.X), len(a.Y))

	switch a.Kind {
	case viz.KindLine:
		var pts []string
		for i := 0; i < n; i++ {
			if x, y, ok := p.point(a.X[i], a.Y[i]); ok {
				pts = append(pts, fmt.Sprintf("%.2f,%.2f", x, y))
			}
		}
		fmt.Fprintf(buf, `      <polyline class="artist line" data-id="%d" points="%s" fill="none" stroke="%s" stroke-width="%.1f" stroke-linejoin="round"/>`+"\n",
			a.ID, strings.Join(pts, " "), col, a.LineWidth)
	case viz.KindScatter:
		fmt.Fprintf(buf, `      <g class="artist scatter" data-id="%d" fill="%s">`, a.ID, col)
		for i := 0; i < n; i++ {
			if x, y, ok := p.point(a.X[i], a.Y[i]); ok {
				fmt.Fprintf(buf, `<circle cx="%.2f" cy="%.2f" r="%.1f"/>`, x, y, a.Size)
			}
		}
		buf.WriteString("</g>\n")
	case viz.KindBar:
		fmt.Fprintf(buf, `      <g class="artist bar" data-id="%d" fill="%s">`, a.ID, col)
		base := p.y0 + p.h
		if !p.yr.log {
			if _, y0, ok := p.point(0, 0); ok {
				base = y0
			}
		}
		for i := 0; i < n; i++ {
			left, top, okL := p.point(a.X[i]-a.Size/2, a.Y[i])
			right, _, okR := p.point(a.X[i]+a.Size/2, a.Y[i])
			if !okL || !okR {
				continue
			}
			y, h := top, base-top
			if h < 0 {
				y, h = base, -h
			}
			fmt.Fprintf(buf, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f"/>`, left, y, right-left, h)
		}
		buf.WriteString("</g>\n")
	}
}

func renderLegend(buf *bytes.Buffer, entries []figure.LegendEntry, width float64, style figure.Style) {
	fs := fontPx(style.LegendSize, style)
	lineH := fs * 1.4
	swatch := fs * 2

	longest := 0
	for _, e := range entries {
		longest = max(longest, len([]rune(e.Label)))
	}
	boxW := swatch + fs*0.8 + float64(longest)*fs*0.6 + fs
	boxH := float64(len(entries))*lineH + fs*0.6
	x0, y0 := width-boxW-8, 8.0

	fmt.Fprintf(buf, `  <g class="legend" transform="translate(%.1f,%.1f)" font-size="%.1f">`+"\n", x0, y0, fs)
	fmt.Fprintf(buf, `    <rect width="%.1f" height="%.1f" fill="white" fill-opacity="0.8" stroke="#cccccc"/>`+"\n", boxW, boxH)
	for i, e := range entries {
		cy := fs*0.3 + lineH*(float64(i)+0.5)
		sx := fs * 0.5
		col := cssColor(e.Handle.Color, style)
		switch e.Handle.Kind {
		case viz.KindScatter:
			fmt.Fprintf(buf, `    <circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", sx+swatch/2, cy, e.Handle.Size, col)
		case viz.KindBar:
			fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n", sx, cy-fs*0.35, swatch, fs*0.7, col)
		default:
			fmt.Fprintf(buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f"/>`+"\n", sx, cy, sx+swatch, cy, col, e.Handle.LineWidth)
		}
		fmt.Fprintf(buf, `    <text class="legend-label" x="%.1f" y="%.1f">%s</text>`+"\n", sx+swatch+fs*0.4, cy+fs*0.35, escapeXML(e.Label))
	}
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
