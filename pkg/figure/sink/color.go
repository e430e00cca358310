package sink

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/sparced/benchviz/pkg/figure"
)

var tableau = map[string]string{
	"tab:blue":   "#1f77b4",
	"tab:orange": "#ff7f0e",
	"tab:green":  "#2ca02c",
	"tab:red":    "#d62728",
	"tab:purple": "#9467bd",
	"tab:brown":  "#8c564b",
	"tab:pink":   "#e377c2",
	"tab:gray":   "#7f7f7f",
	"tab:grey":   "#7f7f7f",
	"tab:olive":  "#bcbd22",
	"tab:cyan":   "#17becf",
}

// parseColor resolves a color spec: #rgb, #rrggbb, #rrggbbaa, CSS names,
// "tab:" names and "C0".."C9" palette references.
func parseColor(spec string, style figure.Style) (color.RGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(spec))
	if hex, ok := tableau[s]; ok {
		s = hex
	}
	if len(s) == 2 && s[0] == 'c' && s[1] >= '0' && s[1] <= '9' {
		s = strings.ToLower(style.PaletteColor(int(s[1] - '0')))
		if !strings.HasPrefix(s, "#") {
			return parseColor(s, figure.Style{})
		}
	}
	if c, ok := colornames.Map[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, false
	}
	s = s[1:]
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// resolveColor is parseColor with black as the fallback.
func resolveColor(spec string, style figure.Style) color.RGBA {
	if c, ok := parseColor(spec, style); ok {
		return c
	}
	return color.RGBA{A: 0xff}
}

// cssColor formats a color spec as #rrggbb for SVG attributes.
func cssColor(spec string, style figure.Style) string {
	c := resolveColor(spec, style)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
