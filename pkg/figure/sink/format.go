package sink

import (
	"context"
	"strings"

	"github.com/sparced/benchviz/pkg/errors"
	"github.com/sparced/benchviz/pkg/figure"
)

// Format is an output encoding.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatPDF, FormatJSON}

// ParseFormat accepts a format name or a file extension such as ".svg".
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q (want svg, png, pdf or json)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Render encodes fig in format f with default options.
func Render(ctx context.Context, fig *figure.Figure, f Format) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(fig), nil
	case FormatPNG:
		return RenderPNG(fig)
	case FormatPDF:
		return RenderPDF(ctx, fig)
	case FormatJSON:
		return RenderJSON(fig)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", f)
}
