package figure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sparced/benchviz/pkg/errors"
)

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.LabelSize != 14 || s.TickSize != 12 || s.LegendSize != 12 {
		t.Errorf("font sizes = %g/%g/%g, want 14/12/12", s.LabelSize, s.TickSize, s.LegendSize)
	}
	if !s.Bold() {
		t.Error("default weight should be bold")
	}
	if s.LineWidth != 3 {
		t.Errorf("LineWidth = %g, want 3", s.LineWidth)
	}
	if s.CellPixels() != 400 {
		t.Errorf("CellPixels = %g, want 400", s.CellPixels())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		check   func(Style) bool
		wantErr errors.Code
	}{
		{
			name:  "partial override",
			input: "line_width = 1.5\ncell_size = 3\n",
			check: func(s Style) bool { return s.LineWidth == 1.5 && s.CellSize == 3 && s.LabelSize == 14 },
		},
		{
			name:  "palette",
			input: `palette = ["red", "blue"]`,
			check: func(s Style) bool { return s.PaletteColor(3) == "blue" },
		},
		{
			name:    "unknown key",
			input:   "linewidth = 2",
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "bad weight",
			input:   `font_weight = "heavy"`,
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "zero size",
			input:   "dpi = 0",
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "malformed",
			input:   "line_width = ",
			wantErr: errors.ErrCodeInvalidFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseStyle(tt.input)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %s", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseStyle: %v", err)
			}
			if !tt.check(s) {
				t.Errorf("unexpected style %+v", s)
			}
		})
	}
}

func TestLoadStyle(t *testing.T) {
	s, err := LoadStyle("")
	if err != nil || s.LineWidth != 3 {
		t.Fatalf("LoadStyle(\"\") = %+v, %v", s, err)
	}

	path := filepath.Join(t.TempDir(), "style.toml")
	if err := os.WriteFile(path, []byte("legend_size = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err = LoadStyle(path)
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	if s.LegendSize != 9 {
		t.Errorf("LegendSize = %g, want 9", s.LegendSize)
	}

	if _, err := LoadStyle(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
