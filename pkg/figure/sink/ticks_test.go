package sink

import (
	"image/color"
	"math"
	"testing"
	"time"

	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/results"
	"github.com/sparced/benchviz/pkg/viz"
)

func TestLinearTicks(t *testing.T) {
	ticks := linearTicks(0, 1, 5)
	want := []string{"0", "0.2", "0.4", "0.6", "0.8", "1"}
	if len(ticks) != len(want) {
		t.Fatalf("got %d ticks, want %d: %+v", len(ticks), len(want), ticks)
	}
	for i := range want {
		if ticks[i].label != want[i] {
			t.Errorf("tick %d = %q, want %q", i, ticks[i].label, want[i])
		}
	}
}

func TestLogTicks(t *testing.T) {
	ticks := logTicks(-1.1, 2.1)
	want := []string{"1e-1", "1e0", "1e1", "1e2"}
	if len(ticks) != len(want) {
		t.Fatalf("got %+v", ticks)
	}
	for i := range want {
		if ticks[i].label != want[i] {
			t.Errorf("tick %d = %q, want %q", i, ticks[i].label, want[i])
		}
	}
	if got := logTicks(0.1, 0.5); len(got) == 0 {
		t.Error("narrow log range should fall back to linear exponent ticks")
	}
}

func TestPadDegenerate(t *testing.T) {
	lo, hi := pad(2, 2, false)
	if lo != 1.5 || hi != 2.5 {
		t.Errorf("pad(2,2) = %g,%g", lo, hi)
	}
	lo, hi = pad(10, 10, true)
	if lo != 0.5 || hi != 1.5 {
		t.Errorf("pad log(10,10) = %g,%g", lo, hi)
	}
}

func TestPadNearDegenerate(t *testing.T) {
	next := math.Nextafter(1, 2)
	tests := []struct {
		name    string
		lo, hi  float64
		log     bool
		wantMid float64
	}{
		{"one ulp apart", 1, next, false, 1},
		{"large magnitude", 1e12, 1e12 + 1e-3, false, 1e12},
		{"near zero", 0, 1e-12, false, 0},
		{"log one ulp", 10, math.Nextafter(10, 11), true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := pad(tt.lo, tt.hi, tt.log)
			if hi-lo < 0.999 || hi-lo > 1.001 {
				t.Errorf("pad = [%g, %g], want a unit-wide range", lo, hi)
			}
			if mid := lo + (hi-lo)/2; math.Abs(mid-tt.wantMid) > 1e-6*math.Max(1, math.Abs(tt.wantMid)) {
				t.Errorf("midpoint = %g, want %g", mid, tt.wantMid)
			}
		})
	}
	if lo, hi := pad(0, 10, false); lo != -0.5 || hi != 10.5 {
		t.Errorf("pad(0,10) = %g,%g, want 5%% margins", lo, hi)
	}
}

func TestLinearTicksBounded(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
	}{
		{"step below float spacing", 1, math.Nextafter(1, 2)},
		{"large offset", 1e16, 1e16 + 4},
		{"normal", -3, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticks := linearTicks(tt.lo, tt.hi, 5)
			if len(ticks) > 20 {
				t.Errorf("got %d ticks, want at most 20", len(ticks))
			}
		})
	}
}

func TestRenderNearConstantSeries(t *testing.T) {
	st := results.NewStore()
	err := st.Add("EGF", "cell 0", "ppERK", results.Series{
		Times:  []float64{0, 3600},
		Values: []float64{1, math.Nextafter(1, 2)},
	})
	if err != nil {
		t.Fatal(err)
	}
	row := viz.Row{PlotID: "p", Kind: viz.KindLine, DatasetID: "EGF", XValues: "time", YValues: "ppERK", LegendEntry: "steady"}
	fig, err := figure.Build([]viz.Row{row}, st, figure.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		RenderSVG(fig)
		if _, err := RenderPNG(fig); err != nil {
			t.Errorf("RenderPNG: %v", err)
		}
	}()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("rendering a near-constant series did not finish")
	}
}

func TestParseColor(t *testing.T) {
	style := figure.DefaultStyle()
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ff0000", color.RGBA{R: 0xff, A: 0xff}, true},
		{"#0f0", color.RGBA{G: 0xff, A: 0xff}, true},
		{"#0000ff80", color.RGBA{B: 0xff, A: 0x80}, true},
		{"red", color.RGBA{R: 0xff, A: 0xff}, true},
		{"tab:blue", color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}, true},
		{"C1", color.RGBA{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff}, true},
		{"#zzzzzz", color.RGBA{}, false},
		{"notacolor", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := parseColor(tt.in, style)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parseColor(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
	if cssColor("nope", style) != "#000000" {
		t.Error("unknown colors should fall back to black")
	}
}
