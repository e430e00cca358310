package sink

import (
	"math"
	"strconv"

	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/viz"
)

type tick struct {
	value float64 // in axis space (log10 of the data value on log axes)
	label string
}

// axisRange is one padded axis interval in axis space.
type axisRange struct {
	lo, hi float64
	log    bool
}

// toAxis maps a data value into axis space. ok is false for values that
// cannot be shown on the axis.
func (r axisRange) toAxis(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if r.log {
		if v <= 0 {
			return 0, false
		}
		return math.Log10(v), true
	}
	return v, true
}

// frac maps an axis-space value onto [0,1].
func (r axisRange) frac(a float64) float64 {
	return (a - r.lo) / (r.hi - r.lo)
}

func (r axisRange) ticks() []tick {
	if r.log {
		return logTicks(r.lo, r.hi)
	}
	return linearTicks(r.lo, r.hi, 5)
}

// axisRanges returns the padded x and y ranges of ax. Empty axes get a unit
// range so they still draw a frame.
func axisRanges(ax *figure.Axes) (x, y axisRange) {
	x.log = ax.XScale == viz.ScaleLog
	y.log = ax.YScale == viz.ScaleLog
	lim, ok := ax.DataLimits()
	if !ok {
		x.lo, x.hi = 0, 1
		y.lo, y.hi = 0, 1
		return x, y
	}
	x.lo, x.hi = pad(lim.XMin, lim.XMax, x.log)
	y.lo, y.hi = pad(lim.YMin, lim.YMax, y.log)
	return x, y
}

// pad widens [lo, hi] by 5% on each side in axis space. A degenerate or
// near-degenerate interval is widened by one unit (or one decade on log
// axes) around its midpoint.
func pad(lo, hi float64, logScale bool) (float64, float64) {
	if logScale {
		lo, hi = math.Log10(lo), math.Log10(hi)
	}
	if hi-lo <= minSpan*max(math.Abs(lo), math.Abs(hi), 1) {
		mid := lo + (hi-lo)/2
		return mid - 0.5, mid + 0.5
	}
	m := (hi - lo) * 0.05
	return lo - m, hi + m
}

// minSpan is the relative width below which an axis interval is treated as
// a single value.
const minSpan = 1e-9

// linearTicks returns ticks at a 1/2/5×10^k step inside [lo, hi], at most
// 4*target of them.
func linearTicks(lo, hi float64, target int) []tick {
	step := niceStep(hi-lo, target)
	if step <= 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}
	start := math.Ceil(lo/step) * step
	var out []tick
	for k := 0; k < 4*target; k++ {
		v := start + float64(k)*step
		if v > hi+step*1e-9 {
			break
		}
		// Snap values like 0.30000000000000004.
		v = math.Round(v/step) * step
		out = append(out, tick{value: v, label: formatTick(v)})
	}
	return out
}

func niceStep(span float64, target int) float64 {
	if span <= 0 || target < 1 {
		return 0
	}
	raw := span / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch norm := raw / mag; {
	case norm < 1.5:
		return mag
	case norm < 3:
		return 2 * mag
	case norm < 7:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// logTicks returns one tick per integer decade inside [lo, hi] (axis space).
// Narrow ranges without a full decade fall back to linear ticks on the
// exponent.
func logTicks(lo, hi float64) []tick {
	var out []tick
	for e := math.Ceil(lo); e <= hi; e++ {
		out = append(out, tick{value: e, label: "1e" + strconv.Itoa(int(e))})
	}
	if len(out) >= 2 {
		return out
	}
	out = out[:0]
	for _, t := range linearTicks(lo, hi, 4) {
		out = append(out, tick{value: t.value, label: formatTick(math.Pow(10, t.value))})
	}
	return out
}

func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}
