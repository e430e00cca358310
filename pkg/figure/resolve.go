package figure

import (
	"github.com/sparced/benchviz/pkg/errors"
	"github.com/sparced/benchviz/pkg/results"
	"github.com/sparced/benchviz/pkg/viz"
)

// SecondsPerHour converts store time axes (seconds) to plotted hours.
const SecondsPerHour = 3600.0

// Resolver looks up the x/y data of a row for one replicate.
// It holds no cache; every call reads the store.
type Resolver struct {
	store *results.Store
}

// NewResolver creates a resolver over st.
func NewResolver(st *results.Store) *Resolver {
	return &Resolver{store: st}
}

// Resolve returns the x and y values of row for replicate rep.
//
// y is the value series of row.YValues. When row.XValues is "time", x is
// that same series' time axis in hours; otherwise x is the value series of
// row.XValues under the same condition and replicate.
func (r *Resolver) Resolve(row viz.Row, rep string) (x, y []float64, err error) {
	ys, err := r.store.Series(row.DatasetID, rep, row.YValues)
	if err != nil {
		return nil, nil, err
	}
	y = ys.Values

	if row.UsesTime() {
		x = make([]float64, len(ys.Times))
		for i, t := range ys.Times {
			x[i] = t / SecondsPerHour
		}
		return x, y, nil
	}

	xs, err := r.store.Series(row.DatasetID, rep, row.XValues)
	if err != nil {
		return nil, nil, err
	}
	if len(xs.Values) != len(y) {
		return nil, nil, errors.New(errors.ErrCodeInvalidInput,
			"x series %q has %d values but y series %q has %d", row.XValues, len(xs.Values), row.YValues, len(y))
	}
	return xs.Values, y, nil
}
