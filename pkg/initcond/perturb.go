package initcond

import (
	"strconv"
	"strings"

	"github.com/sparced/benchviz/pkg/errors"
)

// Perturbation overrides the initial value of one species.
type Perturbation struct {
	Name  string
	Value float64
}

// ApplyPerturbations returns a copy of values with every perturbation
// applied in order. Each perturbation sets all species whose name equals
// p.Name exactly. Unknown names change nothing.
func ApplyPerturbations(values []float64, names []string, perts []Perturbation) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	if len(perts) == 0 {
		return out
	}

	index := make(map[string][]int, len(names))
	for i, n := range names {
		if i < len(out) {
			index[n] = append(index[n], i)
		}
	}
	for _, p := range perts {
		for _, i := range index[p.Name] {
			out[i] = p.Value
		}
	}
	return out
}

// ParsePerturbations parses "name=value" pairs.
func ParsePerturbations(specs []string) ([]Perturbation, error) {
	perts := make([]Perturbation, 0, len(specs))
	for _, spec := range specs {
		name, raw, ok := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "perturbation %q: want name=value", spec)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "perturbation %q: invalid value", spec)
		}
		perts = append(perts, Perturbation{Name: name, Value: v})
	}
	return perts, nil
}
