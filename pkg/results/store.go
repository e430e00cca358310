// Package results holds simulation trajectories keyed by condition,
// replicate and series.
//
// A [Store] is a three-level mapping: condition key → replicate key → series
// key → [Series]. Keys are opaque strings. Insertion order is kept at every
// level because replicate order decides draw order when a figure is built.
//
// Stores are filled once by a loader ([ReadJSON], [LoadSQLite]) or by [Store.Add]
// and then treated as read-only.
package results

import (
	"github.com/sparced/benchviz/pkg/errors"
)

// Series is one tracked quantity of one replicate: a time axis and the
// values sampled on it. Times are in seconds.
type Series struct {
	Times  []float64 `json:"toutS"`
	Values []float64 `json:"xoutS"`
}

// Len returns the number of samples.
func (s Series) Len() int { return len(s.Values) }

// Validate checks that times and values have the same length and that
// times never decrease.
func (s Series) Validate() error {
	if len(s.Times) != len(s.Values) {
		return errors.New(errors.ErrCodeInvalidInput, "series has %d times but %d values", len(s.Times), len(s.Values))
	}
	for i := 1; i < len(s.Times); i++ {
		if s.Times[i] < s.Times[i-1] {
			return errors.New(errors.ErrCodeInvalidInput, "series times decrease at index %d", i)
		}
	}
	return nil
}

// Store is an insertion-ordered condition → replicate → series mapping.
// The zero value is not usable; call [NewStore].
type Store struct {
	conditions map[string]*condition
	order      []string
}

type condition struct {
	replicates map[string]*replicate
	order      []string
}

type replicate struct {
	series map[string]Series
	order  []string
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{conditions: make(map[string]*condition)}
}

// Add stores s under (cond, rep, key). Re-adding an existing key replaces
// the series but keeps its original position.
func (st *Store) Add(cond, rep, key string, s Series) error {
	if err := s.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "series %s/%s/%s", cond, rep, key)
	}
	r := st.ensureReplicate(cond, rep)
	if _, ok := r.series[key]; !ok {
		r.order = append(r.order, key)
	}
	r.series[key] = s
	return nil
}

// AddCondition registers a condition with no replicates yet.
func (st *Store) AddCondition(cond string) {
	st.ensureCondition(cond)
}

func (st *Store) ensureCondition(cond string) *condition {
	c, ok := st.conditions[cond]
	if !ok {
		c = &condition{replicates: make(map[string]*replicate)}
		st.conditions[cond] = c
		st.order = append(st.order, cond)
	}
	return c
}

func (st *Store) ensureReplicate(cond, rep string) *replicate {
	c := st.ensureCondition(cond)
	r, ok := c.replicates[rep]
	if !ok {
		r = &replicate{series: make(map[string]Series)}
		c.replicates[rep] = r
		c.order = append(c.order, rep)
	}
	return r
}

// Conditions returns the condition keys in insertion order.
func (st *Store) Conditions() []string {
	return append([]string(nil), st.order...)
}

// Replicates returns the replicate keys of cond in insertion order.
func (st *Store) Replicates(cond string) ([]string, error) {
	c, ok := st.conditions[cond]
	if !ok {
		return nil, &errors.MissingDataError{Condition: cond}
	}
	return append([]string(nil), c.order...), nil
}

// SeriesKeys returns the series keys of (cond, rep) in insertion order.
func (st *Store) SeriesKeys(cond, rep string) ([]string, error) {
	r, err := st.replicate(cond, rep)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), r.order...), nil
}

// Series looks up one series. A miss at any level returns a
// *errors.MissingDataError carrying the requested key path.
func (st *Store) Series(cond, rep, key string) (Series, error) {
	r, err := st.replicate(cond, rep)
	if err != nil {
		return Series{}, err
	}
	s, ok := r.series[key]
	if !ok {
		return Series{}, &errors.MissingDataError{Condition: cond, Replicate: rep, Series: key}
	}
	return s, nil
}

func (st *Store) replicate(cond, rep string) (*replicate, error) {
	c, ok := st.conditions[cond]
	if !ok {
		return nil, &errors.MissingDataError{Condition: cond}
	}
	r, ok := c.replicates[rep]
	if !ok {
		return nil, &errors.MissingDataError{Condition: cond, Replicate: rep}
	}
	return r, nil
}

// Walk calls fn for every series in insertion order. It stops at the first
// error fn returns.
func (st *Store) Walk(fn func(cond, rep, key string, s Series) error) error {
	for _, cond := range st.order {
		c := st.conditions[cond]
		for _, rep := range c.order {
			r := c.replicates[rep]
			for _, key := range r.order {
				if err := fn(cond, rep, key, r.series[key]); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Counts returns the number of conditions, replicates and series stored.
func (st *Store) Counts() (conditions, replicates, series int) {
	conditions = len(st.order)
	for _, c := range st.conditions {
		replicates += len(c.order)
		for _, r := range c.replicates {
			series += len(r.order)
		}
	}
	return conditions, replicates, series
}
