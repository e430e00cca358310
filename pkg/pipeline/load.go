package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sparced/benchviz/pkg/cache"
	"github.com/sparced/benchviz/pkg/errors"
	"github.com/sparced/benchviz/pkg/figure"
	"github.com/sparced/benchviz/pkg/observability"
	"github.com/sparced/benchviz/pkg/results"
	"github.com/sparced/benchviz/pkg/viz"
)

// Input is everything a figure is built from.
type Input struct {
	Rows  []viz.Row
	Store *results.Store
	Style figure.Style

	// Hash identifies the content of Rows, Store and Style.
	Hash string
}

// NewInput bundles loaded inputs and computes their content hash.
func NewInput(rows []viz.Row, st *results.Store, style figure.Style) (*Input, error) {
	if st == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "results store is nil")
	}
	rowData, err := json.Marshal(rows)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash rows")
	}
	storeData, err := st.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash results")
	}
	styleData, err := json.Marshal(style)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "hash style")
	}
	return &Input{
		Rows:  rows,
		Store: st,
		Style: style,
		Hash:  cache.HashParts(rowData, storeData, styleData),
	}, nil
}

// Load reads the table, results and style named by opts.
func (r *Runner) Load(ctx context.Context, opts Options) (*Input, error) {
	if err := opts.ValidateInputs(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	source := opts.Table
	if source == "" {
		source = opts.Problem
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source, opts.Results)
	start := time.Now()

	in, err := load(ctx, opts)
	if err != nil {
		hooks.OnLoadComplete(ctx, 0, 0, time.Since(start), err)
		return nil, err
	}
	conds, reps, series := in.Store.Counts()
	hooks.OnLoadComplete(ctx, len(in.Rows), conds, time.Since(start), nil)
	opts.Logger.Debug("loaded inputs",
		"rows", len(in.Rows),
		"conditions", conds,
		"replicates", reps,
		"series", series)
	return in, nil
}

func load(ctx context.Context, opts Options) (*Input, error) {
	rows, err := loadRows(opts)
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	st, err := results.Load(ctx, opts.Results)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	style, err := loadStyle(opts)
	if err != nil {
		return nil, fmt.Errorf("load style: %w", err)
	}
	return NewInput(rows, st, style)
}

func loadRows(opts Options) ([]viz.Row, error) {
	if opts.Table == "" {
		p, err := viz.LoadProblem(opts.Problem)
		if err != nil {
			return nil, err
		}
		return p.LoadRows()
	}
	if opts.Sheet != "" && strings.EqualFold(filepath.Ext(opts.Table), ".xlsx") {
		return viz.LoadXLSX(opts.Table, opts.Sheet)
	}
	return viz.LoadTable(opts.Table)
}

func loadStyle(opts Options) (figure.Style, error) {
	switch {
	case opts.Style != nil:
		return *opts.Style, nil
	case opts.StyleFile != "":
		return figure.LoadStyle(opts.StyleFile)
	default:
		return figure.DefaultStyle(), nil
	}
}
