package viz

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sparced/benchviz/pkg/errors"
)

// Column names of the visualization table.
const (
	ColPlotID      = "plotId"
	ColPlotName    = "plotName"
	ColPlotType    = "plotTypeSimulation"
	ColDatasetID   = "datasetId"
	ColXValues     = "xValues"
	ColYValues     = "yValues"
	ColXScale      = "xScale"
	ColYScale      = "yScale"
	ColXLabel      = "xLabel"
	ColYLabel      = "yLabel"
	ColLegendEntry = "legendEntry"
	ColColor       = "Color"
)

// requiredColumns must be present in every table header.
var requiredColumns = []string{ColPlotID, ColPlotType, ColDatasetID, ColYValues}

// LoadTable reads a visualization table, choosing the decoder from the file
// extension: .xlsx for Excel, .csv for comma-separated, anything else is
// read as tab-separated.
func LoadTable(path string) ([]Row, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return LoadXLSX(path, "")
	case ".csv":
		return loadDelimited(path, ',')
	default:
		return LoadTSV(path)
	}
}

// LoadTSV reads a tab-separated visualization table from path.
func LoadTSV(path string) ([]Row, error) {
	return loadDelimited(path, '\t')
}

func loadDelimited(path string, sep rune) ([]Row, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "visualization table %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadDelimited(f, sep)
}

// ReadDelimited parses a delimited visualization table from r.
func ReadDelimited(r io.Reader, sep rune) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.NewConfigError("", "table is empty")
	}
	return ParseRecords(records[0], records[1:])
}

// ParseRecords converts a header and data records into rows.
// Blank records are skipped. Missing trailing cells read as empty.
func ParseRecords(header []string, records [][]string) ([]Row, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if strings.EqualFold(h, ColColor) {
			h = ColColor
		}
		index[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, errors.NewConfigError(col, "column is required")
		}
	}

	cell := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		if isBlank(rec) {
			continue
		}
		i := len(rows)
		row := Row{
			PlotID:      cell(rec, ColPlotID),
			PlotName:    cell(rec, ColPlotName),
			Kind:        PlotKind(cell(rec, ColPlotType)),
			DatasetID:   cell(rec, ColDatasetID),
			XValues:     cell(rec, ColXValues),
			YValues:     cell(rec, ColYValues),
			XLabel:      cell(rec, ColXLabel),
			YLabel:      cell(rec, ColYLabel),
			LegendEntry: cell(rec, ColLegendEntry),
			Color:       cell(rec, ColColor),
		}
		xs, ok := ParseScale(cell(rec, ColXScale))
		if !ok {
			return nil, &errors.ConfigError{Column: ColXScale, Row: i, Reason: "unknown scale " + cell(rec, ColXScale)}
		}
		ys, ok := ParseScale(cell(rec, ColYScale))
		if !ok {
			return nil, &errors.ConfigError{Column: ColYScale, Row: i, Reason: "unknown scale " + cell(rec, ColYScale)}
		}
		row.XScale, row.YScale = xs, ys
		row.Normalize()
		if err := row.Validate(i); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, errors.NewConfigError("", "table has no data rows")
	}
	return rows, nil
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
