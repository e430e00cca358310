package viz

import (
	"github.com/xuri/excelize/v2"

	"github.com/sparced/benchviz/pkg/errors"
)

// LoadXLSX reads a visualization table from an Excel workbook.
// If sheet is empty the first sheet is used. The first row is the header.
func LoadXLSX(path, sheet string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook %s", path)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.NewConfigError("", "workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read sheet %q", sheet)
	}
	if len(records) == 0 {
		return nil, errors.NewConfigError("", "sheet %q is empty", sheet)
	}
	return ParseRecords(records[0], records[1:])
}
