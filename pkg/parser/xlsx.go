package parser

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ganttflow/ganttflow/internal/model"
)

// parseXLSX reads the first sheet of an Excel workbook through the
// same normalization path as CSV. The first row is the header.
func parseXLSX(r io.Reader, opts Options) ([]model.Task, model.FormatKind, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, model.KindLegacy, fmt.Errorf("parser: opening xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, model.KindLegacy, ErrEmptyInput
		}
		sheet = sheets[0]
	}

	it, err := f.Rows(sheet)
	if err != nil {
		return nil, model.KindLegacy, fmt.Errorf("parser: reading sheet %q: %w", sheet, err)
	}
	defer it.Close()

	if !it.Next() {
		return nil, model.KindLegacy, ErrEmptyInput
	}
	header, err := it.Columns()
	if err != nil {
		return nil, model.KindLegacy, fmt.Errorf("parser: reading header: %w", err)
	}

	var rows [][]string
	for it.Next() {
		row, err := it.Columns()
		if err != nil {
			return nil, model.KindLegacy, fmt.Errorf("parser: reading row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	return buildAll(header, rows, opts)
}
