package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ganttflow/ganttflow/internal/model"
)

// parseCSV reads a whole CSV document. The header row is mandatory;
// rows with a different arity than the header are tolerated (short
// rows read missing columns as empty, long rows ignore the surplus).
func parseCSV(r io.Reader, opts Options) ([]model.Task, model.FormatKind, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, model.KindLegacy, ErrEmptyInput
	}
	if err != nil {
		return nil, model.KindLegacy, fmt.Errorf("parser: reading header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, model.KindLegacy, fmt.Errorf("parser: reading row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	return buildAll(header, rows, opts)
}
