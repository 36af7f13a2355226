package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads a header row followed by data rows. Ragged rows are kept
// as-is; blank lines are skipped by the csv reader.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty csv: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	t := &Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row %d: %w", len(t.Rows)+1, err)
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}
