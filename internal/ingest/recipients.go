package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/sangkips/mail-merge-service/internal/merge"
)

// ParseRecipients reads a .csv or .xlsx recipient list. The first row is the
// header; every following non-blank row becomes one normalized record.
func ParseRecipients(name string, r io.Reader) ([]merge.Record, error) {
	var (
		rows [][]string
		err  error
	)

	switch extension(name) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readFirstSheet(r)
	default:
		return nil, unsupported(name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipients %s: %w", name, err)
	}

	return recordsFromRows(rows), nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func recordsFromRows(rows [][]string) []merge.Record {
	if len(rows) < 2 {
		return []merge.Record{}
	}

	header := rows[0]
	records := make([]merge.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		records = append(records, merge.NormalizeRow(header, row))
	}
	return records
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
