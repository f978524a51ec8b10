// Package export converts already-fetched records into downloadable
// formats: CSV, a tabular PDF report, and a full JSON backup document.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"fintrack/internal/core"
)

// csvHeader matches the transaction field set, one column per field.
var csvHeader = []string{"id", "date", "type", "category", "amount", "notes"}

// WriteCSV writes all transactions as CSV with a header row. An empty
// set yields the header only.
func WriteCSV(w io.Writer, items []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range items {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date,
			string(t.Type),
			t.Category,
			t.Amount.StringFixed(2),
			t.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
