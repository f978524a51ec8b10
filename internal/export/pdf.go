package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"fintrack/internal/core"
)

// BuildPDF renders the given month's transactions as a tabular report
// with the month as a labeled heading.
func BuildPDF(items []core.Transaction, month, currencySymbol string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Transaction Report - "+month), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Table header
	colWidths := []float64{28, 24, 40, 28, 70}
	headers := []string{"Date", "Type", "Category", "Amount", "Notes"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, t := range items {
		pdf.CellFormat(colWidths[0], 7, t.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 7, string(t.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[2], 7, tr(t.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[3], 7, tr(currencySymbol+t.Amount.StringFixed(2)), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[4], 7, tr(t.Notes), "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}
	if len(items) == 0 {
		pdf.CellFormat(190, 7, "No transactions for this month", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
