package export

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 277.0 // A4 landscape minus margins, in mm
	minColShare = 4
	maxColShare = 40
)

// PDFExporter renders sheets into a landscape A4 table with the sheet title
// above it. Column widths follow the longest cell of each column.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF document.
func (e *PDFExporter) Render(sheet Sheet) ([]byte, error) {
	if err := sheet.check(); err != nil {
		return nil, err
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := columnWidths(sheet)

	header := func() {
		pdf.SetFont("Arial", "B", 10)
		for i, col := range sheet.Columns {
			pdf.CellFormat(widths[i], 8, tr(col), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Seite %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	if sheet.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(sheet.Title), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}
	header()

	if len(sheet.Rows) == 0 {
		pdf.CellFormat(pageWidth, 7, tr("Keine Sperrungen"), "1", 1, "C", false, 0, "")
	}
	for _, row := range sheet.Rows {
		for i := range sheet.Columns {
			pdf.CellFormat(widths[i], 7, tr(sheet.cell(row, i)), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths splits the page width by the longest cell per column,
// clamped so short columns stay legible and long descriptions don't take
// over the page.
func columnWidths(sheet Sheet) []float64 {
	shares := make([]int, len(sheet.Columns))
	total := 0
	for i, col := range sheet.Columns {
		longest := utf8.RuneCountInString(col)
		for _, row := range sheet.Rows {
			if n := utf8.RuneCountInString(sheet.cell(row, i)); n > longest {
				longest = n
			}
		}
		if longest < minColShare {
			longest = minColShare
		}
		if longest > maxColShare {
			longest = maxColShare
		}
		shares[i] = longest
		total += longest
	}
	widths := make([]float64, len(shares))
	for i, share := range shares {
		widths[i] = pageWidth * float64(share) / float64(total)
	}
	return widths
}
