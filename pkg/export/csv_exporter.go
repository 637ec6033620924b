package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// Sheet is one rendered block list. Rows are positional and may be shorter
// than Columns; missing cells render empty.
type Sheet struct {
	Title   string
	Columns []string
	Rows    [][]string
}

func (s Sheet) check() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("sheet has no columns")
	}
	for i, row := range s.Rows {
		if len(row) > len(s.Columns) {
			return fmt.Errorf("row %d has %d cells for %d columns", i+1, len(row), len(s.Columns))
		}
	}
	return nil
}

func (s Sheet) cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVExporter writes sheets for spreadsheet programs in German locales:
// semicolon separated with a UTF-8 byte order mark so umlauts survive.
type CSVExporter struct {
	comma rune
	bom   bool
}

// CSVOption tweaks the CSV dialect.
type CSVOption func(*CSVExporter)

// WithComma overrides the field separator.
func WithComma(r rune) CSVOption {
	return func(e *CSVExporter) { e.comma = r }
}

// WithoutBOM drops the byte order mark.
func WithoutBOM() CSVOption {
	return func(e *CSVExporter) { e.bom = false }
}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter(opts ...CSVOption) *CSVExporter {
	e := &CSVExporter{comma: ';', bom: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render produces CSV bytes for the sheet. The title is not written.
func (e *CSVExporter) Render(sheet Sheet) ([]byte, error) {
	if err := sheet.check(); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if e.bom {
		buf.Write(utf8BOM)
	}
	writer := csv.NewWriter(buf)
	writer.Comma = e.comma
	if err := writer.Write(sheet.Columns); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	record := make([]string, len(sheet.Columns))
	for _, row := range sheet.Rows {
		for i := range sheet.Columns {
			record[i] = neutralize(sheet.cell(row, i))
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// neutralize keeps free text such as block descriptions from being run as a
// spreadsheet formula.
func neutralize(cell string) string {
	if cell != "" && strings.ContainsRune("=+@\t\r", rune(cell[0])) {
		return "'" + cell
	}
	return cell
}
