package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"console/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// Column describes one exported table column. Width is in millimeters
// for the PDF layout; CSV ignores it.
type Column struct {
	Header string
	Width  float64
}

// Meta carries the pagination counters printed in the PDF footer so a
// reader knows the export covers one page, not the whole collection.
type Meta struct {
	Page       int
	TotalPages int
	Total      int
}

// BuildPagePDF renders the currently loaded page as an A4 table and
// returns the bytes plus a suggested filename.
func BuildPagePDF(title string, cols []Column, rows [][]string, meta Meta) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, strings.ToUpper(title))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, "Dicetak: "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	// Header row
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range cols {
		pdf.CellFormat(colWidth(col), 8, col.Header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		for i, col := range cols {
			val := ""
			if i < len(row) {
				val = utils.Truncate(row[i], 40)
			}
			pdf.CellFormat(colWidth(col), 7, val, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 8, "Tidak ada data pada halaman ini.")
		pdf.Ln(8)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Halaman %d dari %d, %d baris ditampilkan, %d total",
		meta.Page, meta.TotalPages, len(rows), meta.Total))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("%s_p%d_%s.pdf",
		safeFilenamePart(title), meta.Page, time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

// WriteCSV writes the same page as CSV with a header row.
func WriteCSV(w io.Writer, cols []Column, rows [][]string) error {
	cw := csv.NewWriter(w)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		padded := make([]string, len(cols))
		for i := range cols {
			if i < len(row) {
				padded[i] = row[i]
			}
		}
		if err := cw.Write(padded); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func colWidth(c Column) float64 {
	if c.Width <= 0 {
		return 40
	}
	return c.Width
}

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

func safeFilenamePart(s string) string {
	s = unsafeFilename.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "export"
	}
	return s
}
