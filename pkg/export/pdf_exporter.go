package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 10.0
	pdfLineHeight = 4.5
)

// PDFExporter renders datasets into a landscape table suitable for printing the board.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and a table whose rows grow to fit multi-line cells.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	colWidth := (pageW - 2*pdfMargin) / float64(len(data.Headers))

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(2)
	}

	header := func() {
		pdf.SetFont("Arial", "B", 9)
		for _, h := range data.Headers {
			pdf.CellFormat(colWidth, 7, h, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	header()

	for _, row := range data.Rows {
		lines := 1
		for _, h := range data.Headers {
			if n := len(pdf.SplitLines([]byte(row[h]), colWidth-2)); n > lines {
				lines = n
			}
		}
		height := float64(lines)*pdfLineHeight + 1

		if pdf.GetY()+height > pageH-pdfMargin {
			pdf.AddPage()
			header()
		}

		y := pdf.GetY()
		x := pdfMargin
		for _, h := range data.Headers {
			pdf.Rect(x, y, colWidth, height, "D")
			pdf.SetXY(x+1, y+0.5)
			pdf.MultiCell(colWidth-2, pdfLineHeight, strings.TrimSpace(row[h]), "", "L", false)
			x += colWidth
		}
		pdf.SetXY(pdfMargin, y+height)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
