package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const pdfUnicodeFont = "venue"

// PDFExporter implements PDF export using gofpdf
type PDFExporter struct {
	fontPath string
}

// NewPDFExporter creates a new PDF exporter. With an empty fontPath the core
// Arial font is used and characters outside cp1252 are not rendered.
func NewPDFExporter(fontPath string) *PDFExporter {
	return &PDFExporter{fontPath: fontPath}
}

// Export exports data to PDF format
func (p *PDFExporter) Export(table *Table, writer io.Writer) error {
	if len(table.Headers) == 0 {
		return fmt.Errorf("no headers provided")
	}

	orientation := "P"
	if table.Style.Landscape {
		orientation = "L"
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")

	family := "Arial"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if p.fontPath != "" {
		pdf.AddUTF8Font(pdfUnicodeFont, "", p.fontPath)
		pdf.AddUTF8Font(pdfUnicodeFont, "B", p.fontPath)
		family = pdfUnicodeFont
		tr = func(s string) string { return s }
	}
	fontSize := table.Style.FontSize
	if fontSize == 0 {
		fontSize = 10
	}

	pdf.AddPage()

	if table.Title != "" {
		pdf.SetFont(family, "B", 16)
		pdf.Cell(0, 10, tr(table.Title))
		pdf.Ln(12)
	}

	if !table.CreatedAt.IsZero() {
		pdf.SetFont(family, "", 8)
		pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", table.CreatedAt.Format("2006-01-02 15:04:05")))
		pdf.Ln(10)
	}

	pageWidth, pageHeight := pdf.GetPageSize()
	leftMargin, _, rightMargin, bottomMargin := pdf.GetMargins()
	colWidth := (pageWidth - leftMargin - rightMargin) / float64(len(table.Headers))

	drawHeader := func() {
		pdf.SetFont(family, "B", fontSize)
		fill := table.Style.HeaderBgColor != ""
		if fill {
			r, g, b := hexToRGB(table.Style.HeaderBgColor)
			pdf.SetFillColor(r, g, b)
			pdf.SetTextColor(255, 255, 255)
		}
		for _, header := range table.Headers {
			pdf.CellFormat(colWidth, 7, tr(header), "1", 0, "C", fill, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont(family, "", fontSize)
	}

	drawHeader()

	for rowIdx, row := range table.Rows {
		if table.Style.AlternateRows {
			color := table.Style.RowBgColor1
			if rowIdx%2 == 1 {
				color = table.Style.RowBgColor2
			}
			r, g, b := hexToRGB(color)
			pdf.SetFillColor(r, g, b)
		}

		for _, value := range row {
			text := truncateCell(fmt.Sprintf("%v", value), 60)
			pdf.CellFormat(colWidth, 6, tr(text), "1", 0, "L", table.Style.AlternateRows, 0, "")
		}
		pdf.Ln(-1)

		if pdf.GetY() > pageHeight-bottomMargin-10 {
			pdf.AddPage()
			drawHeader()
		}
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	return nil
}

// GetContentType returns the MIME type for PDF files
func (p *PDFExporter) GetContentType() string {
	return "application/pdf"
}

// GetFileExtension returns the file extension for PDF files
func (p *PDFExporter) GetFileExtension() string {
	return ".pdf"
}

// truncateCell keeps single-line cells readable; multi-line answers are
// flattened.
func truncateCell(s string, n int) string {
	r := []rune(s)
	for i, c := range r {
		if c == '\n' || c == '\r' {
			r[i] = ' '
		}
	}
	if len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return string(r)
}

// hexToRGB converts hex color to RGB values
func hexToRGB(hex string) (int, int, int) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	// Default to white if invalid
	if len(hex) != 6 {
		return 255, 255, 255
	}

	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
