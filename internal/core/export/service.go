package export

import (
	"bytes"
	"fmt"
	"io"
)

// Service provides high-level export functionality
type Service struct {
	exporters map[Format]Exporter
}

// NewService creates a new export service. pdfFontPath may point at a TTF
// font with Cyrillic glyphs; without it PDF output uses the core fonts.
func NewService(pdfFontPath string) *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatExcel: NewExcelExporter(),
			FormatCSV:   NewCSVExporter(),
			FormatPDF:   NewPDFExporter(pdfFontPath),
		},
	}
}

func (s *Service) exporter(format Format) (Exporter, error) {
	e, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	return e, nil
}

// Export renders the table in the given format.
func (s *Service) Export(table *Table, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.ExportToWriter(table, format, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportToWriter exports data to a writer
func (s *Service) ExportToWriter(table *Table, format Format, writer io.Writer) error {
	e, err := s.exporter(format)
	if err != nil {
		return err
	}
	if err := e.Export(table, writer); err != nil {
		return fmt.Errorf("%s export failed: %w", format, err)
	}
	return nil
}

// GetContentType returns the content type for the given format
func (s *Service) GetContentType(format Format) string {
	e, err := s.exporter(format)
	if err != nil {
		return "application/octet-stream"
	}
	return e.GetContentType()
}

// GetFileExtension returns the file extension for the given format
func (s *Service) GetFileExtension(format Format) string {
	e, err := s.exporter(format)
	if err != nil {
		return ".bin"
	}
	return e.GetFileExtension()
}
