package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format represents the export file format
type Format string

const (
	FormatExcel Format = "xlsx"
	FormatCSV   Format = "csv"
	FormatPDF   Format = "pdf"
)

// ParseFormat accepts the names used in query strings ("excel" is an alias
// for xlsx).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "xlsx", "excel":
		return FormatExcel, nil
	case "csv":
		return FormatCSV, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", s)
	}
}

// Exporter is the interface for all export formats
type Exporter interface {
	Export(table *Table, writer io.Writer) error
	GetContentType() string
	GetFileExtension() string
}

// Table is one sheet of exported records.
type Table struct {
	Title     string
	Sheet     string
	CreatedAt time.Time

	Headers []string
	Rows    [][]interface{}

	Style Style
}

// Style defines styling options for exports
type Style struct {
	HeaderBold    bool
	HeaderBgColor string // Hex color
	AlternateRows bool
	RowBgColor1   string
	RowBgColor2   string

	FontFamily string
	FontSize   float64

	// Excel specific
	FreezeHeader bool
	AutoFilter   bool
	WrapText     bool
	ColumnWidths map[int]float64 // Column index -> width

	// PDF specific
	Landscape bool
}

// DefaultStyle returns default export styling
func DefaultStyle() Style {
	return Style{
		HeaderBold:    true,
		HeaderBgColor: "#4472C4",
		AlternateRows: true,
		RowBgColor1:   "#FFFFFF",
		RowBgColor2:   "#F2F2F2",
		FontFamily:    "Arial",
		FontSize:      10,
		FreezeHeader:  true,
		AutoFilter:    true,
		WrapText:      true,
		ColumnWidths:  make(map[int]float64),
	}
}

// NewTable builds a table with default styling.
func NewTable(title string, headers []string) *Table {
	return &Table{
		Title:     title,
		CreatedAt: time.Now(),
		Headers:   headers,
		Style:     DefaultStyle(),
	}
}

// AddRow appends one record.
func (t *Table) AddRow(values ...interface{}) {
	t.Rows = append(t.Rows, values)
}
