package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVExporter writes ';'-separated UTF-8 with a BOM so spreadsheet apps open
// Cyrillic text correctly.
type CSVExporter struct {
	comma rune
}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{comma: ';'}
}

func (e *CSVExporter) Export(table *Table, writer io.Writer) error {
	if _, err := io.WriteString(writer, "\ufeff"); err != nil {
		return err
	}

	w := csv.NewWriter(writer)
	w.Comma = e.comma

	if err := w.Write(table.Headers); err != nil {
		return err
	}
	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = strings.ReplaceAll(fmt.Sprint(v), "\n", "<br>")
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (e *CSVExporter) GetContentType() string {
	return "text/csv; charset=utf-8"
}

func (e *CSVExporter) GetFileExtension() string {
	return ".csv"
}
