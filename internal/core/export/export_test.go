package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() *Table {
	t := NewTable("Bookings", []string{"Name", "Phone", "Guests"})
	t.Sheet = "Брони"
	t.AddRow("Анна", "+7 900 000-00-00", 12)
	t.AddRow("Bob", "+7 901 111-11-11", 4)
	return t
}

func TestExcelExporter_HeaderOnFirstRow(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExcelExporter().Export(sampleTable(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Брони"}, f.GetSheetList())
	rows, err := f.GetRows("Брони")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Name", "Phone", "Guests"}, rows[0])
	assert.Equal(t, []string{"Анна", "+7 900 000-00-00", "12"}, rows[1])
}

func TestCSVExporter_UsesSemicolonAndBOM(t *testing.T) {
	table := NewTable("", []string{"Question", "Answer"})
	table.AddRow("цены", "строка 1\nстрока 2")

	var buf bytes.Buffer
	require.NoError(t, NewCSVExporter().Export(table, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\ufeffQuestion;Answer\n"))
	assert.Contains(t, out, "цены;строка 1<br>строка 2")
}

func TestPDFExporter_WritesDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewPDFExporter("").Export(sampleTable(), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFExporter_RequiresHeaders(t *testing.T) {
	var buf bytes.Buffer
	err := NewPDFExporter("").Export(&Table{}, &buf)
	assert.Error(t, err)
}

func TestService_FormatLookup(t *testing.T) {
	s := NewService("")

	f, err := ParseFormat("excel")
	require.NoError(t, err)
	assert.Equal(t, FormatExcel, f)
	assert.Equal(t, ".xlsx", s.GetFileExtension(f))

	_, err = ParseFormat("docx")
	assert.Error(t, err)

	data, err := s.Export(sampleTable(), FormatCSV)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Bob")
	assert.Equal(t, "application/octet-stream", s.GetContentType("docx"))
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "a b", truncateCell("a\nb", 10))
	assert.Equal(t, "абв…", truncateCell("абвгд", 4))
}
