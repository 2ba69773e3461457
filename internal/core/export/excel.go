package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter implements Excel export using excelize
type ExcelExporter struct {
	defaultSheet string
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{
		defaultSheet: "Sheet1",
	}
}

// Export writes the table to a single-sheet workbook. The header row sits
// on row 1 so the file can be imported back.
func (e *ExcelExporter) Export(table *Table, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := table.Sheet
	if sheet == "" {
		sheet = e.defaultSheet
	}
	if sheet != e.defaultSheet {
		if err := f.SetSheetName(e.defaultSheet, sheet); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	headerStyle, err := e.createHeaderStyle(f, table.Style)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	oddRowStyle, err := e.createRowStyle(f, table.Style, table.Style.RowBgColor1)
	if err != nil {
		return fmt.Errorf("failed to create row style: %w", err)
	}
	evenRowStyle := oddRowStyle
	if table.Style.AlternateRows {
		evenRowStyle, err = e.createRowStyle(f, table.Style, table.Style.RowBgColor2)
		if err != nil {
			return fmt.Errorf("failed to create row style: %w", err)
		}
	}

	for colIndex, header := range table.Headers {
		cell, _ := excelize.CoordinatesToCellName(colIndex+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)

		if width, ok := table.Style.ColumnWidths[colIndex]; ok {
			colName, _ := excelize.ColumnNumberToName(colIndex + 1)
			f.SetColWidth(sheet, colName, colName, width)
		}
	}

	for rowIdx, row := range table.Rows {
		style := oddRowStyle
		if rowIdx%2 == 1 {
			style = evenRowStyle
		}
		for colIndex, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIndex+1, rowIdx+2)
			f.SetCellValue(sheet, cell, value)
			f.SetCellStyle(sheet, cell, cell, style)
		}
	}

	if table.Style.FreezeHeader {
		f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		})
	}

	if table.Style.AutoFilter && len(table.Headers) > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(len(table.Headers), len(table.Rows)+1)
		f.AutoFilter(sheet, "A1:"+lastCell, nil)
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}

	return nil
}

// GetContentType returns the MIME type for Excel files
func (e *ExcelExporter) GetContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// GetFileExtension returns the file extension for Excel files
func (e *ExcelExporter) GetFileExtension() string {
	return ".xlsx"
}

func (e *ExcelExporter) createHeaderStyle(f *excelize.File, style Style) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   style.HeaderBold,
			Size:   style.FontSize,
			Family: style.FontFamily,
			Color:  "FFFFFF",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(style.HeaderBgColor)},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

func (e *ExcelExporter) createRowStyle(f *excelize.File, style Style, bgColor string) (int, error) {
	rowStyle := &excelize.Style{
		Font: &excelize.Font{
			Size:   style.FontSize,
			Family: style.FontFamily,
		},
		Alignment: &excelize.Alignment{
			Vertical: "top",
			WrapText: style.WrapText,
		},
	}

	// Only add fill if bgColor is not white
	if bgColor != "" && bgColor != "#FFFFFF" {
		rowStyle.Fill = excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHashFromColor(bgColor)},
		}
	}

	return f.NewStyle(rowStyle)
}

// stripHashFromColor removes # from hex color codes
func stripHashFromColor(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
