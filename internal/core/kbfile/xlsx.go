package kbfile

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// XLSXSheetName is the sheet written by WriteXLSX.
const XLSXSheetName = "Знания"

var (
	ErrNoSheets         = errors.New("workbook has no sheets")
	ErrNoQuestionColumn = errors.New("no column containing 'ВОПРОС' or 'QUESTION'")
	ErrNoAnswerColumn   = errors.New("no column containing 'ОТВЕТ' or 'ANSWER'")
)

// ReadXLSX imports the first sheet of a workbook. The header row must have a
// column whose name contains ВОПРОС/QUESTION and one containing ОТВЕТ/ANSWER;
// spaces and case in the header are ignored.
func ReadXLSX(r io.Reader) (*filestore.OrderedMap[string], error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrNoQuestionColumn
	}

	keyCol, valueCol := -1, -1
	for i, name := range rows[0] {
		col := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", ""))
		if strings.Contains(col, "ВОПРОС") || strings.Contains(col, "QUESTION") {
			keyCol = i
		}
		if strings.Contains(col, "ОТВЕТ") || strings.Contains(col, "ANSWER") {
			valueCol = i
		}
	}
	if keyCol < 0 {
		return nil, ErrNoQuestionColumn
	}
	if valueCol < 0 {
		return nil, ErrNoAnswerColumn
	}

	knowledge := filestore.NewOrderedMap[string]()
	for _, row := range rows[1:] {
		if keyCol >= len(row) || valueCol >= len(row) {
			continue
		}
		question := utils.NormalizeQuestion(row[keyCol])
		answer := strings.TrimSpace(strings.ReplaceAll(row[valueCol], LineBreakMarker, "\n"))
		if question == "" || answer == "" {
			continue
		}
		knowledge.Set(question, answer)
	}
	return knowledge, nil
}

// WriteXLSX writes the knowledge base as a two-column sheet with wrapped
// answer cells.
func WriteXLSX(w io.Writer, knowledge *filestore.OrderedMap[string]) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return fmt.Errorf("failed to create cell style: %w", err)
	}

	if err := f.SetSheetRow(XLSXSheetName, "A1", &[]interface{}{"Question", "Answer"}); err != nil {
		return err
	}
	if err := f.SetCellStyle(XLSXSheetName, "A1", "B1", headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(XLSXSheetName, "A", "A", 35)
	_ = f.SetColWidth(XLSXSheetName, "B", "B", 90)

	row := 2
	var werr error
	knowledge.Each(func(q, a string) bool {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			werr = err
			return false
		}
		if err := f.SetSheetRow(XLSXSheetName, cell, &[]interface{}{q, a}); err != nil {
			werr = err
			return false
		}
		row++
		return true
	})
	if werr != nil {
		return fmt.Errorf("failed to write row: %w", werr)
	}
	if row > 2 {
		last, _ := excelize.CoordinatesToCellName(2, row-1)
		if err := f.SetCellStyle(XLSXSheetName, "A2", last, wrapStyle); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
