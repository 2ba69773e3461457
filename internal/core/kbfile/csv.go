// Package kbfile converts the knowledge base between its JSON file and the
// CSV and XLSX sheets admins edit by hand.
package kbfile

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

const (
	// LineBreakMarker stands in for newlines inside a CSV cell.
	LineBreakMarker = "<br>"
	csvSeparator    = ';'
	minQuestionLen  = 3
	utf8BOM         = "\ufeff"
)

var (
	ErrEmptyCSV  = errors.New("CSV file is empty")
	ErrBadHeader = errors.New("CSV must start with the header Question;Answer")

	quoteRun = regexp.MustCompile(`"+`)
	lineRun  = regexp.MustCompile(`\n+`)
)

// Issue describes an entry that was skipped during import.
type Issue struct {
	Line     int    `json:"line"`
	Question string `json:"question"`
	Reason   string `json:"reason"`
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s (%q)", i.Line, i.Reason, i.Question)
}

// ParseCSV reads the Question;Answer interchange format. A row with an empty
// question cell continues the previous answer on a new line. Entries that
// fail validation are skipped and reported as issues.
func ParseCSV(r io.Reader) (*filestore.OrderedMap[string], []Issue, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(len(utf8BOM)); err == nil && string(bom) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = csvSeparator
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, ErrEmptyCSV
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 2 || !isQuestionHeader(header[0]) {
		return nil, nil, ErrBadHeader
	}

	knowledge := filestore.NewOrderedMap[string]()
	var issues []Issue

	var (
		currentKey   string
		currentValue []string
		currentLine  int
	)
	flush := func() {
		if currentKey == "" {
			return
		}
		answer := strings.Join(currentValue, "\n")
		if reason := validateEntry(currentKey, answer); reason != "" {
			issues = append(issues, Issue{Line: currentLine, Question: currentKey, Reason: reason})
			return
		}
		knowledge.Set(currentKey, answer)
	}

	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, issues, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}
		if len(row) < 2 {
			continue
		}

		key := cleanText(row[0])
		value := cleanText(row[1])

		if key != "" {
			flush()
			currentKey = utils.NormalizeQuestion(key)
			currentLine = line
			currentValue = currentValue[:0]
			if value != "" {
				currentValue = append(currentValue, value)
			}
		} else if value != "" && currentKey != "" {
			currentValue = append(currentValue, value)
		}
	}
	flush()

	return knowledge, issues, nil
}

// WriteCSV renders entries in the interchange format with a UTF-8 BOM so
// spreadsheet apps pick the right encoding.
func WriteCSV(w io.Writer, knowledge *filestore.OrderedMap[string]) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	writer.Comma = csvSeparator

	if err := writer.Write([]string{"Question", "Answer"}); err != nil {
		return err
	}
	var werr error
	knowledge.Each(func(q, a string) bool {
		werr = writer.Write([]string{q, strings.ReplaceAll(a, "\n", LineBreakMarker)})
		return werr == nil
	})
	if werr != nil {
		return fmt.Errorf("failed to write CSV row: %w", werr)
	}
	writer.Flush()
	return writer.Error()
}

func isQuestionHeader(cell string) bool {
	h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(cell, utf8BOM)))
	return h == "question" || h == "вопрос"
}

// cleanText restores line breaks, collapses doubled quotes and blank lines.
func cleanText(text string) string {
	if text == "" || text == "None" {
		return ""
	}
	text = strings.ReplaceAll(text, LineBreakMarker, "\n")
	text = quoteRun.ReplaceAllString(text, `"`)
	text = lineRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

func validateEntry(question, answer string) string {
	switch {
	case utils.RuneLen(question) < minQuestionLen:
		return "question is too short"
	case strings.TrimSpace(answer) == "":
		return "answer is empty"
	case strings.ContainsRune(question, csvSeparator):
		return "question contains ';'"
	}
	return ""
}
