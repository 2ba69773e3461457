package kbfile

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/core/filestore"
	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/utils"
)

// ReadJSON decodes a question → answer object, normalizing keys and dropping
// blank entries. Key order is kept.
func ReadJSON(r io.Reader) (*filestore.OrderedMap[string], error) {
	var raw filestore.OrderedMap[string]
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge JSON: %w", err)
	}

	knowledge := filestore.NewOrderedMap[string]()
	raw.Each(func(q, a string) bool {
		q = utils.NormalizeQuestion(q)
		a = strings.TrimSpace(a)
		if q != "" && a != "" {
			knowledge.Set(q, a)
		}
		return true
	})
	return knowledge, nil
}

// WriteJSON writes the knowledge file format.
func WriteJSON(w io.Writer, knowledge *filestore.OrderedMap[string]) error {
	data, err := filestore.Encode(knowledge)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Format is an interchange format name as used in file extensions.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatFromFilename picks the format by extension.
func FormatFromFilename(name string) (Format, error) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", fmt.Errorf("file %q has no extension", name)
	}
	switch f := Format(strings.ToLower(name[idx+1:])); f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported file type %q (use json, csv or xlsx)", f)
	}
}

// Read parses r in the given format. CSV issues are returned alongside.
func Read(format Format, r io.Reader) (*filestore.OrderedMap[string], []Issue, error) {
	switch format {
	case FormatJSON:
		kb, err := ReadJSON(r)
		return kb, nil, err
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		kb, err := ReadXLSX(r)
		return kb, nil, err
	default:
		return nil, nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// Write renders knowledge in the given format.
func Write(format Format, w io.Writer, knowledge *filestore.OrderedMap[string]) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, knowledge)
	case FormatCSV:
		return WriteCSV(w, knowledge)
	case FormatXLSX:
		return WriteXLSX(w, knowledge)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// ContentType returns the MIME type for downloads.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
