package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"colcat/internal/models"

	log "github.com/sirupsen/logrus"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a parsed tabular file: a header row plus data rows. Rows may be
// ragged; lookups guard against short rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadFile parses a CSV or TSV file (chosen by extension) into a Table.
// A UTF-8 BOM is stripped and invalid UTF-8 sequences are replaced before
// parsing.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if bytes.Contains(data, []byte{0}) {
		return nil, fmt.Errorf("%s looks like a binary file, not tabular text", path)
	}

	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		log.Warnf("%s contains invalid UTF-8, replacing invalid sequences", path)
		data = bytes.ToValidUTF8(data, []byte(string(utf8.RuneError)))
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = separatorFor(path)
	r.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// WriteFile serializes the table back out, using the separator implied by
// the destination path's extension.
func WriteFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = separatorFor(path)
	if err := w.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

func separatorFor(path string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// ColumnIndex finds the zero-based index of the named column. Matching is
// exact after trimming surrounding whitespace from header cells.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q %w (available: %s)", name, models.ErrNotFound, strings.Join(t.Header, ", "))
}

// ExtractColumn returns every non-empty cell of the named column in row
// order. Duplicates are preserved; deduplication belongs to the pipeline.
func (t *Table) ExtractColumn(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		if strings.TrimSpace(row[idx]) == "" {
			continue
		}
		values = append(values, row[idx])
	}
	return values, nil
}
