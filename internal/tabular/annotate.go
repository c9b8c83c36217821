package tabular

import (
	"strconv"

	"colcat/pkg/categorizer"
)

// Annotation column headers appended by Annotate.
const (
	CategoryHeader   = "Category"
	ConfidenceHeader = "Confidence"
	ReasonHeader     = "Reason"
)

// LookupByText builds an original-text -> item index from pipeline results.
// When the service returned the same text more than once, the last record
// wins.
func LookupByText(items []categorizer.Item) map[string]categorizer.Item {
	lookup := make(map[string]categorizer.Item, len(items))
	for _, item := range items {
		lookup[item.OriginalText] = item
	}
	return lookup
}

// Annotate returns a copy of the table with Category, Confidence and Reason
// columns appended, matching each row's cell in the named column against the
// lookup by exact text. Cells without a match (including empty cells, which
// are never sent to the service) get blank annotation columns.
func (t *Table) Annotate(column string, lookup map[string]categorizer.Item) (*Table, error) {
	idx, err := t.ColumnIndex(column)
	if err != nil {
		return nil, err
	}

	out := &Table{
		Header: append(append([]string{}, t.Header...), CategoryHeader, ConfidenceHeader, ReasonHeader),
		Rows:   make([][]string, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		annotated := append([]string{}, row...)
		var category, confidence, reason string
		if idx < len(row) {
			// The pipeline folds values before classifying, so the lookup
			// key must be folded the same way or rewritten cells (full-width
			// latin, ligatures) would never match their own result.
			if item, ok := lookup[categorizer.NormalizeValue(row[idx])]; ok {
				category = item.Category
				confidence = strconv.FormatFloat(item.Confidence, 'f', 2, 64)
				reason = item.Reason
			}
		}
		annotated = append(annotated, category, confidence, reason)
		out.Rows = append(out.Rows, annotated)
	}
	return out, nil
}
