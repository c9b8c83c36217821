package categorizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// rawRecord mirrors Item with pointer fields so that missing keys can be
// told apart from zero values during validation.
type rawRecord struct {
	OriginalText *string  `json:"originalText"`
	Category     *string  `json:"category"`
	Confidence   *float64 `json:"confidence"`
	Reason       *string  `json:"reason"`
}

// parseChunkResponse decodes and validates one chunk's raw payload. The
// payload must be a JSON array of records, or an object wrapping such an
// array under "items" (the shape strict structured-output modes produce).
// Every record must carry all four fields with the right basic types; any
// violation fails the whole chunk.
func parseChunkResponse(raw string) ([]Item, error) {
	raw = stripCodeFence(strings.TrimSpace(raw))
	if raw == "" {
		return nil, errors.New("empty response payload")
	}

	var records []rawRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		var wrapper struct {
			Items []rawRecord `json:"items"`
		}
		if werr := json.Unmarshal([]byte(raw), &wrapper); werr != nil || wrapper.Items == nil {
			return nil, fmt.Errorf("payload is neither a JSON array nor an items object: %w", err)
		}
		records = wrapper.Items
	}
	if records == nil {
		// A literal "null" unmarshals into a nil slice without error; treat
		// it like any other absent payload.
		return nil, errors.New("payload decoded to no record list")
	}

	items := make([]Item, 0, len(records))
	for i, r := range records {
		if r.OriginalText == nil || r.Category == nil || r.Confidence == nil || r.Reason == nil {
			return nil, fmt.Errorf("record %d is missing one or more required fields", i)
		}
		items = append(items, Item{
			OriginalText: *r.OriginalText,
			Category:     *r.Category,
			Confidence:   *r.Confidence,
			Reason:       *r.Reason,
		})
	}
	return items, nil
}

// stripCodeFence removes a surrounding markdown code fence, which models
// occasionally wrap around JSON even when asked not to.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
