package categorizer

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// DefaultChunkSize is the maximum number of items sent per classification
// request.
const DefaultChunkSize = 100

// Pipeline runs the batch categorization flow: normalize, chunk, classify
// each chunk sequentially, parse and validate, and degrade unusable chunk
// responses to fallback records.
type Pipeline struct {
	classifier ChunkClassifier
	chunkSize  int
}

// NewPipeline creates a pipeline around the given classifier. A chunkSize
// of zero or less selects DefaultChunkSize.
func NewPipeline(classifier ChunkClassifier, chunkSize int) *Pipeline {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Pipeline{classifier: classifier, chunkSize: chunkSize}
}

// Categorize labels every unique, non-empty value in texts.
//
// Chunks are dispatched strictly one at a time, in normalized-list order,
// so the result list follows chunk order and, within a chunk, the service's
// own ordering. A chunk whose response cannot be parsed or validated is
// converted to one fallback record per item and logged; it never aborts the
// run. An error from the service call itself is fatal: the whole call
// returns the error and any results accumulated from earlier chunks are
// dropped.
func (p *Pipeline) Categorize(ctx context.Context, texts []string, opts Options) ([]Item, error) {
	unique := Normalize(texts)
	if len(unique) == 0 {
		return []Item{}, nil
	}

	instructions := buildInstructions(opts)

	results := make([]Item, 0, len(unique))
	for start := 0; start < len(unique); start += p.chunkSize {
		end := start + p.chunkSize
		if end > len(unique) {
			end = len(unique)
		}
		chunk := unique[start:end]

		raw, err := p.classifier.ClassifyChunk(ctx, instructions, chunk)
		if err != nil {
			return nil, fmt.Errorf("classification request for items %d-%d failed: %w", start+1, end, err)
		}

		items, err := parseChunkResponse(raw)
		if err != nil {
			log.Warnf("Unusable response for items %d-%d, emitting fallback records: %v", start+1, end, err)
			for _, text := range chunk {
				results = append(results, Item{
					OriginalText: text,
					Category:     FallbackCategory,
					Confidence:   0.0,
					Reason:       FallbackReason,
				})
			}
			continue
		}

		// Accept the service's records verbatim. Confidence range, category
		// word count and originalText echo are the service's contract and
		// are not re-checked locally.
		results = append(results, items...)
	}
	return results, nil
}

// buildInstructions renders the constraint preamble sent with every chunk.
// The constraints are advisory to the service and not enforced locally.
func buildInstructions(opts Options) string {
	var b strings.Builder
	b.WriteString("You are categorizing short free-text values taken from one column of tabular data. ")
	b.WriteString("Assign each numbered item a concise category label of 1-3 words, ")
	b.WriteString("a confidence between 0 and 1, and a short reason. ")
	b.WriteString("Echo each item's text back unchanged in originalText.")

	if len(opts.PredefinedCategories) > 0 {
		fmt.Fprintf(&b, " You MUST prioritize these categories: %s. Use \"Other\" only when none of the provided categories fits.",
			strings.Join(opts.PredefinedCategories, ", "))
	}
	if opts.MaxCategories > 0 {
		fmt.Fprintf(&b, " Use at most %d distinct categories across the entire dataset; merge similar themes rather than exceeding this limit.",
			opts.MaxCategories)
	}
	return b.String()
}

// formatItemList renders a chunk's items as a 1-indexed numbered list for
// the request body. Shared by the classifier implementations.
func formatItemList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return b.String()
}
