package categorizer

import "context"

// Options holds the run-level constraints forwarded to the classification
// service. Both fields are advisory: the service is instructed to honor
// them, but the pipeline does not verify that it did.
type Options struct {
	// MaxCategories caps the total number of distinct categories across
	// the whole run. Zero or negative means no cap.
	MaxCategories int
	// PredefinedCategories, when non-empty, lists the labels the service
	// must prefer, falling back to the literal "Other" when none fits.
	PredefinedCategories []string
}

// Item is one categorized value as returned by the classification service.
type Item struct {
	OriginalText string  `json:"originalText"`
	Category     string  `json:"category"`
	Confidence   float64 `json:"confidence"`
	Reason       string  `json:"reason"`
}

// Fallback values emitted for every item of a chunk whose response could
// not be parsed or validated.
const (
	FallbackCategory = "Uncategorized"
	FallbackReason   = "Processing Error"
)

// ChunkClassifier is the injected classification-service capability.
// ClassifyChunk sends one chunk of items with the given constraint
// instructions and returns the raw response payload. A non-nil error means
// the request itself failed (transport, auth, rate limit) and is fatal to
// the whole run; an unusable payload is not an error here but is handled
// by the pipeline's fallback path.
type ChunkClassifier interface {
	ClassifyChunk(ctx context.Context, instructions string, items []string) (string, error)
}
