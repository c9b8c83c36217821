package categorizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock classifier ---

type mockClassifier struct {
	responses    []string // raw payload per call, in order
	errs         []error  // error per call, in order
	calls        [][]string
	instructions []string
}

func (m *mockClassifier) ClassifyChunk(ctx context.Context, instructions string, items []string) (string, error) {
	i := len(m.calls)
	m.calls = append(m.calls, append([]string{}, items...))
	m.instructions = append(m.instructions, instructions)
	var resp string
	var err error
	if i < len(m.responses) {
		resp = m.responses[i]
	}
	if i < len(m.errs) {
		err = m.errs[i]
	}
	return resp, err
}

// echoPayload builds a valid response payload labeling every item "Echo".
func echoPayload(t *testing.T, items []string) string {
	t.Helper()
	records := make([]Item, len(items))
	for i, item := range items {
		records[i] = Item{OriginalText: item, Category: "Echo", Confidence: 0.9, Reason: "test"}
	}
	data, err := json.Marshal(records)
	require.NoError(t, err)
	return string(data)
}

// --- Tests ---

func TestPipeline_EmptyInputShortCircuits(t *testing.T) {
	mock := &mockClassifier{}
	p := NewPipeline(mock, 100)

	for _, texts := range [][]string{{}, {"", "   "}} {
		items, err := p.Categorize(context.Background(), texts, Options{})
		require.NoError(t, err)
		assert.Empty(t, items)
	}
	assert.Empty(t, mock.calls, "no service call may be made for empty input")
}

func TestPipeline_ChunkBoundaries(t *testing.T) {
	texts := make([]string, 250)
	for i := range texts {
		texts[i] = fmt.Sprintf("value-%03d", i)
	}

	mock := &mockClassifier{}
	p := NewPipeline(mock, 100)

	// Responses depend on call order; pre-seed them lazily via a wrapper is
	// overkill here, the echo payloads just mirror the expected chunks.
	mock.responses = []string{
		echoPayload(t, texts[0:100]),
		echoPayload(t, texts[100:200]),
		echoPayload(t, texts[200:250]),
	}

	items, err := p.Categorize(context.Background(), texts, Options{})
	require.NoError(t, err)

	require.Len(t, mock.calls, 3, "250 unique items with chunk size 100 must issue exactly 3 requests")
	assert.Len(t, mock.calls[0], 100)
	assert.Len(t, mock.calls[1], 100)
	assert.Len(t, mock.calls[2], 50)

	require.Len(t, items, 250)
	assert.Equal(t, "value-000", items[0].OriginalText)
	assert.Equal(t, "value-249", items[249].OriginalText, "result order must follow chunk order")
}

func TestPipeline_GracefulDegradationOfOneChunk(t *testing.T) {
	texts := make([]string, 10)
	for i := range texts {
		texts[i] = fmt.Sprintf("v%d", i)
	}

	mock := &mockClassifier{
		responses: []string{
			echoPayload(t, texts[0:4]),
			"this is not JSON at all",
			echoPayload(t, texts[8:10]),
		},
	}
	p := NewPipeline(mock, 4)

	items, err := p.Categorize(context.Background(), texts, Options{})
	require.NoError(t, err, "a malformed chunk response must not abort the run")
	require.Len(t, items, 10)

	// First chunk: real results.
	for i := 0; i < 4; i++ {
		assert.Equal(t, "Echo", items[i].Category)
	}
	// Second chunk: one fallback record per item, in chunk order.
	for i := 4; i < 8; i++ {
		assert.Equal(t, texts[i], items[i].OriginalText)
		assert.Equal(t, FallbackCategory, items[i].Category)
		assert.Equal(t, 0.0, items[i].Confidence)
		assert.Equal(t, FallbackReason, items[i].Reason)
	}
	// Third chunk: real results again.
	for i := 8; i < 10; i++ {
		assert.Equal(t, "Echo", items[i].Category)
	}
}

func TestPipeline_EmptyPayloadDegradesChunk(t *testing.T) {
	mock := &mockClassifier{responses: []string{""}}
	p := NewPipeline(mock, 100)

	items, err := p.Categorize(context.Background(), []string{"a", "b"}, Options{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, FallbackCategory, item.Category)
	}
}

func TestPipeline_ConstraintForwarding(t *testing.T) {
	mock := &mockClassifier{responses: []string{echoPayload(t, []string{"x"})}}
	p := NewPipeline(mock, 100)

	_, err := p.Categorize(context.Background(), []string{"x"}, Options{
		MaxCategories:        5,
		PredefinedCategories: []string{"Support", "Sales"},
	})
	require.NoError(t, err)
	require.Len(t, mock.instructions, 1)

	instructions := mock.instructions[0]
	assert.Contains(t, instructions, "Support")
	assert.Contains(t, instructions, "Sales")
	assert.Contains(t, instructions, `"Other"`)
	assert.Contains(t, instructions, "5")
}

func TestPipeline_NoConstraintsOmitted(t *testing.T) {
	mock := &mockClassifier{responses: []string{echoPayload(t, []string{"x"})}}
	p := NewPipeline(mock, 100)

	_, err := p.Categorize(context.Background(), []string{"x"}, Options{})
	require.NoError(t, err)
	require.Len(t, mock.instructions, 1)
	assert.NotContains(t, mock.instructions[0], "Other")
	assert.NotContains(t, mock.instructions[0], "at most")
}

func TestPipeline_FatalPropagation(t *testing.T) {
	callErr := errors.New("simulated 429 Too Many Requests")
	mock := &mockClassifier{
		responses: []string{echoPayload(t, []string{"a", "b"}), ""},
		errs:      []error{nil, callErr},
	}
	p := NewPipeline(mock, 2)

	items, err := p.Categorize(context.Background(), []string{"a", "b", "c"}, Options{})
	require.Error(t, err, "a failed service call must abort the whole run")
	assert.ErrorIs(t, err, callErr)
	assert.Nil(t, items, "no partial result may be returned on a fatal error")
}

func TestPipeline_ResultsAppendedVerbatim(t *testing.T) {
	// Out-of-range confidence and oddly long categories are the service's
	// problem; the pipeline trusts a successfully parsed payload.
	payload := `[{"originalText":"a","category":"A Rather Long Category Name","confidence":1.7,"reason":"r"}]`
	mock := &mockClassifier{responses: []string{payload}}
	p := NewPipeline(mock, 100)

	items, err := p.Categorize(context.Background(), []string{"a"}, Options{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 1.7, items[0].Confidence)
	assert.Equal(t, "A Rather Long Category Name", items[0].Category)
}

func TestFormatItemList(t *testing.T) {
	got := formatItemList([]string{"apple", "banana"})
	assert.Equal(t, "1. apple\n2. banana\n", got)
}
