package categorizer

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock OpenAI Client ---

type mockOpenAIClient struct {
	mockResponse openai.ChatCompletionResponse
	mockError    error
	lastRequest  openai.ChatCompletionRequest
}

func (m *mockOpenAIClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastRequest = req
	if m.mockError != nil {
		return openai.ChatCompletionResponse{}, m.mockError
	}
	return m.mockResponse, nil
}

// --- End Mock OpenAI Client ---

func TestOpenAIClassifier_ClassifyChunk_PayloadPassthrough(t *testing.T) {
	payload := `{"items":[{"originalText":"a","category":"Fruit","confidence":0.8,"reason":"r"}]}`
	mockClient := &mockOpenAIClient{
		mockResponse: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: payload}},
			},
		},
	}
	classifier := NewOpenAIClassifier(mockClient, "gpt-test", nil, nil)

	raw, err := classifier.ClassifyChunk(context.Background(), "categorize these", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, payload, raw, "the raw payload must be returned untouched for the pipeline to parse")
}

func TestOpenAIClassifier_ClassifyChunk_RequestShape(t *testing.T) {
	mockClient := &mockOpenAIClient{
		mockResponse: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Content: "[]"}},
			},
		},
	}
	classifier := NewOpenAIClassifier(mockClient, "gpt-test", nil, nil)

	_, err := classifier.ClassifyChunk(context.Background(), "the preamble", []string{"apple", "banana"})
	require.NoError(t, err)

	req := mockClient.lastRequest
	assert.Equal(t, "gpt-test", req.Model)
	require.Len(t, req.Messages, 1)
	assert.Contains(t, req.Messages[0].Content, "the preamble")
	assert.Contains(t, req.Messages[0].Content, "1. apple")
	assert.Contains(t, req.Messages[0].Content, "2. banana")

	require.NotNil(t, req.ResponseFormat, "request must carry the structural contract")
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONSchema, req.ResponseFormat.Type)
	require.NotNil(t, req.ResponseFormat.JSONSchema)
	assert.True(t, req.ResponseFormat.JSONSchema.Strict)
}

func TestOpenAIClassifier_ClassifyChunk_APIError(t *testing.T) {
	mockErr := errors.New("simulated API error 429 Too Many Requests")
	classifier := NewOpenAIClassifier(&mockOpenAIClient{mockError: mockErr}, "gpt-test", nil, nil)

	_, err := classifier.ClassifyChunk(context.Background(), "preamble", []string{"a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, mockErr)
	assert.Contains(t, err.Error(), "openai chat completion failed")
}

func TestOpenAIClassifier_ClassifyChunk_NoChoices(t *testing.T) {
	// An absent payload is a chunk-level problem handled by the pipeline's
	// fallback path, not a fatal error.
	classifier := NewOpenAIClassifier(&mockOpenAIClient{
		mockResponse: openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{}},
	}, "gpt-test", nil, nil)

	raw, err := classifier.ClassifyChunk(context.Background(), "preamble", []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestOpenAIClassifier_NilClient(t *testing.T) {
	classifier := &OpenAIClassifier{model: "gpt-test"}
	_, err := classifier.ClassifyChunk(context.Background(), "preamble", []string{"a"})
	require.Error(t, err)
}
