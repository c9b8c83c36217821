package categorizer

import (
	"context"
	"fmt"
	"time"

	"colcat/internal/config"
	"colcat/internal/costtracker"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	log "github.com/sirupsen/logrus"
)

// openAIResponseSchema is the structural contract attached to every request.
// Strict structured output requires a top-level object, so the record array
// is wrapped under "items"; parseChunkResponse unwraps it.
var openAIResponseSchema = &jsonschema.Definition{
	Type: jsonschema.Object,
	Properties: map[string]jsonschema.Definition{
		"items": {
			Type: jsonschema.Array,
			Items: &jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"originalText": {
						Type:        jsonschema.String,
						Description: "The input text, echoed back exactly as given",
					},
					"category": {
						Type:        jsonschema.String,
						Description: "Concise category label, 1-3 words",
					},
					"confidence": {
						Type:        jsonschema.Number,
						Description: "Confidence between 0 and 1",
					},
					"reason": {
						Type:        jsonschema.String,
						Description: "Short justification for the chosen category",
					},
				},
				Required:             []string{"originalText", "category", "confidence", "reason"},
				AdditionalProperties: false,
			},
		},
	},
	Required:             []string{"items"},
	AdditionalProperties: false,
}

// OpenAIClassifier implements ChunkClassifier against an OpenAI-compatible
// chat completion API using a JSON-schema constrained response format.
type OpenAIClassifier struct {
	client interface {
		CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	}
	model string

	// Dependencies for cost tracking, both optional.
	costTracker costtracker.CostTracker
	pricing     map[string]config.PricingInfo
}

// NewOpenAIClassifier creates a classifier using an OpenAI-compatible client.
// costTracker and pricing may be nil to disable cost recording.
func NewOpenAIClassifier(client interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}, model string, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) *OpenAIClassifier {
	return &OpenAIClassifier{
		client:      client,
		model:       model,
		costTracker: costTracker,
		pricing:     pricing,
	}
}

// ClassifyChunk sends one chunk and returns the raw JSON payload. An empty
// choice list yields an empty payload rather than an error, so the caller's
// fallback path handles it.
func (c *OpenAIClassifier) ClassifyChunk(ctx context.Context, instructions string, items []string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("openai classifier is not initialized with a client")
	}

	prompt := instructions + "\n\nItems:\n" + formatItemList(items)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "categorized_items",
				Schema: openAIResponseSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	c.recordCost(ctx, resp.Usage, len(items))

	if len(resp.Choices) == 0 {
		log.Warnf("OpenAI returned no choices for a %d-item chunk", len(items))
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClassifier) recordCost(ctx context.Context, usage openai.Usage, itemCount int) {
	if c.costTracker == nil || usage.TotalTokens == 0 {
		return
	}
	priceInfo, ok := c.pricing[c.model]
	if !ok {
		log.Warnf("Pricing info not found for model '%s'. Cannot record cost for classification.", c.model)
		return
	}
	cost := float64(usage.PromptTokens)*priceInfo.InputPerToken +
		float64(usage.CompletionTokens)*priceInfo.OutputPerToken

	event := costtracker.CostEvent{
		Operation: "categorization",
		AmountUSD: cost,
		Details: map[string]interface{}{
			"provider_name": "openai",
			"model_name":    c.model,
			"input_tokens":  usage.PromptTokens,
			"output_tokens": usage.CompletionTokens,
			"item_count":    itemCount,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := c.costTracker.RecordCost(ctx, event); err != nil {
		log.Errorf("Failed to record AI usage for classification chunk: %v", err)
	} else {
		log.Debugf("Recorded AI usage: Provider=openai, Model=%s, InputTokens=%d, OutputTokens=%d, Cost=%.8f",
			c.model, usage.PromptTokens, usage.CompletionTokens, cost)
	}
}

var _ ChunkClassifier = (*OpenAIClassifier)(nil)
