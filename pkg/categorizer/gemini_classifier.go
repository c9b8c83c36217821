package categorizer

import (
	"context"
	"fmt"
	"time"

	"colcat/internal/config"
	"colcat/internal/costtracker"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// geminiResponseSchema mirrors the structural contract as a Gemini response
// schema. Gemini allows a top-level array, so no wrapper object is needed.
var geminiResponseSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"originalText": {
				Type:        genai.TypeString,
				Description: "The input text, echoed back exactly as given",
			},
			"category": {
				Type:        genai.TypeString,
				Description: "Concise category label, 1-3 words",
			},
			"confidence": {
				Type:        genai.TypeNumber,
				Description: "Confidence between 0 and 1",
			},
			"reason": {
				Type:        genai.TypeString,
				Description: "Short justification for the chosen category",
			},
		},
		Required: []string{"originalText", "category", "confidence", "reason"},
	},
}

// GeminiClassifier implements ChunkClassifier using the Google Gemini API
// with a JSON response schema.
type GeminiClassifier struct {
	client *genai.Client
	model  string

	costTracker costtracker.CostTracker
	pricing     map[string]config.PricingInfo
}

// NewGeminiClassifier creates a Gemini-backed classifier.
func NewGeminiClassifier(ctx context.Context, apiKey, model string, costTracker costtracker.CostTracker, pricing map[string]config.PricingInfo) (*GeminiClassifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not provided")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	log.Infof("Gemini classifier initialized with model %s", model)
	return &GeminiClassifier{
		client:      client,
		model:       model,
		costTracker: costTracker,
		pricing:     pricing,
	}, nil
}

// Close releases the underlying API client.
func (c *GeminiClassifier) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// ClassifyChunk sends one chunk and returns the raw JSON payload. A response
// with no candidates yields an empty payload rather than an error.
func (c *GeminiClassifier) ClassifyChunk(ctx context.Context, instructions string, items []string) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("gemini classifier is not initialized with a client")
	}

	model := c.client.GenerativeModel(c.model)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = geminiResponseSchema

	prompt := instructions + "\n\nItems:\n" + formatItemList(items)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini content generation failed: %w", err)
	}

	c.recordCost(ctx, resp.UsageMetadata, len(items))

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		log.Warnf("Gemini returned no candidates for a %d-item chunk", len(items))
		return "", nil
	}

	var raw string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			raw += string(text)
		}
	}
	return raw, nil
}

func (c *GeminiClassifier) recordCost(ctx context.Context, usage *genai.UsageMetadata, itemCount int) {
	if c.costTracker == nil || usage == nil || usage.TotalTokenCount == 0 {
		return
	}
	priceInfo, ok := c.pricing[c.model]
	if !ok {
		log.Warnf("Pricing info not found for model '%s'. Cannot record cost for classification.", c.model)
		return
	}
	cost := float64(usage.PromptTokenCount)*priceInfo.InputPerToken +
		float64(usage.CandidatesTokenCount)*priceInfo.OutputPerToken

	event := costtracker.CostEvent{
		Operation: "categorization",
		AmountUSD: cost,
		Details: map[string]interface{}{
			"provider_name": "gemini",
			"model_name":    c.model,
			"input_tokens":  usage.PromptTokenCount,
			"output_tokens": usage.CandidatesTokenCount,
			"item_count":    itemCount,
			"timestamp":     time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := c.costTracker.RecordCost(ctx, event); err != nil {
		log.Errorf("Failed to record AI usage for classification chunk: %v", err)
	}
}

var _ ChunkClassifier = (*GeminiClassifier)(nil)
