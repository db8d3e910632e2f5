package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"github.com/8friend8ship-cloud/Analyzer/analyzer-go/internal/model"
)

// DefaultModel is the generation model used for insight text.
const DefaultModel = "gemini-2.0-flash"

// Client wraps the Gemini API for narrative insight generation. Output is
// constrained to a JSON schema so responses unmarshal directly into
// model.Insight.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient builds a Gemini client with the given API key. An empty model
// falls back to DefaultModel.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	return &Client{client: c, model: modelName}, nil
}

var insightSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"summary":     {Type: genai.TypeString},
		"strength":    {Type: genai.TypeString},
		"opportunity": {Type: genai.TypeString},
	},
	Required: []string{"summary", "strength", "opportunity"},
}

// GenerateInsight runs a single-turn generation constrained to the insight
// schema and parses the response.
func (c *Client) GenerateInsight(ctx context.Context, prompt string) (*model.Insight, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   insightSchema,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("generate insight: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("generate insight: empty response")
	}

	var insight model.Insight
	if err := json.Unmarshal([]byte(text), &insight); err != nil {
		return nil, fmt.Errorf("parse insight response: %w", err)
	}
	return &insight, nil
}
