// Package gemini wraps the official genai SDK for the cross-validation
// provider. Calls carry the google_search tool so the model verifies claims
// against its own live searches.
package gemini

import (
	"context"

	"github.com/rotisserie/eris"
	genai "google.golang.org/genai"
)

const (
	defaultModel       = "gemini-2.5-flash"
	defaultTemperature = 0.1
	defaultMaxTokens   = 8000
)

// Client performs content generation against the Gemini API.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Option configures the client.
type Option func(*genaiClient)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *genaiClient) {
		if model != "" {
			c.model = model
		}
	}
}

// WithTemperature overrides the default sampling temperature.
func WithTemperature(temp float32) Option {
	return func(c *genaiClient) {
		c.temperature = temp
	}
}

// WithMaxTokens overrides the default output token cap.
func WithMaxTokens(n int32) Option {
	return func(c *genaiClient) {
		c.maxTokens = n
	}
}

type genaiClient struct {
	cli         *genai.Client
	model       string
	temperature float32
	maxTokens   int32
}

// NewClient creates a Gemini API client.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (Client, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}

	c := &genaiClient{
		cli:         cli,
		model:       defaultModel,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *genaiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := c.cli.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Tools:           []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
			Temperature:     genai.Ptr(c.temperature),
			MaxOutputTokens: c.maxTokens,
		},
	)
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", eris.New("gemini: empty response")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		text += part.Text
	}
	return text, nil
}
