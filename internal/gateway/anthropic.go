package gateway

import (
	"context"

	"github.com/sells-group/snapshot/pkg/anthropic"
)

// anthropicProvider adapts pkg/anthropic to the Provider interface.
type anthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropic wraps an Anthropic client as a Provider. Every Send carries
// the web search tool.
func NewAnthropic(client anthropic.Client, model string, maxTokens int64) Provider {
	if maxTokens <= 0 {
		maxTokens = 8000
	}
	return &anthropicProvider{client: client, model: model, maxTokens: maxTokens}
}

func (p *anthropicProvider) Name() string { return "claude" }

func (p *anthropicProvider) Send(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
		WebSearch: true,
	})
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}

	resp.Usage.LogCost(p.model, "research")
	return resp.Text(), nil
}
