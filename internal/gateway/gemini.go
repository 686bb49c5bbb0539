package gateway

import (
	"context"

	"github.com/sells-group/snapshot/pkg/gemini"
)

// geminiProvider adapts pkg/gemini to the Provider interface.
type geminiProvider struct {
	client gemini.Client
}

// NewGemini wraps a Gemini client as a Provider.
func NewGemini(client gemini.Client) Provider {
	return &geminiProvider{client: client}
}

func (p *geminiProvider) Name() string { return "gemini" }

func (p *geminiProvider) Send(ctx context.Context, prompt string) (string, error) {
	text, err := p.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: err}
	}
	return text, nil
}
