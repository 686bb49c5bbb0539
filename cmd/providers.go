package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/snapshot/internal/gateway"
	"github.com/sells-group/snapshot/pkg/anthropic"
	"github.com/sells-group/snapshot/pkg/gemini"
)

// buildProviders wires the configured API clients into the two research
// providers. The validator is nil when no Gemini key is configured; strict
// mode rejects that earlier via Config.Validate.
func buildProviders(ctx context.Context) (primary, validator gateway.Provider, err error) {
	primary = gateway.NewAnthropic(
		anthropic.NewClient(cfg.Anthropic.Key),
		cfg.Anthropic.Model,
		int64(cfg.Anthropic.MaxTokens),
	)

	if cfg.Gemini.Key == "" {
		return primary, nil, nil
	}

	gm, err := gemini.NewClient(ctx, cfg.Gemini.Key,
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithTemperature(float32(cfg.Gemini.Temperature)),
		gemini.WithMaxTokens(int32(cfg.Gemini.MaxTokens)),
	)
	if err != nil {
		return nil, nil, eris.Wrap(err, "cmd: gemini client")
	}

	return primary, gateway.NewGemini(gm), nil
}
