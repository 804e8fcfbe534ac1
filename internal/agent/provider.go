package agent

import (
	"context"
	"fmt"

	"github.com/rahul/alfred/pkg/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModel builds the language model for a configured provider.
func NewModel(ctx context.Context, name string, p config.ProviderConfig) (llms.Model, error) {
	if p.APIKey == "" {
		return nil, fmt.Errorf("provider %s has no api key", name)
	}

	switch name {
	case "openai", "openrouter":
		opts := []openai.Option{
			openai.WithToken(p.APIKey),
			openai.WithModel(p.Model),
		}
		if p.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(p.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("create %s client: %w", name, err)
		}
		return llm, nil
	case "googleai", "gemini":
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(p.APIKey),
			googleai.WithDefaultModel(p.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create %s client: %w", name, err)
		}
		return llm, nil
	default:
		return nil, fmt.Errorf("provider %s not supported", name)
	}
}

// CallOptions turns the generation settings into per-call options.
// Temperature is always sent, since 0 is a meaningful setting; zero max
// tokens, top-p or top-k leave the provider default in place.
func CallOptions(g config.GenerationConfig) []llms.CallOption {
	opts := []llms.CallOption{llms.WithTemperature(g.Temperature)}
	if g.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(g.MaxTokens))
	}
	if g.TopP > 0 {
		opts = append(opts, llms.WithTopP(g.TopP))
	}
	if g.TopK > 0 {
		opts = append(opts, llms.WithTopK(g.TopK))
	}
	return opts
}
