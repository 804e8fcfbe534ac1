package agent

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Step is one generation step of the agent.
type Step struct {
	Text string
}

// Response is everything the agent produced for one call.
type Response struct {
	Steps []Step
}

// Agent generates text for a conversation. Callers pass the whole
// conversation on every call; nothing is remembered between calls.
type Agent interface {
	Generate(ctx context.Context, turns []llms.MessageContent) (*Response, error)
}

// LLMAgent is an Agent backed by a language model and a fixed system prompt.
type LLMAgent struct {
	Model        llms.Model
	SystemPrompt string
	Options      []llms.CallOption
}

func NewLLMAgent(model llms.Model, systemPrompt string, opts ...llms.CallOption) *LLMAgent {
	return &LLMAgent{
		Model:        model,
		SystemPrompt: systemPrompt,
		Options:      opts,
	}
}

func (a *LLMAgent) Generate(ctx context.Context, turns []llms.MessageContent) (*Response, error) {
	messages := make([]llms.MessageContent, 0, len(turns)+1)
	if a.SystemPrompt != "" {
		messages = append(messages, llms.TextParts(schema.ChatMessageTypeSystem, a.SystemPrompt))
	}
	messages = append(messages, turns...)

	resp, err := a.Model.GenerateContent(ctx, messages, a.Options...)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	out := &Response{}
	if resp == nil {
		return out, nil
	}
	for _, choice := range resp.Choices {
		if choice == nil {
			continue
		}
		out.Steps = append(out.Steps, Step{Text: choice.Content})
	}
	return out, nil
}

// UserTurn is a single-message conversation holding the user's utterance.
func UserTurn(input string) []llms.MessageContent {
	return []llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, input)}
}
