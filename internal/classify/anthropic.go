package classify

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/spacesedan/insightflow/internal/clients"
)

type AnthropicClassifier struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropicClassifier wires the shared Anthropic client. The model comes
// from ANTHROPIC_MODEL, defaulting to the latest Haiku.
func NewAnthropicClassifier() *AnthropicClassifier {
	return &AnthropicClassifier{
		client: clients.GetAnthropicClient().Client,
		model:  anthropic.Model(getEnv("ANTHROPIC_MODEL", string(anthropic.ModelClaude3_5HaikuLatest))),
	}
}

func (c *AnthropicClassifier) Classify(ctx context.Context, text string, kind TaskKind, existing []string) (string, error) {
	system, user := BuildPrompt(kind, text, existing)

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 64,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("[AnthropicClassifier] message failed: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			return CleanResponse(block.Text), nil
		}
	}
	return "", ErrEmptyResponse
}
