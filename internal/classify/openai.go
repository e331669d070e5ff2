package classify

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/insightflow/internal/clients"
)

// chatCompleter is the slice of the OpenAI client the classifier needs.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type OpenAIClassifier struct {
	client chatCompleter
	model  string
}

// NewOpenAIClassifier wires the shared OpenAI client. The model comes from
// OPENAI_MODEL, defaulting to gpt-4o-mini.
func NewOpenAIClassifier() *OpenAIClassifier {
	return &OpenAIClassifier{
		client: clients.GetOpenAIClient().Client,
		model:  getEnv("OPENAI_MODEL", openai.GPT4oMini),
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string, kind TaskKind, existing []string) (string, error) {
	system, user := BuildPrompt(kind, text, existing)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("[OpenAIClassifier] completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	return CleanResponse(resp.Choices[0].Message.Content), nil
}
