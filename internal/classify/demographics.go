package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/spacesedan/insightflow/internal/clients"
)

// DemographicHints is the provider's best guess at the author's demographics.
// Every field degrades to "unknown" rather than failing a batch.
type DemographicHints struct {
	AgeGroup     string `json:"age_group"`
	Gender       string `json:"gender"`
	LocationHint string `json:"location_hint"`
}

const demographicsSystemPrompt = `You will receive a social media post.
Infer what you can about its author and respond only with a valid JSON object, no additional text:

{
  "age_group": "one of: 18-24, 25-34, 35-44, 45-54, 55+, unknown",
  "gender": "one of: male, female, neutral, unknown",
  "location_hint": "a city or country name if the text hints at one, otherwise unknown"
}

Use "unknown" for anything the text does not support.`

type DemographicExtractor struct {
	client chatCompleter
	model  string
}

func NewDemographicExtractor() *DemographicExtractor {
	return &DemographicExtractor{
		client: clients.GetOpenAIClient().Client,
		model:  getEnv("OPENAI_MODEL", openai.GPT4oMini),
	}
}

// Extract asks the provider for demographic hints about the post's author.
// Transport failures come back as errors; a garbled response degrades to
// all-unknown hints so one odd post never stalls the batch.
func (e *DemographicExtractor) Extract(ctx context.Context, text string) (DemographicHints, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: demographicsSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return DemographicHints{}, fmt.Errorf("[DemographicExtractor] completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return unknownHints(), nil
	}

	cleaned := CleanResponse(resp.Choices[0].Message.Content)

	var hints DemographicHints
	if err := json.Unmarshal([]byte(cleaned), &hints); err != nil {
		slog.Warn("[DemographicExtractor] Unparsable response, degrading to unknown",
			slog.String("error", err.Error()),
			slog.String("response", cleaned))
		return unknownHints(), nil
	}

	hints.AgeGroup = hintOrUnknown(hints.AgeGroup)
	hints.Gender = hintOrUnknown(hints.Gender)
	hints.LocationHint = hintOrUnknown(hints.LocationHint)
	return hints, nil
}

func unknownHints() DemographicHints {
	return DemographicHints{AgeGroup: "unknown", Gender: "unknown", LocationHint: "unknown"}
}

func hintOrUnknown(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unknown"
	}
	return strings.TrimSpace(value)
}
