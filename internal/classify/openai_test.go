package classify

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChatCompleter struct {
	response   openai.ChatCompletionResponse
	err        error
	gotRequest openai.ChatCompletionRequest
}

func (m *mockChatCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.gotRequest = req
	return m.response, m.err
}

func chatResponse(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestOpenAIClassifierReturnsCleanedLabel(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"plain label", "Technology", "Technology"},
		{"fenced label", "```\nTechnology\n```", "Technology"},
		{"json fenced label", "```json\nTechnology\n```", "Technology"},
		{"quoted label", `"Positive"`, "Positive"},
		{"trailing period", "Neutral.", "Neutral"},
		{"padded label", "  Baby Care  ", "Baby Care"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockChatCompleter{response: chatResponse(tt.response)}
			classifier := &OpenAIClassifier{client: mock, model: "test-model"}

			got, err := classifier.Classify(context.Background(), "some post", TaskTopic, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenAIClassifierSendsPromptAndModel(t *testing.T) {
	mock := &mockChatCompleter{response: chatResponse("Gaming")}
	classifier := &OpenAIClassifier{client: mock, model: "test-model"}

	_, err := classifier.Classify(context.Background(), "just hit diamond rank", TaskTopic, []string{"Gaming", "Cooking"})
	require.NoError(t, err)

	req := mock.gotRequest
	assert.Equal(t, "test-model", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "Gaming", "registry snapshot travels in the prompt")
	assert.Contains(t, req.Messages[0].Content, "Cooking")
	assert.Contains(t, req.Messages[0].Content, "2-4 words")
	assert.Equal(t, "just hit diamond rank", req.Messages[1].Content)
}

func TestOpenAIClassifierEmptyChoices(t *testing.T) {
	mock := &mockChatCompleter{response: openai.ChatCompletionResponse{}}
	classifier := &OpenAIClassifier{client: mock, model: "test-model"}

	_, err := classifier.Classify(context.Background(), "anything", TaskSentiment, nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIClassifierWrapsTransportError(t *testing.T) {
	boom := errors.New("connection reset")
	mock := &mockChatCompleter{err: boom}
	classifier := &OpenAIClassifier{client: mock, model: "test-model"}

	_, err := classifier.Classify(context.Background(), "anything", TaskSentiment, nil)
	assert.ErrorIs(t, err, boom)
}

func TestBuildPrompt(t *testing.T) {
	t.Run("sentiment lists its alphabet", func(t *testing.T) {
		system, user := BuildPrompt(TaskSentiment, "the text", nil)
		assert.Contains(t, system, "Positive, Negative, or Neutral")
		assert.Equal(t, "the text", user)
	})

	t.Run("open kind without labels asks for a fresh one", func(t *testing.T) {
		system, _ := BuildPrompt(TaskTopic, "the text", nil)
		assert.Contains(t, system, "concise topic label")
		assert.NotContains(t, system, "Existing")
	})

	t.Run("open kind prefers existing labels", func(t *testing.T) {
		system, _ := BuildPrompt(TaskInterest, "the text", []string{"Street Food", "Running"})
		assert.Contains(t, system, "Existing interest labels")
		assert.Contains(t, system, "- Street Food")
		assert.Contains(t, system, "respond with that label exactly")
	})

	t.Run("emotion lists the closed set", func(t *testing.T) {
		system, _ := BuildPrompt(TaskEmotion, "the text", nil)
		assert.Contains(t, system, "joy")
		assert.Contains(t, system, "anticipation")
	})

	t.Run("language is a two-way gate", func(t *testing.T) {
		system, _ := BuildPrompt(TaskLanguage, "the text", nil)
		assert.Contains(t, system, LanguageIndonesian)
		assert.Contains(t, system, LanguageOther)
	})
}

func TestDemographicExtractor(t *testing.T) {
	t.Run("parses a full response", func(t *testing.T) {
		mock := &mockChatCompleter{response: chatResponse(`{"age_group":"25-34","gender":"female","location_hint":"Jakarta"}`)}
		extractor := &DemographicExtractor{client: mock, model: "test-model"}

		hints, err := extractor.Extract(context.Background(), "post text")
		require.NoError(t, err)
		assert.Equal(t, DemographicHints{AgeGroup: "25-34", Gender: "female", LocationHint: "Jakarta"}, hints)
	})

	t.Run("fills missing fields with unknown", func(t *testing.T) {
		mock := &mockChatCompleter{response: chatResponse(`{"gender":"male"}`)}
		extractor := &DemographicExtractor{client: mock, model: "test-model"}

		hints, err := extractor.Extract(context.Background(), "post text")
		require.NoError(t, err)
		assert.Equal(t, DemographicHints{AgeGroup: "unknown", Gender: "male", LocationHint: "unknown"}, hints)
	})

	t.Run("degrades garbled responses instead of failing", func(t *testing.T) {
		mock := &mockChatCompleter{response: chatResponse("cannot tell, sorry")}
		extractor := &DemographicExtractor{client: mock, model: "test-model"}

		hints, err := extractor.Extract(context.Background(), "post text")
		require.NoError(t, err)
		assert.Equal(t, unknownHints(), hints)
	})

	t.Run("propagates transport errors", func(t *testing.T) {
		boom := errors.New("rate limited")
		mock := &mockChatCompleter{err: boom}
		extractor := &DemographicExtractor{client: mock, model: "test-model"}

		_, err := extractor.Extract(context.Background(), "post text")
		assert.ErrorIs(t, err, boom)
	})
}
