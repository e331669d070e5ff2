package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/insightflow/internal/classify"
)

func TestRemoveLinks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"markdown link keeps text", "check [this review](https://example.com/r/1) out", "check this review out"},
		{"bare url removed", "amazing https://example.com/p deal", "amazing  deal"},
		{"www url removed", "see www.example.com now", "see  now"},
		{"plain text untouched", "no links here", "no links here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveLinks(tt.input))
		})
	}
}

func TestConvertMarkdownToText(t *testing.T) {
	got := ConvertMarkdownToText("**Great** product\n\nwould buy again")

	assert.Contains(t, got, "Great")
	assert.Contains(t, got, "buy")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "\n")
}

func TestConvertMarkdownToTextDropsURLs(t *testing.T) {
	got := ConvertMarkdownToText("deal at https://shop.example today")

	assert.Contains(t, got, "deal")
	assert.Contains(t, got, "today")
	assert.NotContains(t, got, "https://")
}

func TestAnalyzeWithVADER(t *testing.T) {
	t.Run("positive", func(t *testing.T) {
		score, label := AnalyzeWithVADER("I love this phone, it is absolutely wonderful!")
		assert.Equal(t, classify.SentimentPositive, label)
		assert.Greater(t, score, 0.20)
	})

	t.Run("negative", func(t *testing.T) {
		score, label := AnalyzeWithVADER("I hate this phone, it is absolutely terrible!")
		assert.Equal(t, classify.SentimentNegative, label)
		assert.Less(t, score, -0.20)
	})

	t.Run("neutral", func(t *testing.T) {
		_, label := AnalyzeWithVADER("The package arrived on Tuesday.")
		assert.Equal(t, classify.SentimentNeutral, label)
	})

	t.Run("markdown does not mask the verdict", func(t *testing.T) {
		_, label := AnalyzeWithVADER("[amazing product](https://example.com) totally **love** it!")
		assert.Equal(t, classify.SentimentPositive, label)
	})
}

func TestVaderPrescorer(t *testing.T) {
	prescorer := VaderPrescorer{}

	label, ok := prescorer.Prescore("I love this phone, it is absolutely wonderful!")
	assert.True(t, ok)
	assert.Equal(t, classify.SentimentPositive, label)

	label, ok = prescorer.Prescore("I hate this phone, it is absolutely terrible!")
	assert.True(t, ok)
	assert.Equal(t, classify.SentimentNegative, label)

	_, ok = prescorer.Prescore("The package arrived on Tuesday.")
	assert.False(t, ok, "scores inside the neutral band go to the provider")
}
