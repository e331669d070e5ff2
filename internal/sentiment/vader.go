package sentiment

import (
	"github.com/jonreiter/govader"

	"github.com/spacesedan/insightflow/internal/classify"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// compoundThreshold is the VADER compound score at which the lexicon verdict
// counts as decisive.
const compoundThreshold = 0.20

// AnalyzeWithVADER scores text with the VADER lexicon and maps the compound
// score onto the canonical sentiment labels. Markdown is flattened first.
func AnalyzeWithVADER(text string) (float64, string) {
	plainText := ConvertMarkdownToText(text)

	sentiment := analyzer.PolarityScores(plainText)
	score := sentiment.Compound

	var label string
	if score >= compoundThreshold {
		label = classify.SentimentPositive
	} else if score <= -compoundThreshold {
		label = classify.SentimentNegative
	} else {
		label = classify.SentimentNeutral
	}

	return score, label
}

// VaderPrescorer answers sentiment lookups from the VADER lexicon. A compound
// score inside the neutral band comes back undecided, not Neutral.
type VaderPrescorer struct{}

func (VaderPrescorer) Prescore(text string) (string, bool) {
	score, label := AnalyzeWithVADER(text)
	if score > -compoundThreshold && score < compoundThreshold {
		return "", false
	}
	return label, true
}
