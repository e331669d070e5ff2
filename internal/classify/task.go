package classify

import "strings"

// TaskKind names one classification task a post can be labeled for.
type TaskKind string

const (
	TaskSentiment          TaskKind = "sentiment"
	TaskTopic              TaskKind = "topic"
	TaskInterest           TaskKind = "interest"
	TaskCommunicationStyle TaskKind = "communication_style"
	TaskValue              TaskKind = "value"
	TaskEmotion            TaskKind = "emotion"
	TaskLanguage           TaskKind = "language"
)

// AllTasks lists every kind in the order the annotation pipeline runs them.
// Language sits first so deployments that gate on it pay for nothing else.
var AllTasks = []TaskKind{
	TaskLanguage,
	TaskSentiment,
	TaskTopic,
	TaskInterest,
	TaskCommunicationStyle,
	TaskValue,
	TaskEmotion,
}

// LabelUnknown marks a slot whose classification could not produce a usable
// label. It never enters the taxonomy registry and never reaches provider
// prompts as context.
const LabelUnknown = "Unknown"

const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

const (
	LanguageIndonesian = "indonesian"
	LanguageOther      = "other"
)

// closedAlphabets pins the valid outputs for kinds that do not mint labels.
// Kinds absent here (topic, interest, value) are open and registry-backed.
var closedAlphabets = map[TaskKind][]string{
	TaskSentiment:          {SentimentPositive, SentimentNegative, SentimentNeutral},
	TaskCommunicationStyle: {"formal", "casual", "humorous", "assertive", "analytical"},
	TaskEmotion:            {"joy", "anger", "sadness", "fear", "surprise", "disgust", "trust", "anticipation", "neutral"},
	TaskLanguage:           {LanguageIndonesian, LanguageOther},
}

// Open reports whether the kind mints new labels through the registry.
func (t TaskKind) Open() bool {
	_, closed := closedAlphabets[t]
	return !closed
}

// Alphabet returns a copy of the closed alphabet, or nil for open kinds.
func (t TaskKind) Alphabet() []string {
	alphabet, ok := closedAlphabets[t]
	if !ok {
		return nil
	}
	return append([]string(nil), alphabet...)
}

// CanonicalLabel validates a raw provider response for this kind. Closed
// kinds match case-insensitively against their alphabet and come back in
// canonical casing; anything that does not match is unusable and reported
// false so the caller retries. Open kinds accept any non-empty response.
// A literal Unknown is a valid answer for open kinds: the provider is
// declaring it cannot label the text.
func (t TaskKind) CanonicalLabel(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}

	alphabet, closed := closedAlphabets[t]
	if !closed {
		if strings.EqualFold(trimmed, LabelUnknown) {
			return LabelUnknown, true
		}
		return trimmed, true
	}

	for _, label := range alphabet {
		if strings.EqualFold(label, trimmed) {
			return label, true
		}
	}
	return "", false
}
