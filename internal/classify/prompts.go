package classify

import (
	"fmt"
	"strings"
)

// BuildPrompt assembles the system and user messages for one classification
// call. Open kinds get the registry snapshot so the provider reuses labels
// instead of minting near-duplicates.
func BuildPrompt(kind TaskKind, text string, existing []string) (system string, user string) {
	switch kind {
	case TaskSentiment:
		system = `You are a sentiment classifier for social media posts.
Classify the overall sentiment of the text.
Respond with exactly one word: Positive, Negative, or Neutral.
Do not add any explanation.`

	case TaskTopic:
		system = openLabelPrompt("topic",
			"the main topic the text is about", existing)

	case TaskInterest:
		system = openLabelPrompt("interest",
			"the audience interest the text appeals to", existing)

	case TaskValue:
		system = openLabelPrompt("value",
			"the personal or consumer value the author expresses", existing)

	case TaskCommunicationStyle:
		system = closedLabelPrompt("communication style", TaskCommunicationStyle.Alphabet())

	case TaskEmotion:
		system = closedLabelPrompt("dominant emotion", TaskEmotion.Alphabet())

	case TaskLanguage:
		system = `You are a language detector.
If the text is written in Indonesian (including casual Indonesian slang), respond with: indonesian
Otherwise respond with: other
Respond with that single word only.`

	default:
		system = fmt.Sprintf("Classify the %s of the text. Respond with a single short label only.", kind)
	}

	return system, text
}

func openLabelPrompt(name, description string, existing []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s classifier for social media posts.\n", name)
	fmt.Fprintf(&b, "Identify %s.\n\n", description)

	if len(existing) > 0 {
		fmt.Fprintf(&b, "Existing %s labels:\n", name)
		for _, label := range existing {
			fmt.Fprintf(&b, "- %s\n", label)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "If the text is closely related to one of the existing labels, respond with that label exactly as written.\n")
		fmt.Fprintf(&b, "Only if it is clearly distinct from all of them, invent a new, concise %s label (2-4 words).\n", name)
	} else {
		fmt.Fprintf(&b, "Respond with a concise %s label (2-4 words).\n", name)
	}

	fmt.Fprintf(&b, "If you cannot determine the %s, respond with: Unknown\n", name)
	b.WriteString("Respond with the label only, no explanation.")
	return b.String()
}

func closedLabelPrompt(name string, alphabet []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s classifier for social media posts.\n", name)
	fmt.Fprintf(&b, "Classify the %s of the text.\n", name)
	fmt.Fprintf(&b, "Respond with exactly one of: %s.\n", strings.Join(alphabet, ", "))
	b.WriteString("Respond with that single label only, no explanation.")
	return b.String()
}

// CleanResponse strips the wrapping providers like to add around a label:
// markdown code fences, quotes, trailing periods, surrounding whitespace.
func CleanResponse(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.Trim(cleaned, `"'`)
	cleaned = strings.TrimSuffix(cleaned, ".")
	return strings.TrimSpace(cleaned)
}
