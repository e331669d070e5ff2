package models

import "time"

// AnnotationInput is a social post that entered the classification pipeline.
type AnnotationInput struct {
	SocialPost
	IngestedAt time.Time `json:"ingested_at"`
}

// AnnotatedPost carries every label the pipeline attached to a post. Fields
// for tasks that were not run stay empty.
type AnnotatedPost struct {
	AnnotationInput
	Sentiment          string `json:"sentiment,omitempty"`
	Topic              string `json:"topic,omitempty"`
	Interest           string `json:"interest,omitempty"`
	CommunicationStyle string `json:"communication_style,omitempty"`
	Value              string `json:"value,omitempty"`
	Emotion            string `json:"emotion,omitempty"`
	Language           string `json:"language,omitempty"`
	AuthorAgeGroup     string `json:"author_age_group,omitempty"`
	AuthorGender       string `json:"author_gender,omitempty"`
	AuthorLocationHint string `json:"author_location_hint,omitempty"`
}
