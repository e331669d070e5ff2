package models

import "time"

// SocialPost is the unit of content flowing through the pipeline, shaped the
// way collectors publish it onto the raw-content topic.
type SocialPost struct {
	ContentID  string          `json:"content_id"`
	Source     string          `json:"source"`
	Query      string          `json:"query,omitempty"`
	Text       string          `json:"text"`
	Metadata   ContentMetadata `json:"metadata"`
	Engagement EngagementStats `json:"engagement"`
}

type ContentMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author,omitempty"`
	PostID    string    `json:"post_id,omitempty"`
	URL       string    `json:"url,omitempty"`
}

type EngagementStats struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Views    int `json:"views"`
}
