package models

import "time"

// TrendingTopic is one row of the trending-topics report.
type TrendingTopic struct {
	Topic          string  `json:"topic"`
	MentionCount   int     `json:"count"`
	SentimentScore float64 `json:"sentiment"`
	Engagement     int     `json:"engagement"`
	PositiveCount  int     `json:"positive"`
	NegativeCount  int     `json:"negative"`
	NeutralCount   int     `json:"neutral"`
	TrendScore     float64 `json:"trend_score"`
	IsTrending     bool    `json:"is_trending"`
}

type DemographicBucket struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type DemographicsReport struct {
	AgeGroups []DemographicBucket `json:"age_groups"`
	Genders   []DemographicBucket `json:"genders"`
	Locations []DemographicBucket `json:"locations"`
}

type EngagementPatterns struct {
	PeakHours         []string `json:"peak_hours"`
	ActiveDays        []string `json:"active_days"`
	AvgEngagementRate float64  `json:"avg_engagement_rate"`
}

type TimelineEntry struct {
	Date          string  `json:"date"`
	TotalPosts    int     `json:"total_posts"`
	PositiveCount int     `json:"positive"`
	NegativeCount int     `json:"negative"`
	NeutralCount  int     `json:"neutral"`
	PositivePct   float64 `json:"positive_pct"`
	NegativePct   float64 `json:"negative_pct"`
	NeutralPct    float64 `json:"neutral_pct"`
	TotalLikes    int     `json:"total_likes"`
	TotalComments int     `json:"total_comments"`
	TotalShares   int     `json:"total_shares"`
	AvgSentiment  float64 `json:"avg_sentiment"`
}

// InsightReport is the combined output of the insights job.
type InsightReport struct {
	GeneratedAt    time.Time          `json:"generated_at"`
	TotalPosts     int                `json:"total_posts"`
	TrendingTopics []TrendingTopic    `json:"trending_topics"`
	Demographics   DemographicsReport `json:"demographics"`
	Engagement     EngagementPatterns `json:"engagement"`
	Timeline       []TimelineEntry    `json:"timeline"`
}
