package analytics

import (
	"math"
	"sort"

	"github.com/spacesedan/insightflow/internal/classify"
	"github.com/spacesedan/insightflow/internal/models"
	"github.com/spacesedan/insightflow/internal/taxonomy"
)

// DefaultTrendingThreshold is the trend score a topic has to beat before it is
// flagged as trending.
const DefaultTrendingThreshold = 10.0

type topicStats struct {
	display       string
	mentions      int
	engagement    int
	sentimentSum  int
	positiveCount int
	negativeCount int
	neutralCount  int
}

// TopicTrends tallies mentions, sentiment, and engagement per topic. Topics
// are bucketed by their normalized form; casing and spacing variants of one
// label count together, and the first display form seen wins.
type TopicTrends struct {
	threshold float64
	topics    map[string]*topicStats
}

func NewTopicTrends(threshold float64) *TopicTrends {
	if threshold <= 0 {
		threshold = DefaultTrendingThreshold
	}
	return &TopicTrends{
		threshold: threshold,
		topics:    make(map[string]*topicStats),
	}
}

// Observe folds one post into the tallies. Posts without a usable topic are
// skipped.
func (t *TopicTrends) Observe(topic, sentiment string, likes, comments, shares int) {
	if topic == "" || topic == classify.LabelUnknown || topic == "General" {
		return
	}

	key := taxonomy.Normalize(topic)
	stats, ok := t.topics[key]
	if !ok {
		stats = &topicStats{display: topic}
		t.topics[key] = stats
	}

	stats.mentions++
	stats.engagement += likes + comments + shares

	switch sentiment {
	case classify.SentimentPositive:
		stats.positiveCount++
		stats.sentimentSum++
	case classify.SentimentNegative:
		stats.negativeCount++
		stats.sentimentSum--
	default:
		stats.neutralCount++
	}
}

// TopTopics returns the n busiest topics, ranked by mention count with
// engagement and then display label as tie-breakers.
func (t *TopicTrends) TopTopics(n int) []models.TrendingTopic {
	ranked := make([]models.TrendingTopic, 0, len(t.topics))

	for _, stats := range t.topics {
		sentimentScore := 0.0
		trendScore := 0.0
		if stats.mentions > 0 {
			sentimentScore = float64(stats.sentimentSum) / float64(stats.mentions)
			sentimentRatio := float64(stats.positiveCount-stats.negativeCount) / float64(stats.mentions)
			trendScore = float64(stats.mentions) * (1 + sentimentRatio)
		}

		ranked = append(ranked, models.TrendingTopic{
			Topic:          stats.display,
			MentionCount:   stats.mentions,
			SentimentScore: round2(sentimentScore),
			Engagement:     stats.engagement,
			PositiveCount:  stats.positiveCount,
			NegativeCount:  stats.negativeCount,
			NeutralCount:   stats.neutralCount,
			TrendScore:     round2(trendScore),
			IsTrending:     trendScore > t.threshold,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].MentionCount != ranked[j].MentionCount {
			return ranked[i].MentionCount > ranked[j].MentionCount
		}
		if ranked[i].Engagement != ranked[j].Engagement {
			return ranked[i].Engagement > ranked[j].Engagement
		}
		return ranked[i].Topic < ranked[j].Topic
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
