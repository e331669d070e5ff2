package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/spacesedan/insightflow/internal/classify"
	"github.com/spacesedan/insightflow/internal/models"
)

type timelineBucket struct {
	positive int
	negative int
	neutral  int
	posts    int
	likes    int
	comments int
	shares   int
}

// TimelineBuilder buckets posts by UTC calendar date and tracks per-day
// sentiment counts and engagement totals.
type TimelineBuilder struct {
	buckets map[string]*timelineBucket
}

func NewTimelineBuilder() *TimelineBuilder {
	return &TimelineBuilder{buckets: make(map[string]*timelineBucket)}
}

// Observe folds one post into its date bucket. A post without a posting time
// falls back to its ingestion time, then to now. A post without a usable
// sentiment is imputed from engagement: likes over 10 read Positive, comments
// over 5 read Negative, anything else Neutral.
func (t *TimelineBuilder) Observe(sentiment string, postedAt, ingestedAt time.Time, likes, comments, shares int) {
	date := postedAt
	if date.IsZero() {
		date = ingestedAt
	}
	if date.IsZero() {
		date = time.Now().UTC()
	}

	key := date.UTC().Format("2006-01-02")
	bucket, ok := t.buckets[key]
	if !ok {
		bucket = &timelineBucket{}
		t.buckets[key] = bucket
	}

	bucket.posts++
	bucket.likes += likes
	bucket.comments += comments
	bucket.shares += shares

	switch sentiment {
	case classify.SentimentPositive:
		bucket.positive++
	case classify.SentimentNegative:
		bucket.negative++
	case classify.SentimentNeutral:
		bucket.neutral++
	default:
		if likes > 10 {
			bucket.positive++
		} else if comments > 5 {
			bucket.negative++
		} else {
			bucket.neutral++
		}
	}
}

// Timeline returns the date buckets in ascending order.
func (t *TimelineBuilder) Timeline() []models.TimelineEntry {
	dates := make([]string, 0, len(t.buckets))
	for date := range t.buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	entries := make([]models.TimelineEntry, 0, len(dates))
	for _, date := range dates {
		bucket := t.buckets[date]

		total := bucket.positive + bucket.negative + bucket.neutral
		if total == 0 {
			total = 1
		}

		entries = append(entries, models.TimelineEntry{
			Date:          date,
			TotalPosts:    bucket.posts,
			PositiveCount: bucket.positive,
			NegativeCount: bucket.negative,
			NeutralCount:  bucket.neutral,
			PositivePct:   round1(float64(bucket.positive) / float64(total) * 100),
			NegativePct:   round1(float64(bucket.negative) / float64(total) * 100),
			NeutralPct:    round1(float64(bucket.neutral) / float64(total) * 100),
			TotalLikes:    bucket.likes,
			TotalComments: bucket.comments,
			TotalShares:   bucket.shares,
			AvgSentiment:  round3(float64(bucket.positive-bucket.negative) / float64(total)),
		})
	}

	return entries
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
