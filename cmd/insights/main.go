package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spacesedan/insightflow/config"
	"github.com/spacesedan/insightflow/internal/analytics"
	"github.com/spacesedan/insightflow/internal/db"
	"github.com/spacesedan/insightflow/internal/logging"
	"github.com/spacesedan/insightflow/internal/models"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute*2)
	defer cancel()

	topN, err := strconv.Atoi(os.Getenv("INSIGHTS_TOP_TOPICS"))
	if err != nil {
		topN = 10
	}

	// Zero lets the aggregator fall back to its default threshold.
	threshold, err := strconv.ParseFloat(os.Getenv("TREND_THRESHOLD"), 64)
	if err != nil {
		threshold = 0
	}

	db.InitDynamoDB()

	posts, err := db.GetAnnotatedPosts(ctx)
	if err != nil {
		slog.Error("[Insights] Failed to load annotated posts",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	report := buildReport(posts, topN, threshold)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		slog.Error("[Insights] Failed to encode report",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("[Insights] Report generated",
		slog.Int("posts", report.TotalPosts),
		slog.Int("trending_topics", len(report.TrendingTopics)),
		slog.Int("timeline_days", len(report.Timeline)))
	fmt.Println(string(out))
}

// buildReport runs every aggregator over the corpus in one pass.
func buildReport(posts []models.AnnotatedPost, topN int, threshold float64) models.InsightReport {
	trends := analytics.NewTopicTrends(threshold)
	demographics := analytics.NewDemographics()
	engagement := analytics.NewEngagementAnalyzer()
	timeline := analytics.NewTimelineBuilder()

	for _, post := range posts {
		trends.Observe(post.Topic, post.Sentiment,
			post.Engagement.Likes, post.Engagement.Comments, post.Engagement.Shares)
		demographics.Observe(post.AuthorAgeGroup, post.AuthorGender, post.AuthorLocationHint)
		engagement.Observe(post.Engagement.Likes, post.Engagement.Comments,
			post.Engagement.Shares, post.Engagement.Views, post.Metadata.Timestamp)
		timeline.Observe(post.Sentiment, post.Metadata.Timestamp, post.IngestedAt,
			post.Engagement.Likes, post.Engagement.Comments, post.Engagement.Shares)
	}

	return models.InsightReport{
		GeneratedAt:    time.Now().UTC(),
		TotalPosts:     len(posts),
		TrendingTopics: trends.TopTopics(topN),
		Demographics:   demographics.Report(),
		Engagement:     engagement.Patterns(),
		Timeline:       timeline.Timeline(),
	}
}
