package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicTrendsSkipsPlaceholderTopics(t *testing.T) {
	trends := NewTopicTrends(0)

	trends.Observe("", "Positive", 10, 0, 0)
	trends.Observe("Unknown", "Positive", 10, 0, 0)
	trends.Observe("General", "Positive", 10, 0, 0)

	assert.Empty(t, trends.TopTopics(10))
}

func TestTopicTrendsCollapsesCaseVariants(t *testing.T) {
	trends := NewTopicTrends(0)

	trends.Observe("Electric Vehicles", "Positive", 5, 1, 0)
	trends.Observe("electric vehicles", "Neutral", 2, 0, 0)
	trends.Observe("  ELECTRIC   VEHICLES ", "Negative", 1, 1, 1)

	top := trends.TopTopics(10)
	require.Len(t, top, 1)
	assert.Equal(t, "Electric Vehicles", top[0].Topic, "first display form wins")
	assert.Equal(t, 3, top[0].MentionCount)
	assert.Equal(t, 11, top[0].Engagement)
}

func TestTopicTrendsSentimentMath(t *testing.T) {
	trends := NewTopicTrends(0)

	for i := 0; i < 3; i++ {
		trends.Observe("Battery Life", "Positive", 1, 0, 0)
	}
	trends.Observe("Battery Life", "Negative", 1, 0, 0)
	trends.Observe("Battery Life", "Neutral", 1, 0, 0)

	top := trends.TopTopics(1)
	require.Len(t, top, 1)

	topic := top[0]
	assert.Equal(t, 5, topic.MentionCount)
	assert.Equal(t, 3, topic.PositiveCount)
	assert.Equal(t, 1, topic.NegativeCount)
	assert.Equal(t, 1, topic.NeutralCount)
	assert.Equal(t, 0.4, topic.SentimentScore, "(3 - 1) / 5")
	assert.Equal(t, 7.0, topic.TrendScore, "5 * (1 + 0.4)")
	assert.False(t, topic.IsTrending, "7 does not clear the default threshold")
}

func TestTopicTrendsRoundsSentimentScore(t *testing.T) {
	trends := NewTopicTrends(0)

	trends.Observe("Charging", "Positive", 0, 0, 0)
	trends.Observe("Charging", "Neutral", 0, 0, 0)
	trends.Observe("Charging", "Neutral", 0, 0, 0)

	top := trends.TopTopics(1)
	require.Len(t, top, 1)
	assert.Equal(t, 0.33, top[0].SentimentScore)
}

func TestTopicTrendsThreshold(t *testing.T) {
	observeSix := func(trends *TopicTrends) {
		for i := 0; i < 6; i++ {
			trends.Observe("Promo Codes", "Positive", 0, 0, 0)
		}
	}

	t.Run("default threshold", func(t *testing.T) {
		trends := NewTopicTrends(0)
		observeSix(trends)

		top := trends.TopTopics(1)
		require.Len(t, top, 1)
		assert.Equal(t, 12.0, top[0].TrendScore, "6 * (1 + 1)")
		assert.True(t, top[0].IsTrending)
	})

	t.Run("raised threshold", func(t *testing.T) {
		trends := NewTopicTrends(15)
		observeSix(trends)

		top := trends.TopTopics(1)
		require.Len(t, top, 1)
		assert.False(t, top[0].IsTrending)
	})
}

func TestTopicTrendsRanking(t *testing.T) {
	trends := NewTopicTrends(0)

	trends.Observe("Quiet Cabin", "Neutral", 1, 0, 0)
	for i := 0; i < 3; i++ {
		trends.Observe("Road Trips", "Neutral", 1, 0, 0)
	}
	for i := 0; i < 3; i++ {
		trends.Observe("Free Chargers", "Neutral", 9, 0, 0)
	}
	trends.Observe("Aftermarket Parts", "Neutral", 1, 0, 0)

	top := trends.TopTopics(10)
	require.Len(t, top, 4)
	assert.Equal(t, "Free Chargers", top[0].Topic, "mention ties break on engagement")
	assert.Equal(t, "Road Trips", top[1].Topic)
	assert.Equal(t, "Aftermarket Parts", top[2].Topic, "full ties break on label")
	assert.Equal(t, "Quiet Cabin", top[3].Topic)
}

func TestTopicTrendsLimitsOutput(t *testing.T) {
	trends := NewTopicTrends(0)

	trends.Observe("One", "Neutral", 0, 0, 0)
	trends.Observe("Two", "Neutral", 0, 0, 0)
	trends.Observe("Three", "Neutral", 0, 0, 0)

	assert.Len(t, trends.TopTopics(2), 2)
	assert.Len(t, trends.TopTopics(0), 3, "zero means no limit")
}
