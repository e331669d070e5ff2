package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineBucketsByUTCDate(t *testing.T) {
	builder := NewTimelineBuilder()

	jakarta := time.FixedZone("WIB", 7*60*60)
	// 05:00 WIB on March 15 is still March 14 in UTC.
	builder.Observe("Positive", time.Date(2024, 3, 15, 5, 0, 0, 0, jakarta), time.Time{}, 0, 0, 0)
	builder.Observe("Negative", time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), time.Time{}, 0, 0, 0)

	timeline := builder.Timeline()
	require.Len(t, timeline, 2)
	assert.Equal(t, "2024-03-14", timeline[0].Date)
	assert.Equal(t, "2024-03-15", timeline[1].Date)
}

func TestTimelineSortsAscending(t *testing.T) {
	builder := NewTimelineBuilder()

	builder.Observe("Neutral", time.Date(2024, 5, 20, 1, 0, 0, 0, time.UTC), time.Time{}, 0, 0, 0)
	builder.Observe("Neutral", time.Date(2024, 5, 18, 1, 0, 0, 0, time.UTC), time.Time{}, 0, 0, 0)
	builder.Observe("Neutral", time.Date(2024, 5, 19, 1, 0, 0, 0, time.UTC), time.Time{}, 0, 0, 0)

	timeline := builder.Timeline()
	require.Len(t, timeline, 3)
	assert.Equal(t, "2024-05-18", timeline[0].Date)
	assert.Equal(t, "2024-05-19", timeline[1].Date)
	assert.Equal(t, "2024-05-20", timeline[2].Date)
}

func TestTimelineCountsAndPercentages(t *testing.T) {
	builder := NewTimelineBuilder()

	day := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	builder.Observe("Positive", day, time.Time{}, 100, 10, 5)
	builder.Observe("Positive", day, time.Time{}, 50, 5, 0)
	builder.Observe("Negative", day, time.Time{}, 0, 20, 1)
	builder.Observe("Neutral", day, time.Time{}, 1, 0, 0)

	timeline := builder.Timeline()
	require.Len(t, timeline, 1)

	entry := timeline[0]
	assert.Equal(t, 4, entry.TotalPosts)
	assert.Equal(t, 2, entry.PositiveCount)
	assert.Equal(t, 1, entry.NegativeCount)
	assert.Equal(t, 1, entry.NeutralCount)
	assert.Equal(t, 50.0, entry.PositivePct)
	assert.Equal(t, 25.0, entry.NegativePct)
	assert.Equal(t, 25.0, entry.NeutralPct)
	assert.Equal(t, 151, entry.TotalLikes)
	assert.Equal(t, 35, entry.TotalComments)
	assert.Equal(t, 6, entry.TotalShares)
	assert.Equal(t, 0.25, entry.AvgSentiment, "(2 - 1) / 4")
}

func TestTimelineRounding(t *testing.T) {
	builder := NewTimelineBuilder()

	day := time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC)
	builder.Observe("Positive", day, time.Time{}, 0, 0, 0)
	builder.Observe("Neutral", day, time.Time{}, 0, 0, 0)
	builder.Observe("Neutral", day, time.Time{}, 0, 0, 0)

	timeline := builder.Timeline()
	require.Len(t, timeline, 1)
	assert.Equal(t, 33.3, timeline[0].PositivePct)
	assert.Equal(t, 66.7, timeline[0].NeutralPct)
	assert.Equal(t, 0.333, timeline[0].AvgSentiment)
}

func TestTimelineImputesSentimentFromEngagement(t *testing.T) {
	builder := NewTimelineBuilder()

	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	builder.Observe("", day, time.Time{}, 11, 0, 0)        // likes > 10
	builder.Observe("", day, time.Time{}, 11, 99, 0)       // likes checked before comments
	builder.Observe("Unknown", day, time.Time{}, 0, 6, 0)  // comments > 5
	builder.Observe("Unknown", day, time.Time{}, 10, 5, 0) // neither threshold met

	timeline := builder.Timeline()
	require.Len(t, timeline, 1)
	assert.Equal(t, 2, timeline[0].PositiveCount)
	assert.Equal(t, 1, timeline[0].NegativeCount)
	assert.Equal(t, 1, timeline[0].NeutralCount)
}

func TestTimelineFallsBackToIngestionTime(t *testing.T) {
	builder := NewTimelineBuilder()

	ingested := time.Date(2024, 8, 10, 14, 0, 0, 0, time.UTC)
	builder.Observe("Positive", time.Time{}, ingested, 0, 0, 0)

	timeline := builder.Timeline()
	require.Len(t, timeline, 1)
	assert.Equal(t, "2024-08-10", timeline[0].Date)
}

func TestTimelineWithoutAnyTimeUsesToday(t *testing.T) {
	builder := NewTimelineBuilder()

	builder.Observe("Positive", time.Time{}, time.Time{}, 0, 0, 0)

	timeline := builder.Timeline()
	require.Len(t, timeline, 1)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, timeline[0].Date)
}

func TestTimelineEmpty(t *testing.T) {
	assert.Empty(t, NewTimelineBuilder().Timeline())
}
