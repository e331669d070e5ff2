package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementRate(t *testing.T) {
	assert.Equal(t, 0.2, EngagementRate(10, 5, 5, 100))
	assert.Equal(t, 5.0, EngagementRate(3, 2, 0, 0), "missing views default to 1")
	assert.Equal(t, 5.0, EngagementRate(3, 2, 0, -7))
	assert.Equal(t, 0.0, EngagementRate(0, 0, 0, 500))
}

func at(day, hour int) time.Time {
	return time.Date(2024, 1, day, hour, 30, 0, 0, time.UTC)
}

func TestEngagementAnalyzerPatterns(t *testing.T) {
	analyzer := NewEngagementAnalyzer()

	// Hour 12 mean 2.0, hour 9 mean 0.75, hour 18 mean 0.1.
	analyzer.Observe(200, 0, 0, 100, at(1, 12))
	analyzer.Observe(100, 0, 0, 100, at(2, 9))
	analyzer.Observe(50, 0, 0, 100, at(3, 9))
	analyzer.Observe(10, 0, 0, 100, at(4, 18))

	patterns := analyzer.Patterns()
	assert.Equal(t, []string{"12:00", "09:00", "18:00"}, patterns.PeakHours)
	// 2024-01-01 is a Monday.
	assert.Equal(t, []string{"Monday", "Tuesday", "Wednesday"}, patterns.ActiveDays)

	// Mean of 2.0, 1.0, 0.5, 0.1 is 0.9.
	assert.Equal(t, 90.0, patterns.AvgEngagementRate)
}

func TestEngagementAnalyzerKeepsTopThree(t *testing.T) {
	analyzer := NewEngagementAnalyzer()

	for hour := 8; hour < 13; hour++ {
		analyzer.Observe(hour, 0, 0, 1, at(1, hour))
	}

	patterns := analyzer.Patterns()
	assert.Equal(t, []string{"12:00", "11:00", "10:00"}, patterns.PeakHours)
	assert.Equal(t, []string{"Monday"}, patterns.ActiveDays)
}

func TestEngagementAnalyzerTieBreaks(t *testing.T) {
	analyzer := NewEngagementAnalyzer()

	// Same rate at 14:00 Wednesday and 08:00 Sunday.
	analyzer.Observe(30, 0, 0, 100, time.Date(2024, 1, 3, 14, 0, 0, 0, time.UTC))
	analyzer.Observe(30, 0, 0, 100, time.Date(2024, 1, 7, 8, 0, 0, 0, time.UTC))

	patterns := analyzer.Patterns()
	assert.Equal(t, []string{"08:00", "14:00"}, patterns.PeakHours, "hour ties break earlier-first")
	assert.Equal(t, []string{"Sunday", "Wednesday"}, patterns.ActiveDays, "day ties break Sunday-first")
}

func TestEngagementAnalyzerConvertsToUTC(t *testing.T) {
	analyzer := NewEngagementAnalyzer()

	jakarta := time.FixedZone("WIB", 7*60*60)
	analyzer.Observe(10, 0, 0, 100, time.Date(2024, 1, 2, 3, 0, 0, 0, jakarta))

	patterns := analyzer.Patterns()
	assert.Equal(t, []string{"20:00"}, patterns.PeakHours)
	assert.Equal(t, []string{"Monday"}, patterns.ActiveDays)
}

func TestEngagementAnalyzerNoTimestamps(t *testing.T) {
	analyzer := NewEngagementAnalyzer()

	analyzer.Observe(20, 0, 0, 100, time.Time{})
	analyzer.Observe(40, 0, 0, 100, time.Time{})

	patterns := analyzer.Patterns()
	assert.Empty(t, patterns.PeakHours)
	assert.Empty(t, patterns.ActiveDays)
	assert.Equal(t, 30.0, patterns.AvgEngagementRate, "untimed posts still count toward the average")
}

func TestEngagementAnalyzerEmpty(t *testing.T) {
	patterns := NewEngagementAnalyzer().Patterns()

	require.NotNil(t, patterns.PeakHours)
	assert.Empty(t, patterns.PeakHours)
	assert.Empty(t, patterns.ActiveDays)
	assert.Zero(t, patterns.AvgEngagementRate)
}
