package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/spacesedan/insightflow/internal/models"
)

// EngagementRate is interactions per view. Views below 1 are treated as 1.
func EngagementRate(likes, comments, shares, views int) float64 {
	if views < 1 {
		views = 1
	}
	return float64(likes+comments+shares) / float64(views)
}

// EngagementAnalyzer accumulates engagement rates overall and grouped by
// posting hour and weekday. Posts without a timestamp count toward the
// overall average only.
type EngagementAnalyzer struct {
	rateSum float64
	posts   int

	hourSum   [24]float64
	hourCount [24]int
	daySum    [7]float64
	dayCount  [7]int
}

func NewEngagementAnalyzer() *EngagementAnalyzer {
	return &EngagementAnalyzer{}
}

// Observe folds one post into the accumulator. A zero timestamp means the
// post's timing is unknown.
func (e *EngagementAnalyzer) Observe(likes, comments, shares, views int, postedAt time.Time) {
	rate := EngagementRate(likes, comments, shares, views)
	e.rateSum += rate
	e.posts++

	if postedAt.IsZero() {
		return
	}

	utc := postedAt.UTC()
	hour := utc.Hour()
	day := int(utc.Weekday())

	e.hourSum[hour] += rate
	e.hourCount[hour]++
	e.daySum[day] += rate
	e.dayCount[day]++
}

// Patterns reports the top three posting hours and weekdays by mean
// engagement rate, plus the overall average rate as a percentage. With no
// timestamped posts both lists are empty.
func (e *EngagementAnalyzer) Patterns() models.EngagementPatterns {
	patterns := models.EngagementPatterns{
		PeakHours:  []string{},
		ActiveDays: []string{},
	}

	if e.posts > 0 {
		patterns.AvgEngagementRate = round2(e.rateSum / float64(e.posts) * 100)
	}

	type group struct {
		index int
		mean  float64
	}

	hours := make([]group, 0, 24)
	for h := 0; h < 24; h++ {
		if e.hourCount[h] > 0 {
			hours = append(hours, group{h, e.hourSum[h] / float64(e.hourCount[h])})
		}
	}
	sortGroups := func(groups []group) {
		sort.Slice(groups, func(i, j int) bool {
			if groups[i].mean != groups[j].mean {
				return groups[i].mean > groups[j].mean
			}
			return groups[i].index < groups[j].index
		})
	}
	sortGroups(hours)
	for i := 0; i < len(hours) && i < 3; i++ {
		patterns.PeakHours = append(patterns.PeakHours, fmt.Sprintf("%02d:00", hours[i].index))
	}

	days := make([]group, 0, 7)
	for d := 0; d < 7; d++ {
		if e.dayCount[d] > 0 {
			days = append(days, group{d, e.daySum[d] / float64(e.dayCount[d])})
		}
	}
	sortGroups(days)
	for i := 0; i < len(days) && i < 3; i++ {
		patterns.ActiveDays = append(patterns.ActiveDays, time.Weekday(days[i].index).String())
	}

	return patterns
}
