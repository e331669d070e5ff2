package analytics

import (
	"sort"
	"strings"
	"unicode"

	"github.com/spacesedan/insightflow/internal/models"
)

// Raw demographic hints arrive as free text; consolidation collapses casing
// variants and compound ranges ("25-34 or 35-44") into canonical buckets
// before anything is counted.

// ConsolidateAgeGroup collapses a raw age hint into one canonical bucket.
// Compound ranges resolve toward the older bucket they mention.
func ConsolidateAgeGroup(raw string) string {
	age := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case strings.Contains(age, "18-24"):
		return "18-24"
	case strings.Contains(age, "25-34") && !strings.Contains(age, "35-44") && !strings.Contains(age, "45-54"):
		return "25-34"
	case strings.Contains(age, "35-44") && !strings.Contains(age, "45-54"):
		return "35-44"
	case strings.Contains(age, "45-54") && !strings.Contains(age, "55+"):
		return "45-54"
	case strings.Contains(age, "55+"):
		return "55+"
	case strings.Contains(age, "35-54"):
		return "35-54"
	default:
		return age
	}
}

// ConsolidateGender maps a raw gender hint onto male/female/neutral. A hint
// containing the standalone word "or" ("male or female") folds to neutral.
func ConsolidateGender(raw string) string {
	gender := strings.ToLower(strings.TrimSpace(raw))

	for _, word := range strings.Fields(gender) {
		if word == "or" {
			return "neutral"
		}
	}

	switch {
	case strings.Contains(gender, "male") && !strings.Contains(gender, "female") && !strings.Contains(gender, "neutral"):
		return "male"
	case strings.Contains(gender, "female") && !strings.Contains(gender, "neutral"):
		return "female"
	case strings.Contains(gender, "neutral") || strings.Contains(gender, "unknown"):
		return "neutral"
	default:
		return gender
	}
}

// knownPlaces maps place-name substrings to their canonical display form.
// Cities come before countries so "Yogyakarta, Indonesia" lands on the city.
var knownPlaces = []struct {
	substr    string
	canonical string
}{
	{"jakarta", "Jakarta"},
	{"surabaya", "Surabaya"},
	{"bandung", "Bandung"},
	{"medan", "Medan"},
	{"semarang", "Semarang"},
	{"yogyakarta", "Yogyakarta"},
	{"bali", "Bali"},
	{"indonesia", "Indonesia"},
	{"singapore", "Singapore"},
	{"malaysia", "Malaysia"},
}

// ConsolidateLocation canonicalizes a raw location hint. Known places match by
// substring; anything else is capitalized word by word.
func ConsolidateLocation(raw string) string {
	location := strings.ToLower(strings.TrimSpace(raw))

	for _, place := range knownPlaces {
		if strings.Contains(location, place.substr) {
			return place.canonical
		}
	}

	return capitalizeWords(location)
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Demographics accumulates consolidated age, gender, and location counts.
type Demographics struct {
	ageGroups map[string]int
	genders   map[string]int
	locations map[string]int
}

func NewDemographics() *Demographics {
	return &Demographics{
		ageGroups: make(map[string]int),
		genders:   make(map[string]int),
		locations: make(map[string]int),
	}
}

// Observe folds one post's hints into the counts. Blank fields are skipped
// individually; an unknown age stays visible as its own bucket, an unknown
// gender folds to neutral, and an unknown location is dropped.
func (d *Demographics) Observe(ageGroup, gender, location string) {
	if age := strings.TrimSpace(ageGroup); age != "" {
		d.ageGroups[ConsolidateAgeGroup(age)]++
	}

	if g := strings.TrimSpace(gender); g != "" {
		d.genders[ConsolidateGender(g)]++
	}

	if loc := strings.TrimSpace(location); loc != "" && !strings.EqualFold(loc, "unknown") {
		d.locations[ConsolidateLocation(loc)]++
	}
}

// Report converts the counts into sorted bucket lists. Percentages are
// relative to each category's own observed total.
func (d *Demographics) Report() models.DemographicsReport {
	return models.DemographicsReport{
		AgeGroups: bucketize(d.ageGroups),
		Genders:   bucketize(d.genders),
		Locations: bucketize(d.locations),
	}
}

func bucketize(counts map[string]int) []models.DemographicBucket {
	total := 0
	for _, count := range counts {
		total += count
	}

	buckets := make([]models.DemographicBucket, 0, len(counts))
	for value, count := range counts {
		pct := 0.0
		if total > 0 {
			pct = round2(float64(count) / float64(total) * 100)
		}
		buckets = append(buckets, models.DemographicBucket{
			Value:      value,
			Count:      count,
			Percentage: pct,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Value < buckets[j].Value
	})

	return buckets
}
