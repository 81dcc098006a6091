package types

import (
	"strings"
	"time"
)

type Person struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name"`
	Age       *int    `json:"age" validate:"omitempty,gte=0"`
	Gender    string  `json:"gender,omitempty"`
	CreatedAt *string `json:"created_at"`
}

type AgeStatistics struct {
	Average         *int `json:"average"`
	Median          *int `json:"median"`
	Min             *int `json:"min"`
	Max             *int `json:"max"`
	TotalWithAge    int  `json:"total_with_age"`
	TotalWithoutAge int  `json:"total_without_age"`
}

type AgeGroup struct {
	Label      string   `json:"label"`
	Min        *int     `json:"min"`
	Max        *int     `json:"max"`
	Count      int      `json:"count"`
	Percentage int      `json:"percentage"`
	People     []Person `json:"people"`
}

type DemographicsInsights struct {
	LargestGroupLabel           *string `json:"largest_group_label"`
	LargestGroupCount           int     `json:"largest_group_count"`
	SmallestGroupLabel          *string `json:"smallest_group_label"`
	GrowthTrendDescription      string  `json:"growth_trend_description"`
	AgeSpecificationRatePercent int     `json:"age_specification_rate_percent"`
	DominantRangeDescription    string  `json:"dominant_range_description"`
}

// Report bundles one analytics run over a population snapshot.
type Report struct {
	Total        int                  `json:"total"`
	Statistics   AgeStatistics        `json:"statistics"`
	Distribution []AgeGroup           `json:"distribution"`
	Insights     DemographicsInsights `json:"insights"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses the ISO 8601 shapes seen in people records.
// Layouts without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
