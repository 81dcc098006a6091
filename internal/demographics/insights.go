package demographics

import (
	"fmt"
	"sort"
	"time"

	"demographics-insights-go/internal/types"
)

// GrowthWindow is how far back a join counts as recent.
const GrowthWindow = 30 * 24 * time.Hour

// GenerateInsights derives the narrative summary of a run. now anchors the
// growth window.
func GenerateInsights(people []types.Person, distribution []types.AgeGroup, statistics types.AgeStatistics, now time.Time) types.DemographicsInsights {
	ranked := make([]types.AgeGroup, 0, len(distribution))
	for _, g := range distribution {
		if g.Label == NotSpecified || g.Count == 0 {
			continue
		}
		ranked = append(ranked, g)
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	total := len(people)
	ins := types.DemographicsInsights{
		AgeSpecificationRatePercent: percentOf(statistics.TotalWithAge, total),
		GrowthTrendDescription:      growthTrend(people, now),
		DominantRangeDescription:    "Mixed age distribution",
	}
	if len(ranked) == 0 {
		return ins
	}

	largest, smallest := ranked[0], ranked[len(ranked)-1]
	ins.LargestGroupLabel = &largest.Label
	ins.LargestGroupCount = largest.Count
	ins.SmallestGroupLabel = &smallest.Label
	if float64(largest.Count) > 0.5*float64(total) {
		ins.DominantRangeDescription = "Primarily " + largest.Label
	} else {
		ins.DominantRangeDescription = "Largest group: " + largest.Label
	}
	return ins
}

// RecentCount counts people whose created_at is inside the growth window
// ending at now. Missing or unparseable timestamps are not recent.
func RecentCount(people []types.Person, now time.Time) int {
	cutoff := now.Add(-GrowthWindow)
	n := 0
	for _, p := range people {
		if p.CreatedAt == nil {
			continue
		}
		t, ok := types.ParseTimestamp(*p.CreatedAt)
		if ok && t.After(cutoff) {
			n++
		}
	}
	return n
}

func growthTrend(people []types.Person, now time.Time) string {
	pct := percentOf(RecentCount(people, now), len(people))
	tier := "Stable"
	switch {
	case pct > 50:
		tier = "High growth"
	case pct > 20:
		tier = "Moderate growth"
	}
	return fmt.Sprintf("%d%% joined in last 30 days - %s", pct, tier)
}
