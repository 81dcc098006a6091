package demographics

import (
	"time"

	"demographics-insights-go/internal/types"
)

// Analyze runs statistics, distribution and insights over one snapshot.
func Analyze(people []types.Person, now time.Time) types.Report {
	stats := ComputeAgeStatistics(people)
	dist := ComputeAgeDistribution(people)
	return types.Report{
		Total:        len(people),
		Statistics:   stats,
		Distribution: dist,
		Insights:     GenerateInsights(people, dist, stats, now),
		GeneratedAt:  now,
	}
}
