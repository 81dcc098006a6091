package demographics

import (
	"math"
	"sort"

	"demographics-insights-go/internal/types"
)

// roundHalfUp rounds to the nearest integer with .5 going up. Inputs are
// never negative here.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// percentOf is round(100*part/whole), 0 for an empty whole.
func percentOf(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return roundHalfUp(100 * float64(part) / float64(whole))
}

// ComputeAgeStatistics summarizes the ages present in people. All numeric
// fields are nil when nobody provided an age.
func ComputeAgeStatistics(people []types.Person) types.AgeStatistics {
	ages := make([]int, 0, len(people))
	for _, p := range people {
		if p.Age != nil {
			ages = append(ages, *p.Age)
		}
	}
	stats := types.AgeStatistics{
		TotalWithAge:    len(ages),
		TotalWithoutAge: len(people) - len(ages),
	}
	if len(ages) == 0 {
		return stats
	}
	sort.Ints(ages)

	sum := 0
	for _, a := range ages {
		sum += a
	}
	n := len(ages)
	var median float64
	if n%2 == 1 {
		median = float64(ages[n/2])
	} else {
		median = float64(ages[n/2-1]+ages[n/2]) / 2
	}

	stats.Average = intPtr(roundHalfUp(float64(sum) / float64(n)))
	stats.Median = intPtr(roundHalfUp(median))
	stats.Min = intPtr(ages[0])
	stats.Max = intPtr(ages[n-1])
	return stats
}
