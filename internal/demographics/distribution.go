package demographics

import (
	"sort"

	"demographics-insights-go/internal/types"
)

// ComputeAgeDistribution buckets people in table order. Empty buckets are
// dropped, except Not Specified which is always present.
func ComputeAgeDistribution(people []types.Person) []types.AgeGroup {
	members := make(map[string][]types.Person, len(Buckets))
	for _, b := range Buckets {
		members[b.Label] = make([]types.Person, 0)
	}
	for _, p := range people {
		label := Categorize(p.Age)
		members[label] = append(members[label], p)
	}

	total := len(people)
	groups := make([]types.AgeGroup, 0, len(Buckets))
	for _, b := range Buckets {
		m := members[b.Label]
		if len(m) == 0 && b.Label != NotSpecified {
			continue
		}
		sortMembers(m)
		groups = append(groups, types.AgeGroup{
			Label:      b.Label,
			Min:        copyInt(b.Min),
			Max:        copyInt(b.Max),
			Count:      len(m),
			Percentage: percentOf(len(m), total),
			People:     m,
		})
	}
	return groups
}

// sortMembers orders nil ages last, then by age, then by name (byte order).
func sortMembers(people []types.Person) {
	sort.SliceStable(people, func(i, j int) bool {
		a, b := people[i], people[j]
		switch {
		case a.Age == nil && b.Age != nil:
			return false
		case a.Age != nil && b.Age == nil:
			return true
		case a.Age != nil && *a.Age != *b.Age:
			return *a.Age < *b.Age
		}
		return a.Name < b.Name
	})
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	return intPtr(*v)
}
