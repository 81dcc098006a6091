// Package demographics turns a population snapshot into age statistics, a
// bucketed age distribution and narrative insights. Every function here is
// pure; the only time dependency is the explicit now passed to GenerateInsights.
package demographics

const NotSpecified = "Not Specified"

// Bucket is one fixed, inclusive age range. Min and Max are nil only for the
// Not Specified bucket.
type Bucket struct {
	Label string
	Min   *int
	Max   *int
}

func (b Bucket) contains(age int) bool {
	if b.Min == nil || b.Max == nil {
		return false
	}
	return age >= *b.Min && age <= *b.Max
}

func intPtr(v int) *int { return &v }

// Buckets is evaluated in order; Not Specified must stay last.
var Buckets = []Bucket{
	{Label: "Under 18", Min: intPtr(0), Max: intPtr(17)},
	{Label: "18-24", Min: intPtr(18), Max: intPtr(24)},
	{Label: "25-34", Min: intPtr(25), Max: intPtr(34)},
	{Label: "35-44", Min: intPtr(35), Max: intPtr(44)},
	{Label: "45-54", Min: intPtr(45), Max: intPtr(54)},
	{Label: "55+", Min: intPtr(55), Max: intPtr(999)},
	{Label: NotSpecified},
}

// Categorize returns the label of the bucket holding age. Ages outside every
// numeric range fall back to Not Specified.
func Categorize(age *int) string {
	if age == nil {
		return NotSpecified
	}
	for _, b := range Buckets {
		if b.contains(*age) {
			return b.Label
		}
	}
	return NotSpecified
}
