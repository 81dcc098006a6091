package aggregator

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"demographics-insights-go/internal/processor"
)

// DefaultSegments is used when a caller names none.
var DefaultSegments = []string{"all", "male", "female"}

// Comparison lines segments up side by side.
type Comparison struct {
	Results                []processor.Result `json:"results"`
	PopulationBySegment    map[string]int     `json:"population_by_segment"`
	SpecificationBySegment map[string]int     `json:"specification_rate_by_segment"`
	LargestGroupBySegment  map[string]string  `json:"largest_group_by_segment"`
}

// AnalyzeSegments runs every segment concurrently. Results keep the order of
// segments; the first failure cancels the rest.
func AnalyzeSegments(ctx context.Context, p *processor.Processor, segments []string, now time.Time) ([]processor.Result, error) {
	if len(segments) == 0 {
		segments = DefaultSegments
	}
	results := make([]processor.Result, len(segments))
	g, ctx := errgroup.WithContext(ctx)
	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			res, err := p.ProcessSegment(ctx, seg, now)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Aggregate condenses per-segment results into lookup maps. Failed segments
// are left out of the maps.
func Aggregate(results []processor.Result) Comparison {
	c := Comparison{
		Results:                results,
		PopulationBySegment:    map[string]int{},
		SpecificationBySegment: map[string]int{},
		LargestGroupBySegment:  map[string]string{},
	}
	for _, r := range results {
		if r.Report == nil {
			continue
		}
		c.PopulationBySegment[r.Segment] = r.Report.Total
		c.SpecificationBySegment[r.Segment] = r.Report.Insights.AgeSpecificationRatePercent
		if l := r.Report.Insights.LargestGroupLabel; l != nil {
			c.LargestGroupBySegment[r.Segment] = *l
		}
	}
	return c
}
