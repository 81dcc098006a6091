package aggregator

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/processor"
	"demographics-insights-go/internal/source"
	"demographics-insights-go/internal/types"
)

var quietLog = logger.NewWith("test", "error", io.Discard)

var now = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

type brokenSegment struct {
	source.Source
	bad string
}

func (b brokenSegment) Fetch(ctx context.Context, segment string) ([]types.Person, error) {
	if segment == b.bad {
		return nil, errors.New("segment unavailable")
	}
	return b.Source.Fetch(ctx, segment)
}

func TestAnalyzeSegmentsKeepsOrder(t *testing.T) {
	p := processor.New(source.MockSource{}, nil, quietLog)
	results, err := AnalyzeSegments(context.Background(), p, []string{"male", "female", "all"}, now)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "male", results[0].Segment)
	assert.Equal(t, 4, results[0].Report.Total)
	assert.Equal(t, "female", results[1].Segment)
	assert.Equal(t, 6, results[1].Report.Total)
	assert.Equal(t, "all", results[2].Segment)
	assert.Equal(t, 10, results[2].Report.Total)
}

func TestAnalyzeSegmentsDefaults(t *testing.T) {
	p := processor.New(source.MockSource{}, nil, quietLog)
	results, err := AnalyzeSegments(context.Background(), p, nil, now)
	require.NoError(t, err)
	require.Len(t, results, len(DefaultSegments))
	for i, seg := range DefaultSegments {
		assert.Equal(t, seg, results[i].Segment)
	}
}

func TestAnalyzeSegmentsError(t *testing.T) {
	p := processor.New(brokenSegment{Source: source.MockSource{}, bad: "male"}, nil, quietLog)
	results, err := AnalyzeSegments(context.Background(), p, []string{"female", "male"}, now)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "segment unavailable")
	assert.Equal(t, "fetch error: segment unavailable", results[1].Error)
}

func TestAggregate(t *testing.T) {
	p := processor.New(source.MockSource{}, nil, quietLog)
	results, err := AnalyzeSegments(context.Background(), p, []string{"all", "male"}, now)
	require.NoError(t, err)
	results = append(results, processor.Result{Segment: "other", Error: "fetch error: x"})

	c := Aggregate(results)
	assert.Len(t, c.Results, 3)
	assert.Equal(t, map[string]int{"all": 10, "male": 4}, c.PopulationBySegment)
	assert.Equal(t, 80, c.SpecificationBySegment["all"])
	assert.Equal(t, 75, c.SpecificationBySegment["male"])
	assert.Equal(t, "25-34", c.LargestGroupBySegment["all"])
	_, ok := c.PopulationBySegment["other"]
	assert.False(t, ok)
}
