package processor

import (
	"context"
	"fmt"
	"time"

	"demographics-insights-go/internal/demographics"
	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/metrics"
	"demographics-insights-go/internal/source"
	"demographics-insights-go/internal/types"
)

// Result is one segment's analytics run as returned by the API.
type Result struct {
	Segment    string        `json:"segment"`
	Report     *types.Report `json:"report,omitempty"`
	DurationMs int64         `json:"duration_ms"`
	Error      string        `json:"error,omitempty"`
}

type Processor struct {
	src     source.Source
	metrics *metrics.Metrics
	log     *logger.Logger
}

// New wires a processor; m may be nil, and a nil log falls back to logger.New.
func New(src source.Source, m *metrics.Metrics, log *logger.Logger) *Processor {
	return &Processor{src: src, metrics: m, log: logger.OrDefault(log).Component("processor")}
}

// ProcessSegment fetches the segment's population and analyzes it against now.
func (p *Processor) ProcessSegment(ctx context.Context, segment string, now time.Time) (Result, error) {
	start := time.Now()
	segment = source.NormalizeSegment(segment)
	res := Result{Segment: segment}
	log := p.log.WithField("segment", segment)

	people, err := p.src.Fetch(ctx, segment)
	if err != nil {
		if p.metrics != nil {
			p.metrics.IncrementSourceErrors(segment)
		}
		res.Error = fmt.Sprintf("fetch error: %v", err)
		res.DurationMs = time.Since(start).Milliseconds()
		return res, fmt.Errorf("fetch %s: %w", segment, err)
	}

	report := demographics.Analyze(people, now)
	res.Report = &report
	took := time.Since(start)
	res.DurationMs = took.Milliseconds()
	if p.metrics != nil {
		p.metrics.ObserveRun(segment, len(people), took)
	}
	log.WithField("population", len(people)).WithField("duration_ms", res.DurationMs).Info("segment analyzed")
	return res, nil
}
