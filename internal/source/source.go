// Package source supplies the population for a segment. It owns data access
// and the segmentation filter; the analytics engine never sees either.
package source

import (
	"context"
	"strings"
	"sync"

	"demographics-insights-go/internal/config"
	"demographics-insights-go/internal/dataset"
	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/types"
)

// AllSegment selects the whole population.
const AllSegment = "all"

type Source interface {
	Fetch(ctx context.Context, segment string) ([]types.Person, error)
}

// New picks the source from config: mock, remote service, then local dataset.
func New(cfg config.Config, log *logger.Logger) Source {
	switch {
	case cfg.UseMockSource:
		return MockSource{}
	case cfg.SourceURL != "":
		return NewHTTPSource(cfg.SourceURL, cfg.SourceTimeout, log)
	default:
		return NewDatasetSource(cfg.DatasetPath, log)
	}
}

// NormalizeSegment lowercases a segment key; "" means AllSegment.
func NormalizeSegment(segment string) string {
	s := strings.ToLower(strings.TrimSpace(segment))
	if s == "" {
		return AllSegment
	}
	return s
}

// Filter keeps people whose gender matches segment, case-insensitively.
func Filter(people []types.Person, segment string) []types.Person {
	segment = NormalizeSegment(segment)
	out := make([]types.Person, 0, len(people))
	for _, p := range people {
		if segment == AllSegment || strings.EqualFold(strings.TrimSpace(p.Gender), segment) {
			out = append(out, p)
		}
	}
	return out
}

// DatasetSource serves segments from an xlsx file. The first successful read
// is kept; a failed read is retried on the next Fetch.
type DatasetSource struct {
	path string
	load func(string) ([]types.Person, error)

	mu     sync.Mutex
	loaded bool
	people []types.Person
}

func NewDatasetSource(path string, log *logger.Logger) *DatasetSource {
	return &DatasetSource{path: path, load: func(p string) ([]types.Person, error) {
		return dataset.Load(p, log)
	}}
}

func (s *DatasetSource) Fetch(ctx context.Context, segment string) ([]types.Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	people, err := s.population()
	if err != nil {
		return nil, err
	}
	return Filter(people, segment), nil
}

func (s *DatasetSource) population() ([]types.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		people, err := s.load(s.path)
		if err != nil {
			return nil, err
		}
		s.people, s.loaded = people, true
	}
	return s.people, nil
}
