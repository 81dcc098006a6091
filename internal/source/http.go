package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"demographics-insights-go/internal/dataset"
	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/types"
)

var ErrSourceNotConfigured = errors.New("people source url not set")

// HTTPSource fetches people from a remote service:
// GET {base}/people[?gender=segment] returning a JSON array of people.
type HTTPSource struct {
	base       string
	timeout    time.Duration
	client     *http.Client
	log        *logger.Logger
	newBackOff func() backoff.BackOff
}

// NewHTTPSource builds a remote source. A nil log falls back to logger.New.
func NewHTTPSource(base string, timeout time.Duration, log *logger.Logger) *HTTPSource {
	s := &HTTPSource{
		base:    strings.TrimRight(base, "/"),
		timeout: timeout,
		client:  &http.Client{Timeout: 12 * time.Second},
		log:     logger.OrDefault(log).Component("source.http"),
	}
	s.newBackOff = func() backoff.BackOff {
		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = s.timeout
		return bo
	}
	return s
}

func (s *HTTPSource) Fetch(ctx context.Context, segment string) ([]types.Person, error) {
	if s.base == "" {
		return nil, ErrSourceNotConfigured
	}
	log := s.log
	u, err := url.Parse(s.base + "/people")
	if err != nil {
		return nil, fmt.Errorf("source url: %w", err)
	}
	segment = NormalizeSegment(segment)
	if segment != AllSegment {
		q := u.Query()
		q.Set("gender", segment)
		u.RawQuery = q.Encode()
	}

	var people []types.Person
	if err := s.doJSON(ctx, u.String(), &people); err != nil {
		log.WithError(err).WithField("segment", segment).Warn("people fetch failed")
		return nil, err
	}
	if err := dataset.ValidateAll(people); err != nil {
		return nil, fmt.Errorf("people from %s: %w", u.Host, err)
	}
	log.WithField("segment", segment).WithField("people", len(people)).Info("people fetched")
	return people, nil
}

// doJSON GETs url and decodes the body into target, retrying transport
// errors, 5xx and bad bodies. 4xx is final. Cancellation wins over the last
// attempt's error.
func (s *HTTPSource) doJSON(ctx context.Context, target string, out interface{}) error {
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			lastErr = err
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		resp, err := s.client.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %d %s", resp.StatusCode, string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("request rejected: %d %s", resp.StatusCode, string(body))
			return backoff.Permanent(lastErr)
		}
		if len(body) == 0 {
			lastErr = fmt.Errorf("empty body")
			return lastErr
		}
		if err := json.Unmarshal(body, out); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(s.newBackOff(), ctx)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("people fetch aborted: %w", ctxErr)
		}
		if lastErr == nil {
			return err
		}
		return lastErr
	}
	return nil
}
