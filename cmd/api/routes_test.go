package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demographics-insights-go/internal/aggregator"
	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/processor"
	"demographics-insights-go/internal/source"
	"demographics-insights-go/internal/types"
)

var fixedNow = time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

type downSource struct{}

func (downSource) Fetch(context.Context, string) ([]types.Person, error) {
	return nil, errors.New("upstream down")
}

func newTestRouter(src source.Source) http.Handler {
	log := logger.NewWith("test", "error", &bytes.Buffer{})
	return newRouter(processor.New(src, nil, log), log, func() time.Time { return fixedNow })
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(source.MockSource{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestDemographicsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/demographics?segment=male", nil)
	newTestRouter(source.MockSource{}).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res processor.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "male", res.Segment)
	require.NotNil(t, res.Report)
	assert.Equal(t, 4, res.Report.Total)
	assert.True(t, res.Report.GeneratedAt.Equal(fixedNow))
}

func TestDemographicsEndpointNowOverride(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/demographics?now=2025-04-15T00:00:00Z", nil)
	newTestRouter(source.MockSource{}).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var res processor.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	// three joins inside the window plus two dated after now
	assert.Equal(t, "50% joined in last 30 days - Moderate growth", res.Report.Insights.GrowthTrendDescription)
}

func TestDemographicsEndpointBadNow(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/demographics?now=yesterday", nil)
	newTestRouter(source.MockSource{}).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDemographicsEndpointSourceFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(downSource{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/demographics", nil))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var res processor.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "fetch error: upstream down", res.Error)
	assert.Nil(t, res.Report)
}

func TestSegmentsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/demographics/segments?segment=female&segment=male", nil)
	newTestRouter(source.MockSource{}).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var c aggregator.Comparison
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&c))
	require.Len(t, c.Results, 2)
	assert.Equal(t, map[string]int{"female": 6, "male": 4}, c.PopulationBySegment)
}
