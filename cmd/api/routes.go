package main

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"demographics-insights-go/internal/aggregator"
	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/processor"
)

func newRouter(proc *processor.Processor, log *logger.Logger, clock func() time.Time) http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		log.WithRequest(r).Debug("health check")
		_, _ = w.Write([]byte("ok"))
	})

	mux.Get("/demographics", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "demographics")
		now, ok := referenceTime(w, r, clock)
		if !ok {
			reqLog.Warn("invalid now parameter")
			return
		}
		segment := r.URL.Query().Get("segment")
		res, err := proc.ProcessSegment(r.Context(), segment, now)
		status := http.StatusOK
		if err != nil {
			reqLog.WithField("error", err.Error()).Warn("segment analysis failed")
			status = http.StatusBadGateway
		}
		writeJSON(w, status, res, reqLog)
	})

	mux.Get("/demographics/segments", func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.WithRequest(r).WithField("handler", "segments")
		now, ok := referenceTime(w, r, clock)
		if !ok {
			reqLog.Warn("invalid now parameter")
			return
		}
		results, err := aggregator.AnalyzeSegments(r.Context(), proc, r.URL.Query()["segment"], now)
		status := http.StatusOK
		if err != nil {
			reqLog.WithField("error", err.Error()).Warn("segment comparison failed")
			status = http.StatusBadGateway
		}
		writeJSON(w, status, aggregator.Aggregate(results), reqLog)
	})

	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// referenceTime reads the optional ?now=RFC3339 anchor for the growth window.
func referenceTime(w http.ResponseWriter, r *http.Request, clock func() time.Time) (time.Time, bool) {
	raw := r.URL.Query().Get("now")
	if raw == "" {
		return clock(), true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		http.Error(w, "now must be RFC3339", http.StatusBadRequest)
		return time.Time{}, false
	}
	return t, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, log *logrus.Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.WithField("error", err.Error()).Error("failed to write response")
	}
}
