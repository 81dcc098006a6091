package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"demographics-insights-go/internal/config"
	"demographics-insights-go/internal/logger"
	"demographics-insights-go/internal/metrics"
	"demographics-insights-go/internal/processor"
	"demographics-insights-go/internal/source"
)

func main() {
	cfg := config.Load()

	log := logger.NewWith(cfg.Environment, cfg.LogLevel, os.Stdout)
	log.WithField("service", "demographics-insights-go").Info("starting service")

	src := source.New(cfg, log)
	log.WithField("source", fmt.Sprintf("%T", src)).
		WithField("dataset_path", cfg.DatasetPath).
		WithField("source_url", cfg.SourceURL).
		Info("population source selected")

	m := metrics.New(prometheus.DefaultRegisterer)
	proc := processor.New(src, m, log)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      newRouter(proc, log, time.Now),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}
