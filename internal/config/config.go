// Package config reads service settings from the environment, after loading
// an optional .env file.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatasetPath   string
	SourceURL     string
	UseMockSource bool
	SourceTimeout time.Duration
	Environment   string
	LogLevel      string
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load() // loads .env
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		Port:          envOr("PORT", "8080"),
		DatasetPath:   envOr("DATASET_PATH", "people.xlsx"),
		SourceURL:     strings.TrimSpace(os.Getenv("PEOPLE_SOURCE_URL")),
		UseMockSource: envBool("USE_MOCK_SOURCE"),
		SourceTimeout: envDuration("SOURCE_TIMEOUT", 15*time.Second),
		Environment:   os.Getenv("ENVIRONMENT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envBool(k string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(k)))
	return err == nil && v
}

func envDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
