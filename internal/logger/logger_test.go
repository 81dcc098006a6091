package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in       string
		expected logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{" WARN ", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"verbose", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.in))
		})
	}
}

func TestJSONOutputCarriesComponentAndError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWith("production", "info", &buf).Component("source")
	log.WithError(errors.New("boom")).Warn("fetch failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "source", entry["component"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "fetch failed", entry["msg"])
}

func TestWithErrorNil(t *testing.T) {
	log := NewWith("production", "info", &bytes.Buffer{})
	assert.Same(t, log.Entry, log.WithError(nil))
}

func TestRequestID(t *testing.T) {
	r := httptest.NewRequest("GET", "/healthz", nil)
	r.Header.Set("X-Request-ID", "abc")
	assert.Equal(t, "abc", RequestID(r))

	r.Header.Del("X-Request-ID")
	_, err := uuid.Parse(RequestID(r))
	assert.NoError(t, err)
}
