package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/swasthya/migrant-access-api/internal/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestSummarizerClient_Disabled(t *testing.T) {
	client := NewSummarizerClient(&config.SummarizerConfig{Enabled: false}, testLogger())

	assert.False(t, client.IsEnabled())

	summary, err := client.Summarize(context.Background(), "some records")
	assert.Error(t, err)
	assert.Empty(t, summary)
}

func TestSummarizerClient_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "models/gemini-test")
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var request generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		assert.Contains(t, request.Messages[0].Content[0].Text, "1. Fever: Rest advised.")

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": []map[string]string{{"text": "Patient was treated for fever."}}},
			},
		})
	}))
	defer server.Close()

	client := NewSummarizerClient(&config.SummarizerConfig{
		Enabled: true,
		BaseURL: server.URL,
		Model:   "gemini-test",
		APIKey:  "secret",
	}, testLogger())

	summary, err := client.Summarize(context.Background(), "1. Fever: Rest advised.")

	assert.NoError(t, err)
	assert.Equal(t, "Patient was treated for fever.", summary)
}

func TestSummarizerClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "model overloaded"},
		})
	}))
	defer server.Close()

	client := NewSummarizerClient(&config.SummarizerConfig{
		Enabled: true,
		BaseURL: server.URL,
		Model:   "gemini-test",
		APIKey:  "secret",
	}, testLogger())

	summary, err := client.Summarize(context.Background(), "records")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "model overloaded")
	assert.Empty(t, summary)
}

func TestSummarizerClient_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	client := NewSummarizerClient(&config.SummarizerConfig{
		Enabled: true,
		BaseURL: server.URL,
		Model:   "gemini-test",
		APIKey:  "secret",
	}, testLogger())

	summary, err := client.Summarize(context.Background(), "records")

	assert.Error(t, err)
	assert.Empty(t, summary)
}
