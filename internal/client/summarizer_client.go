package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/swasthya/migrant-access-api/internal/config"
)

// summaryPromptTemplate is the fixed prompt sent alongside the record text.
const summaryPromptTemplate = "You are a medical AI assistant. Summarize the following medical records in 2-3 lines and provide an AI analysis report:\n\n%s"

// SummarizerClient proxies the external generative-language summarization
// endpoint. It is strictly best-effort: callers fall back to a placeholder
// on any error and never propagate failures into record-serving code.
type SummarizerClient struct {
	httpClient *http.Client
	config     *config.SummarizerConfig
	logger     *logrus.Logger
}

// generateRequest is the payload sent to the generative-language endpoint
type generateRequest struct {
	Messages        []generateMessage `json:"messages"`
	Temperature     float64           `json:"temperature"`
	MaxOutputTokens int               `json:"maxOutputTokens"`
}

type generateMessage struct {
	Author  string            `json:"author"`
	Content []generateContent `json:"content"`
}

type generateContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// generateResponse is the payload returned by the generative-language endpoint
type generateResponse struct {
	Candidates []struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewSummarizerClient creates a new summarizer client instance
func NewSummarizerClient(cfg *config.SummarizerConfig, logger *logrus.Logger) *SummarizerClient {
	timeout := 30 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &SummarizerClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		config: cfg,
		logger: logger,
	}
}

// IsEnabled reports whether the summarizer is configured for use
func (c *SummarizerClient) IsEnabled() bool {
	return c.config.Enabled && c.config.BaseURL != "" && c.config.APIKey != ""
}

// Summarize sends the record text to the generative endpoint and returns the
// generated summary text.
func (c *SummarizerClient) Summarize(ctx context.Context, recordText string) (string, error) {
	if !c.IsEnabled() {
		return "", fmt.Errorf("summarizer is not configured")
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.config.BaseURL, c.config.Model, c.config.APIKey)

	temperature := c.config.Temperature
	if temperature == 0 {
		temperature = 0.3
	}
	maxTokens := c.config.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = 500
	}

	request := generateRequest{
		Messages: []generateMessage{
			{
				Author: "user",
				Content: []generateContent{
					{Type: "text", Text: fmt.Sprintf(summaryPromptTemplate, recordText)},
				},
			},
		},
		Temperature:     temperature,
		MaxOutputTokens: maxTokens,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		c.logger.WithError(err).Error("Failed to marshal summarization request")
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		c.logger.WithError(err).Error("Failed to create summarization request")
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.logger.WithFields(logrus.Fields{
		"model":       c.config.Model,
		"text_length": len(recordText),
	}).Debug("Calling summarization service")

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		c.logger.WithError(err).WithField("duration", duration).Error("Summarization request failed")
		return "", fmt.Errorf("summarization request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read summarization response: %w", err)
	}

	var response generateResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse summarization response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := fmt.Sprintf("status %d", resp.StatusCode)
		if response.Error != nil && response.Error.Message != "" {
			message = response.Error.Message
		}
		c.logger.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"duration": duration,
		}).Warn("Summarization service returned an error")
		return "", fmt.Errorf("summarization service error: %s", message)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content) == 0 {
		return "", fmt.Errorf("summarization service returned no candidates")
	}

	c.logger.WithField("duration", duration).Debug("Summarization completed")
	return response.Candidates[0].Content[0].Text, nil
}
