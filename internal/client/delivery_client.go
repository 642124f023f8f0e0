package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/swasthya/migrant-access-api/internal/config"
)

// DeliveryClient pushes one-time codes to the subject over the out-of-band
// channel (SMS gateway / push service). Delivery failure never rolls back
// request creation; the code stays valid within its TTL.
type DeliveryClient struct {
	httpClient *http.Client
	config     *config.DeliveryConfig
	logger     *logrus.Logger
}

// DeliveryRequest is the payload sent to the delivery gateway
type DeliveryRequest struct {
	Destination string `json:"destination"`
	Code        string `json:"code"`
	RequestID   string `json:"requestId"`
}

// NewDeliveryClient creates a new delivery client instance
func NewDeliveryClient(cfg *config.DeliveryConfig, logger *logrus.Logger) *DeliveryClient {
	timeout := 10 * time.Second
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}

	return &DeliveryClient{
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

// Deliver sends the code to the destination phone number.
func (c *DeliveryClient) Deliver(ctx context.Context, destination, code, requestID string) error {
	if !c.config.Enabled || c.config.BaseURL == "" {
		c.logger.Debug("Delivery channel not configured, skipping send")
		return nil
	}

	payload := DeliveryRequest{
		Destination: destination,
		Code:        code,
		RequestID:   requestID,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal delivery request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/send", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create delivery request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("delivery request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("delivery gateway returned status %d", resp.StatusCode)
	}

	c.logger.WithFields(logrus.Fields{
		"requestId": requestID,
	}).Debug("One-time code dispatched")

	return nil
}
