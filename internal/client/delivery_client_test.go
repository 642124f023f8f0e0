package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swasthya/migrant-access-api/internal/config"
)

func TestDeliveryClient_DisabledIsNoop(t *testing.T) {
	client := NewDeliveryClient(&config.DeliveryConfig{Enabled: false}, testLogger())

	err := client.Deliver(context.Background(), "+919900112233", "123456", "REQ-1")
	assert.NoError(t, err)
}

func TestDeliveryClient_SendsCode(t *testing.T) {
	var received DeliveryRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send", r.URL.Path)
		assert.Equal(t, "Bearer gateway-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewDeliveryClient(&config.DeliveryConfig{
		Enabled: true,
		BaseURL: server.URL,
		APIKey:  "gateway-key",
	}, testLogger())

	err := client.Deliver(context.Background(), "+919900112233", "123456", "REQ-1")

	assert.NoError(t, err)
	assert.Equal(t, "+919900112233", received.Destination)
	assert.Equal(t, "123456", received.Code)
	assert.Equal(t, "REQ-1", received.RequestID)
}

func TestDeliveryClient_GatewayErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewDeliveryClient(&config.DeliveryConfig{
		Enabled: true,
		BaseURL: server.URL,
	}, testLogger())

	err := client.Deliver(context.Background(), "+919900112233", "123456", "REQ-1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
