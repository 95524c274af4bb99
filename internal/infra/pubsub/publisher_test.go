package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.OrderPlacedEvent {
	return &service.OrderPlacedEvent{
		RequestID: "req-1",
		OrderID:   "order-1",
		UserID:    "ada",
		Total:     "30.00",
		ItemCount: 3,
		PlacedAt:  time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PostsPushEnvelope(t *testing.T) {
	var got PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	require.NoError(t, publisher.PublishOrderPlaced(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, localSubscription, got.Subscription)
	assert.Equal(t, "order-1", got.Message.MessageID)
	assert.Equal(t, "order.placed", got.Message.Attributes["event_type"])
	assert.Equal(t, "ada", got.Message.Attributes["user_id"])

	data, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)
	var event service.OrderPlacedEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, "30.00", event.Total)
	assert.Equal(t, 3, event.ItemCount)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := NewLocalHTTPPublisher(server.URL, discardLogger()).PublishOrderPlaced(context.Background(), testEvent())

	assert.ErrorContains(t, err, "503")
}

func TestNewEventPublisher_SelectsProvider(t *testing.T) {
	lc := fxtest.NewLifecycle(t)

	publisher, err := NewEventPublisher(PublisherParams{Lc: lc, Config: &config.Config{}, Logger: discardLogger()})
	require.NoError(t, err)
	assert.IsType(t, &noopPublisher{}, publisher)
	assert.NoError(t, publisher.PublishOrderPlaced(context.Background(), testEvent()))

	cfg := &config.Config{PubSub: &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:9999/push"}}
	publisher, err = NewEventPublisher(PublisherParams{Lc: lc, Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)
	assert.IsType(t, &localHTTPPublisher{}, publisher)
}

func TestNewEventPublisher_RejectsIncompleteConfig(t *testing.T) {
	tests := map[string]*config.PubSubConfig{
		"local without endpoint": {Provider: "local"},
		"google without project": {Provider: "google", TopicID: "orders"},
		"google without topic":   {Provider: "google", ProjectID: "shop"},
		"unknown provider":       {Provider: "kafka"},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewEventPublisher(PublisherParams{
				Lc:     fxtest.NewLifecycle(t),
				Config: &config.Config{PubSub: cfg},
				Logger: discardLogger(),
			})
			assert.Error(t, err)
		})
	}
}
