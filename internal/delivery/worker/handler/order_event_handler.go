// Package handler contains the Pub/Sub push handlers run by the worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// OrderEventHandler confirms OrderPlaced events against the order store.
type OrderEventHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	orderRepo      repository.OrderRepository
}

// OrderEventHandlerParams holds dependencies for the OrderEventHandler
type OrderEventHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	OrderRepo repository.OrderRepository
}

// NewOrderEventHandler creates a new Pub/Sub push handler for order events
func NewOrderEventHandler(params OrderEventHandlerParams) *OrderEventHandler {
	verifyPushAuth := params.Config.Worker != nil && params.Config.Worker.VerifyPushAuth &&
		params.Config.PubSub != nil && params.Config.PubSub.Provider == constants.PubSubProviderGoogle

	return &OrderEventHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		orderRepo:      params.OrderRepo,
	}
}

// HandlePush acknowledges a push message with 200 unless processing failed in a way
// a redelivery could fix, in which case it answers 503.
func (h *OrderEventHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	if eventType := pushMsg.Message.Attributes["event_type"]; eventType != "" && eventType != constants.EventTypeOrderPlaced {
		h.logger.Debug("[Worker] Skipping unsupported event", slog.String("event_type", eventType))

		return c.NoContent(http.StatusOK)
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode message data", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	var event service.OrderPlacedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Error("[Worker] Failed to parse order placed event", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, &event)
	ctx = deliverycontext.WithRequest(ctx, requestID, h.logger)
	reqLogger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if err := h.confirmOrder(ctx, reqLogger, &event); err != nil {
		reqLogger.Error("[Worker] Failed to process order placed event",
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}
	}

	return c.NoContent(http.StatusOK)
}

// extractRequestID prefers message attributes, then the event payload, then the
// request context, and generates one as a last resort.
func (h *OrderEventHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.OrderPlacedEvent) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// confirmOrder checks the event against the persisted record. A missing order or a
// total that disagrees with the receipt is reported and dropped; store failures are retried.
func (h *OrderEventHandler) confirmOrder(ctx context.Context, logger *slog.Logger, event *service.OrderPlacedEvent) error {
	if event.OrderID == "" {
		return errors.New("order placed event without order id")
	}

	record, err := h.orderRepo.FindByID(ctx, event.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrapf(err, "order %s", event.OrderID)
		}

		return newRetryableError(errors.Wrap(err, "failed to load order"))
	}

	if problem := eventMismatch(record, event); problem != "" {
		logger.Error("[Worker] Order placed event disagrees with the order store",
			slog.String("order_id", event.OrderID),
			slog.String("problem", problem),
		)

		return nil
	}

	logger.Info("[Worker] Order placed",
		slog.String("order_id", event.OrderID),
		slog.String("user_id", record.Order.UserID),
		slog.String("total", event.Total),
		slog.Int("item_count", record.Order.ItemCount()),
		slog.String("transaction_reference", record.Receipt.TransactionReference),
	)

	return nil
}

func eventMismatch(record *entity.OrderRecord, event *service.OrderPlacedEvent) string {
	if record.Order.UserID != event.UserID {
		return "user " + event.UserID + " does not own the order"
	}
	if !record.Order.TotalIsConsistent() {
		return "order total does not match its line items"
	}
	if record.Receipt == nil {
		return "order has no receipt"
	}
	total, err := decimal.NewFromString(event.Total)
	if err != nil || !total.Equal(record.Receipt.AmountPaid.Round(2)) {
		return "event total " + event.Total + " does not match amount paid " + record.Receipt.AmountPaid.StringFixed(2)
	}
	if record.Order.ItemCount() != event.ItemCount {
		return fmt.Sprintf("event item count %d does not match order item count %d", event.ItemCount, record.Order.ItemCount())
	}

	return ""
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this endpoint.
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}
	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
