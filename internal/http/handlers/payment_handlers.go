package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/visa-photo/internal/models"
	"github.com/phambaophuc/visa-photo/internal/services/payment"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

// Stripe signs payloads well under this size.
const maxWebhookBody = 1 << 16

type EventPublisher interface {
	PublishPaymentEvent(ctx context.Context, event *models.PaymentEvent) error
}

type PaymentHandler struct {
	payments *payment.Service
	events   EventPublisher
	logger   *zap.Logger
}

// NewPaymentHandler accepts a nil publisher; verified events are then only logged.
func NewPaymentHandler(payments *payment.Service, events EventPublisher, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		events:   events,
		logger:   logger,
	}
}

func (h *PaymentHandler) Plans(c *gin.Context) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data: gin.H{
			"plans":      h.payments.Plans(),
			"configured": h.payments.Configured(),
		},
	})
}

// Checkout keeps the flat {sessionId,url} / {error} contract the pricing UI expects.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	if !h.payments.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Payment system is not configured. Please set up Stripe environment variables.",
		})
		return
	}

	var req payment.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.payments.CreateCheckout(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMissingPriceID):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price ID is required"})
		case errors.Is(err, payment.ErrUnknownPlan):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown plan"})
		case errors.Is(err, payment.ErrNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Payment system is not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		}
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *PaymentHandler) GetSession(c *gin.Context) {
	status, err := h.payments.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		var stripeErr *stripe.Error
		switch {
		case errors.Is(err, payment.ErrNotConfigured):
			respondError(c, http.StatusServiceUnavailable, "Payment system is not configured")
		case errors.Is(err, payment.ErrMissingSessionID):
			respondError(c, http.StatusBadRequest, "Session ID is required")
		case errors.As(err, &stripeErr) && stripeErr.HTTPStatusCode == http.StatusNotFound:
			respondError(c, http.StatusNotFound, "Checkout session not found")
		default:
			h.logger.Error("Failed to retrieve checkout session", zap.Error(err))
			respondError(c, http.StatusInternalServerError, "Failed to retrieve checkout session")
		}
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Data:    status,
	})
}

func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn("Webhook body too large", zap.Int64("limit", tooLarge.Limit))
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		h.logger.Error("Webhook error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		return
	}

	event, err := h.payments.ParseWebhook(body, c.GetHeader("Stripe-Signature"))
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMissingSignature):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing signature or webhook secret"})
		case errors.Is(err, payment.ErrInvalidSignature):
			h.logger.Warn("Webhook signature verification failed", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signature"})
		default:
			h.logger.Error("Webhook error", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		}
		return
	}

	if !event.Handled {
		h.logger.Info("Unhandled event type", zap.String("type", event.Type), zap.String("event_id", event.ID))
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	h.logger.Info("Webhook event verified",
		zap.String("type", event.Type),
		zap.String("event_id", event.ID),
		zap.String("object_id", event.ObjectID))

	if h.events != nil {
		msg := &models.PaymentEvent{
			ID:         event.ID,
			Type:       event.Type,
			ObjectID:   event.ObjectID,
			Plan:       event.Plan,
			Created:    event.Created,
			ReceivedAt: time.Now().UTC(),
		}
		// A non-2xx answer makes Stripe redeliver the event later.
		if err := h.events.PublishPaymentEvent(c.Request.Context(), msg); err != nil {
			h.logger.Error("Failed to publish payment event", zap.String("event_id", event.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
