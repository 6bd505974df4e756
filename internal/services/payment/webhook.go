package payment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// WebhookEvent is the verified subset of a Stripe event this service acts on.
type WebhookEvent struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	ObjectID string    `json:"object_id,omitempty"`
	Plan     string    `json:"plan,omitempty"`
	Handled  bool      `json:"handled"`
	Created  time.Time `json:"created"`
}

// ParseWebhook verifies the Stripe-Signature header against the webhook
// secret before reading anything from the payload.
func (s *Service) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	if signature == "" || s.cfg.WebhookSecret == "" {
		return nil, ErrMissingSignature
	}

	// Events keep the API version of the endpoint that sent them, which may
	// trail the version this SDK is pinned to.
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.cfg.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	out := &WebhookEvent{
		ID:      event.ID,
		Type:    string(event.Type),
		Created: time.Unix(event.Created, 0).UTC(),
	}

	switch event.Type {
	case "checkout.session.completed":
		var cs stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &cs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		out.ObjectID = cs.ID
		out.Plan = cs.Metadata["plan"]
		out.Handled = true
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
		}
		out.ObjectID = pi.ID
		out.Plan = pi.Metadata["plan"]
		out.Handled = true
	}

	return out, nil
}
