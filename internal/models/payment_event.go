package models

import "time"

// PaymentEvent is what the webhook receiver hands to the fulfilment worker.
type PaymentEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ObjectID   string    `json:"object_id,omitempty"`
	Plan       string    `json:"plan,omitempty"`
	Created    time.Time `json:"created"`
	ReceivedAt time.Time `json:"received_at"`
}

const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentSucceeded  = "payment_intent.succeeded"
	EventPaymentFailed     = "payment_intent.payment_failed"
)
