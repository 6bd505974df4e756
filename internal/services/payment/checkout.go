package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

type CheckoutRequest struct {
	PriceID string `json:"priceId"`
	Plan    string `json:"plan"`
}

type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// SessionStatus is what the success page shows after the redirect back.
type SessionStatus struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	Plan          string `json:"plan,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
	AmountTotal   int64  `json:"amount_total"`
	Currency      string `json:"currency,omitempty"`
}

// CreateCheckout opens a one-time card payment session for a single price.
func (s *Service) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(req.PriceID) == "" {
		return nil, ErrMissingPriceID
	}
	if req.Plan == "" {
		req.Plan = s.planForPrice(req.PriceID)
	} else if _, ok := s.Plan(req.Plan); !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlan, req.Plan)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(s.cfg.AppURL + "/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.cfg.AppURL + "?canceled=true"),
	}
	params.Context = ctx
	params.AddMetadata("plan", req.Plan)

	sess, err := s.sessions.New(params)
	if err != nil {
		s.logger.Error("Error creating checkout session",
			zap.String("price_id", req.PriceID),
			zap.String("plan", req.Plan),
			zap.Error(err))
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Info("Checkout session created",
		zap.String("session_id", sess.ID),
		zap.String("plan", req.Plan))

	return &CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (*SessionStatus, error) {
	if !s.Configured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingSessionID
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := s.sessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	status := &SessionStatus{
		ID:            sess.ID,
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
		Plan:          sess.Metadata["plan"],
		AmountTotal:   sess.AmountTotal,
		Currency:      string(sess.Currency),
	}
	if sess.CustomerDetails != nil {
		status.CustomerEmail = sess.CustomerDetails.Email
	}
	return status, nil
}
