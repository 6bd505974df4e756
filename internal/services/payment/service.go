package payment

import (
	"errors"

	"github.com/phambaophuc/visa-photo/internal/config"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured    = errors.New("payment system is not configured")
	ErrMissingPriceID   = errors.New("price ID is required")
	ErrUnknownPlan      = errors.New("unknown plan")
	ErrMissingSessionID = errors.New("session ID is required")
	ErrMissingSignature = errors.New("missing signature or webhook secret")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrMalformedEvent   = errors.New("malformed webhook event")
)

// Service wraps Stripe hosted checkout. Without a secret key it still serves
// plans and verifies webhooks, but cannot create sessions.
type Service struct {
	cfg      config.StripeConfig
	sessions *session.Client
	logger   *zap.Logger
}

// NewService uses the default Stripe API backend when backend is nil.
func NewService(cfg config.StripeConfig, backend stripe.Backend, logger *zap.Logger) *Service {
	s := &Service{cfg: cfg, logger: logger}
	if cfg.SecretKey != "" {
		if backend == nil {
			backend = stripe.GetBackend(stripe.APIBackend)
		}
		s.sessions = &session.Client{B: backend, Key: cfg.SecretKey}
	}
	return s
}

func (s *Service) Configured() bool {
	return s.sessions != nil
}

// HealthCheck reports configuration state; it never calls Stripe.
func (s *Service) HealthCheck() string {
	if !s.Configured() {
		return "not configured"
	}
	return "healthy"
}
