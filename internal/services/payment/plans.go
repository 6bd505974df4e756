package payment

const (
	PlanFree    = "free"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

type Plan struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	PriceID  string   `json:"priceId,omitempty"`
	Features []string `json:"features"`
	Popular  bool     `json:"popular"`
}

// Plans lists every tier, free first.
func (s *Service) Plans() []Plan {
	return []Plan{
		{
			Key:      PlanFree,
			Name:     "Free",
			Price:    0,
			Features: []string{"Basic photo cropping", "3 photos per day", "Standard resolution"},
		},
		{
			Key:     PlanPro,
			Name:    "Pro",
			Price:   4.99,
			PriceID: s.cfg.ProPriceID,
			Popular: true,
			Features: []string{
				"Unlimited photo cropping",
				"High resolution output",
				"Batch processing (up to 10 photos)",
				"Priority support",
				"No watermarks",
			},
		},
		{
			Key:     PlanPremium,
			Name:    "Premium",
			Price:   9.99,
			PriceID: s.cfg.PremiumPriceID,
			Features: []string{
				"Everything in Pro",
				"AI background removal",
				"Automatic face detection",
				"Batch processing (unlimited)",
				"24/7 premium support",
				"API access",
			},
		},
	}
}

// Plan looks a tier up by key.
func (s *Service) Plan(key string) (Plan, bool) {
	for _, p := range s.Plans() {
		if p.Key == key {
			return p, true
		}
	}
	return Plan{}, false
}

// planForPrice names the tier billed with priceID, or "" when no tier uses it.
func (s *Service) planForPrice(priceID string) string {
	for _, p := range s.Plans() {
		if p.PriceID != "" && p.PriceID == priceID {
			return p.Key
		}
	}
	return ""
}
