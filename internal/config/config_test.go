package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t, "PORT", "READ_TIMEOUT", "STRIPE_SECRET_KEY", "STRIPE_PRO_PRICE_ID", "APP_URL",
		"JPEG_QUALITY", "FREE_DAILY_LIMIT", "PHOTO_MAX_BATCH", "PHOTO_FILENAME",
		"PHOTO_MAX_PIXELS", "PHOTO_MAX_DIMENSION", "WATERMARK_POSITION")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "http://localhost:3000", cfg.Stripe.AppURL)
	assert.Equal(t, "price_xxx", cfg.Stripe.ProPriceID)
	assert.Equal(t, 92, cfg.Photo.JPEGQuality)
	assert.Equal(t, 3, cfg.Photo.FreeDailyLimit)
	assert.Equal(t, 10, cfg.Photo.MaxBatch)
	assert.Equal(t, "french-visa-photo.jpg", cfg.Photo.Filename)
	assert.Equal(t, int64(40_000_000), cfg.Photo.MaxPixels)
	assert.Equal(t, 12000, cfg.Photo.MaxDimension)
	assert.Equal(t, "bottom-right", cfg.Photo.WatermarkPosition)
	assert.Equal(t, []string{"image/jpeg", "image/png", "image/webp"}, cfg.Photo.AllowedTypes)
	assert.False(t, cfg.StripeConfigured())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("READ_TIMEOUT", "3s")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("APP_URL", "https://photo.example.com/")
	t.Setenv("JPEG_QUALITY", "80")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("CHECKOUT_RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.StripeConfigured())
	assert.Equal(t, "https://photo.example.com", cfg.Stripe.AppURL)
	assert.Equal(t, 80, cfg.Photo.JPEGQuality)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("WRITE_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"JPEG_QUALITY":       "101",
		"PHOTO_MAX_BATCH":    "0",
		"FREE_DAILY_LIMIT":   "-1",
		"LOG_FORMAT":         "xml",
		"MAX_FILE_SIZE":      "-5",
		"PHOTO_MAX_PIXELS":   "0",
		"WATERMARK_POSITION": "middle",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
