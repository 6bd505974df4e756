package storage

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// unreachable points at a closed port so every command fails fast.
func unreachable(t *testing.T, limit int) *StorageService {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := newStorageService(client, limit, zap.NewNop())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestQuotaKey(t *testing.T) {
	s := unreachable(t, 3)
	at := time.Date(2024, time.March, 9, 23, 30, 0, 0, time.FixedZone("UTC+2", 2*3600))

	assert.Equal(t, "quota:203.0.113.7:20240309", s.QuotaKey("203.0.113.7", at))
	assert.Equal(t, "quota:abc:20240310", s.QuotaKey("abc", at.Add(3*time.Hour)))
}

func TestAllowUnlimited(t *testing.T) {
	s := unreachable(t, 0)
	s.now = func() time.Time { return time.Date(2024, time.March, 9, 12, 0, 0, 0, time.UTC) }

	u := s.Allow(t.Context(), "client", 5)
	assert.True(t, u.Allowed)
	assert.Equal(t, 0, u.Limit)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), u.ResetAt)
}

func TestAllowFailsOpen(t *testing.T) {
	s := unreachable(t, 3)

	u := s.Allow(t.Context(), "client", 1)
	assert.True(t, u.Allowed)
	assert.Equal(t, 3, u.Limit)
	assert.Equal(t, 3, u.Remaining)
}

func TestHealthCheckUnreachable(t *testing.T) {
	s := unreachable(t, 3)
	assert.Contains(t, s.HealthCheck(t.Context()), "unhealthy")
}

func TestCropCacheKey(t *testing.T) {
	s := unreachable(t, 3)
	img := []byte("jpeg bytes")

	k1 := s.CropCacheKey(img, 400, 300, "smart")
	k2 := s.CropCacheKey(img, 400, 300, "smart")
	assert.Equal(t, k1, k2)
	assert.Contains(t, k1, "crop_cache:")
	assert.NotEqual(t, k1, s.CropCacheKey(img, 400, 301, "smart"))
	assert.NotEqual(t, k1, s.CropCacheKey(img, 400, 300, "center"))
	assert.NotContains(t, k1, "jpeg bytes")
}

func TestGetCropMissOnFailure(t *testing.T) {
	s := unreachable(t, 3)
	_, ok := s.GetCrop(t.Context(), "crop_cache:missing")
	assert.False(t, ok)
}
