package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Usage is the outcome of a quota check. Limit 0 means unlimited.
type Usage struct {
	Allowed   bool      `json:"allowed"`
	Used      int64     `json:"used"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

func (s *StorageService) QuotaKey(clientID string, at time.Time) string {
	return fmt.Sprintf("quota:%s:%s", clientID, at.UTC().Format("20060102"))
}

// Allow charges n exports to clientID for the current UTC day. A rejected
// request gives its units back.
func (s *StorageService) Allow(ctx context.Context, clientID string, n int) Usage {
	now := s.now().UTC()
	resetAt := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)

	if s.dailyLimit <= 0 {
		return Usage{Allowed: true, ResetAt: resetAt}
	}
	if n <= 0 {
		n = 1
	}

	key := s.QuotaKey(clientID, now)

	pipe := s.redisClient.TxPipeline()
	incr := pipe.IncrBy(ctx, key, int64(n))
	pipe.Expire(ctx, key, s.cacheDuration)
	if _, err := pipe.Exec(ctx); err != nil {
		s.logger.Warn("Quota check failed, allowing request",
			zap.String("client", clientID),
			zap.Error(err))
		return Usage{Allowed: true, Limit: s.dailyLimit, Remaining: s.dailyLimit, ResetAt: resetAt}
	}

	used := incr.Val()
	if used > int64(s.dailyLimit) {
		s.refund(ctx, key, n)
		return Usage{
			Allowed:   false,
			Used:      used - int64(n),
			Limit:     s.dailyLimit,
			Remaining: max(s.dailyLimit-int(used)+n, 0),
			ResetAt:   resetAt,
		}
	}

	return Usage{
		Allowed:   true,
		Used:      used,
		Limit:     s.dailyLimit,
		Remaining: s.dailyLimit - int(used),
		ResetAt:   resetAt,
	}
}

// Refund gives back n exports charged today by Allow, for requests that
// failed after the charge.
func (s *StorageService) Refund(ctx context.Context, clientID string, n int) {
	if s.dailyLimit <= 0 || n <= 0 {
		return
	}
	s.refund(ctx, s.QuotaKey(clientID, s.now()), n)
}

func (s *StorageService) refund(ctx context.Context, key string, n int) {
	if err := s.redisClient.DecrBy(ctx, key, int64(n)).Err(); err != nil {
		s.logger.Warn("Failed to refund quota", zap.String("key", key), zap.Error(err))
	}
}
