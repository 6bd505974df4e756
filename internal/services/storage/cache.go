package storage

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phambaophuc/visa-photo/internal/services/compositor"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}

func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

// CropCacheKey hashes the photo bytes with the display size and mode. The
// photo itself is never written to Redis.
func (s *StorageService) CropCacheKey(image []byte, displayWidth, displayHeight float64, mode string) string {
	hash := md5.New()
	hash.Write(image)
	fmt.Fprintf(hash, "display_%.3f_%.3f_mode_%s", displayWidth, displayHeight, mode)
	return fmt.Sprintf("crop_cache:%x", hash.Sum(nil))
}

// GetCrop returns ok=false on a miss or on any Redis failure.
func (s *StorageService) GetCrop(ctx context.Context, key string) (compositor.CropRegion, bool) {
	data, err := s.GetFromCache(ctx, key)
	if err != nil {
		s.logger.Debug("Crop cache unavailable", zap.Error(err))
		return compositor.CropRegion{}, false
	}
	if data == nil {
		return compositor.CropRegion{}, false
	}

	var crop compositor.CropRegion
	if err := json.Unmarshal(data, &crop); err != nil {
		s.logger.Warn("Failed to unmarshal cached crop", zap.String("key", key), zap.Error(err))
		return compositor.CropRegion{}, false
	}
	return crop, true
}

func (s *StorageService) SetCrop(ctx context.Context, key string, crop compositor.CropRegion) {
	data, err := json.Marshal(crop)
	if err != nil {
		return
	}
	if err := s.SetCache(ctx, key, data); err != nil {
		s.logger.Debug("Failed to cache crop", zap.String("key", key), zap.Error(err))
	}
}

func (s *StorageService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"db_keys":     dbSize,
		"daily_limit": s.dailyLimit,
	}

	return stats, nil
}
