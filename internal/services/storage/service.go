package storage

import (
	"time"

	"github.com/phambaophuc/visa-photo/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type StorageService struct {
	redisClient   *redis.Client
	logger        *zap.Logger
	dailyLimit    int
	cacheDuration time.Duration
	now           func() time.Time
}

// NewStorageService does not dial; go-redis connects lazily on the first command.
func NewStorageService(cfg config.RedisConfig, dailyLimit int, logger *zap.Logger) *StorageService {
	redisClient := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 2 * time.Second,
		ReadTimeout: time.Second,
	})

	return newStorageService(redisClient, dailyLimit, logger)
}

func newStorageService(client *redis.Client, dailyLimit int, logger *zap.Logger) *StorageService {
	return &StorageService{
		redisClient:   client,
		logger:        logger,
		dailyLimit:    dailyLimit,
		cacheDuration: 24 * time.Hour,
		now:           time.Now,
	}
}

func (s *StorageService) Close() error {
	return s.redisClient.Close()
}
