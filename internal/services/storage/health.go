package storage

import (
	"context"
)

// HealthCheck pings Redis
func (s *StorageService) HealthCheck(ctx context.Context) string {
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return "unhealthy: " + err.Error()
	}
	return "healthy"
}
