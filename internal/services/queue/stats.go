package queue

import "fmt"

func (q *QueueService) GetQueueStats() (map[string]interface{}, error) {
	stats := map[string]interface{}{
		"name":      q.queueName,
		"published": q.published.Load(),
		"fulfilled": q.fulfilled.Load(),
		"rejected":  q.rejected.Load(),
	}

	if q.channel == nil {
		return stats, ErrNotConnected
	}

	queueInfo, err := q.channel.QueueInspect(q.queueName)
	if err != nil {
		return stats, fmt.Errorf("failed to inspect queue: %w", err)
	}

	stats["messages"] = queueInfo.Messages
	stats["consumers"] = queueInfo.Consumers

	return stats, nil
}

// HealthCheck checks if RabbitMQ is available
func (q *QueueService) HealthCheck() string {
	if q.conn == nil || q.conn.IsClosed() {
		return "unhealthy: connection closed"
	}

	if q.channel == nil {
		return "unhealthy: channel not available"
	}

	return "healthy"
}
