package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/phambaophuc/visa-photo/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

func (q *QueueService) StartWorker(ctx context.Context, workerID int) error {
	msgs, err := q.channel.Consume(
		q.queueName,                        // queue
		fmt.Sprintf("worker-%d", workerID), // consumer
		false,                              // auto-ack
		false,                              // exclusive
		false,                              // no-local
		false,                              // no-wait
		nil,                                // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	q.logger.Info("Worker started", zap.Int("worker_id", workerID))

	go func() {
		for {
			select {
			case <-ctx.Done():
				q.logger.Info("Worker stopping", zap.Int("worker_id", workerID))
				return
			case msg, ok := <-msgs:
				if !ok {
					q.logger.Warn("Message channel closed", zap.Int("worker_id", workerID))
					return
				}

				q.processMessage(msg, workerID)
			}
		}
	}()

	return nil
}

func (q *QueueService) processMessage(msg amqp.Delivery, workerID int) {
	var event models.PaymentEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil || event.ID == "" {
		q.rejected.Add(1)
		q.logger.Error("Failed to unmarshal payment event",
			zap.Error(err),
			zap.Int("worker_id", workerID))
		msg.Nack(false, false) // Don't requeue malformed messages
		return
	}

	q.fulfil(&event, workerID)

	if err := msg.Ack(false); err != nil {
		q.logger.Error("Failed to ack message",
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
}

// fulfil records the outcome of a payment. Access is not persisted anywhere;
// the log line is the fulfilment record.
func (q *QueueService) fulfil(event *models.PaymentEvent, workerID int) {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("object_id", event.ObjectID),
		zap.String("plan", event.Plan),
		zap.Int("worker_id", workerID),
	}

	switch event.Type {
	case models.EventCheckoutCompleted:
		q.logger.Info("Payment successful", fields...)
	case models.EventPaymentSucceeded:
		q.logger.Info("Payment intent succeeded", fields...)
	case models.EventPaymentFailed:
		q.logger.Warn("Payment failed", fields...)
	default:
		q.logger.Info("Unhandled payment event", append(fields, zap.String("type", event.Type))...)
	}
	q.fulfilled.Add(1)
}
