package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/phambaophuc/visa-photo/internal/models"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeAcknowledger struct {
	acked    int
	nacked   int
	requeued bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.acked++
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple bool, requeue bool) error {
	f.nacked++
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

func newObservedQueue() (*QueueService, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &QueueService{logger: zap.New(core), queueName: defaultQueueName}, logs
}

func delivery(t *testing.T, ack amqp.Acknowledger, v any) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}
}

func TestProcessMessageFulfilsCheckout(t *testing.T) {
	q, logs := newObservedQueue()
	ack := &fakeAcknowledger{}

	q.processMessage(delivery(t, ack, models.PaymentEvent{
		ID:       "evt_1",
		Type:     models.EventCheckoutCompleted,
		ObjectID: "cs_test_1",
		Plan:     "pro",
		Created:  time.Unix(1700000000, 0).UTC(),
	}), 1)

	assert.Equal(t, 1, ack.acked)
	assert.Zero(t, ack.nacked)
	assert.Equal(t, int64(1), q.fulfilled.Load())

	entries := logs.FilterMessage("Payment successful").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "cs_test_1", entries[0].ContextMap()["object_id"])
	assert.Equal(t, "pro", entries[0].ContextMap()["plan"])
}

func TestProcessMessageLogsFailedPayment(t *testing.T) {
	q, logs := newObservedQueue()
	ack := &fakeAcknowledger{}

	q.processMessage(delivery(t, ack, models.PaymentEvent{ID: "evt_2", Type: models.EventPaymentFailed}), 2)

	assert.Equal(t, 1, ack.acked)
	assert.Equal(t, 1, logs.FilterMessage("Payment failed").FilterField(zap.Int("worker_id", 2)).Len())
}

func TestProcessMessageDropsMalformed(t *testing.T) {
	q, _ := newObservedQueue()

	ack := &fakeAcknowledger{}
	q.processMessage(amqp.Delivery{Acknowledger: ack, Body: []byte("{not json")}, 1)
	assert.Equal(t, 1, ack.nacked)
	assert.False(t, ack.requeued)
	assert.Zero(t, ack.acked)

	ack = &fakeAcknowledger{}
	q.processMessage(delivery(t, ack, map[string]string{"type": "checkout.session.completed"}), 1)
	assert.Equal(t, 1, ack.nacked, "event without id")

	assert.Equal(t, int64(2), q.rejected.Load())
	assert.Zero(t, q.fulfilled.Load())
}

func TestPublishWithoutChannel(t *testing.T) {
	q, _ := newObservedQueue()
	err := q.PublishPaymentEvent(t.Context(), &models.PaymentEvent{ID: "evt_1"})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestStatsAndHealthWithoutConnection(t *testing.T) {
	q, _ := newObservedQueue()

	stats, err := q.GetQueueStats()
	assert.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, defaultQueueName, stats["name"])
	assert.Equal(t, "unhealthy: connection closed", q.HealthCheck())
}
