//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	ikafka "github.com/djglaser/spookymart-ecommerce/internal/kafka"
	"github.com/djglaser/spookymart-ecommerce/internal/testutil"
	"github.com/djglaser/spookymart-ecommerce/pkg/logger"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func safe(t *testing.T) string { return reUnsafe.ReplaceAllString(t.Name(), "-") }

func TestPublisher_RoundTrip_TC(t *testing.T) {
	// long deadline only for the container start
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	kf, stopKF, err := testutil.StartKafkaTC(ctxStart, "order-events-itc")
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopKF(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	topic := testutil.UniqueTopic(kf.BaseTopic + "-" + safe(t))
	require.NoError(t, testutil.EnsureTopic(ctx, kf.Brokers[0], topic))

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	pub := ikafka.NewPublisher(kf.Brokers, topic, logg)
	t.Cleanup(func() { _ = pub.Close() })

	order := testutil.MakeOrder()
	require.NoError(t, pub.PublishOrderEvent(ctx, "order_created", &order))

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kf.Brokers,
		Topic:       topic,
		StartOffset: kafka.FirstOffset,
	})
	t.Cleanup(func() { _ = r.Close() })

	msg, err := r.ReadMessage(ctx)
	require.NoError(t, err)
	require.Equal(t, order.ID, string(msg.Key))

	var ev struct {
		Event   string        `json:"event"`
		OrderID string        `json:"order_id"`
		Status  string        `json:"status"`
		Order   *domain.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	require.Equal(t, "order_created", ev.Event)
	require.Equal(t, order.ID, ev.OrderID)
	require.Equal(t, string(domain.StatusPending), ev.Status)
	require.NotNil(t, ev.Order)
	require.Equal(t, order.Items, ev.Order.Items)
}
