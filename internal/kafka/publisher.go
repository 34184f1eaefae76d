package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/internal/ports"
	"github.com/djglaser/spookymart-ecommerce/pkg/metrics"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// writer — minimal contract over kafka.Writer so tests can swap in a
// fake.
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// orderEvent — envelope written to the order events topic.
type orderEvent struct {
	Event     string        `json:"event"`
	OrderID   string        `json:"order_id"`
	Status    string        `json:"status"`
	Total     float64       `json:"total_amount"`
	Order     *domain.Order `json:"order"`
	EmittedAt time.Time     `json:"emitted_at"`
}

// Publisher — wrapper over kafka.Writer publishing order lifecycle
// events keyed by order id, so events for one order stay in partition
// order.
type Publisher struct {
	writer    writer
	topic     string
	log       ports.Logger
	closeOnce sync.Once
}

func NewPublisher(brokers []string, topic string, log ports.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &Publisher{writer: w, topic: topic, log: log}
}

func (p *Publisher) PublishOrderEvent(ctx context.Context, event string, order *domain.Order) error {
	payload, err := json.Marshal(orderEvent{
		Event:     event,
		OrderID:   order.ID,
		Status:    string(order.Status),
		Total:     order.TotalAmount,
		Order:     order,
		EmittedAt: time.Now().UTC(),
	})
	if err != nil {
		metrics.OrderEventsPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("marshal order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte(event)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		metrics.OrderEventsPublished.WithLabelValues(p.topic, "error").Inc()
		return fmt.Errorf("write order event: %w", err)
	}

	metrics.OrderEventsPublished.WithLabelValues(p.topic, "ok").Inc()
	p.log.Infof(ctx, "order event published topic=%s event=%s order_id=%s", p.topic, event, order.ID)
	return nil
}

// Close — closes the writer. Called on application shutdown.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

// Nop — publisher used when no brokers are configured. Events are
// dropped silently.
type Nop struct{}

var _ ports.EventPublisher = Nop{}

func (Nop) PublishOrderEvent(context.Context, string, *domain.Order) error { return nil }
func (Nop) Close() error                                                   { return nil }
