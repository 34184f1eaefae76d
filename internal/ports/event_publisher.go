package ports

import (
	"context"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
)

// EventPublisher — sink for order lifecycle events.
type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event string, order *domain.Order) error
	Close() error
}
