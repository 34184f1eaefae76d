package ports

import (
	"context"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
)

// OrderStore — keyed order storage injected into the service layer.
// Implementations must be safe for concurrent use and must return copies
// of stored entities.
type OrderStore interface {
	// Get — order by id; (nil, nil) when absent.
	Get(ctx context.Context, orderID string) (*domain.Order, error)

	// Put — insert or replace the order.
	Put(ctx context.Context, order *domain.Order) error

	// Delete — remove the order; reports whether it existed.
	Delete(ctx context.Context, orderID string) (bool, error)

	// List — newest-first page of orders plus the total count.
	List(ctx context.Context, limit, offset int) ([]*domain.Order, int, error)
}
