package ports

import (
	"context"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
)

// OrderService — application operations the HTTP layer depends on.
type OrderService interface {
	CreateOrder(ctx context.Context, in domain.NewOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, int, error)
	UpdateOrder(ctx context.Context, orderID string, upd domain.OrderUpdate) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID string) (bool, error)
}
