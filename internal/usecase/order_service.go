package usecase

import (
	"context"
	"time"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/internal/ports"
	"github.com/djglaser/spookymart-ecommerce/pkg/metrics"
)

var _ ports.OrderService = (*OrderService)(nil)

// OrderService — application logic for orders, transport-agnostic.
// Accepts submissions as-is: no catalog validation happens on the write
// path, the validation endpoints are a separate advisory surface.
type OrderService struct {
	store     ports.OrderStore
	publisher ports.EventPublisher
	log       ports.Logger
	now       func() time.Time
}

func NewOrderService(store ports.OrderStore, publisher ports.EventPublisher, log ports.Logger) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// CreateOrder — mint the order and persist it, then emit order_created.
func (s *OrderService) CreateOrder(ctx context.Context, in domain.NewOrderInput) (*domain.Order, error) {
	order := domain.NewOrder(in, s.now())

	if err := s.store.Put(ctx, order); err != nil {
		metrics.OrderOps.WithLabelValues("create", "error").Inc()
		s.log.Errorf(ctx, "store.Put failed order_id=%s err=%v", order.ID, err)
		return nil, err
	}

	s.publish(ctx, "order_created", order)
	metrics.OrderOps.WithLabelValues("create", "ok").Inc()
	s.log.Infof(ctx, "order created order_id=%s items=%d total=%.2f", order.ID, len(order.Items), order.TotalAmount)
	return order, nil
}

// GetOrder — order by id; (nil, nil) when the id is unknown.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		metrics.OrderOps.WithLabelValues("get", "error").Inc()
		s.log.Errorf(ctx, "store.Get failed order_id=%s err=%v", orderID, err)
		return nil, err
	}
	if order == nil {
		metrics.OrderOps.WithLabelValues("get", "not_found").Inc()
		return nil, nil
	}
	metrics.OrderOps.WithLabelValues("get", "ok").Inc()
	return order, nil
}

// ListOrders — newest-first page plus the total count.
func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, int, error) {
	orders, total, err := s.store.List(ctx, limit, offset)
	if err != nil {
		metrics.OrderOps.WithLabelValues("list", "error").Inc()
		s.log.Errorf(ctx, "store.List failed err=%v", err)
		return nil, 0, err
	}
	metrics.OrderOps.WithLabelValues("list", "ok").Inc()
	return orders, total, nil
}

// UpdateOrder — partial update. Fields absent from the update are kept;
// the stored total is not recomputed even when items change. Returns
// (nil, nil) for an unknown id.
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, upd domain.OrderUpdate) (*domain.Order, error) {
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		metrics.OrderOps.WithLabelValues("update", "error").Inc()
		s.log.Errorf(ctx, "store.Get failed order_id=%s err=%v", orderID, err)
		return nil, err
	}
	if order == nil {
		metrics.OrderOps.WithLabelValues("update", "not_found").Inc()
		return nil, nil
	}

	upd.Apply(order)

	if err := s.store.Put(ctx, order); err != nil {
		metrics.OrderOps.WithLabelValues("update", "error").Inc()
		s.log.Errorf(ctx, "store.Put failed order_id=%s err=%v", orderID, err)
		return nil, err
	}

	s.publish(ctx, "order_updated", order)
	metrics.OrderOps.WithLabelValues("update", "ok").Inc()
	s.log.Infof(ctx, "order updated order_id=%s status=%s", order.ID, order.Status)
	return order, nil
}

// CancelOrder — remove the order; reports whether it existed.
func (s *OrderService) CancelOrder(ctx context.Context, orderID string) (bool, error) {
	order, err := s.store.Get(ctx, orderID)
	if err != nil {
		metrics.OrderOps.WithLabelValues("cancel", "error").Inc()
		s.log.Errorf(ctx, "store.Get failed order_id=%s err=%v", orderID, err)
		return false, err
	}
	if order == nil {
		metrics.OrderOps.WithLabelValues("cancel", "not_found").Inc()
		return false, nil
	}

	existed, err := s.store.Delete(ctx, orderID)
	if err != nil {
		metrics.OrderOps.WithLabelValues("cancel", "error").Inc()
		s.log.Errorf(ctx, "store.Delete failed order_id=%s err=%v", orderID, err)
		return false, err
	}
	if existed {
		order.Status = domain.StatusCancelled
		s.publish(ctx, "order_cancelled", order)
	}

	metrics.OrderOps.WithLabelValues("cancel", "ok").Inc()
	s.log.Infof(ctx, "order cancelled order_id=%s", orderID)
	return existed, nil
}

// publish — event emission is best effort; a broker outage must not
// fail the request that already committed to the store.
func (s *OrderService) publish(ctx context.Context, event string, order *domain.Order) {
	if err := s.publisher.PublishOrderEvent(ctx, event, order); err != nil {
		s.log.Warnf(ctx, "event publish failed event=%s order_id=%s err=%v", event, order.ID, err)
	}
}
