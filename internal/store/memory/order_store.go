package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/internal/ports"
	"github.com/djglaser/spookymart-ecommerce/pkg/metrics"
)

var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore — mutex-guarded map of orders. Reads and writes operate on
// deep copies so callers can never alias the stored entities.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*domain.Order)}
}

func (s *OrderStore) Get(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[orderID]
	if !ok {
		metrics.StoreOps.WithLabelValues("miss").Inc()
		return nil, nil
	}
	metrics.StoreOps.WithLabelValues("hit").Inc()
	return order.Clone(), nil
}

func (s *OrderStore) Put(_ context.Context, order *domain.Order) error {
	if order == nil || order.ID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[order.ID] = order.Clone()
	metrics.StoreOps.WithLabelValues("put").Inc()
	metrics.StoreSize.Set(float64(len(s.orders)))
	return nil
}

func (s *OrderStore) Delete(_ context.Context, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[orderID]; !ok {
		metrics.StoreOps.WithLabelValues("miss").Inc()
		return false, nil
	}
	delete(s.orders, orderID)
	metrics.StoreOps.WithLabelValues("delete").Inc()
	metrics.StoreSize.Set(float64(len(s.orders)))
	return true, nil
}

func (s *OrderStore) List(_ context.Context, limit, offset int) ([]*domain.Order, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*domain.Order, 0, len(s.orders))
	for _, order := range s.orders {
		all = append(all, order)
	}
	// newest first; id breaks ties so pagination stays stable
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)
	if offset >= total {
		return []*domain.Order{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}

	page := make([]*domain.Order, 0, end-offset)
	for _, order := range all[offset:end] {
		page = append(page, order.Clone())
	}
	return page, total, nil
}

// Seed — bulk load used at startup for demo data.
func (s *OrderStore) Seed(ctx context.Context, orders []*domain.Order) error {
	for _, order := range orders {
		if err := s.Put(ctx, order); err != nil {
			return err
		}
	}
	return nil
}
