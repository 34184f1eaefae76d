package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/internal/ports/mocks"
	"github.com/djglaser/spookymart-ecommerce/internal/usecase"
)

const orderID = "order-1"

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newService(t *testing.T) (*usecase.OrderService, *mocks.MockOrderStore, *mocks.MockEventPublisher) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockOrderStore(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	return usecase.NewOrderService(store, publisher, noopLogger{}), store, publisher
}

func submission() domain.NewOrderInput {
	return domain.NewOrderInput{
		CustomerEmail: "jane@example.com",
		CustomerName:  "Jane Smith",
		Items: []domain.OrderItem{
			{ProductID: "p1", ProductName: "Widget", Quantity: 2, UnitPrice: 9.99},
			{ProductID: "p2", ProductName: "Gadget", Quantity: 1, UnitPrice: 24.99},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	svc, store, publisher := newService(t)

	var saved *domain.Order
	gomock.InOrder(
		store.EXPECT().Put(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *domain.Order) error {
				saved = o
				return nil
			}),
		publisher.EXPECT().PublishOrderEvent(gomock.Any(), "order_created", gomock.Any()).Return(nil),
	)

	got, err := svc.CreateOrder(context.Background(), submission())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if got.ID == "" || got != saved {
		t.Fatalf("created order must be the persisted one: %+v", got)
	}
	if got.Status != domain.StatusPending {
		t.Fatalf("new orders start pending, got %s", got.Status)
	}
	if got.TotalAmount != 2*9.99+24.99 {
		t.Fatalf("wrong computed total: %v", got.TotalAmount)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("created_at must be set")
	}
}

func TestCreateOrder_StoreError(t *testing.T) {
	svc, store, _ := newService(t)

	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	if _, err := svc.CreateOrder(context.Background(), submission()); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestCreateOrder_PublishFailureIsNotFatal(t *testing.T) {
	svc, store, publisher := newService(t)

	store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	publisher.EXPECT().PublishOrderEvent(gomock.Any(), "order_created", gomock.Any()).
		Return(errors.New("broker down"))

	if _, err := svc.CreateOrder(context.Background(), submission()); err != nil {
		t.Fatalf("a broker outage must not fail the request: %v", err)
	}
}

func TestGetOrder(t *testing.T) {
	svc, store, _ := newService(t)

	o := &domain.Order{ID: orderID}
	store.EXPECT().Get(gomock.Any(), orderID).Return(o, nil)

	got, err := svc.GetOrder(context.Background(), orderID)
	if err != nil || got == nil || got.ID != orderID {
		t.Fatalf("expected hit, got err=%v order=%+v", err, got)
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	svc, store, _ := newService(t)

	store.EXPECT().Get(gomock.Any(), orderID).Return(nil, nil)

	got, err := svc.GetOrder(context.Background(), orderID)
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil), got %v err=%v", got, err)
	}
}

func TestListOrders_Proxy(t *testing.T) {
	svc, store, _ := newService(t)

	page := []*domain.Order{{ID: "a"}, {ID: "b"}}
	store.EXPECT().List(gomock.Any(), 2, 4).Return(page, 7, nil)

	got, total, err := svc.ListOrders(context.Background(), 2, 4)
	if err != nil || total != 7 || len(got) != 2 {
		t.Fatalf("expected pass-through, got %v total=%d err=%v", got, total, err)
	}
}

func TestUpdateOrder(t *testing.T) {
	svc, store, publisher := newService(t)

	stored := &domain.Order{
		ID:          orderID,
		Status:      domain.StatusPending,
		Items:       []domain.OrderItem{{ProductID: "p1", Quantity: 2, UnitPrice: 9.99}},
		TotalAmount: 19.98,
	}
	var saved *domain.Order
	gomock.InOrder(
		store.EXPECT().Get(gomock.Any(), orderID).Return(stored, nil),
		store.EXPECT().Put(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *domain.Order) error {
				saved = o
				return nil
			}),
		publisher.EXPECT().PublishOrderEvent(gomock.Any(), "order_updated", gomock.Any()).Return(nil),
	)

	status := domain.StatusShipped
	newItems := []domain.OrderItem{{ProductID: "p1", Quantity: 5, UnitPrice: 9.99}}
	got, err := svc.UpdateOrder(context.Background(), orderID, domain.OrderUpdate{
		Status: &status,
		Items:  &newItems,
	})
	if err != nil || got == nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Status != domain.StatusShipped || len(got.Items) != 1 || got.Items[0].Quantity != 5 {
		t.Fatalf("update not applied: %+v", got)
	}
	// the stored total stays as submitted even though the items changed
	if got.TotalAmount != 19.98 {
		t.Fatalf("total must not be recomputed on update: %v", got.TotalAmount)
	}
	if saved != got {
		t.Fatalf("persisted order must be the returned one")
	}
}

func TestUpdateOrder_NotFound(t *testing.T) {
	svc, store, _ := newService(t)

	store.EXPECT().Get(gomock.Any(), orderID).Return(nil, nil)

	status := domain.StatusShipped
	got, err := svc.UpdateOrder(context.Background(), orderID, domain.OrderUpdate{Status: &status})
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil), got %v err=%v", got, err)
	}
}

func TestCancelOrder(t *testing.T) {
	svc, store, publisher := newService(t)

	stored := &domain.Order{ID: orderID, Status: domain.StatusPending}
	gomock.InOrder(
		store.EXPECT().Get(gomock.Any(), orderID).Return(stored, nil),
		store.EXPECT().Delete(gomock.Any(), orderID).Return(true, nil),
		publisher.EXPECT().PublishOrderEvent(gomock.Any(), "order_cancelled", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, o *domain.Order) error {
				if o.Status != domain.StatusCancelled {
					t.Errorf("event must carry the cancelled status, got %s", o.Status)
				}
				return nil
			}),
	)

	existed, err := svc.CancelOrder(context.Background(), orderID)
	if err != nil || !existed {
		t.Fatalf("expected successful cancel, existed=%v err=%v", existed, err)
	}
}

func TestCancelOrder_NotFound(t *testing.T) {
	svc, store, _ := newService(t)

	store.EXPECT().Get(gomock.Any(), orderID).Return(nil, nil)

	existed, err := svc.CancelOrder(context.Background(), orderID)
	if err != nil || existed {
		t.Fatalf("expected miss, existed=%v err=%v", existed, err)
	}
}

func TestCancelOrder_StoreError(t *testing.T) {
	svc, store, _ := newService(t)

	gomock.InOrder(
		store.EXPECT().Get(gomock.Any(), orderID).Return(&domain.Order{ID: orderID}, nil),
		store.EXPECT().Delete(gomock.Any(), orderID).Return(false, errors.New("boom")),
	)

	if _, err := svc.CancelOrder(context.Background(), orderID); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}
