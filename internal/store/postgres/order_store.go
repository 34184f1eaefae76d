package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/internal/ports"
	"github.com/djglaser/spookymart-ecommerce/pkg/metrics"
)

var _ ports.OrderStore = (*OrderStore)(nil)

// OrderStore — Postgres-backed order storage (pgxpool).
// Orders live in two tables: the order row with inlined shipping address
// columns, and one row per line item.
type OrderStore struct {
	pool *pgxpool.Pool
}

func NewOrderStore(pool *pgxpool.Pool) *OrderStore { return &OrderStore{pool: pool} }

// Put — transactional upsert: the order row is upserted by id, the item
// list is replaced wholesale.
func (s *OrderStore) Put(ctx context.Context, order *domain.Order) error {
	if order == nil || order.ID == "" {
		return errors.New("order id is required")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// Rollback after Commit returns ErrTxClosed, which is fine.
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	if _, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, customer_email, customer_name, customer_phone, status, total_amount,
			ship_street, ship_city, ship_state, ship_zip, ship_country, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			customer_email = EXCLUDED.customer_email,
			customer_name = EXCLUDED.customer_name,
			customer_phone = EXCLUDED.customer_phone,
			status = EXCLUDED.status,
			total_amount = EXCLUDED.total_amount,
			ship_street = EXCLUDED.ship_street,
			ship_city = EXCLUDED.ship_city,
			ship_state = EXCLUDED.ship_state,
			ship_zip = EXCLUDED.ship_zip,
			ship_country = EXCLUDED.ship_country,
			created_at = EXCLUDED.created_at
	`,
		order.ID, order.CustomerEmail, order.CustomerName, order.CustomerPhone,
		string(order.Status), order.TotalAmount,
		order.ShippingAddress.Street, order.ShippingAddress.City, order.ShippingAddress.State,
		order.ShippingAddress.ZipCode, order.ShippingAddress.Country, order.CreatedAt,
	); err != nil {
		return fmt.Errorf("upsert order: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}
	if len(order.Items) > 0 {
		if err = copyItems(ctx, tx, order.ID, order.Items); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	metrics.StoreOps.WithLabelValues("put").Inc()
	return nil
}

// Get — order by id; (nil, nil) when absent.
func (s *OrderStore) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	var (
		order  domain.Order
		status string
	)

	err := s.pool.QueryRow(ctx, `
		SELECT id, customer_email, customer_name, customer_phone, status, total_amount,
			ship_street, ship_city, ship_state, ship_zip, ship_country, created_at
		FROM orders WHERE id = $1
	`, orderID).Scan(
		&order.ID, &order.CustomerEmail, &order.CustomerName, &order.CustomerPhone,
		&status, &order.TotalAmount,
		&order.ShippingAddress.Street, &order.ShippingAddress.City, &order.ShippingAddress.State,
		&order.ShippingAddress.ZipCode, &order.ShippingAddress.Country, &order.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		metrics.StoreOps.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	rows, err := s.pool.Query(ctx, `
		SELECT product_id, product_name, quantity, unit_price
		FROM order_items WHERE order_id = $1 ORDER BY position
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("items rows: %w", err)
	}

	metrics.StoreOps.WithLabelValues("hit").Inc()
	return &order, nil
}

// Delete — remove the order; items go with it via ON DELETE CASCADE.
func (s *OrderStore) Delete(ctx context.Context, orderID string) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		metrics.StoreOps.WithLabelValues("miss").Inc()
		return false, nil
	}
	metrics.StoreOps.WithLabelValues("delete").Inc()
	return true, nil
}

// List — newest-first page plus the total count. Two queries for the
// page (order rows, then items for all ids) and one for the count.
func (s *OrderStore) List(ctx context.Context, limit, offset int) ([]*domain.Order, int, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, customer_email, customer_name, customer_phone, status, total_amount,
			ship_street, ship_city, ship_state, ship_zip, ship_country, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, limit)
	byID := make(map[string]*domain.Order, limit)
	ids := make([]string, 0, limit)

	for rows.Next() {
		order := &domain.Order{}
		var status string
		if err := rows.Scan(
			&order.ID, &order.CustomerEmail, &order.CustomerName, &order.CustomerPhone,
			&status, &order.TotalAmount,
			&order.ShippingAddress.Street, &order.ShippingAddress.City, &order.ShippingAddress.State,
			&order.ShippingAddress.ZipCode, &order.ShippingAddress.Country, &order.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("orders rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	iRows, err := s.pool.Query(ctx, `
		SELECT order_id, product_id, product_name, quantity, unit_price
		FROM order_items
		WHERE order_id = ANY($1::text[])
		ORDER BY order_id, position
	`, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("select items: %w", err)
	}
	defer iRows.Close()

	for iRows.Next() {
		var (
			orderID string
			item    domain.OrderItem
		)
		if err := iRows.Scan(&orderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		if order := byID[orderID]; order != nil {
			order.Items = append(order.Items, item)
		}
	}
	if err := iRows.Err(); err != nil {
		return nil, 0, fmt.Errorf("items rows: %w", err)
	}

	return orders, total, nil
}

// Seed — load demo orders, skipping ids that already exist so restarts
// do not clobber user edits.
func (s *OrderStore) Seed(ctx context.Context, orders []*domain.Order) error {
	for _, order := range orders {
		existing, err := s.Get(ctx, order.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.Put(ctx, order); err != nil {
			return err
		}
	}
	return nil
}

// copyItems — bulk insert via COPY, faster than a per-row INSERT loop.
func copyItems(ctx context.Context, tx pgx.Tx, orderID string, items []domain.OrderItem) error {
	rows := make([][]any, 0, len(items))
	for i, item := range items {
		rows = append(rows, []any{orderID, i, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "position", "product_id", "product_name", "quantity", "unit_price"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy items: %w", err)
	}
	return nil
}
