package catalog

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
	"github.com/djglaser/spookymart-ecommerce/internal/ports"
)

const defaultBatchConcurrency = 8

// priceTolerance — allowed absolute difference between the submitted
// unit price and the catalog price (floating point slack).
const priceTolerance = 0.01

// productFetcher — the slice of the catalog the validator needs.
type productFetcher interface {
	Product(ctx context.Context, productID string) (*domain.Product, error)
}

// Validator — cross-checks order line items against the catalog:
// existence, active flag, stock level and price match. Stateless; every
// call builds fresh local structures.
type Validator struct {
	fetcher     productFetcher
	concurrency int
	log         ports.Logger
}

func NewValidator(fetcher productFetcher, concurrency int, log ports.Logger) *Validator {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	return &Validator{fetcher: fetcher, concurrency: concurrency, log: log}
}

// ProductsBatch — fetches one product per id occurrence (duplicates
// included) through a bounded worker group and joins on all of them.
// All-or-nothing: any catalog failure fails the whole batch with an
// error naming the failing product id; absent products are simply left
// out of the result map.
func (v *Validator) ProductsBatch(ctx context.Context, productIDs []string) (map[string]*domain.Product, error) {
	if len(productIDs) == 0 {
		return map[string]*domain.Product{}, nil
	}

	fetched := make([]*domain.Product, len(productIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)
	for i, id := range productIDs {
		g.Go(func() error {
			p, err := v.fetcher.Product(gctx, id)
			if err != nil {
				return fmt.Errorf("product %s: %w", id, err)
			}
			fetched[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		v.log.Errorf(ctx, "batch product fetch failed err=%v", err)
		return nil, err
	}

	products := make(map[string]*domain.Product, len(productIDs))
	for i, id := range productIDs {
		if fetched[i] != nil {
			products[id] = fetched[i]
		}
	}
	return products, nil
}

// CheckAvailability — short-circuit checks in fixed order: existence,
// active flag, stock level. Catalog errors propagate unchanged.
func (v *Validator) CheckAvailability(ctx context.Context, productID string, quantity int) (*domain.Availability, error) {
	product, err := v.fetcher.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product == nil {
		return &domain.Availability{
			Available: false,
			Stock:     0,
			Reason:    "Product not found",
		}, nil
	}

	if !product.IsActive {
		return &domain.Availability{
			Available: false,
			Stock:     product.Stock,
			Product:   product,
			Reason:    "Product is not active",
		}, nil
	}

	if product.Stock >= quantity {
		return &domain.Availability{
			Available: true,
			Stock:     product.Stock,
			Product:   product,
		}, nil
	}

	return &domain.Availability{
		Available: false,
		Stock:     product.Stock,
		Product:   product,
		Reason:    fmt.Sprintf("Insufficient stock (need %d, have %d)", quantity, product.Stock),
	}, nil
}

// ValidateItems — validates every line item in input order. Catalog
// outages abort the whole run with a single catalog error; business
// rejections (existence, stock, price) are collected as data.
//
// Entries are keyed by product id: a repeated id overwrites the earlier
// entry while the error list keeps one message per failing line item.
// The availability check deliberately re-fetches a product the batch
// already returned; the extra round trip is observable behavior.
func (v *Validator) ValidateItems(ctx context.Context, items []domain.OrderItem) domain.ValidationResult {
	b := newResultBuilder()

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}

	products, err := v.ProductsBatch(ctx, ids)
	if err != nil {
		b.fail(fmt.Sprintf("Catalog service error: %v", err))
		return b.result()
	}

	for _, item := range items {
		id := item.ProductID

		product, ok := products[id]
		if !ok {
			msg := fmt.Sprintf("Product %s not found", id)
			b.reject(id, msg, msg, nil)
			continue
		}

		availability, aerr := v.CheckAvailability(ctx, id, item.Quantity)
		if aerr != nil {
			v.log.Errorf(ctx, "availability check failed product_id=%s err=%v", id, aerr)
			b.fail(fmt.Sprintf("Catalog service error: %v", aerr))
			return b.result()
		}

		if !availability.Available {
			b.reject(id, availability.Reason, fmt.Sprintf("Product %s: %s", id, availability.Reason), product)
			continue
		}

		if math.Abs(item.UnitPrice-product.Price) > priceTolerance {
			reason := fmt.Sprintf("Price mismatch (expected %s, actual %s)",
				formatPrice(item.UnitPrice), formatPrice(product.Price))
			b.reject(id, reason, fmt.Sprintf("Product %s: %s", id, reason), product)
			continue
		}

		b.accept(id, product, availability.Stock)
	}

	return b.result()
}

// ReserveProducts — advisory reservation stub: validates the items and,
// when everything passes, mints a timestamp-derived reservation id with
// a zero-length expiry window. No inventory is mutated.
func (v *Validator) ReserveProducts(ctx context.Context, items []domain.OrderItem) domain.Reservation {
	validation := v.ValidateItems(ctx, items)

	if !validation.Valid {
		v.log.Warnf(ctx, "product reservation failed errors=%v", validation.Errors)
		return domain.Reservation{
			Success: false,
			Items:   validation.Items,
			Errors:  validation.Errors,
		}
	}

	now := time.Now().UTC().Truncate(time.Second)
	v.log.Infof(ctx, "products reserved items=%d", len(validation.Items))
	return domain.Reservation{
		Success:       true,
		ReservationID: "res_" + now.Format("20060102150405"),
		ExpiresAt:     &now,
		Items:         validation.Items,
	}
}

// formatPrice — shortest decimal form, the same way the amounts appear
// in the catalog payloads (10.50 prints as 10.5).
func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
