package ports

import (
	"context"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
)

// Catalog — outbound contract to the product catalog service.
type Catalog interface {
	// Product — fetch a product by id; (nil, nil) when the catalog
	// reports not-found, error on any transport or protocol failure.
	Product(ctx context.Context, productID string) (*domain.Product, error)

	// Health — whether the catalog answered its health probe in time.
	// Never returns an error; all failure modes collapse to false.
	Health(ctx context.Context) bool

	// BaseURL — the configured catalog endpoint, for diagnostics.
	BaseURL() string
}
