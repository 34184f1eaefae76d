package catalog

import "github.com/djglaser/spookymart-ecommerce/internal/domain"

// resultBuilder — accumulates per-product entries and the ordered error
// list for one validation run. Local to a single call; never shared
// across goroutines.
type resultBuilder struct {
	valid  bool
	items  map[string]domain.ItemValidation
	errors []string
}

func newResultBuilder() *resultBuilder {
	return &resultBuilder{
		valid:  true,
		items:  make(map[string]domain.ItemValidation),
		errors: []string{},
	}
}

// reject — record an invalid entry for the product and append its error
// message. A repeated product id overwrites the entry; the error list
// only grows.
func (b *resultBuilder) reject(productID, reason, message string, product *domain.Product) {
	b.valid = false
	b.items[productID] = domain.ItemValidation{
		Valid:   false,
		Reason:  reason,
		Product: product,
	}
	b.errors = append(b.errors, message)
}

// accept — record a valid entry carrying the fetched product and stock.
func (b *resultBuilder) accept(productID string, product *domain.Product, stock int) {
	b.items[productID] = domain.ItemValidation{
		Valid:          true,
		Product:        product,
		AvailableStock: stock,
	}
}

// fail — catalog-level failure: the run is invalid with this single
// message appended.
func (b *resultBuilder) fail(message string) {
	b.valid = false
	b.errors = append(b.errors, message)
}

func (b *resultBuilder) result() domain.ValidationResult {
	return domain.ValidationResult{
		Valid:  b.valid,
		Items:  b.items,
		Errors: b.errors,
	}
}
