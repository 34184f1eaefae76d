//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/djglaser/spookymart-ecommerce/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeOrder — ready-to-store order with unique ids; opts mutate it.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	id := "ord-" + UniqSuffix()
	now := time.Now().UTC().Truncate(time.Second)

	o := domain.Order{
		ID:            id,
		CustomerEmail: "john@example.com",
		CustomerName:  "John Smith",
		CustomerPhone: "555-0100",
		Items: []domain.OrderItem{
			{ProductID: "prod-" + UniqSuffix(), ProductName: "Vampire Costume", Quantity: 1, UnitPrice: 49.99},
			{ProductID: "prod-" + UniqSuffix(), ProductName: "Witch Hat", Quantity: 2, UnitPrice: 15.99},
		},
		ShippingAddress: domain.ShippingAddress{
			Street:  "123 Halloween St",
			City:    "Spookyville",
			State:   "CA",
			ZipCode: "90210",
			Country: "USA",
		},
		Status:    domain.StatusPending,
		CreatedAt: now,
	}
	o.TotalAmount = o.Total()

	for _, opt := range opts {
		opt(&o)
	}
	return o
}
