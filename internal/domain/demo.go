package domain

import "time"

// DemoOrders — the seed records the service starts with so the read
// endpoints have something to show on a fresh instance.
func DemoOrders() []*Order {
	return []*Order{
		{
			ID:            "order-001",
			CustomerEmail: "john.doe@spookymart.com",
			CustomerName:  "John Doe",
			CustomerPhone: "555-0123",
			Items: []OrderItem{
				{ProductID: "prod-001", ProductName: "Vampire Costume Deluxe", Quantity: 1, UnitPrice: 49.99},
			},
			ShippingAddress: ShippingAddress{
				Street: "123 Halloween St", City: "Spookyville", State: "CA", ZipCode: "90210", Country: "USA",
			},
			Status:      StatusConfirmed,
			TotalAmount: 49.99,
			CreatedAt:   time.Date(2025, 11, 1, 20, 0, 0, 0, time.UTC),
		},
		{
			ID:            "order-002",
			CustomerEmail: "jane.smith@spookymart.com",
			CustomerName:  "Jane Smith",
			CustomerPhone: "555-0456",
			Items: []OrderItem{
				{ProductID: "prod-002", ProductName: "Spooky Jack-o'-Lantern", Quantity: 2, UnitPrice: 24.99},
				{ProductID: "prod-003", ProductName: "Witch Hat Classic", Quantity: 1, UnitPrice: 15.99},
			},
			ShippingAddress: ShippingAddress{
				Street: "456 Pumpkin Ave", City: "Ghosttown", State: "NY", ZipCode: "10001", Country: "USA",
			},
			Status:      StatusShipped,
			TotalAmount: 65.97,
			CreatedAt:   time.Date(2025, 11, 1, 19, 30, 0, 0, time.UTC),
		},
		{
			ID:            "order-003",
			CustomerEmail: "bob.wilson@spookymart.com",
			CustomerName:  "Bob Wilson",
			CustomerPhone: "555-0789",
			Items: []OrderItem{
				{ProductID: "prod-004", ProductName: "Halloween Candy Mix", Quantity: 3, UnitPrice: 12.99},
			},
			ShippingAddress: ShippingAddress{
				Street: "789 Candy Lane", City: "Sweetville", State: "TX", ZipCode: "75001", Country: "USA",
			},
			Status:      StatusDelivered,
			TotalAmount: 38.97,
			CreatedAt:   time.Date(2025, 11, 1, 18, 15, 0, 0, time.UTC),
		},
	}
}
