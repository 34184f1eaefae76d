package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus — lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderItem — one product reference with quantity and the unit price the
// customer saw at submission time.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Subtotal — quantity × unit price for this line.
func (i OrderItem) Subtotal() float64 { return float64(i.Quantity) * i.UnitPrice }

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// Order — an accepted order submission.
type Order struct {
	ID              string          `json:"id"`
	CustomerEmail   string          `json:"customer_email"`
	CustomerName    string          `json:"customer_name"`
	CustomerPhone   string          `json:"customer_phone"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Status          OrderStatus     `json:"status"`
	TotalAmount     float64         `json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewOrderInput — fields a client supplies on submission.
type NewOrderInput struct {
	CustomerEmail   string
	CustomerName    string
	CustomerPhone   string
	Items           []OrderItem
	ShippingAddress ShippingAddress
}

// NewOrder — builds an order from a submission: fresh uuid, pending
// status, creation time and the computed total. Items are taken as-is;
// no catalog check happens here.
func NewOrder(in NewOrderInput, now time.Time) *Order {
	o := &Order{
		ID:              uuid.New().String(),
		CustomerEmail:   in.CustomerEmail,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		Items:           in.Items,
		ShippingAddress: in.ShippingAddress,
		Status:          StatusPending,
		CreatedAt:       now.UTC(),
	}
	o.TotalAmount = o.Total()
	return o
}

// Total — sum of line subtotals.
func (o *Order) Total() float64 {
	var total float64
	for _, it := range o.Items {
		total += it.Subtotal()
	}
	return total
}

// OrderUpdate — partial update; nil fields are left untouched.
// The stored total is deliberately not recomputed when items change.
type OrderUpdate struct {
	CustomerEmail   *string          `json:"customer_email"`
	CustomerName    *string          `json:"customer_name"`
	CustomerPhone   *string          `json:"customer_phone"`
	Items           *[]OrderItem     `json:"items"`
	ShippingAddress *ShippingAddress `json:"shipping_address"`
	Status          *OrderStatus     `json:"status"`
}

// Apply — merges the supplied fields into the order.
func (u OrderUpdate) Apply(o *Order) {
	if u.CustomerEmail != nil {
		o.CustomerEmail = *u.CustomerEmail
	}
	if u.CustomerName != nil {
		o.CustomerName = *u.CustomerName
	}
	if u.CustomerPhone != nil {
		o.CustomerPhone = *u.CustomerPhone
	}
	if u.Items != nil {
		o.Items = append([]OrderItem(nil), (*u.Items)...)
	}
	if u.ShippingAddress != nil {
		o.ShippingAddress = *u.ShippingAddress
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
}

// Clone — deep copy, so store internals never leak mutable state.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if o.Items != nil {
		clone.Items = append([]OrderItem(nil), o.Items...)
	}
	return &clone
}
