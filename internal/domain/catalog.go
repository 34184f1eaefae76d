package domain

import "time"

// Product — catalog record as the product service reports it.
// Never owned or cached here; fetched fresh on every validation.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	IsActive bool    `json:"isActive"`
}

// Availability — outcome of a single product availability check.
// Reason is empty exactly when Available is true.
type Availability struct {
	Available bool     `json:"available"`
	Stock     int      `json:"stock"`
	Product   *Product `json:"product"`
	Reason    string   `json:"reason,omitempty"`
}

// ItemValidation — per-product validation entry.
type ItemValidation struct {
	Valid          bool     `json:"valid"`
	Reason         string   `json:"reason,omitempty"`
	Product        *Product `json:"product,omitempty"`
	AvailableStock int      `json:"available_stock,omitempty"`
}

// ValidationResult — aggregate outcome for an item set. Items is keyed
// by product id, so repeated ids collapse to one entry while Errors
// keeps one message per failing line item in input order.
type ValidationResult struct {
	Valid  bool                      `json:"valid"`
	Items  map[string]ItemValidation `json:"items"`
	Errors []string                  `json:"errors"`
}

// Reservation — advisory token asserting that validation passed at a
// point in time. Carries no locking effect; ExpiresAt equals the
// creation time, so the window is zero.
type Reservation struct {
	Success       bool                      `json:"success"`
	ReservationID string                    `json:"reservation_id,omitempty"`
	ExpiresAt     *time.Time                `json:"expires_at,omitempty"`
	Items         map[string]ItemValidation `json:"items"`
	Errors        []string                  `json:"errors,omitempty"`
}
