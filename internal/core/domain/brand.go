package domain

import "time"

// Brand is a product brand.
type Brand struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	DiscountPercent *float64  `json:"discountPercent,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
