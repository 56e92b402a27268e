package domain

import "time"

// Category is a catalog category, optionally nested under a parent.
type Category struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	ParentID        string    `json:"parentId,omitempty"`
	ParentName      string    `json:"parentName,omitempty"`
	DiscountPercent *float64  `json:"discountPercent,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}
