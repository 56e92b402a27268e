package domain

import "time"

// DiscountType selects what a discount applies to.
type DiscountType string

const (
	DiscountProduct  DiscountType = "Product"
	DiscountBrand    DiscountType = "Brand"
	DiscountCategory DiscountType = "Category"
)

// Discount is a full discount record as returned by /discounts/{id}.
// Exactly one of ProductID, BrandID, CategoryID is set, matching Type.
type Discount struct {
	ID           string       `json:"id"`
	Type         DiscountType `json:"type"`
	ProductID    string       `json:"productId,omitempty"`
	ProductName  string       `json:"productName,omitempty"`
	BrandID      string       `json:"brandId,omitempty"`
	BrandName    string       `json:"brandName,omitempty"`
	CategoryID   string       `json:"categoryId,omitempty"`
	CategoryName string       `json:"categoryName,omitempty"`
	TargetName   string       `json:"targetName,omitempty"`
	Percent      float64      `json:"percent"`
	StartDate    time.Time    `json:"startDate"`
	EndDate      *time.Time   `json:"endDate,omitempty"`
	IsActive     bool         `json:"isActive"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}

// DiscountListItem is the trimmed row shape returned by the /discounts list.
type DiscountListItem struct {
	ID         string       `json:"id"`
	Type       DiscountType `json:"type"`
	TargetName string       `json:"targetName"`
	Percent    float64      `json:"percent"`
	StartDate  time.Time    `json:"startDate"`
	EndDate    *time.Time   `json:"endDate,omitempty"`
	IsActive   bool         `json:"isActive"`
}
