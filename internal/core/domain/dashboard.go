package domain

import "time"

// DashboardStatistics aggregates store-wide counters for the dashboard.
type DashboardStatistics struct {
	TotalProducts    int     `json:"totalProducts"`
	ActiveProducts   int     `json:"activeProducts"`
	TotalOrders      int     `json:"totalOrders"`
	OrdersThisMonth  int     `json:"ordersThisMonth"`
	TotalCustomers   int     `json:"totalCustomers"`
	TotalCategories  int     `json:"totalCategories"`
	TotalBrands      int     `json:"totalBrands"`
	TotalRevenue     float64 `json:"totalRevenue"`
	RevenueCurrency  string  `json:"revenueCurrency"`
	RevenueThisMonth float64 `json:"revenueThisMonth"`
	PendingOrders    int     `json:"pendingOrders"`
	ProcessingOrders int     `json:"processingOrders"`
	DeliveredOrders  int     `json:"deliveredOrders"`
}

// ProductListItem is the compact product row embedded in the dashboard.
type ProductListItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	SKU          string  `json:"sku"`
	CategoryName string  `json:"categoryName"`
	BrandName    string  `json:"brandName"`
	Stock        int     `json:"stock"`
	IsActive     bool    `json:"isActive"`
	ImageURL     string  `json:"imageUrl,omitempty"`
}

// OrderSummary is a recent-order row embedded in the dashboard.
type OrderSummary struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customerId"`
	CustomerName  string    `json:"customerName"`
	CustomerEmail string    `json:"customerEmail"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency"`
	ItemCount     int       `json:"itemCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Dashboard is the full dashboard payload. Unlike the resource endpoints it
// is served without the {isSuccess, value, error} envelope.
type Dashboard struct {
	Statistics     DashboardStatistics `json:"statistics"`
	RecentProducts []ProductListItem   `json:"recentProducts"`
	RecentOrders   []OrderSummary      `json:"recentOrders"`
}

// ChartPoint is a single datapoint of the dashboard revenue chart.
type ChartPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}
