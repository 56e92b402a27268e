package fakeapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/storekit/backoffice/internal/core/domain"
)

func (s *Server) handleListProducts(c echo.Context) error {
	search := strings.ToLower(c.QueryParam("searchTerm"))
	pageNum, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	s.mu.Lock()
	items := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		items = append(items, p)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	rows, info := page(items, pageNum, pageSize)

	return c.JSON(http.StatusOK, pagedResponse{
		response: response{IsSuccess: true, Value: rows},
		PageInfo: info,
	})
}

func (s *Server) handleGetProduct(c echo.Context) error {
	s.mu.Lock()
	p, found := s.products[c.Param("id")]
	s.mu.Unlock()
	if !found {
		return fail(c, http.StatusNotFound, domain.ErrorTypeFailure, "NotFound", "product not found")
	}
	return ok(c, http.StatusOK, p)
}

type productPayload struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	SKU         string  `json:"sku"`
	CategoryID  string  `json:"categoryId"`
	BrandID     string  `json:"brandId"`
	VATRate     float64 `json:"vatRate"`
	Stock       int     `json:"stock"`
}

func (s *Server) handleCreateProduct(c echo.Context) error {
	var req productPayload
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, domain.ErrorTypeValidation, "InvalidPayload", "invalid payload")
	}
	if req.Name == "" || req.SKU == "" {
		return fail(c, http.StatusBadRequest, domain.ErrorTypeValidation, "MissingFields", "name and sku are required")
	}

	s.mu.Lock()
	p := domain.Product{
		ID:         s.nextIDLocked("p"),
		Name:       req.Name,
		Price:      req.Price,
		Currency:   req.Currency,
		SKU:        req.SKU,
		CategoryID: req.CategoryID,
		BrandID:    req.BrandID,
		VATRate:    req.VATRate,
		Stock:      req.Stock,
		IsActive:   true,
		CreatedAt:  s.now().UTC(),
	}
	p.Description = req.Description
	s.products[p.ID] = p
	s.mu.Unlock()

	return ok(c, http.StatusCreated, p)
}

func (s *Server) handleUpdateProduct(c echo.Context) error {
	var req productPayload
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, domain.ErrorTypeValidation, "InvalidPayload", "invalid payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.products[c.Param("id")]
	if !found {
		return fail(c, http.StatusNotFound, domain.ErrorTypeFailure, "NotFound", "product not found")
	}
	now := s.now().UTC()
	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.CategoryID = req.CategoryID
	p.BrandID = req.BrandID
	p.VATRate = req.VATRate
	p.Stock = req.Stock
	p.UpdatedAt = &now
	s.products[p.ID] = p
	return ok(c, http.StatusOK, p)
}

func (s *Server) handleDeleteProduct(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.products[c.Param("id")]; !found {
		return fail(c, http.StatusNotFound, domain.ErrorTypeFailure, "NotFound", "product not found")
	}
	delete(s.products, c.Param("id"))
	return ok(c, http.StatusOK, nil)
}

func (s *Server) handleUpdatePrice(c echo.Context) error {
	var req struct {
		NewPrice float64 `json:"newPrice"`
	}
	if err := c.Bind(&req); err != nil || req.NewPrice <= 0 {
		return fail(c, http.StatusBadRequest, domain.ErrorTypeValidation, "InvalidPrice", "newPrice must be greater than zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.products[c.Param("id")]
	if !found {
		return fail(c, http.StatusNotFound, domain.ErrorTypeFailure, "NotFound", "product not found")
	}
	p.Price = req.NewPrice
	s.products[p.ID] = p
	return ok(c, http.StatusOK, nil)
}

func (s *Server) handleUpdateStock(c echo.Context) error {
	var req struct {
		Quantity  int `json:"quantity"`
		Operation int `json:"operation"`
	}
	if err := c.Bind(&req); err != nil || req.Quantity <= 0 {
		return fail(c, http.StatusBadRequest, domain.ErrorTypeValidation, "InvalidQuantity", "quantity must be greater than zero")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p, found := s.products[c.Param("id")]
	if !found {
		return fail(c, http.StatusNotFound, domain.ErrorTypeFailure, "NotFound", "product not found")
	}
	switch domain.StockOperation(req.Operation) {
	case domain.StockIncrease:
		p.Stock += req.Quantity
	case domain.StockDecrease:
		if req.Quantity > p.Stock {
			return fail(c, http.StatusUnprocessableEntity, domain.ErrorTypeFailure, "InsufficientStock", "not enough stock")
		}
		p.Stock -= req.Quantity
	default:
		return fail(c, http.StatusBadRequest, domain.ErrorTypeValidation, "InvalidOperation", "operation must be 1 (increase) or 2 (decrease)")
	}
	s.products[p.ID] = p
	return ok(c, http.StatusOK, nil)
}

func (s *Server) handleListCategories(c echo.Context) error {
	pageNum, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	s.mu.Lock()
	items := make([]domain.Category, 0, len(s.categories))
	for _, cat := range s.categories {
		items = append(items, cat)
	}
	s.mu.Unlock()

	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	rows, info := page(items, pageNum, pageSize)

	return c.JSON(http.StatusOK, pagedResponse{
		response: response{IsSuccess: true, Value: rows},
		PageInfo: info,
	})
}

// handleDashboard serves the one envelope-less payload in the contract.
func (s *Server) handleDashboard(c echo.Context) error {
	s.mu.Lock()
	stats := domain.DashboardStatistics{
		TotalProducts:   len(s.products),
		TotalCategories: len(s.categories),
		RevenueCurrency: "EUR",
	}
	recent := make([]domain.ProductListItem, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive {
			stats.ActiveProducts++
		}
		recent = append(recent, domain.ProductListItem{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Currency: p.Currency,
			SKU:      p.SKU,
			Stock:    p.Stock,
			IsActive: p.IsActive,
		})
	}
	s.mu.Unlock()

	sort.Slice(recent, func(i, j int) bool { return recent[i].ID < recent[j].ID })
	if len(recent) > 5 {
		recent = recent[:5]
	}
	return c.JSON(http.StatusOK, domain.Dashboard{
		Statistics:     stats,
		RecentProducts: recent,
		RecentOrders:   []domain.OrderSummary{},
	})
}

func (s *Server) handleDashboardChart(c echo.Context) error {
	count, _ := strconv.Atoi(c.QueryParam("periodCount"))
	if count <= 0 {
		count = 12
	}
	points := make([]domain.ChartPoint, count)
	day := s.now().UTC().AddDate(0, 0, -count)
	for i := range points {
		day = day.AddDate(0, 0, 1)
		points[i] = domain.ChartPoint{Date: day.Format(time.DateOnly), Value: 0}
	}
	return c.JSON(http.StatusOK, points)
}
