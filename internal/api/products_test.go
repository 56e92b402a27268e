package api

import (
	"context"
	"errors"
	"testing"

	"github.com/storekit/backoffice/internal/core/domain"
)

func TestProductLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, adminEmail, adminPassword)
	ctx := context.Background()

	created, err := env.client.Products.Create(ctx, CreateProductRequest{
		Name:       "Mechanical Keyboard",
		Price:      129.90,
		Currency:   "EUR",
		SKU:        "KB-001",
		CategoryID: "c1",
		BrandID:    "b1",
		VATRate:    21,
		Stock:      10,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.Name != "Mechanical Keyboard" || !created.IsActive {
		t.Fatalf("unexpected created product: %+v", created)
	}

	items, info, err := env.client.Products.List(ctx, ProductListParams{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || info.TotalCount != 1 {
		t.Fatalf("unexpected listing: %d items, %+v", len(items), info)
	}

	if err := env.client.Products.UpdatePrice(ctx, created.ID, 99.90); err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}
	if err := env.client.Products.UpdateStock(ctx, created.ID, 5, domain.StockIncrease); err != nil {
		t.Fatalf("UpdateStock increase: %v", err)
	}
	if err := env.client.Products.UpdateStock(ctx, created.ID, 3, domain.StockDecrease); err != nil {
		t.Fatalf("UpdateStock decrease: %v", err)
	}

	got, err := env.client.Products.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Price != 99.90 || got.Stock != 12 {
		t.Fatalf("mutations not applied: price %.2f stock %d", got.Price, got.Stock)
	}

	if err := env.client.Products.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = env.client.Products.Get(ctx, created.ID)
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "NotFound" {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

func TestProductCreateRejectedClientSide(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, adminEmail, adminPassword)

	_, err := env.client.Products.Create(context.Background(), CreateProductRequest{
		Name:  "",
		Price: -1,
	})
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || !apiErr.IsValidation() {
		t.Fatalf("expected Validation error, got %v", err)
	}
}

func TestStaleAccessTokenRefreshedTransparently(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, adminEmail, adminPassword)
	ctx := context.Background()

	// Invalidate only the access token, keeping the valid refresh token. The
	// next call hits a 401, refreshes out of band and replays unnoticed.
	refreshToken, ok := env.tokens.RefreshToken()
	if !ok {
		t.Fatalf("no refresh token after sign in")
	}
	expiresAt, _ := env.tokens.ExpiresAt()
	env.tokens.SetTokens(domain.TokenPair{
		AccessToken:  "stale",
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	})

	if _, _, err := env.client.Products.List(ctx, ProductListParams{}); err != nil {
		t.Fatalf("List must survive a stale access token: %v", err)
	}

	if at, _ := env.tokens.AccessToken(); at == "stale" || at == "" {
		t.Fatalf("access token not rotated, got %q", at)
	}
	if rt, _ := env.tokens.RefreshToken(); rt == refreshToken {
		t.Fatalf("refresh token not rotated")
	}
}

func TestRevokedSessionSurfacesExpiry(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, adminEmail, adminPassword)

	// Both tokens invalid: the refresh attempt fails terminally and the
	// stored session is wiped.
	env.tokens.SetTokens(domain.TokenPair{AccessToken: "stale", RefreshToken: "revoked"})

	_, _, err := env.client.Products.List(context.Background(), ProductListParams{})
	if err == nil {
		t.Fatalf("expected error for a revoked session")
	}
	if _, ok := env.tokens.AccessToken(); ok {
		t.Fatalf("failed refresh must clear the stored session")
	}
}

func TestAgentCannotMutateCatalog(t *testing.T) {
	env := newTestEnv(t)
	env.fake.SeedUser("agent@store.test", "pw", domain.UserProfile{
		ID:       "u2",
		Email:    "agent@store.test",
		FullName: "Support Agent",
		Role:     domain.RoleAgent,
		IsActive: true,
	})
	env.signIn(t, "agent@store.test", "pw")
	ctx := context.Background()

	_, err := env.client.Products.Create(ctx, CreateProductRequest{
		Name:       "Sneaky Product",
		Price:      1,
		SKU:        "X-1",
		CategoryID: "c1",
		BrandID:    "b1",
	})
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "Forbidden" {
		t.Fatalf("expected Forbidden for agent, got %v", err)
	}

	// Read access stays open.
	if _, _, err := env.client.Products.List(ctx, ProductListParams{}); err != nil {
		t.Fatalf("agent must be able to list products: %v", err)
	}
}

func TestStockDecreaseBeyondInventory(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, adminEmail, adminPassword)

	p := env.fake.SeedProduct(domain.Product{Name: "Mouse", SKU: "M-1", Price: 25, Stock: 2, IsActive: true})
	err := env.client.Products.UpdateStock(context.Background(), p.ID, 5, domain.StockDecrease)

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "InsufficientStock" {
		t.Fatalf("expected InsufficientStock, got %v", err)
	}
}

func TestCategoriesPaging(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, adminEmail, adminPassword)

	for _, name := range []string{"Audio", "Keyboards", "Mice"} {
		env.fake.SeedCategory(domain.Category{Name: name})
	}

	items, info, err := env.client.Categories.List(context.Background(), CategoryListParams{Page: 2, PageSize: 2})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item on the last page, got %d", len(items))
	}
	if info.TotalCount != 3 || info.TotalPages != 2 || !info.HasPreviousPage || info.HasNextPage {
		t.Fatalf("unexpected page info: %+v", info)
	}
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, adminEmail, adminPassword)
	ctx := context.Background()

	env.fake.SeedProduct(domain.Product{Name: "Mouse", SKU: "M-1", Price: 25, Stock: 2, IsActive: true})
	env.fake.SeedProduct(domain.Product{Name: "Pad", SKU: "P-1", Price: 9, Stock: 7})

	d, err := env.client.Dashboard.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Statistics.TotalProducts != 2 || d.Statistics.ActiveProducts != 1 {
		t.Fatalf("unexpected statistics: %+v", d.Statistics)
	}
	if len(d.RecentProducts) != 2 {
		t.Fatalf("expected 2 recent products, got %d", len(d.RecentProducts))
	}

	points, err := env.client.Dashboard.Chart(ctx, ChartDaily, 7)
	if err != nil {
		t.Fatalf("Chart: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("expected 7 chart points, got %d", len(points))
	}
}
