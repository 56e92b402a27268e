// Package fakeapi implements an in-memory back-office API speaking the real
// server's contract: the {isSuccess, value, error} envelope, paged lists,
// bearer-authenticated routes with HS256 tokens, and single-use refresh
// tokens. It backs the integration tests and the CLI's demo mode.
package fakeapi

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/storekit/backoffice/internal/core/domain"
)

const defaultTokenTTL = 15 * time.Minute

type account struct {
	password string
	profile  domain.UserProfile
}

type Server struct {
	echo   *echo.Echo
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu            sync.Mutex
	accounts      map[string]account
	refreshTokens map[string]string // refresh token → email, single use
	products      map[string]domain.Product
	categories    map[string]domain.Category
	seq           int
}

type Option func(*Server)

// WithTokenTTL overrides the access-token lifetime (default 15m). Negative
// values mint already-expired tokens, useful for exercising 401 paths.
func WithTokenTTL(d time.Duration) Option {
	return func(s *Server) { s.ttl = d }
}

// WithNow sets the clock used for token expiry.
func WithNow(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(secret string, opts ...Option) *Server {
	s := &Server{
		secret:        []byte(secret),
		ttl:           defaultTokenTTL,
		now:           time.Now,
		accounts:      make(map[string]account),
		refreshTokens: make(map[string]string),
		products:      make(map[string]domain.Product),
		categories:    make(map[string]domain.Category),
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler

	g := e.Group("/api")
	g.POST("/auth/login", s.handleLogin)
	g.POST("/auth/refresh-token", s.handleRefresh)

	authed := g.Group("", s.requireAuth)
	authed.GET("/Products", s.handleListProducts)
	authed.GET("/Products/:id", s.handleGetProduct)
	authed.POST("/Products", s.handleCreateProduct, s.requireAdmin)
	authed.PUT("/Products/:id", s.handleUpdateProduct, s.requireAdmin)
	authed.DELETE("/Products/:id", s.handleDeleteProduct, s.requireAdmin)
	authed.PATCH("/Products/:id/price", s.handleUpdatePrice, s.requireAdmin)
	authed.PATCH("/Products/:id/stock", s.handleUpdateStock, s.requireAdmin)
	authed.GET("/categories", s.handleListCategories)
	authed.GET("/Dashboard", s.handleDashboard)
	authed.GET("/Dashboard/chart", s.handleDashboardChart)

	s.echo = e
	return s
}

// Handler exposes the server for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// SeedUser registers an account that can log in.
func (s *Server) SeedUser(email, password string, profile domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = account{password: password, profile: profile}
}

// SeedProduct inserts a product, assigning an ID when absent.
func (s *Server) SeedProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == "" {
		p.ID = s.nextIDLocked("p")
	}
	s.products[p.ID] = p
	return p
}

// SeedCategory inserts a category, assigning an ID when absent.
func (s *Server) SeedCategory(c domain.Category) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == "" {
		c.ID = s.nextIDLocked("c")
	}
	s.categories[c.ID] = c
	return c
}

func (s *Server) nextIDLocked(prefix string) string {
	s.seq++
	return prefix + strconv.Itoa(s.seq)
}

func newRefreshToken() string {
	return uuid.NewString()
}
