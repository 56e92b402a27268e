// Command backofficectl is a terminal front end for the back-office API:
// it authenticates, keeps the session alive across invocations through the
// configured session store, and exposes the catalog and dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/storekit/backoffice/internal/api"
	"github.com/storekit/backoffice/internal/core/domain"
	"github.com/storekit/backoffice/internal/core/ports"
	"github.com/storekit/backoffice/internal/core/service"
	"github.com/storekit/backoffice/internal/fakeapi"
	"github.com/storekit/backoffice/internal/infrastructure/store/file"
	"github.com/storekit/backoffice/internal/infrastructure/store/memory"
	redisstore "github.com/storekit/backoffice/internal/infrastructure/store/redis"
	"github.com/storekit/backoffice/internal/pkg/config"
	"github.com/storekit/backoffice/internal/transport"
	"github.com/storekit/backoffice/pkg/logger"
)

const usage = `usage: backofficectl <command> [flags]

commands:
  login      --email <email> --password <password>
  logout
  status
  products   [--page N] [--page-size N] [--search TERM]
  product    --id <id>
  dashboard
  demo       [--addr HOST:PORT]
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]
	args := os.Args[2:]

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The demo server is self-contained; it needs none of the client wiring.
	if command == "demo" {
		return cmdDemo(args)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	kv, err := buildStore(ctx, cfg)
	if err != nil {
		return err
	}
	tokens := service.NewTokenStorage(kv, log)

	var session *service.Session
	client := api.New(
		transport.Config{BaseURL: cfg.APIBaseURL, Prefix: cfg.APIPrefix, Timeout: cfg.Timeout},
		tokens,
		func() {
			if session != nil {
				session.Logout()
			}
			fmt.Fprintln(os.Stderr, "session expired, run `backofficectl login` to sign in again")
		},
		log,
	)
	session = service.NewSession(tokens, client.Auth, log)
	session.Initialize()

	watchdog := service.NewWatchdog(tokens, session, log, service.WithInterval(cfg.WatchInterval))
	watchdog.Start(ctx)

	switch command {
	case "login":
		return cmdLogin(ctx, session, args)
	case "logout":
		session.Logout()
		fmt.Println("logged out")
		return nil
	case "status":
		return cmdStatus(session)
	case "products":
		return cmdProducts(ctx, session, client, args)
	case "product":
		return cmdProduct(ctx, session, client, args)
	case "dashboard":
		return cmdDashboard(ctx, session, client)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
		return nil
	}
}

func buildStore(ctx context.Context, cfg *config.Config) (ports.KeyValueStore, error) {
	log := logger.Get()
	switch cfg.Store.Backend {
	case "memory":
		return memory.New(), nil
	case "file":
		path := cfg.Store.Path
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("resolve home directory: %w", err)
			}
			path = filepath.Join(home, ".backoffice", "session.json")
		}
		return file.New(path, cfg.Store.Passphrase, log), nil
	case "redis":
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr: cfg.Store.Redis.Addr,
			DB:   cfg.Store.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client, log), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func cmdLogin(ctx context.Context, session *service.Session, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := session.Authenticate(ctx, *email, *password); err != nil {
		return err
	}
	state := session.State()
	fmt.Printf("logged in as %s (%s), token valid until %s\n",
		state.User.FullName, state.User.Role, state.ExpiresAt.Local())
	return nil
}

func cmdStatus(session *service.Session) error {
	state := session.State()
	if !state.Authenticated {
		fmt.Println("not logged in")
		return nil
	}
	fmt.Printf("logged in as %s <%s>, role %s, token expires %s\n",
		state.User.FullName, state.User.Email, state.User.Role, state.ExpiresAt.Local())
	return nil
}

func cmdProducts(ctx context.Context, session *service.Session, client *api.API, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	pageSize := fs.Int("page-size", 20, "rows per page")
	search := fs.String("search", "", "search term")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !session.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}

	items, info, err := client.Products.List(ctx, api.ProductListParams{
		Page:       *page,
		PageSize:   *pageSize,
		SearchTerm: *search,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKU\tNAME\tPRICE\tSTOCK\tACTIVE")
	for _, p := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f %s\t%d\t%t\n",
			p.ID, p.SKU, p.Name, p.Price, p.Currency, p.Stock, p.IsActive)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("page %d/%d, %d products\n", info.Page, info.TotalPages, info.TotalCount)
	return nil
}

func cmdProduct(ctx context.Context, session *service.Session, client *api.API, args []string) error {
	fs := flag.NewFlagSet("product", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !session.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}

	p, err := client.Products.Get(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n  price: %.2f %s\n  stock: %d\n  category: %s\n  brand: %s\n",
		p.Name, p.SKU, p.Price, p.Currency, p.Stock, p.CategoryName, p.BrandName)
	return nil
}

// cmdDemo serves the in-memory fake API so the other commands can be tried
// without a real back end:
//
//	BACKOFFICE_API_URL=http://127.0.0.1:8089 backofficectl login --email admin@demo.local --password admin
func cmdDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	addr := fs.String("addr", "127.0.0.1:8089", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	fake := fakeapi.New("demo-secret", fakeapi.WithTokenTTL(15*time.Minute))
	fake.SeedUser("admin@demo.local", "admin", domain.UserProfile{
		ID:        "u1",
		Email:     "admin@demo.local",
		FullName:  "Demo Admin",
		Role:      domain.RoleAdmin,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	})
	cat := fake.SeedCategory(domain.Category{Name: "Peripherals", Slug: "peripherals"})
	fake.SeedProduct(domain.Product{
		Name: "Mechanical Keyboard", SKU: "KB-001", Price: 129.90, Currency: "EUR",
		CategoryID: cat.ID, Stock: 12, IsActive: true, CreatedAt: time.Now().UTC(),
	})
	fake.SeedProduct(domain.Product{
		Name: "Wireless Mouse", SKU: "M-002", Price: 39.90, Currency: "EUR",
		CategoryID: cat.ID, Stock: 40, IsActive: true, CreatedAt: time.Now().UTC(),
	})

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", *addr, err)
	}
	fmt.Printf("demo API listening on http://%s\n", ln.Addr())
	fmt.Println("credentials: admin@demo.local / admin")

	srv := &http.Server{Handler: fake.Handler()}
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func cmdDashboard(ctx context.Context, session *service.Session, client *api.API) error {
	if !session.IsAuthenticated() {
		return fmt.Errorf("not logged in")
	}
	d, err := client.Dashboard.Get(ctx)
	if err != nil {
		return err
	}
	s := d.Statistics
	fmt.Printf("products: %d (%d active)\ncategories: %d\nbrands: %d\norders: %d\nrevenue: %.2f %s\n",
		s.TotalProducts, s.ActiveProducts, s.TotalCategories, s.TotalBrands,
		s.TotalOrders, s.TotalRevenue, s.RevenueCurrency)
	return nil
}
