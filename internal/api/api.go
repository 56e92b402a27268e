// Package api provides typed clients for the back-office REST API. All
// clients share one refresh-aware transport pipeline; construction wiring
// lives in New.
package api

import (
	"github.com/rs/zerolog"

	"github.com/storekit/backoffice/internal/core/ports"
	"github.com/storekit/backoffice/internal/transport"
)

// API aggregates the resource clients over a shared pipeline.
type API struct {
	Auth       *Auth
	Products   *Products
	Categories *Categories
	Brands     *Brands
	Discounts  *Discounts
	Images     *Images
	Dashboard  *Dashboard
}

// New wires the full client stack. Token refreshes run out-of-band on a bare
// pipeline (no refresh middleware) so a 401 on the refresh call itself cannot
// recurse. onSessionExpired fires when a refresh attempt fails terminally;
// pass the UI's "return to login" action, or nil.
func New(cfg transport.Config, tokens ports.TokenStore, onSessionExpired func(), log zerolog.Logger) *API {
	bare := transport.NewClient(cfg, log,
		transport.RequestID(),
		transport.Logging(log),
		transport.Metrics(),
	)
	refresher := NewAuth(bare)

	pipeline := transport.NewClient(cfg, log,
		transport.RefreshRetry(tokens, refresher.RefreshTokens, onSessionExpired),
		transport.Bearer(tokens),
		transport.RequestID(),
		transport.Logging(log),
		transport.Metrics(),
	)

	return &API{
		Auth:       NewAuth(pipeline),
		Products:   NewProducts(pipeline),
		Categories: NewCategories(pipeline),
		Brands:     NewBrands(pipeline),
		Discounts:  NewDiscounts(pipeline),
		Images:     NewImages(pipeline),
		Dashboard:  NewDashboard(pipeline),
	}
}
