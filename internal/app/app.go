// Package app wires configuration, providers, cache, service and HTTP router
// into a runnable server.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/b3dash/config"
	"github.com/guttosm/b3dash/internal/api"
	"github.com/guttosm/b3dash/internal/cache"
	"github.com/guttosm/b3dash/internal/domain/models"
	"github.com/guttosm/b3dash/internal/logger"
	"github.com/guttosm/b3dash/internal/middleware"
	"github.com/guttosm/b3dash/internal/provider"
	"github.com/guttosm/b3dash/internal/provider/b3local"
	"github.com/guttosm/b3dash/internal/provider/bcb"
	"github.com/guttosm/b3dash/internal/provider/yahoo"
	"github.com/guttosm/b3dash/internal/scheduler"
	"github.com/guttosm/b3dash/internal/service"
	"github.com/guttosm/b3dash/internal/storage"
)

// Dashboard is the assembled read side: the service and the cache it fills.
type Dashboard struct {
	Service service.DashboardService
	Cache   *cache.Store
}

// NewDashboard builds providers behind one TTL cache and the dashboard service
// on top. db may be nil; when set, bars fall back to the local B3 store after Yahoo.
func NewDashboard(cfg config.Config, db *sql.DB) Dashboard {
	client := provider.NewHTTPClient(provider.ClientConfig{
		Timeout: cfg.HTTP.Timeout,
		Retries: cfg.HTTP.Retries,
	})
	store := cache.New(cfg.Cache.TTL)

	bars := provider.Fallback{yahoo.New(client, cfg.Sources.YahooURL)}
	var local provider.InstrumentLister
	if db != nil {
		b3 := b3local.New(storage.NewTradesRepository(db))
		bars = append(bars, b3)
		local = b3
	}

	svc := service.NewDashboardService(service.Deps{
		Rates:         provider.CachedRates{Inner: bcb.NewSGS(client, cfg.Sources.BCBSGSURL), Store: store},
		Currencies:    provider.CachedCurrencies{Inner: bcb.NewPTAX(client, cfg.Sources.BCBPTAXURL), Store: store},
		Bars:          provider.CachedBars{Inner: bars, Store: store},
		Local:         local,
		Tickers:       cfg.Dashboard.Tickers,
		CurrencyCodes: cfg.Dashboard.Currencies,
		DefaultStart:  cfg.Dashboard.DefaultStart,
	})
	return Dashboard{Service: svc, Cache: store}
}

// Warm loads the default views of the dashboard so first visitors hit the cache.
// Missing data is not an error; only a cancelled context is.
func (d Dashboard) Warm(ctx context.Context) error {
	cat := d.Service.Catalog()
	w := cat.DefaultWindow

	_, _ = d.Service.Macro(ctx, w)
	_, _ = d.Service.Currencies(ctx, w, nil)
	for _, t := range cat.Tickers {
		_, _ = d.Service.PriceVolume(ctx, t, w)
	}
	_, _ = d.Service.CumulativeReturns(ctx, models.Selection{Window: w, Instruments: cat.Comparison, Indicators: cat.Indicators})
	return ctx.Err()
}

// InitializeApp sets up all application dependencies and returns the router and
// a cleanup function for graceful shutdown.
//
// Responsibilities:
//   - Connects to PostgreSQL when the local B3 store is enabled.
//   - Builds the cached providers and the dashboard service.
//   - Starts the cache purge and warm-up scheduler.
//   - Configures the gin router and the health probes.
func InitializeApp(ctx context.Context, cfg config.Config) (*gin.Engine, func(), error) {
	var (
		db   *sql.DB
		ping func(context.Context) error
	)
	if cfg.Store.Enabled {
		var err error
		if db, err = postgresOpener(cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
		}
		ping = db.PingContext
	}

	dash := NewDashboard(cfg, db)

	sched := scheduler.New(ctx, dash.Cache, dash.Warm)
	if err := sched.Register(cfg.Cache.PurgeCron, cfg.Cache.WarmupCron); err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, nil, err
	}
	sched.Start()

	var limiter *middleware.RateLimiter
	if cfg.Server.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimitPerMinute, time.Minute)
	}

	router := api.NewRouter(api.NewHandler(dash.Service), limiter)
	api.NewHealthHandler(ping).Register(router)

	logger.L().Info().
		Bool("b3_store", db != nil).
		Dur("cache_ttl", dash.Cache.TTL()).
		Msg("application initialized")

	cleanup := func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sched.Stop(stopCtx)
		if db != nil {
			_ = db.Close()
		}
	}

	return router, cleanup, nil
}
