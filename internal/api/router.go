package api

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/b3dash/internal/middleware"
)

// RequestTimeout bounds every request context, provider calls included.
const RequestTimeout = 10 * time.Second

// NewRouter creates the gin engine with middlewares, swagger and the v1 routes.
//
// A nil limiter disables rate limiting. Health probes are registered by the
// caller, see HealthHandler.
func NewRouter(handler *Handler, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	chain := []gin.HandlerFunc{
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
	}
	if limiter != nil {
		chain = append(chain, limiter.Middleware())
	}
	router.Use(append(chain, middleware.Timeout(RequestTimeout))...)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", handler.GetCatalog)
		v1.GET("/instruments", handler.GetInstruments)
		v1.GET("/macro", handler.GetMacro)
		v1.GET("/currencies", handler.GetCurrencies)
		v1.GET("/assets/:ticker/prices", handler.GetPriceVolume)
		v1.GET("/returns", handler.GetReturns)
		v1.GET("/returns/export", handler.ExportReturns)
		v1.GET("/treemap", handler.GetTreemap)
	}

	return router
}
