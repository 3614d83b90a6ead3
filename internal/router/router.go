package router // package router defines how HTTP routes are registered on both binaries

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flatdango/internal/handler"
	"github.com/iliyamo/flatdango/internal/middleware"
)

// RegisterRoutes registers routes shared by every binary.  Currently it
// exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterStorefront registers the HTML storefront.  limiter guards the
// purchase POST; pass nil to leave it unthrottled.
func RegisterStorefront(e *echo.Echo, s *handler.StorefrontHandler, limiter echo.MiddlewareFunc) {
	e.GET("/", s.Home)
	e.GET("/movies/:id", s.Show)
	e.GET("/movies/:id/card", s.Card)
	if limiter != nil {
		e.POST("/movies/:id/purchase", s.Purchase, limiter)
	} else {
		e.POST("/movies/:id/purchase", s.Purchase)
	}
	e.GET("/tickets/verify", s.VerifyTicket)
}

// RegisterCatalog registers the /movies JSON resource.  Reads go through
// the response cache; the PATCH is rate limited and purges the cache via
// the handler.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, cache *middleware.ResponseCache, limiter echo.MiddlewareFunc) {
	reads := e.Group("/movies", cache.Middleware())
	reads.GET("", h.List)
	reads.GET("/:id", h.Get)

	if limiter != nil {
		e.PATCH("/movies/:id", h.Patch, limiter)
	} else {
		e.PATCH("/movies/:id", h.Patch)
	}
}
