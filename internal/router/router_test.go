package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flatdango/internal/catalog"
	"github.com/iliyamo/flatdango/internal/handler"
	"github.com/iliyamo/flatdango/internal/model"
	"github.com/iliyamo/flatdango/internal/repository"
	"github.com/iliyamo/flatdango/internal/storefront"
)

func routeSet(e *echo.Echo) map[string]bool {
	out := map[string]bool{}
	for _, r := range e.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestRegisterCatalogWithoutRedis(t *testing.T) {
	store := repository.NewMemoryMovieRepo(model.Movie{ID: "1", Title: "Gila", Capacity: 2, TicketsSold: 1})
	e := echo.New()
	RegisterRoutes(e)
	RegisterCatalog(e, &handler.CatalogHandler{Store: store}, nil, nil)

	routes := routeSet(e)
	for _, want := range []string{"GET /healthz", "GET /movies", "GET /movies/:id", "PATCH /movies/:id"} {
		assert.True(t, routes[want], want)
	}

	req := httptest.NewRequest(http.MethodPatch, "/movies/1", strings.NewReader(`{"tickets_sold":2}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movies", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tickets_sold":2`)
}

func TestRegisterStorefront(t *testing.T) {
	r := storefront.MustRenderer()
	s := &handler.StorefrontHandler{
		Service:  storefront.NewService(catalog.NewClient("http://127.0.0.1:1", time.Second), nil, "k", "1"),
		Renderer: r,
	}
	e := echo.New()
	e.Renderer = r
	RegisterStorefront(e, s, nil)

	routes := routeSet(e)
	for _, want := range []string{"GET /", "GET /movies/:id", "GET /movies/:id/card", "POST /movies/:id/purchase", "GET /tickets/verify"} {
		assert.True(t, routes[want], want)
	}
}
