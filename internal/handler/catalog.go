// Package handler exposes the HTTP handlers of both binaries: the JSON
// catalog resource and the HTML storefront.
package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flatdango/internal/model"
	"github.com/iliyamo/flatdango/internal/repository"
)

// MovieStore is implemented by repository.MovieRepo and
// repository.MemoryMovieRepo.
type MovieStore interface {
	ListAll(ctx context.Context) ([]model.Movie, error)
	GetByID(ctx context.Context, id string) (*model.Movie, error)
	UpdateTicketsSold(ctx context.Context, id string, sold int) (*model.Movie, error)
}

// Purger drops cached catalog responses after a write.
type Purger interface {
	Purge(ctx context.Context) error
}

// CatalogHandler serves the /movies resource in the json-server shape the
// storefronts consume: a bare array for the collection and a bare object
// for a single movie.
type CatalogHandler struct {
	Store MovieStore
	Cache Purger // optional
}

// patchMovieRequest is the PATCH body.  Only tickets_sold may change; a
// pointer distinguishes a missing field from zero.
type patchMovieRequest struct {
	TicketsSold *int `json:"tickets_sold"`
}

// List returns every movie in catalog order.
func (h *CatalogHandler) List(c echo.Context) error {
	movies, err := h.Store.ListAll(c.Request().Context())
	if err != nil {
		log.Printf("catalog: list movies: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, movies)
}

// Get returns one movie by id.
func (h *CatalogHandler) Get(c echo.Context) error {
	m, err := h.Store.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		log.Printf("catalog: get movie %s: %v", c.Param("id"), err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, m)
}

// Patch sets tickets_sold and returns the full updated record.  Values
// outside 0..capacity are refused with 409 so concurrent storefronts can
// never oversell.
func (h *CatalogHandler) Patch(c echo.Context) error {
	var req patchMovieRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid json"})
	}
	if req.TicketsSold == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tickets_sold is required"})
	}
	if *req.TicketsSold < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "tickets_sold must be >= 0"})
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	m, err := h.Store.UpdateTicketsSold(ctx, id, *req.TicketsSold)
	switch {
	case errors.Is(err, repository.ErrMovieNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "tickets_sold exceeds capacity"})
	case err != nil:
		log.Printf("catalog: patch movie %s: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if h.Cache != nil {
		if err := h.Cache.Purge(ctx); err != nil {
			log.Printf("catalog: purge cache after patch of %s: %v", id, err)
		}
	}
	return c.JSON(http.StatusOK, m)
}
