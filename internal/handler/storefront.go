package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/flatdango/internal/catalog"
	"github.com/iliyamo/flatdango/internal/storefront"
)

// StorefrontHandler renders the HTML storefront.  Every request re-fetches
// the catalog through Service so the card never shows stale inventory.
type StorefrontHandler struct {
	Service  *storefront.Service
	Renderer *storefront.Renderer
}

// Home renders the featured movie and the menu.
func (h *StorefrontHandler) Home(c echo.Context) error {
	page, err := h.Service.Home(c.Request().Context())
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Render(http.StatusOK, "index.html", page)
}

// Show renders the page featuring the movie picked from the menu.
func (h *StorefrontHandler) Show(c echo.Context) error {
	page, err := h.Service.Select(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Render(http.StatusOK, "index.html", page)
}

// Card renders only the card fragment of a movie, for clients that swap
// the featured card in place.
func (h *StorefrontHandler) Card(c echo.Context) error {
	page, err := h.Service.Select(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.renderError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return h.Renderer.RenderCard(c.Response(), page.Featured)
}

// Purchase buys one ticket and renders the updated card with the receipt.
// A sold out movie renders its disabled card with a 409.
func (h *StorefrontHandler) Purchase(c echo.Context) error {
	page, err := h.Service.Purchase(c.Request().Context(), c.Param("id"))
	if errors.Is(err, storefront.ErrSoldOut) {
		if page == nil {
			// the catalog refused the PATCH; show the fresh state
			if page, err = h.Service.Select(c.Request().Context(), c.Param("id")); err != nil {
				return h.renderError(c, err)
			}
		}
		page.Notice = "Sorry, this showing is sold out."
		return c.Render(http.StatusConflict, "index.html", page)
	}
	if err != nil {
		return h.renderError(c, err)
	}
	return c.Render(http.StatusOK, "index.html", page)
}

// VerifyTicket checks the receipt code in ?code=.
func (h *StorefrontHandler) VerifyTicket(c echo.Context) error {
	claims, err := h.Service.VerifyReceipt(c.QueryParam("code"))
	if err != nil {
		return c.Render(http.StatusOK, "verify.html", storefront.VerifyView{Valid: false})
	}
	return c.Render(http.StatusOK, "verify.html", storefront.VerifyView{Valid: true, Claims: claims})
}

func (h *StorefrontHandler) renderError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, catalog.ErrMovieNotFound):
		return c.Render(http.StatusNotFound, "error.html", storefront.ErrorView{Message: "That movie is not in the catalog."})
	case errors.Is(err, catalog.ErrThrottled):
		return c.Render(http.StatusTooManyRequests, "error.html", storefront.ErrorView{Message: "Too many purchases right now. Please try again shortly."})
	case errors.Is(err, storefront.ErrNoMovies):
		return c.Render(http.StatusServiceUnavailable, "error.html", storefront.ErrorView{Message: "No movies are showing right now."})
	}
	log.Printf("storefront: %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	return c.Render(http.StatusBadGateway, "error.html", storefront.ErrorView{Message: "The movie catalog is unavailable. Please try again."})
}
