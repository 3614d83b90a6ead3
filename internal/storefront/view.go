// Package storefront turns catalog records into the featured card and menu
// shown to buyers, and implements the select and purchase interactions on
// top of the catalog client.
package storefront

import (
	"fmt"

	"github.com/iliyamo/flatdango/internal/model"
)

const (
	buyLabel     = "Buy Ticket"
	soldOutLabel = "Sold Out"
)

// Card is the view model of the featured movie.  AvailabilityLine is empty
// when the movie is sold out; templates must not render it then.
type Card struct {
	ID               string
	Title            string
	Description      string
	Poster           string
	Runtime          string
	Showtime         string
	Available        int
	AvailabilityLine string
	SoldOut          bool
	ButtonLabel      string
}

// MenuItem is one entry in the movie menu.
type MenuItem struct {
	ID      string
	Title   string
	Poster  string
	SoldOut bool
	Active  bool
}

// Page is everything a storefront view renders in one pass.
type Page struct {
	Featured Card
	Menu     []MenuItem
	Receipt  *ReceiptView
	Notice   string
}

// ReceiptView is the proof of purchase shown after a successful buy.
type ReceiptView struct {
	Code  string
	Seat  int
	Title string
}

// BuildCard renders m into a Card.
func BuildCard(m model.Movie) Card {
	c := Card{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Poster:      m.Poster,
		Runtime:     fmt.Sprintf("%d minutes", m.Runtime),
		Showtime:    m.Showtime,
		Available:   m.Available(),
		SoldOut:     m.SoldOut(),
		ButtonLabel: buyLabel,
	}
	if c.SoldOut {
		c.ButtonLabel = soldOutLabel
	} else {
		c.AvailabilityLine = fmt.Sprintf("Available tickets: %d", c.Available)
	}
	return c
}

// BuildMenu renders the catalog into menu items, marking activeID.
func BuildMenu(movies []model.Movie, activeID string) []MenuItem {
	items := make([]MenuItem, 0, len(movies))
	for _, m := range movies {
		items = append(items, MenuItem{
			ID:      m.ID,
			Title:   m.Title,
			Poster:  m.Poster,
			SoldOut: m.SoldOut(),
			Active:  m.ID == activeID,
		})
	}
	return items
}

// BuildPage assembles a page featuring featured with the full menu.
func BuildPage(movies []model.Movie, featured model.Movie) *Page {
	return &Page{
		Featured: BuildCard(featured),
		Menu:     BuildMenu(movies, featured.ID),
	}
}
