package storefront

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flatdango/internal/model"
)

var (
	gila   = model.Movie{ID: "1", Title: "The Giant Gila Monster", Description: "A giant lizard.", Poster: "https://img.example/1.jpg", Capacity: 30, TicketsSold: 27, Runtime: 108, Showtime: "04:00PM"}
	manos  = model.Movie{ID: "2", Title: "Manos: The Hands Of Fate", Description: "A family gets lost.", Poster: "https://img.example/2.jpg", Capacity: 20, TicketsSold: 20, Runtime: 118, Showtime: "06:45PM"}
	chaser = model.Movie{ID: "3", Title: "Time Chasers", Description: "An inventor travels in time.", Poster: "https://img.example/3.jpg", Capacity: 50, TicketsSold: 49, Runtime: 93, Showtime: "09:30PM"}
)

func catalogMovies() []model.Movie {
	return []model.Movie{gila, manos, chaser}
}

func TestBuildCardAvailable(t *testing.T) {
	c := BuildCard(gila)
	assert.False(t, c.SoldOut)
	assert.Equal(t, "Buy Ticket", c.ButtonLabel)
	assert.Equal(t, 3, c.Available)
	assert.Equal(t, "Available tickets: 3", c.AvailabilityLine)
	assert.Equal(t, "108 minutes", c.Runtime)
	assert.Equal(t, "04:00PM", c.Showtime)
}

func TestBuildCardSoldOut(t *testing.T) {
	c := BuildCard(manos)
	assert.True(t, c.SoldOut)
	assert.Equal(t, "Sold Out", c.ButtonLabel)
	assert.Empty(t, c.AvailabilityLine)
}

func TestBuildMenuMarksActive(t *testing.T) {
	items := BuildMenu(catalogMovies(), "3")
	require.Len(t, items, 3)
	assert.False(t, items[0].Active)
	assert.True(t, items[1].SoldOut)
	assert.True(t, items[2].Active)
	assert.Equal(t, "Time Chasers", items[2].Title)
}

func TestRenderSoldOutCard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustRenderer().RenderCard(&buf, BuildCard(manos)))
	html := buf.String()

	assert.Contains(t, html, "Sold Out</button>")
	assert.Regexp(t, `<button[^>]* disabled>Sold Out</button>`, html)
	assert.NotContains(t, html, "Available tickets")
	assert.NotContains(t, html, "card-footer")
}

func TestRenderAvailableCard(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, MustRenderer().RenderCard(&buf, BuildCard(gila)))
	html := buf.String()

	assert.Contains(t, html, `<img src="https://img.example/1.jpg" alt="The Giant Gila Monster" class="card-img-top">`)
	assert.Contains(t, html, "Buy Ticket</button>")
	assert.NotContains(t, html, "disabled")
	assert.Contains(t, html, "Available tickets: 3")
	assert.Contains(t, html, `action="/movies/1/purchase"`)
}

func TestRenderEscapesCatalogText(t *testing.T) {
	m := gila
	m.Title = `<script>alert("x")</script>`
	var buf bytes.Buffer
	require.NoError(t, MustRenderer().RenderCard(&buf, BuildCard(m)))
	assert.NotContains(t, buf.String(), "<script>")
}
