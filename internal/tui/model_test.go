package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flatdango/internal/catalog"
	"github.com/iliyamo/flatdango/internal/model"
)

// fakeCatalog is an in-memory catalog that records PATCH calls.
type fakeCatalog struct {
	mu       sync.Mutex
	movies   []model.Movie
	fetchErr error
	patchErr error
	patches  []int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{movies: []model.Movie{
		{ID: "1", Title: "The Giant Gila Monster", Description: "A giant lizard.", Capacity: 30, TicketsSold: 27, Runtime: 108, Showtime: "04:00PM"},
		{ID: "2", Title: "Manos: The Hands Of Fate", Description: "A family gets lost.", Capacity: 20, TicketsSold: 20, Runtime: 118, Showtime: "06:45PM"},
		{ID: "3", Title: "Time Chasers", Description: "An inventor travels in time.", Capacity: 50, TicketsSold: 49, Runtime: 93, Showtime: "09:30PM"},
	}}
}

func (f *fakeCatalog) FetchMovies(ctx context.Context) ([]model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]model.Movie(nil), f.movies...), nil
}

func (f *fakeCatalog) PatchMovie(ctx context.Context, id string, ticketsSold int) (*model.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, ticketsSold)
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	for i := range f.movies {
		if f.movies[i].ID == id {
			f.movies[i].TicketsSold = ticketsSold
			m := f.movies[i]
			return &m, nil
		}
	}
	return nil, catalog.ErrMovieNotFound
}

// step feeds msg to the model and returns the updated model and command.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// run executes cmd synchronously and feeds its message back.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())
	return m
}

func loaded(t *testing.T, c *fakeCatalog) Model {
	t.Helper()
	m := NewModel(c, time.Second)
	return run(t, m, m.fetch(0, ""))
}

func press(keys string) tea.KeyMsg {
	switch keys {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
}

func TestStartupFeaturesFirstMovie(t *testing.T) {
	m := loaded(t, newFakeCatalog())
	require.NotNil(t, m.Featured())
	assert.Equal(t, "1", m.Featured().ID)
	assert.Equal(t, Viewing, m.State())

	view := m.View()
	assert.Contains(t, view, "The Giant Gila Monster")
	assert.Contains(t, view, "Available tickets: 3")
	assert.Contains(t, view, "Buy Ticket")
}

func TestSelectFeaturesOnlyThatMovie(t *testing.T) {
	m := loaded(t, newFakeCatalog())

	m, _ = step(t, m, press("down"))
	m, cmd := step(t, m, press("down"))
	assert.Nil(t, cmd)
	m, cmd = step(t, m, press("enter"))
	m = run(t, m, cmd)

	require.NotNil(t, m.Featured())
	assert.Equal(t, "3", m.Featured().ID)
	card := m.renderCard()
	assert.Contains(t, card, "Time Chasers")
	assert.Contains(t, card, "93 minutes")
	assert.Contains(t, card, "Available tickets: 1")
	assert.NotContains(t, card, "Gila")
}

func TestPurchaseLastTicket(t *testing.T) {
	c := newFakeCatalog()
	m := loaded(t, c)
	m, cmd := m.selectMovie("3")
	m = run(t, m, cmd)

	m, cmd = step(t, m, press("b"))
	assert.Equal(t, Purchasing, m.State())
	assert.Contains(t, m.renderCard(), "Purchasing")

	// further presses are ignored until the PATCH answers
	m, again := step(t, m, press("b"))
	assert.Nil(t, again)

	m = run(t, m, cmd)
	assert.Equal(t, Viewing, m.State())
	assert.Equal(t, []int{50}, c.patches)

	card := m.renderCard()
	assert.Contains(t, card, "Sold Out")
	assert.NotContains(t, card, "Available tickets")
	assert.Contains(t, m.View(), "Ticket #50 for Time Chasers purchased.")
}

func TestPurchaseIgnoredWhenSoldOut(t *testing.T) {
	c := newFakeCatalog()
	m := loaded(t, c)
	m, cmd := m.selectMovie("2")
	m = run(t, m, cmd)

	m, cmd = step(t, m, press("b"))
	assert.Nil(t, cmd)
	assert.Equal(t, Viewing, m.State())
	assert.Empty(t, c.patches)
	assert.NotContains(t, m.renderCard(), "Available tickets")
}

func TestStalePurchaseResponseIsDropped(t *testing.T) {
	c := newFakeCatalog()
	m := loaded(t, c)

	m, buy := step(t, m, press("b"))
	require.NotNil(t, buy)
	m, sel := m.selectMovie("3")

	// the PATCH answers after the newer selection was issued
	m, _ = step(t, m, buy())
	assert.Equal(t, "1", m.Featured().ID)
	assert.Equal(t, 27, m.Featured().TicketsSold)

	m = run(t, m, sel)
	assert.Equal(t, "3", m.Featured().ID)
	assert.Equal(t, Viewing, m.State())
}

func TestFetchErrorKeepsPriorCard(t *testing.T) {
	c := newFakeCatalog()
	m := loaded(t, c)
	before := m.renderCard()

	c.fetchErr = errors.New("connection refused")
	m, cmd := m.selectMovie("3")
	m = run(t, m, cmd)

	assert.Equal(t, "1", m.Featured().ID)
	assert.Equal(t, before, m.renderCard())
	assert.Contains(t, m.View(), "Could not load the catalog: connection refused")
}

func TestPurchaseErrorKeepsPriorCard(t *testing.T) {
	c := newFakeCatalog()
	c.patchErr = catalog.ErrSoldOut
	m := loaded(t, c)

	m, cmd := step(t, m, press("b"))
	m = run(t, m, cmd)

	assert.Equal(t, Viewing, m.State())
	assert.Equal(t, 27, m.Featured().TicketsSold)
	assert.Contains(t, m.View(), "just sold out")
}

func TestSelectMissingMovieKeepsPriorCard(t *testing.T) {
	m := loaded(t, newFakeCatalog())
	m, cmd := m.selectMovie("99")
	m = run(t, m, cmd)
	assert.Equal(t, "1", m.Featured().ID)
	assert.Contains(t, m.View(), "Movie 99 is no longer in the catalog.")
}

func TestQuit(t *testing.T) {
	m := loaded(t, newFakeCatalog())
	_, cmd := step(t, m, press("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "viewing", Viewing.String())
	assert.Equal(t, "purchasing", Purchasing.String())
}
