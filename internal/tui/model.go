// Package tui is the terminal storefront: a bubbletea program that shows
// the movie menu next to the featured card and buys tickets against the
// catalog.
//
// The interaction is an explicit two-state machine. In Viewing the user
// can move through the menu, feature a movie, or buy a ticket. Buying
// moves to Purchasing until the PATCH answers; further buy presses are
// ignored until then. Every request carries a sequence number and only
// the answer to the most recent request is applied, so a slow PATCH can
// never overwrite a newer selection.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iliyamo/flatdango/internal/catalog"
	"github.com/iliyamo/flatdango/internal/model"
	"github.com/iliyamo/flatdango/internal/storefront"
)

// State is the interaction state of the storefront.
type State int

const (
	// Viewing shows a featured movie and accepts input.
	Viewing State = iota
	// Purchasing waits for the PATCH of a ticket purchase.
	Purchasing
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Purchasing:
		return "purchasing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// defaultFeaturedID is featured on startup when the catalog has it.
const defaultFeaturedID = "1"

// catalogLoadedMsg carries the result of a catalog fetch.  selectID is the
// movie to feature; empty means the startup default.
type catalogLoadedMsg struct {
	seq      uint64
	selectID string
	movies   []model.Movie
	err      error
}

// purchaseDoneMsg carries the result of a ticket PATCH.
type purchaseDoneMsg struct {
	seq   uint64
	movie *model.Movie
	err   error
}

// Model is the bubbletea model of the storefront.
type Model struct {
	catalog storefront.Catalog
	timeout time.Duration
	keys    KeyMap
	styles  Styles
	help    help.Model
	spinner spinner.Model

	state    State
	movies   []model.Movie
	featured *model.Movie
	cursor   int
	loading  bool

	// seq is the sequence number of the latest issued request.
	seq uint64

	notice      string
	noticeIsErr bool
}

// NewModel returns a storefront backed by c.  timeout bounds each catalog
// request.
func NewModel(c storefront.Catalog, timeout time.Duration) Model {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return Model{
		catalog: c,
		timeout: timeout,
		keys:    DefaultKeyMap,
		styles:  DefaultStyles(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		loading: true,
	}
}

// State returns the current interaction state.
func (m Model) State() State { return m.state }

// Featured returns a copy of the featured movie, or nil before the first
// successful load.
func (m Model) Featured() *model.Movie {
	if m.featured == nil {
		return nil
	}
	cp := *m.featured
	return &cp
}

// Init starts the spinner and loads the catalog.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetch(0, ""))
}

// nextSeq issues a new request sequence number.  Every response carrying
// an older number is dropped.
func (m *Model) nextSeq() uint64 {
	m.seq++
	return m.seq
}

func (m Model) fetch(seq uint64, selectID string) tea.Cmd {
	c, timeout := m.catalog, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		movies, err := c.FetchMovies(ctx)
		return catalogLoadedMsg{seq: seq, selectID: selectID, movies: movies, err: err}
	}
}

func (m Model) patch(seq uint64, id string, ticketsSold int) tea.Cmd {
	c, timeout := m.catalog, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		movie, err := c.PatchMovie(ctx, id, ticketsSold)
		return purchaseDoneMsg{seq: seq, movie: movie, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case catalogLoadedMsg:
		return m.handleCatalogLoaded(msg), nil

	case purchaseDoneMsg:
		return m.handlePurchaseDone(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.movies)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.movies) == 0 {
			return m, nil
		}
		return m.selectMovie(m.movies[m.cursor].ID)

	case key.Matches(msg, m.keys.Refresh):
		id := ""
		if m.featured != nil {
			id = m.featured.ID
		}
		m.loading = true
		return m, m.fetch(m.nextSeq(), id)

	case key.Matches(msg, m.keys.Buy):
		return m.purchase()
	}
	return m, nil
}

// selectMovie re-fetches the catalog and features id.  A selection made
// while Purchasing supersedes the pending purchase response.
func (m Model) selectMovie(id string) (Model, tea.Cmd) {
	m.loading = true
	return m, m.fetch(m.nextSeq(), id)
}

// purchase buys one ticket for the featured movie.  It is a no-op while
// Purchasing or when the featured movie is sold out.
func (m Model) purchase() (Model, tea.Cmd) {
	if m.state != Viewing || m.featured == nil || m.featured.SoldOut() {
		return m, nil
	}
	m.state = Purchasing
	m.notice = ""
	return m, m.patch(m.nextSeq(), m.featured.ID, m.featured.TicketsSold+1)
}

func (m Model) handleCatalogLoaded(msg catalogLoadedMsg) Model {
	if msg.seq != m.seq {
		log.Printf("tui: dropping stale catalog response seq=%d latest=%d", msg.seq, m.seq)
		return m
	}
	m.loading = false
	m.state = Viewing
	if msg.err != nil {
		log.Printf("tui: fetch catalog failed: %v", msg.err)
		m.setError("Could not load the catalog: " + msg.err.Error())
		return m
	}
	if len(msg.movies) == 0 {
		m.setError("The catalog has no movies.")
		return m
	}

	id := msg.selectID
	if id == "" {
		id = defaultFeaturedID
	}
	featured, err := catalog.FindMovie(msg.movies, id)
	if err != nil {
		if msg.selectID != "" {
			log.Printf("tui: movie %s not found", msg.selectID)
			m.setError(fmt.Sprintf("Movie %s is no longer in the catalog.", msg.selectID))
			return m
		}
		first := msg.movies[0]
		featured = &first
	}

	m.movies = msg.movies
	m.featured = featured
	m.cursor = indexOf(m.movies, featured.ID)
	if msg.selectID != "" {
		m.notice = ""
	}
	return m
}

func (m Model) handlePurchaseDone(msg purchaseDoneMsg) Model {
	if msg.seq != m.seq {
		log.Printf("tui: dropping stale purchase response seq=%d latest=%d", msg.seq, m.seq)
		return m
	}
	m.state = Viewing
	if msg.err != nil {
		log.Printf("tui: purchase failed: %v", msg.err)
		if errors.Is(msg.err, catalog.ErrSoldOut) {
			m.setError("Sorry, this showing just sold out.")
		} else {
			m.setError("Purchase failed: " + msg.err.Error())
		}
		return m
	}

	updated := *msg.movie
	for i := range m.movies {
		if m.movies[i].ID == updated.ID {
			m.movies[i] = updated
		}
	}
	m.featured = &updated
	m.notice = fmt.Sprintf("Ticket #%d for %s purchased.", updated.TicketsSold, updated.Title)
	m.noticeIsErr = false
	return m
}

func (m *Model) setError(text string) {
	m.notice = text
	m.noticeIsErr = true
}

func indexOf(movies []model.Movie, id string) int {
	for i := range movies {
		if movies[i].ID == id {
			return i
		}
	}
	return 0
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Flatdango"))
	b.WriteString("\n")

	if m.featured == nil {
		if m.loading {
			b.WriteString(m.spinner.View() + " Loading catalog...")
		}
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderMenu(), m.renderCard()))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Footer.Render(m.renderFooter()))
	return b.String()
}

func (m Model) renderMenu() string {
	activeID := ""
	if m.featured != nil {
		activeID = m.featured.ID
	}
	lines := make([]string, 0, len(m.movies))
	for i, item := range storefront.BuildMenu(m.movies, activeID) {
		marker := "  "
		if item.Active {
			marker = "> "
		}
		line := marker + item.Title
		style := m.styles.MenuItem
		if item.SoldOut {
			style = m.styles.MenuSoldOut
		}
		if i == m.cursor {
			style = m.styles.MenuCursor
		}
		lines = append(lines, style.Render(line))
	}
	return m.styles.Menu.Render(strings.Join(lines, "\n"))
}

// renderCard replaces the whole card on every render; nothing from a
// previous movie survives.
func (m Model) renderCard() string {
	card := storefront.BuildCard(*m.featured)
	s := m.styles

	button := s.BuyButton.Render(card.ButtonLabel)
	if card.SoldOut {
		button = s.SoldOutLabel.Render(card.ButtonLabel)
	}
	if m.state == Purchasing {
		button = m.spinner.View() + " Purchasing..."
	}

	parts := []string{
		s.CardTitle.Render(card.Title),
		s.CardFaint.Render(card.Poster),
		"",
		card.Description,
		"",
		button,
		"",
		card.Runtime,
		card.Showtime,
	}
	if card.AvailabilityLine != "" {
		parts = append(parts, card.AvailabilityLine)
	}
	return s.Card.Render(strings.Join(parts, "\n"))
}

func (m Model) renderFooter() string {
	var lines []string
	if m.notice != "" {
		style := m.styles.Notice
		if m.noticeIsErr {
			style = m.styles.ErrorNotice
		}
		lines = append(lines, style.Render(m.notice))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}
