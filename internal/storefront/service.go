package storefront

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/flatdango/internal/catalog"
	"github.com/iliyamo/flatdango/internal/model"
	"github.com/iliyamo/flatdango/internal/queue"
	"github.com/iliyamo/flatdango/internal/utils"
)

// ErrSoldOut is returned when a purchase is attempted with no tickets left.
var ErrSoldOut = catalog.ErrSoldOut

// ErrNoMovies is returned when the catalog is reachable but empty.
var ErrNoMovies = errors.New("catalog has no movies")

// Catalog is the subset of the catalog client the storefront needs.
type Catalog interface {
	FetchMovies(ctx context.Context) ([]model.Movie, error)
	PatchMovie(ctx context.Context, id string, ticketsSold int) (*model.Movie, error)
}

// EventPublisher receives purchase events.  Publishing is best effort.
type EventPublisher interface {
	PublishTicketPurchased(ctx context.Context, event queue.TicketPurchasedEvent) error
}

// Service implements the storefront interactions.  It holds no per-user
// state: every call re-fetches the catalog.
type Service struct {
	catalog    Catalog
	events     EventPublisher
	secret     string
	featuredID string
}

// NewService builds a Service.  events may be nil to disable purchase
// events.  featuredID selects the landing page movie.
func NewService(c Catalog, events EventPublisher, receiptSecret, featuredID string) *Service {
	if c == nil {
		panic("nil catalog passed to NewService")
	}
	return &Service{catalog: c, events: events, secret: receiptSecret, featuredID: featuredID}
}

// Home returns the landing page: the configured featured movie, or the
// first movie when that id is not in the catalog.
func (s *Service) Home(ctx context.Context) (*Page, error) {
	movies, err := s.catalog.FetchMovies(ctx)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, ErrNoMovies
	}
	featured, err := catalog.FindMovie(movies, s.featuredID)
	if err != nil {
		featured = &movies[0]
	}
	return BuildPage(movies, *featured), nil
}

// Select returns the page featuring movie id.
func (s *Service) Select(ctx context.Context, id string) (*Page, error) {
	movies, err := s.catalog.FetchMovies(ctx)
	if err != nil {
		return nil, err
	}
	m, err := catalog.FindMovie(movies, id)
	if err != nil {
		return nil, err
	}
	return BuildPage(movies, *m), nil
}

// Purchase buys one ticket for movie id.  It re-fetches the movie, refuses
// when sold out, and PATCHes tickets_sold+1.  The returned page features the
// record the catalog sent back.  On ErrSoldOut the page is still returned so
// the caller can show the sold out card.
func (s *Service) Purchase(ctx context.Context, id string) (*Page, error) {
	movies, err := s.catalog.FetchMovies(ctx)
	if err != nil {
		return nil, err
	}
	m, err := catalog.FindMovie(movies, id)
	if err != nil {
		return nil, err
	}
	if m.SoldOut() {
		return BuildPage(movies, *m), ErrSoldOut
	}

	updated, err := s.catalog.PatchMovie(ctx, m.ID, m.TicketsSold+1)
	if err != nil {
		return nil, err
	}
	for i := range movies {
		if movies[i].ID == updated.ID {
			movies[i] = *updated
		}
	}
	page := BuildPage(movies, *updated)

	receipt, err := utils.IssueReceipt(s.secret, *updated)
	if err != nil {
		// the ticket is sold either way; the buyer just gets no code
		log.Printf("storefront: issue receipt for movie %s failed: %v", updated.ID, err)
	} else {
		page.Receipt = &ReceiptView{Code: receipt.Code, Seat: receipt.Claims.Seat, Title: updated.Title}
	}
	s.publish(ctx, *updated, receipt.ID)
	return page, nil
}

// VerifyReceipt checks a receipt code issued by Purchase.
func (s *Service) VerifyReceipt(code string) (*utils.ReceiptClaims, error) {
	return utils.VerifyReceipt(s.secret, code)
}

func (s *Service) publish(ctx context.Context, m model.Movie, eventID string) {
	if s.events == nil {
		return
	}
	if eventID == "" {
		eventID = uuid.NewString()
	}
	ev := queue.TicketPurchasedEvent{
		EventID:      eventID,
		MovieID:      m.ID,
		MovieTitle:   m.Title,
		Showtime:     m.Showtime,
		TicketNumber: m.TicketsSold,
		TicketsSold:  m.TicketsSold,
		Capacity:     m.Capacity,
		PurchasedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.events.PublishTicketPurchased(pctx, ev); err != nil {
		log.Printf("storefront: publish purchase of movie %s failed: %v", m.ID, err)
	}
}
