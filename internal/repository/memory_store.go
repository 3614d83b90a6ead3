package repository

import (
	"context"
	"sync"

	"github.com/iliyamo/flatdango/internal/model"
)

// MemoryMovieRepo is an in-process movie store with the same semantics as
// MovieRepo.  It keeps insertion order, like json-server does for db.json.
type MemoryMovieRepo struct {
	mu     sync.RWMutex
	order  []string
	movies map[string]model.Movie
}

// NewMemoryMovieRepo returns a store preloaded with movies.
func NewMemoryMovieRepo(movies ...model.Movie) *MemoryMovieRepo {
	r := &MemoryMovieRepo{movies: make(map[string]model.Movie, len(movies))}
	for _, m := range movies {
		_ = r.Upsert(context.Background(), m)
	}
	return r
}

func (r *MemoryMovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Movie, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.movies[id])
	}
	return out, nil
}

func (r *MemoryMovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	return &m, nil
}

func (r *MemoryMovieRepo) UpdateTicketsSold(ctx context.Context, id string, sold int) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	if sold < 0 || sold > m.Capacity {
		return nil, ErrConflict
	}
	m.TicketsSold = sold
	r.movies[id] = m
	return &m, nil
}

func (r *MemoryMovieRepo) Upsert(ctx context.Context, m model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.movies[m.ID]; !ok {
		r.order = append(r.order, m.ID)
	}
	r.movies[m.ID] = m
	return nil
}
