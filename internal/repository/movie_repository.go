// Package repository contains data access logic separated from HTTP handlers.
// This file defines the MySQL-backed movie store used by the catalog
// service.  Ticket counts are changed inside a transaction so that the
// capacity check and the write see the same row.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"

	"github.com/iliyamo/flatdango/internal/model"
)

// MovieRepo encapsulates all database queries related to movies.  It
// depends on a sql.DB connection which should be configured elsewhere.
type MovieRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = "id, title, description, poster, capacity, tickets_sold, runtime, showtime"

func scanMovie(row interface{ Scan(...any) error }, m *model.Movie) error {
	return row.Scan(&m.ID, &m.Title, &m.Description, &m.Poster, &m.Capacity, &m.TicketsSold, &m.Runtime, &m.Showtime)
}

// ListAll returns every movie ordered by id length, then id, so numeric
// string ids keep their natural order ("2" before "10").
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movies ORDER BY CHAR_LENGTH(id), id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := scanMovie(rows, &m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a movie by its id.  It returns ErrMovieNotFound if no row
// is found.
func (r *MovieRepo) GetByID(ctx context.Context, id string) (*model.Movie, error) {
	const q = "SELECT " + movieColumns + " FROM movies WHERE id = ?"
	var m model.Movie
	if err := scanMovie(r.db.QueryRowContext(ctx, q, id), &m); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// UpdateTicketsSold sets tickets_sold for a movie and returns the stored
// record.  ErrMovieNotFound is returned for unknown ids and ErrConflict
// when sold falls outside [0, capacity].
func (r *MovieRepo) UpdateTicketsSold(ctx context.Context, id string, sold int) (m *model.Movie, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			m, err = nil, cerr
		}
	}()

	const qLock = "SELECT " + movieColumns + " FROM movies WHERE id = ? FOR UPDATE"
	var cur model.Movie
	if err = scanMovie(tx.QueryRowContext(ctx, qLock, id), &cur); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	if sold < 0 || sold > cur.Capacity {
		return nil, ErrConflict
	}
	const qUpdate = "UPDATE movies SET tickets_sold = ? WHERE id = ?"
	if _, err = tx.ExecContext(ctx, qUpdate, sold, id); err != nil {
		return nil, err
	}
	cur.TicketsSold = sold
	return &cur, nil
}

// Upsert inserts a movie or replaces an existing row with the same id.  It
// is used when seeding the store from a db.json file.
func (r *MovieRepo) Upsert(ctx context.Context, m model.Movie) error {
	const q = `INSERT INTO movies (` + movieColumns + `)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE
	             title = VALUES(title), description = VALUES(description), poster = VALUES(poster),
	             capacity = VALUES(capacity), tickets_sold = VALUES(tickets_sold),
	             runtime = VALUES(runtime), showtime = VALUES(showtime)`
	_, err := r.db.ExecContext(ctx, q, m.ID, m.Title, m.Description, m.Poster, m.Capacity, m.TicketsSold, m.Runtime, m.Showtime)
	return err
}
