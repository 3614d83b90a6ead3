package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flatdango/internal/model"
)

var movieCols = []string{"id", "title", "description", "poster", "capacity", "tickets_sold", "runtime", "showtime"}

func newMockRepo(t *testing.T) (*MovieRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewMovieRepo(db), mock
}

func TestMovieRepo_ListAll(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + movieColumns + " FROM movies")).
		WillReturnRows(sqlmock.NewRows(movieCols).
			AddRow("1", "The Giant Gila Monster", "A giant lizard", "http://x/1.png", 30, 27, 108, "04:00PM").
			AddRow("2", "Manos", "Cult", "http://x/2.png", 20, 20, 118, "06:45PM"))

	movies, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, model.Movie{
		ID: "1", Title: "The Giant Gila Monster", Description: "A giant lizard", Poster: "http://x/1.png",
		Capacity: 30, TicketsSold: 27, Runtime: 108, Showtime: "04:00PM",
	}, movies[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepo_GetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM movies WHERE id = ?")).
		WithArgs("9").
		WillReturnError(sql.ErrNoRows)

	m, err := repo.GetByID(context.Background(), "9")
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieRepo_UpdateTicketsSold(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows(movieCols).AddRow("1", "Gila", "", "", 30, 29, 108, "04:00PM"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET tickets_sold = ? WHERE id = ?")).
		WithArgs(30, "1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m, err := repo.UpdateTicketsSold(context.Background(), "1", 30)
	require.NoError(t, err)
	assert.Equal(t, 30, m.TicketsSold)
	assert.True(t, m.SoldOut())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepo_UpdateTicketsSoldOverCapacity(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs("2").
		WillReturnRows(sqlmock.NewRows(movieCols).AddRow("2", "Manos", "", "", 20, 20, 118, "06:45PM"))
	mock.ExpectRollback()

	m, err := repo.UpdateTicketsSold(context.Background(), "2", 21)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepo_UpdateTicketsSoldUnknown(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).WithArgs("7").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := repo.UpdateTicketsSold(context.Background(), "7", 1)
	assert.ErrorIs(t, err, ErrMovieNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepo_Upsert(t *testing.T) {
	repo, mock := newMockRepo(t)
	m := model.Movie{ID: "3", Title: "Time Chasers", Capacity: 50, TicketsSold: 10, Runtime: 93, Showtime: "09:30PM"}
	mock.ExpectExec(regexp.QuoteMeta("ON DUPLICATE KEY UPDATE")).
		WithArgs(m.ID, m.Title, m.Description, m.Poster, m.Capacity, m.TicketsSold, m.Runtime, m.Showtime).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), m))
	assert.NoError(t, mock.ExpectationsWereMet())
}
