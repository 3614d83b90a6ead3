package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedDoc = `{
  // json-server database
  "movies": [
    {
      "id": "1",
      "title": "The Giant Gila Monster",
      "runtime": 108,
      "capacity": 30,
      "showtime": "04:00PM",
      "tickets_sold": 27,
      "description": "A giant lizard terrorizes a rural Texas community.",
      "poster": "https://www.gstatic.com/tv/thumb/v22vodart/2157/p2157_v_v8_ab.jpg",
    },
  ],
}`

func TestParseSeedAcceptsComments(t *testing.T) {
	movies, err := ParseSeed([]byte(seedDoc))
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "1", movies[0].ID)
	assert.Equal(t, 27, movies[0].TicketsSold)
	assert.Equal(t, 3, movies[0].Available())
}

func TestParseSeedRejectsMissingID(t *testing.T) {
	_, err := ParseSeed([]byte(`{"movies":[{"title":"anonymous"}]}`))
	assert.ErrorContains(t, err, "has no id")
}

func TestSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte(seedDoc), 0o644))

	repo := NewMemoryMovieRepo()
	n, err := SeedFromFile(context.Background(), repo, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	m, err := repo.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "The Giant Gila Monster", m.Title)
}
