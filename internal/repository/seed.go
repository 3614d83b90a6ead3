package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/iliyamo/flatdango/internal/model"
)

// seedFile mirrors the json-server db.json layout: {"movies": [...]}.
type seedFile struct {
	Movies []model.Movie `json:"movies"`
}

// ParseSeed decodes a db.json document.  Comments and trailing commas are
// accepted so hand-edited seed files still load.
func ParseSeed(data []byte) ([]model.Movie, error) {
	var f seedFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	for i, m := range f.Movies {
		if m.ID == "" {
			return nil, fmt.Errorf("parse seed: movie %d has no id", i)
		}
	}
	return f.Movies, nil
}

// Upserter is implemented by both movie stores.
type Upserter interface {
	Upsert(ctx context.Context, m model.Movie) error
}

// SeedFromFile loads path and upserts every movie into store.  It returns
// the number of movies written.
func SeedFromFile(ctx context.Context, store Upserter, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	movies, err := ParseSeed(data)
	if err != nil {
		return 0, err
	}
	for _, m := range movies {
		if err := store.Upsert(ctx, m); err != nil {
			return 0, fmt.Errorf("seed movie %s: %w", m.ID, err)
		}
	}
	return len(movies), nil
}
