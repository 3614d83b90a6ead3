// Package catalog is the HTTP client for the movie catalog REST resource.
// Every call goes through a circuit breaker so that a dead catalog fails
// fast instead of stacking up timeouts behind each page view.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/iliyamo/flatdango/internal/model"
)

// Client fetches and updates movies on a json-server style REST resource.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient builds a Client for baseURL (e.g. http://localhost:3000).  The
// timeout bounds each request; zero means no timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker(breakerSettings("catalog")),
	}
}

// breakerSettings trips after five consecutive failures and probes again
// after 30 seconds.  Missing movies, sold out refusals and rate limit
// answers come from a healthy catalog, so they do not count against the
// breaker.
func breakerSettings(name string) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("catalog: breaker %q changed from %s to %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrMovieNotFound) ||
				errors.Is(err, ErrSoldOut) ||
				errors.Is(err, ErrThrottled) ||
				errors.Is(err, context.Canceled)
		},
	}
}

// FetchMovies returns the full catalog.
func (c *Client) FetchMovies(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	if err := c.do(ctx, http.MethodGet, "/movies", false, nil, &movies); err != nil {
		log.Printf("catalog: fetch movies failed: %v", err)
		return nil, err
	}
	return movies, nil
}

// GetMovie fetches the catalog and returns the movie whose id equals id.
// ErrMovieNotFound is returned when the catalog loaded but has no match.
func (c *Client) GetMovie(ctx context.Context, id string) (*model.Movie, error) {
	movies, err := c.FetchMovies(ctx)
	if err != nil {
		return nil, err
	}
	return FindMovie(movies, id)
}

// PatchMovie sets tickets_sold for the movie and returns the record the
// catalog stored.
func (c *Client) PatchMovie(ctx context.Context, id string, ticketsSold int) (*model.Movie, error) {
	body := map[string]int{"tickets_sold": ticketsSold}
	var movie model.Movie
	if err := c.do(ctx, http.MethodPatch, "/movies/"+url.PathEscape(id), true, body, &movie); err != nil {
		log.Printf("catalog: patch movie %s failed: %v", id, err)
		return nil, err
	}
	return &movie, nil
}

// FindMovie returns the movie with the given id from movies.
func FindMovie(movies []model.Movie, id string) (*model.Movie, error) {
	for i := range movies {
		if movies[i].ID == id {
			m := movies[i]
			return &m, nil
		}
	}
	return nil, ErrMovieNotFound
}

// do performs one JSON request through the breaker and decodes the
// response into out.  item marks requests addressing a single movie; only
// those map 404 and 409 to ErrMovieNotFound and ErrSoldOut.  A 404 on the
// collection means a misconfigured catalog and stays a StatusError.
func (c *Client) do(ctx context.Context, method, path string, item bool, in, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.roundTrip(ctx, method, path, item, in, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, item bool, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}
	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		se := &StatusError{Method: method, URL: target, Code: resp.StatusCode, Status: resp.Status}
		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %w", ErrThrottled, se)
		case item && resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrMovieNotFound, se)
		case item && resp.StatusCode == http.StatusConflict:
			return fmt.Errorf("%w: %w", ErrSoldOut, se)
		}
		return se
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, target, err)
	}
	return nil
}
