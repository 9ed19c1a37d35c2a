// Package catalog talks to the external movie metadata API (TMDB-compatible).
// Responses are passed through as raw JSON; the service never re-shapes the
// upstream payload, it only picks the endpoint and attaches the bearer token.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var (
	// ErrMovieNotFound is returned when the catalog has no movie with the
	// requested ID.  Booking uses this to reject reservations distinctly
	// from other upstream failures.
	ErrMovieNotFound = errors.New("movie not found in catalog")
	// ErrUpstream covers any other non-2xx answer or transport failure.
	ErrUpstream = errors.New("movie catalog request failed")
)

// ListQuery holds the supported browse filters.  Search and SortBy are
// mutually exclusive; the handler rejects requests carrying both before a
// query ever reaches the client.
type ListQuery struct {
	Page   int
	Search string
	SortBy string
}

// Client is a thin HTTP client for the movie catalog.
type Client struct {
	base  string
	token string
	http  *http.Client
}

// New returns a Client for the given base URL (e.g. https://api.themoviedb.org/3)
// and bearer token.
func New(base, token string) *Client {
	return &Client{
		base:  base,
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}
}

// List fetches a page of movies.  Endpoint selection mirrors the upstream
// API surface: a search term queries /search/movie, a sort key queries
// /discover/movie, and with neither filter the now-playing list is returned.
func (c *Client) List(ctx context.Context, q ListQuery) ([]byte, error) {
	path := "/movie/now_playing"
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	} else {
		params.Set("page", "1")
	}
	switch {
	case q.Search != "":
		path = "/search/movie"
		params.Set("query", q.Search)
	case q.SortBy != "":
		path = "/discover/movie"
		params.Set("sort_by", q.SortBy)
	}
	return c.get(ctx, path, params)
}

// MovieByID fetches a single movie.  A 404 from the catalog maps to
// ErrMovieNotFound so callers can distinguish "no such movie" from outages.
func (c *Client) MovieByID(ctx context.Context, id uint64) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/movie/%d", id), nil)
}

func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("catalog: GET %s failed: %v", path, err)
		return nil, ErrUpstream
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrUpstream
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrMovieNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.Printf("catalog: GET %s returned %d", path, resp.StatusCode)
		return nil, ErrUpstream
	}
	return body, nil
}
