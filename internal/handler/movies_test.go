package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-reservation/internal/catalog"
)

// fakeCatalog implements MovieCatalog in memory.  Shared by the movie proxy
// and reservation tests in this package.
type fakeCatalog struct {
	known    map[uint64]bool
	lastList catalog.ListQuery
	fail     bool
}

func (f *fakeCatalog) List(_ context.Context, q catalog.ListQuery) ([]byte, error) {
	if f.fail {
		return nil, catalog.ErrUpstream
	}
	f.lastList = q
	return []byte(`{"page":1,"results":[]}`), nil
}

func (f *fakeCatalog) MovieByID(_ context.Context, id uint64) ([]byte, error) {
	if f.fail {
		return nil, catalog.ErrUpstream
	}
	if !f.known[id] {
		return nil, catalog.ErrMovieNotFound
	}
	return []byte(`{"id":` + strconv.FormatUint(id, 10) + `}`), nil
}

func newMovieCtx(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMovieList_SearchAndSortAreExclusive(t *testing.T) {
	h := NewMovieHandler(&fakeCatalog{})
	c, rec := newMovieCtx(t, "/movies?search=dune&sort_by=popularity.desc")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMovieList_DefaultsToNowPlayingPageOne(t *testing.T) {
	cat := &fakeCatalog{}
	h := NewMovieHandler(cat)
	c, rec := newMovieCtx(t, "/movies")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cat.lastList.Page != 1 || cat.lastList.Search != "" || cat.lastList.SortBy != "" {
		t.Fatalf("unexpected query forwarded: %+v", cat.lastList)
	}
}

func TestMovieList_ForwardsFilters(t *testing.T) {
	cat := &fakeCatalog{}
	h := NewMovieHandler(cat)
	c, _ := newMovieCtx(t, "/movies?page=3&search=dune")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if cat.lastList.Page != 3 || cat.lastList.Search != "dune" {
		t.Fatalf("unexpected query forwarded: %+v", cat.lastList)
	}
}

func TestMovieList_InvalidPage(t *testing.T) {
	h := NewMovieHandler(&fakeCatalog{})
	c, rec := newMovieCtx(t, "/movies?page=zero")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMovieList_UpstreamFailure(t *testing.T) {
	h := NewMovieHandler(&fakeCatalog{fail: true})
	c, rec := newMovieCtx(t, "/movies")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestMovieGetByID(t *testing.T) {
	h := NewMovieHandler(&fakeCatalog{known: map[uint64]bool{603: true}})

	c, rec := newMovieCtx(t, "/movies/603")
	c.SetParamNames("id")
	c.SetParamValues("603")
	if err := h.GetByID(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"id":603`) {
		t.Fatalf("expected raw payload passthrough, got %s", rec.Body.String())
	}

	c, rec = newMovieCtx(t, "/movies/999")
	c.SetParamNames("id")
	c.SetParamValues("999")
	if err := h.GetByID(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown movie, got %d", rec.Code)
	}
}
