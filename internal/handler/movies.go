package handler

import (
	"context"  // request-scoped timeouts for upstream calls
	"errors"   // sentinel comparisons against catalog errors
	"net/http" // status codes and content types
	"strconv"  // query/path parameter parsing
	"time"     // upstream call timeout

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/movie-reservation/internal/catalog" // outbound movie API client
)

// MovieHandler proxies browse requests to the external movie catalog.  The
// upstream payload is forwarded verbatim so clients see the catalog's own
// pagination and movie shapes.
type MovieHandler struct {
	Catalog MovieCatalog
}

func NewMovieHandler(cat MovieCatalog) *MovieHandler {
	if cat == nil {
		panic("nil catalog passed to NewMovieHandler")
	}
	return &MovieHandler{Catalog: cat}
}

// List handles GET /movies?page&search&sort_by.  Supplying both a search
// term and a sort key is rejected: searching hits /search/movie, which
// ignores sort keys, so accepting both would silently drop one filter.
func (h *MovieHandler) List(c echo.Context) error {
	search := c.QueryParam("search")
	sortBy := c.QueryParam("sort_by")
	if search != "" && sortBy != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot combine search and sort_by"})
	}
	page := 1
	if p := c.QueryParam("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid page"})
		}
		page = n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	body, err := h.Catalog.List(ctx, catalog.ListQuery{Page: page, Search: search, SortBy: sortBy})
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "movie catalog unavailable"})
	}
	return c.JSONBlob(http.StatusOK, body)
}

// GetByID handles GET /movies/:id.
func (h *MovieHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	body, err := h.Catalog.MovieByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalog.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "movie catalog unavailable"})
	}
	return c.JSONBlob(http.StatusOK, body)
}
