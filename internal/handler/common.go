package handler // handler defines http handlers

import (
	"context" // context carries deadlines into the data layer
	"errors"  // errors provides sentinel values used in getUserID
	"strconv" // strconv converts strings to numeric types
	"time"    // time is needed for store interfaces

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/iliyamo/movie-reservation/internal/catalog"    // catalog defines the outbound movie API types
	"github.com/iliyamo/movie-reservation/internal/repository" // repository holds data access layer
)

// UserStore is the slice of the user repository the handlers need.  Declared
// on the consumer side so tests can substitute in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, email, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (repository.User, error)
	GetByID(ctx context.Context, id uint64) (repository.User, error)
}

// TokenStore persists refresh tokens by hash.
type TokenStore interface {
	StoreRefresh(ctx context.Context, userID uint64, tokenHash string, exp time.Time) error
	ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
}

// ReservationStore covers the booking operations: insert, list, the
// conflict-window range query and owner-scoped deletion.
type ReservationStore interface {
	Create(ctx context.Context, userID, movieID uint64, at time.Time) (repository.Reservation, error)
	ListByUser(ctx context.Context, userID uint64) ([]repository.Reservation, error)
	ListBetween(ctx context.Context, userID uint64, from, to time.Time) ([]repository.Reservation, error)
	DeleteOwned(ctx context.Context, id, userID uint64) error
}

// MovieCatalog is the outbound movie metadata API, satisfied by *catalog.Client.
type MovieCatalog interface {
	List(ctx context.Context, q catalog.ListQuery) ([]byte, error)
	MovieByID(ctx context.Context, id uint64) ([]byte, error)
}

// getUserID extracts the user_id placed in context by the JWT middleware and
// converts it to uint64.  JWT numeric claims decode as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getUserEmail extracts the email claim stored by the JWT middleware.
func getUserEmail(c echo.Context) string {
	if s, ok := c.Get("email").(string); ok {
		return s
	}
	return ""
}
