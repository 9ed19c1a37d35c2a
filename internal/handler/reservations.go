package handler

import (
	"context"  // bounded contexts around DB and upstream calls
	"errors"   // sentinel comparisons
	"log"      // best-effort event publish logging
	"net/http" // HTTP status codes
	"strconv"  // path parameter parsing
	"time"     // conflict-window arithmetic

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/movie-reservation/internal/queue"           // event types
	"github.com/iliyamo/movie-reservation/internal/repository"      // sentinel errors
	publisher "github.com/iliyamo/movie-reservation/internal/service" // queue publisher
)

// conflictWindow is how long before a requested show time an existing
// reservation blocks a new booking.  The check is one-directional: only
// reservations in [requested-2h, requested] conflict.  A reservation that
// starts shortly *after* the requested time does not block it; that matches
// the shipped behavior and changing it is a product call, not a bug fix.
const conflictWindow = 2 * time.Hour

// ReservationHandler implements listing, booking and cancellation for the
// authenticated user.  Booking runs two independent checks: no existing
// reservation inside the conflict window, and the movie must exist in the
// catalog.  The window query and the insert are separate statements with no
// transaction between them, so concurrent bookings for the same user can
// race; this mirrors the original system.
type ReservationHandler struct {
	Reservations ReservationStore
	Catalog      MovieCatalog
	PublishEvent func(ctx context.Context, ev queue.ReservationConfirmedEvent) error
}

func NewReservationHandler(store ReservationStore, cat MovieCatalog) *ReservationHandler {
	if store == nil || cat == nil {
		panic("nil dependency passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Reservations: store,
		Catalog:      cat,
		PublishEvent: publisher.PublishReservationConfirmed,
	}
}

type createReservationReq struct {
	MovieID uint64 `json:"movieId"`
	Time    string `json:"time"` // RFC 3339 show start time
}

// List handles GET /reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, list)
}

// Create handles POST /reservations.  The caller may not hold another
// reservation whose start falls in the inclusive window
// [requested-2h, requested], and the movie must exist in the catalog.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movieId must be a positive number"})
	}
	requested, err := time.Parse(time.RFC3339, req.Time)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time must be an RFC 3339 timestamp"})
	}
	requested = requested.UTC()

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	// Window query first, catalog lookup second, window verdict last;
	// both checks must pass and neither depends on the other.
	conflicts, err := h.Reservations.ListBetween(ctx, userID, requested.Add(-conflictWindow), requested)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if _, err := h.Catalog.MovieByID(ctx, req.MovieID); err != nil {
		// Any catalog failure rejects the booking; a movie we cannot
		// confirm is treated as nonexistent.
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "the movie does not exist"})
	}
	if len(conflicts) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "time is already taken by a movie"})
	}

	res, err := h.Reservations.Create(ctx, userID, req.MovieID, requested)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}

	// Best-effort event; booking already succeeded.
	if h.PublishEvent != nil {
		ev := queue.ReservationConfirmedEvent{
			ReservationID:   res.ID,
			UserID:          res.UserID,
			MovieID:         res.MovieID,
			ReservationDate: res.ReservationDate,
			CreatedAt:       res.CreatedAt,
		}
		if err := h.PublishEvent(context.WithoutCancel(ctx), ev); err != nil {
			log.Printf("reservation %d: publish confirmed event failed: %v", res.ID, err)
		}
	}

	return c.JSON(http.StatusCreated, res)
}

// Delete handles DELETE /reservations/:id.  Only the owner may delete; a
// missing or foreign reservation yields the same 400 response.
func (h *ReservationHandler) Delete(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Reservations.DeleteOwned(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservation not found or unauthorized"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
