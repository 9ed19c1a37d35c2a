package repository

import (
	"context"
	"database/sql"
	"time"
)

// Reservation mirrors the 'reservations' table.  MovieID is an external
// catalog identifier; it is checked against the catalog at booking time
// and never re-validated afterwards.  ReservationDate is stored in UTC.
type Reservation struct {
	ID              uint64    `json:"id"`
	UserID          uint64    `json:"user_id"`
	MovieID         uint64    `json:"movie_id"`
	ReservationDate time.Time `json:"reservation_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// ReservationRepo provides CRUD operations for reservations.  A reservation
// has no intermediate states: it either exists or it was deleted by its owner.
type ReservationRepo struct{ DB *sql.DB }

func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{DB: db} }

// Create inserts a reservation and returns the stored row.
func (r *ReservationRepo) Create(ctx context.Context, userID, movieID uint64, at time.Time) (Reservation, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO reservations (user_id, movie_id, reservation_date) VALUES (?,?,?)",
		userID, movieID, at.UTC())
	if err != nil {
		return Reservation{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Reservation{}, err
	}
	var out Reservation
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,user_id,movie_id,reservation_date,created_at FROM reservations WHERE id=? LIMIT 1",
		id).Scan(&out.ID, &out.UserID, &out.MovieID, &out.ReservationDate, &out.CreatedAt)
	return out, err
}

// ListByUser returns all reservations belonging to a user, newest first.
// An empty slice is returned when the user has none.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,movie_id,reservation_date,created_at FROM reservations WHERE user_id=? ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Reservation, 0)
	for rows.Next() {
		var rec Reservation
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.MovieID, &rec.ReservationDate, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListBetween returns the user's reservations whose reservation_date falls in
// the inclusive range [from, to].  BETWEEN is inclusive on both ends, which
// is exactly the conflict-window semantic the booking handler relies on.
func (r *ReservationRepo) ListBetween(ctx context.Context, userID uint64, from, to time.Time) ([]Reservation, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,user_id,movie_id,reservation_date,created_at FROM reservations WHERE user_id=? AND reservation_date BETWEEN ? AND ?",
		userID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]Reservation, 0)
	for rows.Next() {
		var rec Reservation
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.MovieID, &rec.ReservationDate, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DeleteOwned deletes a reservation only when it belongs to the given user.
// ErrNotFound covers both a missing row and a row owned by someone else;
// callers cannot distinguish the two, which avoids leaking other users' IDs.
func (r *ReservationRepo) DeleteOwned(ctx context.Context, id, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM reservations WHERE id=? AND user_id=?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
