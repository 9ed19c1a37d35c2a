package queue

import "time"

// ReservationConfirmedEvent is published to the reservation.confirmed queue
// after a booking is persisted.  Consumers must tolerate unknown fields;
// the event only grows.
type ReservationConfirmedEvent struct {
	ReservationID   uint64    `json:"reservation_id"`
	UserID          uint64    `json:"user_id"`
	MovieID         uint64    `json:"movie_id"`
	ReservationDate time.Time `json:"reservation_date"`
	CreatedAt       time.Time `json:"created_at"`
}
