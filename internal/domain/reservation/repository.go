package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for reservation aggregates.
type Repository interface {
	// FindByID retrieves a reservation by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Reservation, error)

	// FindByHotel retrieves every reservation of a hotel, newest first.
	FindByHotel(ctx context.Context, hotelID uuid.UUID) ([]*Reservation, error)

	// FindByClient retrieves the reservations owned by a client account.
	FindByClient(ctx context.Context, clientID uuid.UUID) ([]*Reservation, error)

	// ExistsOverlapping reports whether any reservation with an active status
	// on the room intersects the half-open interval [startAt, endAt). Callers
	// must invoke it inside the same transaction as the subsequent insert.
	ExistsOverlapping(ctx context.Context, roomID uuid.UUID, startAt, endAt time.Time) (bool, error)

	// FindActiveFutureByRoom retrieves the active reservations on a room whose
	// endAt is after ref, ordered by startAt.
	FindActiveFutureByRoom(ctx context.Context, roomID uuid.UUID, ref time.Time) ([]*Reservation, error)

	// CountActiveByHotel counts active reservations across a hotel's rooms.
	CountActiveByHotel(ctx context.Context, hotelID uuid.UUID) (int64, error)

	// Save persists a new reservation. An exclusion-constraint violation is
	// reported as a conflict error, identical to a failed overlap pre-check.
	Save(ctx context.Context, r *Reservation) error

	// Update persists changes with optimistic locking: the row is written only
	// if its stored version equals the aggregate's version minus one, else a
	// conflict error is returned.
	Update(ctx context.Context, r *Reservation) error
}
