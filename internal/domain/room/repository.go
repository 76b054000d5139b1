package room

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for room aggregates.
type Repository interface {
	// FindByID retrieves a room by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// FindByHotel retrieves all rooms of a hotel, ordered by room number.
	FindByHotel(ctx context.Context, hotelID uuid.UUID) ([]*Room, error)

	// FindAvailable retrieves the FREE rooms of a hotel with no active
	// reservation overlapping [startAt, endAt).
	FindAvailable(ctx context.Context, hotelID uuid.UUID, startAt, endAt time.Time) ([]*Room, error)

	// ExistsByHotelAndNumber reports whether a room number is already taken
	// within a hotel.
	ExistsByHotelAndNumber(ctx context.Context, hotelID uuid.UUID, roomNumber int) (bool, error)

	// Save persists a new room.
	Save(ctx context.Context, r *Room) error

	// SaveAll persists a batch of new rooms.
	SaveAll(ctx context.Context, rooms []*Room) error

	// Update persists changes to an existing room.
	Update(ctx context.Context, r *Room) error

	// Delete removes a room from inventory.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByHotel removes every room of a hotel.
	DeleteByHotel(ctx context.Context, hotelID uuid.UUID) error
}
