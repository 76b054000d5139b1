package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/hotelmanager/service-rooms/internal/platform/domain"
)

// Reservation is the aggregate root for a booking of one room over a
// half-open time interval [startAt, endAt).
type Reservation struct {
	id             uuid.UUID
	hotelID        uuid.UUID
	roomID         uuid.UUID
	clientID       *uuid.UUID
	guestFirstName string
	guestLastName  string
	guestPhone     string
	startAt        time.Time
	endAt          time.Time
	status         Status
	version        int64
	createdAt      time.Time
	updatedAt      time.Time
}

// NewReservation creates a reservation with validated fields. Status must be
// PENDING or CONFIRMED; later statuses are only reachable through Transition.
func NewReservation(
	hotelID, roomID uuid.UUID,
	clientID *uuid.UUID,
	guestFirstName, guestLastName, guestPhone string,
	startAt, endAt time.Time,
	status Status,
) (*Reservation, error) {
	if hotelID == uuid.Nil {
		return nil, domain.NewValidationError("hotel ID is required")
	}
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if guestFirstName == "" || guestLastName == "" {
		return nil, domain.NewValidationError("guest name is required")
	}
	if startAt.IsZero() || endAt.IsZero() || !startAt.Before(endAt) {
		return nil, domain.NewValidationError("invalid reservation interval: startAt must be before endAt")
	}
	if status != StatusPending && status != StatusConfirmed {
		return nil, domain.NewValidationError("a new reservation must start as PENDING or CONFIRMED")
	}

	now := time.Now().UTC()
	return &Reservation{
		id:             uuid.New(),
		hotelID:        hotelID,
		roomID:         roomID,
		clientID:       clientID,
		guestFirstName: guestFirstName,
		guestLastName:  guestLastName,
		guestPhone:     guestPhone,
		startAt:        startAt.UTC(),
		endAt:          endAt.UTC(),
		status:         status,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstruct rebuilds a Reservation from persistence data (no validation).
func Reconstruct(
	id, hotelID, roomID uuid.UUID,
	clientID *uuid.UUID,
	guestFirstName, guestLastName, guestPhone string,
	startAt, endAt time.Time,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:             id,
		hotelID:        hotelID,
		roomID:         roomID,
		clientID:       clientID,
		guestFirstName: guestFirstName,
		guestLastName:  guestLastName,
		guestPhone:     guestPhone,
		startAt:        startAt,
		endAt:          endAt,
		status:         status,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// --- Getters ---

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) HotelID() uuid.UUID     { return r.hotelID }
func (r *Reservation) RoomID() uuid.UUID      { return r.roomID }
func (r *Reservation) ClientID() *uuid.UUID   { return r.clientID }
func (r *Reservation) GuestFirstName() string { return r.guestFirstName }
func (r *Reservation) GuestLastName() string  { return r.guestLastName }
func (r *Reservation) GuestPhone() string     { return r.guestPhone }
func (r *Reservation) StartAt() time.Time     { return r.startAt }
func (r *Reservation) EndAt() time.Time       { return r.endAt }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) Version() int64         { return r.version }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }

// --- Behavior ---

// Transition moves the reservation to the target status if the status state
// machine allows it.
func (r *Reservation) Transition(target Status) error {
	if !r.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(r.status), string(target))
	}
	r.status = target
	r.updatedAt = time.Now().UTC()
	return nil
}

// ForceCancel sets the status to CANCELED regardless of the transition table.
// Reserved for the administrative recovery path; user-facing cancellation
// goes through Transition.
func (r *Reservation) ForceCancel() {
	r.status = StatusCanceled
	r.updatedAt = time.Now().UTC()
}

// IsOwnedBy checks if the reservation belongs to the given client account.
func (r *Reservation) IsOwnedBy(clientID uuid.UUID) bool {
	return r.clientID != nil && *r.clientID == clientID
}

// CancelableByClient reports whether the owning client may still cancel:
// only from PENDING or CONFIRMED, and only before the stay starts.
func (r *Reservation) CancelableByClient(now time.Time) bool {
	if r.status != StatusPending && r.status != StatusConfirmed {
		return false
	}
	return r.startAt.After(now)
}

// Overlaps reports whether the half-open interval [startAt, endAt) of the
// given candidate intersects this reservation's interval.
func (r *Reservation) Overlaps(startAt, endAt time.Time) bool {
	return !(r.endAt.Compare(startAt) <= 0 || r.startAt.Compare(endAt) >= 0)
}

// IncrementVersion bumps the version for optimistic locking.
func (r *Reservation) IncrementVersion() {
	r.version++
	r.updatedAt = time.Now().UTC()
}
