package room

import (
	"time"

	"github.com/google/uuid"

	"github.com/hotelmanager/service-rooms/internal/platform/domain"
)

// Room is the aggregate root for a physical hotel room.
type Room struct {
	id          uuid.UUID
	hotelID     uuid.UUID
	roomNumber  int
	roomType    string
	floor       int
	description string
	state       State
	active      bool
	clientID    *uuid.UUID
	lastUpdated time.Time
}

// NewRoom creates a new Room in state FREE.
func NewRoom(hotelID uuid.UUID, roomNumber int, roomType string, floor int, description string) (*Room, error) {
	if hotelID == uuid.Nil {
		return nil, domain.NewValidationError("hotel ID is required")
	}
	if roomNumber < 1 {
		return nil, domain.NewValidationError("room number must be positive")
	}
	if roomType == "" {
		return nil, domain.NewValidationError("room type is required")
	}

	return &Room{
		id:          uuid.New(),
		hotelID:     hotelID,
		roomNumber:  roomNumber,
		roomType:    roomType,
		floor:       floor,
		description: description,
		state:       StateFree,
		active:      true,
		lastUpdated: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Room from persistence data (no validation).
func Reconstruct(
	id, hotelID uuid.UUID,
	roomNumber int,
	roomType string,
	floor int,
	description string,
	state State,
	active bool,
	clientID *uuid.UUID,
	lastUpdated time.Time,
) *Room {
	return &Room{
		id:          id,
		hotelID:     hotelID,
		roomNumber:  roomNumber,
		roomType:    roomType,
		floor:       floor,
		description: description,
		state:       state,
		active:      active,
		clientID:    clientID,
		lastUpdated: lastUpdated,
	}
}

// --- Getters ---

func (r *Room) ID() uuid.UUID          { return r.id }
func (r *Room) HotelID() uuid.UUID     { return r.hotelID }
func (r *Room) RoomNumber() int        { return r.roomNumber }
func (r *Room) RoomType() string       { return r.roomType }
func (r *Room) Floor() int             { return r.floor }
func (r *Room) Description() string    { return r.description }
func (r *Room) State() State           { return r.state }
func (r *Room) Active() bool           { return r.active }
func (r *Room) ClientID() *uuid.UUID   { return r.clientID }
func (r *Room) LastUpdated() time.Time { return r.lastUpdated }

// --- Behavior ---

// TransitionTo performs a manual (staff-initiated) state change, validated
// against the transition table.
func (r *Room) TransitionTo(target State) error {
	if !r.state.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(r.state), string(target))
	}
	r.state = target
	r.lastUpdated = time.Now().UTC()
	return nil
}

// ApplyReservationState forces the room into the state derived from a
// reservation status change. This is the one path allowed to bypass the
// transition table: the reservation FSM has already validated the change, the
// room state is its derived consequence.
func (r *Room) ApplyReservationState(target State, detachOccupant bool) {
	r.state = target
	if detachOccupant {
		r.clientID = nil
	}
	r.lastUpdated = time.Now().UTC()
}

// AssignOccupant records the provisioned guest account currently tied to the room.
func (r *Room) AssignOccupant(clientID uuid.UUID) {
	r.clientID = &clientID
	r.lastUpdated = time.Now().UTC()
}

// Deletable reports whether the room may be removed from inventory.
func (r *Room) Deletable() bool {
	return r.state == StateFree
}

// UpdateDetails applies metadata changes. State is never touched here; it
// only moves through TransitionTo or ApplyReservationState.
func (r *Room) UpdateDetails(roomNumber int, roomType string, floor int, description string, active bool) error {
	if roomNumber < 1 {
		return domain.NewValidationError("room number must be positive")
	}
	if roomType == "" {
		return domain.NewValidationError("room type is required")
	}
	r.roomNumber = roomNumber
	r.roomType = roomType
	r.floor = floor
	r.description = description
	r.active = active
	r.lastUpdated = time.Now().UTC()
	return nil
}
