package reservation

import (
	"github.com/hotelmanager/service-rooms/internal/domain/room"
)

// roomStateByStatus is the fixed mapping from reservation status to the room
// state it implies. It is total over the status set.
var roomStateByStatus = map[Status]room.State{
	StatusPending:   room.StateReserved,
	StatusConfirmed: room.StateReserved,
	StatusCheckedIn: room.StateCheckedIn,
	StatusNoShow:    room.StatePendingFreeReview,
	StatusCanceled:  room.StateFree,
	StatusCompleted: room.StateNeedsCleaning,
}

// RoomStateFor returns the room state implied by a reservation status.
// Applying the same status twice yields the same state: the mapping is
// deterministic and idempotent.
func RoomStateFor(status Status) room.State {
	return roomStateByStatus[status]
}

// DetachesOccupant reports whether reaching the given status releases the
// room's occupant reference.
func DetachesOccupant(status Status) bool {
	switch status {
	case StatusCanceled, StatusNoShow, StatusCompleted:
		return true
	}
	return false
}
