package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics this service produces to or consumes from.
const (
	TopicReservationEvents  = "reservation.events"
	TopicRoomEvents         = "room.events"
	TopicHousekeepingEvents = "housekeeping.events"
)

// Event types.
const (
	ReservationConfirmed     = "reservation.confirmed"
	ReservationStatusChanged = "reservation.status_changed"
	ReservationCancelled     = "reservation.cancelled"
	RoomStateChanged         = "room.state_changed"

	HousekeepingTaskStarted  = "housekeeping.task_started"
	HousekeepingTaskFinished = "housekeeping.task_finished"
)

// ReservationConfirmedEvent is published when a booking succeeds.
type ReservationConfirmedEvent struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	HotelID       uuid.UUID `json:"hotel_id"`
	RoomID        uuid.UUID `json:"room_id"`
	GuestName     string    `json:"guest_name"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// ReservationStatusChangedEvent is published on every status transition.
type ReservationStatusChangedEvent struct {
	ReservationID  uuid.UUID `json:"reservation_id"`
	HotelID        uuid.UUID `json:"hotel_id"`
	RoomID         uuid.UUID `json:"room_id"`
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// RoomStateChangedEvent is published when a room changes state, whether by a
// manual transition or by reservation sync.
type RoomStateChangedEvent struct {
	RoomID        uuid.UUID `json:"room_id"`
	HotelID       uuid.UUID `json:"hotel_id"`
	RoomNumber    int       `json:"room_number"`
	PreviousState string    `json:"previous_state"`
	NewState      string    `json:"new_state"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// HousekeepingTaskEvent is consumed from the housekeeping service: a cleaning
// task on a room was started or finished.
type HousekeepingTaskEvent struct {
	TaskID     uuid.UUID `json:"task_id"`
	HotelID    uuid.UUID `json:"hotel_id"`
	RoomID     uuid.UUID `json:"room_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
