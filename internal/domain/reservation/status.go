package reservation

import "fmt"

// Status represents a reservation's position in its lifecycle.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCheckedIn Status = "CHECKED_IN"
	StatusNoShow    Status = "NO_SHOW"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
)

// validTransitions defines the manager-driven status state machine.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCheckedIn, StatusNoShow, StatusCanceled},
	StatusCheckedIn: {StatusCompleted},
	StatusNoShow:    {StatusCanceled},
	StatusCanceled:  {},
	StatusCompleted: {},
}

// activeStatuses are the statuses that still occupy the room going forward.
// Reservations in one of these must be pairwise non-overlapping per room.
var activeStatuses = []Status{StatusPending, StatusConfirmed, StatusCheckedIn}

// ActiveStatuses returns the statuses counted by overlap checks.
func ActiveStatuses() []Status {
	out := make([]Status, len(activeStatuses))
	copy(out, activeStatuses)
	return out
}

// IsValid returns true if the status is a recognized reservation status.
func (s Status) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// IsActive returns true if the status still occupies the room.
func (s Status) IsActive() bool {
	for _, a := range activeStatuses {
		if s == a {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s Status) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// CanTransitionTo returns true if a transition from this status to the target
// is on the table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// AllowedTargets returns the legal next statuses.
func (s Status) AllowedTargets() []Status {
	targets := make([]Status, len(validTransitions[s]))
	copy(targets, validTransitions[s])
	return targets
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid reservation status: %s", s)
	}
	return status, nil
}
