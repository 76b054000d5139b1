package room

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// State represents the operational state of a room.
type State string

const (
	StateFree               State = "FREE"
	StateReserved           State = "RESERVED"
	StateCheckedIn          State = "CHECKED_IN"
	StateRoomService        State = "ROOM_SERVICE"
	StateCheckedOut         State = "CHECKED_OUT"
	StatePendingFreeReview  State = "PENDING_FREE_REVIEW"
	StateNeedsCleaning      State = "NEEDS_CLEANING"
	StateCleaningInProgress State = "CLEANING_IN_PROGRESS"
	StatePendingCleanReview State = "PENDING_CLEAN_REVIEW"
	StateMaintenance        State = "MAINTENANCE"
	StateInactive           State = "INACTIVE"
)

// validTransitions is the single transition table consulted for every manual
// (staff-initiated) state change. Reservation-driven sync deliberately
// bypasses it; see ApplyReservationState.
var validTransitions = map[State][]State{
	StateFree:               {StateReserved, StateCheckedIn, StateMaintenance, StateInactive},
	StateReserved:           {StateCheckedIn, StatePendingFreeReview, StateFree},
	StateCheckedIn:          {StateRoomService, StateCheckedOut},
	StateCheckedOut:         {StatePendingFreeReview, StateNeedsCleaning},
	StateNeedsCleaning:      {StateCleaningInProgress},
	StateCleaningInProgress: {StatePendingCleanReview},
	StatePendingCleanReview: {StateFree, StateNeedsCleaning},
	StateRoomService:        {StateCheckedIn, StateCheckedOut},
	StatePendingFreeReview:  {StateCheckedIn, StateNeedsCleaning},
	StateMaintenance:        {StateFree},
	StateInactive:           {StateFree},
}

// stateAliases maps legacy tokens (the French-flavored names from the first
// generation of the system, plus common spelling variants) onto states.
var stateAliases = map[string]State{
	"LIBRE":           StateFree,
	"RESERVE":         StateReserved,
	"RESERVEE":        StateReserved,
	"CHECKIN":         StateCheckedIn,
	"CHECK_IN":        StateCheckedIn,
	"CHECKOUT":        StateCheckedOut,
	"CHECK_OUT":       StateCheckedOut,
	"ROOMSERVICE":     StateRoomService,
	"A_VALIDER_LIBRE": StatePendingFreeReview,
	"VALIDER_LIBRE":   StatePendingFreeReview,
	"A_NETTOYER":      StateNeedsCleaning,
	"A_NETTOYAGE":     StateNeedsCleaning,
	"EN_NETTOYAGE":    StateCleaningInProgress,
	"A_VALIDER_CLEAN": StatePendingCleanReview,
	"VALIDER_CLEAN":   StatePendingCleanReview,
}

// IsValid returns true if the state is one of the recognized room states.
func (s State) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a manual transition to target is on the table.
func (s State) CanTransitionTo(target State) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// AllowedTargets returns the legal next states, sorted for stable output.
func (s State) AllowedTargets() []State {
	targets := make([]State, len(validTransitions[s]))
	copy(targets, validTransitions[s])
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// ParseState resolves a raw user-supplied token to a State. Tokens are
// case-folded, stripped of diacritics and separator-unified before lookup, so
// "réservée", "Check In" and "CHECKED_IN" all resolve.
func ParseState(raw string) (State, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("state is required")
	}

	token := normalizeStateToken(raw)

	if alias, ok := stateAliases[token]; ok {
		return alias, nil
	}
	state := State(token)
	if !state.IsValid() {
		return "", fmt.Errorf("unknown room state: %q", raw)
	}
	return state, nil
}

// stripDiacritics removes combining marks after NFD decomposition.
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func normalizeStateToken(raw string) string {
	s, _, err := transform.String(stripDiacritics, raw)
	if err != nil {
		s = raw
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, " ", "_")
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}
