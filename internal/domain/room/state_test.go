package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransitionTo_Table(t *testing.T) {
	cases := []struct {
		from    State
		to      State
		allowed bool
	}{
		{StateFree, StateReserved, true},
		{StateFree, StateCheckedIn, true},
		{StateFree, StateMaintenance, true},
		{StateFree, StateInactive, true},
		{StateFree, StateNeedsCleaning, false},
		{StateReserved, StateCheckedIn, true},
		{StateReserved, StatePendingFreeReview, true},
		{StateReserved, StateFree, true},
		{StateReserved, StateMaintenance, false},
		{StateCheckedIn, StateRoomService, true},
		{StateCheckedIn, StateCheckedOut, true},
		{StateCheckedIn, StateFree, false},
		{StateCheckedOut, StatePendingFreeReview, true},
		{StateCheckedOut, StateNeedsCleaning, true},
		{StateNeedsCleaning, StateCleaningInProgress, true},
		{StateCleaningInProgress, StatePendingCleanReview, true},
		{StateCleaningInProgress, StateFree, false},
		{StatePendingCleanReview, StateFree, true},
		{StatePendingCleanReview, StateNeedsCleaning, true},
		{StateRoomService, StateCheckedIn, true},
		{StateRoomService, StateCheckedOut, true},
		{StatePendingFreeReview, StateCheckedIn, true},
		{StatePendingFreeReview, StateNeedsCleaning, true},
		{StatePendingFreeReview, StateFree, false},
		{StateMaintenance, StateFree, true},
		{StateInactive, StateFree, true},
		{StateInactive, StateReserved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestAllowedTargets_Sorted(t *testing.T) {
	targets := StateFree.AllowedTargets()
	assert.Equal(t, []State{StateCheckedIn, StateInactive, StateMaintenance, StateReserved}, targets)
}

func TestParseState_CanonicalAndVariants(t *testing.T) {
	cases := map[string]State{
		"FREE":                 StateFree,
		"free":                 StateFree,
		"  Checked_In ":        StateCheckedIn,
		"checked in":           StateCheckedIn,
		"checked-in":           StateCheckedIn,
		"PENDING  FREE REVIEW": StatePendingFreeReview,
	}
	for raw, want := range cases {
		got, err := ParseState(raw)
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, want, got, "raw %q", raw)
	}
}

func TestParseState_LegacyAliases(t *testing.T) {
	cases := map[string]State{
		"LIBRE":           StateFree,
		"réservée":        StateReserved,
		"RESERVEE":        StateReserved,
		"CheckIn":         StateCheckedIn,
		"CHECKOUT":        StateCheckedOut,
		"A_VALIDER_LIBRE": StatePendingFreeReview,
		"à nettoyer":      StateNeedsCleaning,
		"EN_NETTOYAGE":    StateCleaningInProgress,
		"a valider clean": StatePendingCleanReview,
	}
	for raw, want := range cases {
		got, err := ParseState(raw)
		require.NoError(t, err, "raw %q", raw)
		assert.Equal(t, want, got, "raw %q", raw)
	}
}

func TestParseState_Rejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "OCCUPIED", "nettoyage profond"} {
		_, err := ParseState(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}
