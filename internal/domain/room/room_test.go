package room

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotelmanager/service-rooms/internal/platform/domain"
)

func newTestRoom(t *testing.T) *Room {
	t.Helper()
	rm, err := NewRoom(uuid.New(), 101, "Standard", 1, "")
	require.NoError(t, err)
	return rm
}

func TestNewRoom_StartsFreeAndActive(t *testing.T) {
	rm := newTestRoom(t)
	assert.Equal(t, StateFree, rm.State())
	assert.True(t, rm.Active())
	assert.Nil(t, rm.ClientID())
	assert.True(t, rm.Deletable())
}

func TestNewRoom_Validation(t *testing.T) {
	_, err := NewRoom(uuid.Nil, 101, "Standard", 1, "")
	assert.Error(t, err)

	_, err = NewRoom(uuid.New(), 0, "Standard", 1, "")
	assert.Error(t, err)

	_, err = NewRoom(uuid.New(), 101, "", 1, "")
	assert.Error(t, err)
}

func TestTransitionTo_RejectsOffTableMove(t *testing.T) {
	rm := newTestRoom(t)

	err := rm.TransitionTo(StateNeedsCleaning)
	require.Error(t, err)

	var derr *domain.Error
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, domain.CodeInvalidState, derr.Code)
	assert.Equal(t, StateFree, rm.State(), "state must not move on a rejected transition")
}

func TestTransitionTo_WalksCleaningCycle(t *testing.T) {
	rm := newTestRoom(t)

	for _, target := range []State{
		StateCheckedIn, StateCheckedOut, StateNeedsCleaning,
		StateCleaningInProgress, StatePendingCleanReview, StateFree,
	} {
		require.NoError(t, rm.TransitionTo(target), "to %s", target)
	}
	assert.Equal(t, StateFree, rm.State())
}

func TestApplyReservationState_BypassesTableAndDetaches(t *testing.T) {
	rm := newTestRoom(t)
	guestID := uuid.New()
	rm.AssignOccupant(guestID)
	require.NoError(t, rm.TransitionTo(StateCheckedIn))

	// CHECKED_IN -> NEEDS_CLEANING is not on the manual table, but the
	// reservation sync path may force it.
	rm.ApplyReservationState(StateNeedsCleaning, true)

	assert.Equal(t, StateNeedsCleaning, rm.State())
	assert.Nil(t, rm.ClientID())
}

func TestApplyReservationState_KeepsOccupantWhenNotDetaching(t *testing.T) {
	rm := newTestRoom(t)
	guestID := uuid.New()
	rm.AssignOccupant(guestID)

	rm.ApplyReservationState(StateCheckedIn, false)

	assert.Equal(t, StateCheckedIn, rm.State())
	require.NotNil(t, rm.ClientID())
	assert.Equal(t, guestID, *rm.ClientID())
}

func TestDeletable_OnlyWhenFree(t *testing.T) {
	rm := newTestRoom(t)
	assert.True(t, rm.Deletable())

	require.NoError(t, rm.TransitionTo(StateReserved))
	assert.False(t, rm.Deletable())
}

func TestUpdateDetails_NeverTouchesState(t *testing.T) {
	rm := newTestRoom(t)
	require.NoError(t, rm.TransitionTo(StateMaintenance))

	require.NoError(t, rm.UpdateDetails(202, "Suite", 2, "renovated", false))

	assert.Equal(t, 202, rm.RoomNumber())
	assert.Equal(t, "Suite", rm.RoomType())
	assert.False(t, rm.Active())
	assert.Equal(t, StateMaintenance, rm.State())
}
