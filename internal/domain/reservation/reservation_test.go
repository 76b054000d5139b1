package reservation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReservation(t *testing.T, status Status) *Reservation {
	t.Helper()
	start := time.Now().UTC().AddDate(0, 0, 7)
	res, err := NewReservation(
		uuid.New(), uuid.New(), nil,
		"Marie", "Dupont", "",
		start, start.AddDate(0, 0, 3),
		status,
	)
	require.NoError(t, err)
	return res
}

func TestNewReservation_Defaults(t *testing.T) {
	res := newTestReservation(t, StatusConfirmed)
	assert.Equal(t, StatusConfirmed, res.Status())
	assert.Equal(t, int64(1), res.Version())
}

func TestNewReservation_Validation(t *testing.T) {
	start := time.Now().UTC().AddDate(0, 0, 1)
	end := start.AddDate(0, 0, 2)

	_, err := NewReservation(uuid.Nil, uuid.New(), nil, "A", "B", "", start, end, StatusPending)
	assert.Error(t, err, "hotel ID required")

	_, err = NewReservation(uuid.New(), uuid.Nil, nil, "A", "B", "", start, end, StatusPending)
	assert.Error(t, err, "room ID required")

	_, err = NewReservation(uuid.New(), uuid.New(), nil, "", "B", "", start, end, StatusPending)
	assert.Error(t, err, "guest name required")

	_, err = NewReservation(uuid.New(), uuid.New(), nil, "A", "B", "", end, start, StatusPending)
	assert.Error(t, err, "inverted interval")

	_, err = NewReservation(uuid.New(), uuid.New(), nil, "A", "B", "", start, start, StatusPending)
	assert.Error(t, err, "zero-length interval")

	_, err = NewReservation(uuid.New(), uuid.New(), nil, "A", "B", "", start, end, StatusCompleted)
	assert.Error(t, err, "initial status must be PENDING or CONFIRMED")
}

func TestTransition_BumpsUpdatedAtNotVersion(t *testing.T) {
	res := newTestReservation(t, StatusConfirmed)

	require.NoError(t, res.Transition(StatusCheckedIn))
	assert.Equal(t, StatusCheckedIn, res.Status())
	assert.Equal(t, int64(1), res.Version(), "version moves only through IncrementVersion")

	err := res.Transition(StatusCanceled)
	assert.Error(t, err, "CHECKED_IN cannot be cancelled through the table")
	assert.Equal(t, StatusCheckedIn, res.Status())
}

func TestForceCancel_BypassesTable(t *testing.T) {
	res := newTestReservation(t, StatusConfirmed)
	require.NoError(t, res.Transition(StatusCheckedIn))

	res.ForceCancel()
	assert.Equal(t, StatusCanceled, res.Status())
}

func TestCancelableByClient(t *testing.T) {
	now := time.Now().UTC()

	res := newTestReservation(t, StatusPending)
	assert.True(t, res.CancelableByClient(now))

	res = newTestReservation(t, StatusConfirmed)
	assert.True(t, res.CancelableByClient(now))

	require.NoError(t, res.Transition(StatusCheckedIn))
	assert.False(t, res.CancelableByClient(now), "checked-in stays are locked")

	// Stay already started.
	started := Reconstruct(
		uuid.New(), uuid.New(), uuid.New(), nil,
		"Marie", "Dupont", "",
		now.AddDate(0, 0, -1), now.AddDate(0, 0, 2),
		StatusConfirmed, 1, now, now,
	)
	assert.False(t, started.CancelableByClient(now))
}

func TestIsOwnedBy(t *testing.T) {
	now := time.Now().UTC()
	owner := uuid.New()
	res := Reconstruct(
		uuid.New(), uuid.New(), uuid.New(), &owner,
		"Marie", "Dupont", "",
		now.AddDate(0, 0, 1), now.AddDate(0, 0, 2),
		StatusConfirmed, 1, now, now,
	)
	assert.True(t, res.IsOwnedBy(owner))
	assert.False(t, res.IsOwnedBy(uuid.New()))

	anonymous := newTestReservation(t, StatusConfirmed)
	assert.False(t, anonymous.IsOwnedBy(owner), "anonymous reservations belong to nobody")
}

func TestOverlaps_HalfOpen(t *testing.T) {
	res := newTestReservation(t, StatusConfirmed)
	start, end := res.StartAt(), res.EndAt()

	assert.True(t, res.Overlaps(start, end))
	assert.True(t, res.Overlaps(start.Add(-time.Hour), start.Add(time.Hour)))
	assert.True(t, res.Overlaps(end.Add(-time.Hour), end.Add(time.Hour)))

	// Touching endpoints do not overlap.
	assert.False(t, res.Overlaps(end, end.AddDate(0, 0, 1)))
	assert.False(t, res.Overlaps(start.AddDate(0, 0, -1), start))
}

func TestIncrementVersion(t *testing.T) {
	res := newTestReservation(t, StatusConfirmed)
	res.IncrementVersion()
	res.IncrementVersion()
	assert.Equal(t, int64(3), res.Version())
}
