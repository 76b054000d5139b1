package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusCheckedIn, false},
		{StatusConfirmed, StatusCheckedIn, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusCanceled, true},
		{StatusConfirmed, StatusCompleted, false},
		{StatusCheckedIn, StatusCompleted, true},
		{StatusCheckedIn, StatusCanceled, false},
		{StatusNoShow, StatusCanceled, true},
		{StatusNoShow, StatusConfirmed, false},
		{StatusCanceled, StatusPending, false},
		{StatusCompleted, StatusCheckedIn, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusCanceled.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusNoShow.IsTerminal())
}

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.True(t, StatusCheckedIn.IsActive())
	assert.False(t, StatusNoShow.IsActive())
	assert.False(t, StatusCanceled.IsActive())
	assert.False(t, StatusCompleted.IsActive())
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, st)

	_, err = ParseStatus("confirmed")
	assert.Error(t, err, "statuses are exact tokens, unlike room states")

	_, err = ParseStatus("UNKNOWN")
	assert.Error(t, err)
}
