package application

import (
	"context"
	"fmt"

	"github.com/hotelmanager/service-rooms/internal/domain/reservation"
)

// syncRoomForReservation applies the room-state consequence of a reservation
// status change. It must run inside the same transaction as the status write
// so the room state invariant can never be observed violated. The forced
// ApplyReservationState path is used on purpose: the status transition has
// already been validated, the room state is its derived consequence.
func syncRoomForReservation(ctx context.Context, repos RepoSet, res *reservation.Reservation) error {
	rm, err := repos.Rooms().FindByID(ctx, res.RoomID())
	if err != nil {
		return fmt.Errorf("failed to load room for sync: %w", err)
	}

	target := reservation.RoomStateFor(res.Status())
	rm.ApplyReservationState(target, reservation.DetachesOccupant(res.Status()))

	if err := repos.Rooms().Update(ctx, rm); err != nil {
		return fmt.Errorf("failed to persist room state sync: %w", err)
	}
	return nil
}
