package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hotelmanager/service-rooms/internal/domain/guest"
	"github.com/hotelmanager/service-rooms/internal/domain/reservation"
	"github.com/hotelmanager/service-rooms/internal/domain/room"
	"github.com/hotelmanager/service-rooms/internal/platform/domain"
)

// memStore is an in-memory UnitOfWork for service tests. Transactions are not
// isolated; the fake only exercises service orchestration, not storage
// semantics.
type memStore struct {
	rooms        *memRoomRepo
	reservations *memReservationRepo
	guests       *memGuestRepo
}

func newMemStore() *memStore {
	return &memStore{
		rooms:        &memRoomRepo{byID: map[uuid.UUID]*room.Room{}},
		reservations: &memReservationRepo{byID: map[uuid.UUID]*reservation.Reservation{}},
		guests:       &memGuestRepo{byID: map[uuid.UUID]*guest.Account{}},
	}
}

func (s *memStore) Rooms() room.Repository               { return s.rooms }
func (s *memStore) Reservations() reservation.Repository { return s.reservations }
func (s *memStore) Guests() guest.Repository             { return s.guests }

func (s *memStore) InTransaction(ctx context.Context, fn func(repos RepoSet) error) error {
	return fn(s)
}

type memRoomRepo struct {
	byID map[uuid.UUID]*room.Room
}

func (r *memRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Room", id.String())
	}
	return cloneRoom(rm), nil
}

func (r *memRoomRepo) FindByHotel(_ context.Context, hotelID uuid.UUID) ([]*room.Room, error) {
	var out []*room.Room
	for _, rm := range r.byID {
		if rm.HotelID() == hotelID {
			out = append(out, cloneRoom(rm))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber() < out[j].RoomNumber() })
	return out, nil
}

func (r *memRoomRepo) FindAvailable(_ context.Context, hotelID uuid.UUID, _, _ time.Time) ([]*room.Room, error) {
	var out []*room.Room
	for _, rm := range r.byID {
		if rm.HotelID() == hotelID && rm.State() == room.StateFree && rm.Active() {
			out = append(out, cloneRoom(rm))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber() < out[j].RoomNumber() })
	return out, nil
}

func (r *memRoomRepo) ExistsByHotelAndNumber(_ context.Context, hotelID uuid.UUID, number int) (bool, error) {
	for _, rm := range r.byID {
		if rm.HotelID() == hotelID && rm.RoomNumber() == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRoomRepo) Save(_ context.Context, rm *room.Room) error {
	r.byID[rm.ID()] = cloneRoom(rm)
	return nil
}

func (r *memRoomRepo) SaveAll(ctx context.Context, rooms []*room.Room) error {
	for _, rm := range rooms {
		if err := r.Save(ctx, rm); err != nil {
			return err
		}
	}
	return nil
}

func (r *memRoomRepo) Update(_ context.Context, rm *room.Room) error {
	if _, ok := r.byID[rm.ID()]; !ok {
		return domain.NewNotFoundError("Room", rm.ID().String())
	}
	r.byID[rm.ID()] = cloneRoom(rm)
	return nil
}

func (r *memRoomRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return domain.NewNotFoundError("Room", id.String())
	}
	delete(r.byID, id)
	return nil
}

func (r *memRoomRepo) DeleteByHotel(_ context.Context, hotelID uuid.UUID) error {
	for id, rm := range r.byID {
		if rm.HotelID() == hotelID {
			delete(r.byID, id)
		}
	}
	return nil
}

type memReservationRepo struct {
	byID map[uuid.UUID]*reservation.Reservation
}

func (r *memReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("Reservation", id.String())
	}
	return cloneReservation(res), nil
}

func (r *memReservationRepo) FindByHotel(_ context.Context, hotelID uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.byID {
		if res.HotelID() == hotelID {
			out = append(out, cloneReservation(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	return out, nil
}

func (r *memReservationRepo) FindByClient(_ context.Context, clientID uuid.UUID) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.byID {
		if res.IsOwnedBy(clientID) {
			out = append(out, cloneReservation(res))
		}
	}
	return out, nil
}

func (r *memReservationRepo) ExistsOverlapping(_ context.Context, roomID uuid.UUID, startAt, endAt time.Time) (bool, error) {
	for _, res := range r.byID {
		if res.RoomID() == roomID && res.Status().IsActive() && res.Overlaps(startAt, endAt) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memReservationRepo) FindActiveFutureByRoom(_ context.Context, roomID uuid.UUID, ref time.Time) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, res := range r.byID {
		if res.RoomID() == roomID && res.Status().IsActive() && res.EndAt().After(ref) {
			out = append(out, cloneReservation(res))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt().Before(out[j].StartAt()) })
	return out, nil
}

func (r *memReservationRepo) CountActiveByHotel(_ context.Context, hotelID uuid.UUID) (int64, error) {
	var count int64
	for _, res := range r.byID {
		if res.HotelID() == hotelID && res.Status().IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *memReservationRepo) Save(_ context.Context, res *reservation.Reservation) error {
	r.byID[res.ID()] = cloneReservation(res)
	return nil
}

func (r *memReservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	stored, ok := r.byID[res.ID()]
	if !ok {
		return domain.NewNotFoundError("Reservation", res.ID().String())
	}
	if stored.Version() != res.Version()-1 {
		return domain.NewConflictError("reservation was modified by another transaction")
	}
	r.byID[res.ID()] = cloneReservation(res)
	return nil
}

type memGuestRepo struct {
	byID map[uuid.UUID]*guest.Account
}

func (r *memGuestRepo) FindByID(_ context.Context, id uuid.UUID) (*guest.Account, error) {
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("GuestAccount", id.String())
	}
	return a, nil
}

func (r *memGuestRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, a := range r.byID {
		if a.Email() == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memGuestRepo) Save(_ context.Context, a *guest.Account) error {
	r.byID[a.ID()] = a
	return nil
}

func cloneRoom(rm *room.Room) *room.Room {
	var clientID *uuid.UUID
	if rm.ClientID() != nil {
		id := *rm.ClientID()
		clientID = &id
	}
	return room.Reconstruct(
		rm.ID(), rm.HotelID(), rm.RoomNumber(), rm.RoomType(), rm.Floor(),
		rm.Description(), rm.State(), rm.Active(), clientID, rm.LastUpdated(),
	)
}

func cloneReservation(res *reservation.Reservation) *reservation.Reservation {
	var clientID *uuid.UUID
	if res.ClientID() != nil {
		id := *res.ClientID()
		clientID = &id
	}
	return reservation.Reconstruct(
		res.ID(), res.HotelID(), res.RoomID(), clientID,
		res.GuestFirstName(), res.GuestLastName(), res.GuestPhone(),
		res.StartAt(), res.EndAt(), res.Status(), res.Version(),
		res.CreatedAt(), res.UpdatedAt(),
	)
}
