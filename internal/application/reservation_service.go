package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hotelmanager/service-rooms/internal/domain/reservation"
	"github.com/hotelmanager/service-rooms/internal/domain/room"
	"github.com/hotelmanager/service-rooms/internal/events"
	"github.com/hotelmanager/service-rooms/internal/platform/domain"
	"github.com/hotelmanager/service-rooms/internal/platform/kafka"
)

// BookingRequest holds the data of a public booking submission.
type BookingRequest struct {
	HotelID    uuid.UUID `json:"hotel_id" binding:"required"`
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	StartAt    time.Time `json:"start_at" binding:"required"`
	EndAt      time.Time `json:"end_at" binding:"required"`
	FirstName  string    `json:"first_name" binding:"required"`
	LastName   string    `json:"last_name" binding:"required"`
	GuestPhone string    `json:"guest_phone"`
}

// BookingConfirmation is returned once per successful booking. The guest
// password appears here and nowhere else; only its hash is stored.
type BookingConfirmation struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	RoomID        uuid.UUID `json:"room_id"`
	Status        string    `json:"status"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	GuestEmail    string    `json:"guest_email"`
	GuestPassword string    `json:"guest_password"`
}

// ReservationDTO is the response representation of a reservation.
type ReservationDTO struct {
	ID             uuid.UUID  `json:"id"`
	HotelID        uuid.UUID  `json:"hotel_id"`
	RoomID         uuid.UUID  `json:"room_id"`
	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	GuestFirstName string     `json:"guest_first_name"`
	GuestLastName  string     `json:"guest_last_name"`
	GuestPhone     string     `json:"guest_phone,omitempty"`
	StartAt        time.Time  `json:"start_at"`
	EndAt          time.Time  `json:"end_at"`
	Status         string     `json:"status"`
	Version        int64      `json:"version"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ReservationService orchestrates booking and the reservation lifecycle. All
// state-affecting operations run inside one transaction spanning the
// read-check-write sequence, with room state synced in the same transaction.
type ReservationService struct {
	uow         UnitOfWork
	provisioner *GuestProvisioner
	producer    *kafka.Producer
	logger      *zap.Logger
}

// NewReservationService creates a new ReservationService.
func NewReservationService(uow UnitOfWork, provisioner *GuestProvisioner, producer *kafka.Producer, logger *zap.Logger) *ReservationService {
	return &ReservationService{
		uow:         uow,
		provisioner: provisioner,
		producer:    producer,
		logger:      logger,
	}
}

// ListAvailableRooms returns the FREE rooms of a hotel with no active
// reservation overlapping [startAt, endAt).
func (s *ReservationService) ListAvailableRooms(ctx context.Context, hotelID uuid.UUID, startAt, endAt time.Time) ([]RoomDTO, error) {
	if startAt.IsZero() || endAt.IsZero() || !startAt.Before(endAt) {
		return nil, domain.NewValidationError("invalid date interval: start must be before end")
	}

	rooms, err := s.uow.Rooms().FindAvailable(ctx, hotelID, startAt, endAt)
	if err != nil {
		return nil, err
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, rm := range rooms {
		dtos[i] = toRoomDTO(rm)
	}
	return dtos, nil
}

// Book creates a CONFIRMED reservation for an anonymous guest: interval and
// room checks, overlap check, guest account provisioning, persistence and
// room sync, all in one transaction. Either everything commits or nothing
// does, including the account.
func (s *ReservationService) Book(ctx context.Context, req BookingRequest) (*BookingConfirmation, error) {
	if !req.StartAt.Before(req.EndAt) {
		return nil, domain.NewValidationError("invalid reservation interval: start must be before end")
	}

	var (
		res         *reservation.Reservation
		guestEmail  string
		rawPassword string
	)
	err := s.uow.InTransaction(ctx, func(repos RepoSet) error {
		rm, err := repos.Rooms().FindByID(ctx, req.RoomID)
		if err != nil {
			return err
		}
		if rm.HotelID() != req.HotelID {
			return domain.NewBusinessRuleError("room does not belong to the requested hotel")
		}
		if !rm.Active() || rm.State() == room.StateInactive {
			return domain.NewBusinessRuleError("room is not available for booking")
		}

		// Application-level overlap check; the storage exclusion constraint
		// backs it up at commit and surfaces as the same conflict error.
		overlaps, err := repos.Reservations().ExistsOverlapping(ctx, rm.ID(), req.StartAt, req.EndAt)
		if err != nil {
			return err
		}
		if overlaps {
			return domain.NewConflictError("room is already booked for this interval")
		}

		account, password, err := s.provisioner.Provision(ctx, repos, rm.HotelID(), req.FirstName, req.LastName)
		if err != nil {
			return err
		}
		guestEmail = account.Email()
		rawPassword = password

		clientID := account.ID()
		res, err = reservation.NewReservation(
			rm.HotelID(), rm.ID(), &clientID,
			account.FirstName(), account.LastName(), req.GuestPhone,
			req.StartAt, req.EndAt,
			reservation.StatusConfirmed,
		)
		if err != nil {
			return err
		}
		if err := repos.Reservations().Save(ctx, res); err != nil {
			return err
		}

		rm.AssignOccupant(account.ID())
		if err := repos.Rooms().Update(ctx, rm); err != nil {
			return err
		}
		return syncRoomForReservation(ctx, repos, res)
	})
	if err != nil {
		return nil, err
	}

	s.publishReservationConfirmed(ctx, res)

	return &BookingConfirmation{
		ReservationID: res.ID(),
		RoomID:        res.RoomID(),
		Status:        string(res.Status()),
		StartAt:       res.StartAt(),
		EndAt:         res.EndAt(),
		GuestEmail:    guestEmail,
		GuestPassword: rawPassword,
	}, nil
}

// UpdateStatus performs a manager-driven status transition under optimistic
// locking. A stale expectedVersion is reported as a conflict; the caller must
// re-read and retry.
func (s *ReservationService) UpdateStatus(ctx context.Context, hotelID, reservationID uuid.UUID, rawStatus string, expectedVersion int64) (*ReservationDTO, error) {
	target, err := reservation.ParseStatus(rawStatus)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var (
		updated  *reservation.Reservation
		previous reservation.Status
	)
	err = s.uow.InTransaction(ctx, func(repos RepoSet) error {
		res, err := s.loadForHotel(ctx, repos, hotelID, reservationID)
		if err != nil {
			return err
		}
		if res.Version() != expectedVersion {
			return domain.NewConflictError(fmt.Sprintf(
				"reservation was modified concurrently: expected version %d, found %d",
				expectedVersion, res.Version()))
		}

		previous = res.Status()
		if err := res.Transition(target); err != nil {
			return err
		}
		res.IncrementVersion()
		if err := repos.Reservations().Update(ctx, res); err != nil {
			return err
		}

		updated = res
		return syncRoomForReservation(ctx, repos, res)
	})
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, updated, previous)

	dto := toReservationDTO(updated)
	return &dto, nil
}

// AllowedStatusTargets returns the legal next statuses for UI gating.
func (s *ReservationService) AllowedStatusTargets(ctx context.Context, hotelID, reservationID uuid.UUID) ([]string, error) {
	res, err := s.loadForHotel(ctx, s.uow, hotelID, reservationID)
	if err != nil {
		return nil, err
	}
	targets := res.Status().AllowedTargets()
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = string(t)
	}
	return out, nil
}

// ListByHotel returns every reservation of the manager's hotel.
func (s *ReservationService) ListByHotel(ctx context.Context, hotelID uuid.UUID) ([]ReservationDTO, error) {
	rows, err := s.uow.Reservations().FindByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ReservationDTO, len(rows))
	for i, res := range rows {
		dtos[i] = toReservationDTO(res)
	}
	return dtos, nil
}

// ListByClient returns the reservations owned by the authenticated client.
func (s *ReservationService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]ReservationDTO, error) {
	rows, err := s.uow.Reservations().FindByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	dtos := make([]ReservationDTO, len(rows))
	for i, res := range rows {
		dtos[i] = toReservationDTO(res)
	}
	return dtos, nil
}

// CancelOwn cancels a reservation on behalf of its owning client: only from
// PENDING or CONFIRMED, and only while the stay has not started.
func (s *ReservationService) CancelOwn(ctx context.Context, clientID, reservationID uuid.UUID) error {
	var (
		updated  *reservation.Reservation
		previous reservation.Status
	)
	err := s.uow.InTransaction(ctx, func(repos RepoSet) error {
		res, err := repos.Reservations().FindByID(ctx, reservationID)
		if err != nil {
			return err
		}
		if !res.IsOwnedBy(clientID) {
			return domain.NewForbiddenError("reservation does not belong to this client")
		}
		if !res.CancelableByClient(time.Now().UTC()) {
			return domain.NewBusinessRuleError("reservation can no longer be cancelled by the client")
		}

		previous = res.Status()
		if err := res.Transition(reservation.StatusCanceled); err != nil {
			return err
		}
		res.IncrementVersion()
		if err := repos.Reservations().Update(ctx, res); err != nil {
			return err
		}

		updated = res
		return syncRoomForReservation(ctx, repos, res)
	})
	if err != nil {
		return err
	}

	s.publishStatusChanged(ctx, updated, previous)
	return nil
}

// CancelActiveByRoom cancels every active reservation on the room with a
// future end, then frees the room if it had merely been reserved. This is the
// administrative recovery path and deliberately bypasses the status table.
func (s *ReservationService) CancelActiveByRoom(ctx context.Context, hotelID, roomID uuid.UUID) error {
	var cancelled []*reservation.Reservation
	err := s.uow.InTransaction(ctx, func(repos RepoSet) error {
		rm, err := repos.Rooms().FindByID(ctx, roomID)
		if err != nil {
			return err
		}
		if rm.HotelID() != hotelID {
			return domain.NewBusinessRuleError("room does not belong to this hotel")
		}

		actives, err := repos.Reservations().FindActiveFutureByRoom(ctx, roomID, time.Now().UTC())
		if err != nil {
			return err
		}
		if len(actives) == 0 {
			return nil
		}

		for _, res := range actives {
			res.ForceCancel()
			res.IncrementVersion()
			if err := repos.Reservations().Update(ctx, res); err != nil {
				return err
			}
		}
		cancelled = actives

		if rm.State() == room.StateReserved {
			rm.ApplyReservationState(room.StateFree, true)
			if err := repos.Rooms().Update(ctx, rm); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, res := range cancelled {
		s.publishCancelled(ctx, res)
	}
	return nil
}

// --- Helpers ---

func (s *ReservationService) loadForHotel(ctx context.Context, repos RepoSet, hotelID, reservationID uuid.UUID) (*reservation.Reservation, error) {
	res, err := repos.Reservations().FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.HotelID() != hotelID {
		return nil, domain.NewBusinessRuleError("reservation does not belong to this hotel")
	}
	return res, nil
}

func (s *ReservationService) publishReservationConfirmed(ctx context.Context, res *reservation.Reservation) {
	evt := events.ReservationConfirmedEvent{
		ReservationID: res.ID(),
		HotelID:       res.HotelID(),
		RoomID:        res.RoomID(),
		GuestName:     res.GuestFirstName() + " " + res.GuestLastName(),
		StartAt:       res.StartAt(),
		EndAt:         res.EndAt(),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicReservationEvents, events.ReservationConfirmed, evt)
}

func (s *ReservationService) publishStatusChanged(ctx context.Context, res *reservation.Reservation, previous reservation.Status) {
	evt := events.ReservationStatusChangedEvent{
		ReservationID:  res.ID(),
		HotelID:        res.HotelID(),
		RoomID:         res.RoomID(),
		PreviousStatus: string(previous),
		NewStatus:      string(res.Status()),
		OccurredAt:     time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicReservationEvents, events.ReservationStatusChanged, evt)
}

func (s *ReservationService) publishCancelled(ctx context.Context, res *reservation.Reservation) {
	evt := events.ReservationStatusChangedEvent{
		ReservationID: res.ID(),
		HotelID:       res.HotelID(),
		RoomID:        res.RoomID(),
		NewStatus:     string(reservation.StatusCanceled),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicReservationEvents, events.ReservationCancelled, evt)
}

func (s *ReservationService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}
	ce, err := kafka.NewCloudEvent("service-rooms", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, topic, ce); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toReservationDTO(res *reservation.Reservation) ReservationDTO {
	return ReservationDTO{
		ID:             res.ID(),
		HotelID:        res.HotelID(),
		RoomID:         res.RoomID(),
		ClientID:       res.ClientID(),
		GuestFirstName: res.GuestFirstName(),
		GuestLastName:  res.GuestLastName(),
		GuestPhone:     res.GuestPhone(),
		StartAt:        res.StartAt(),
		EndAt:          res.EndAt(),
		Status:         string(res.Status()),
		Version:        res.Version(),
		CreatedAt:      res.CreatedAt(),
		UpdatedAt:      res.UpdatedAt(),
	}
}
