package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hotelmanager/service-rooms/internal/domain/room"
	"github.com/hotelmanager/service-rooms/internal/events"
	"github.com/hotelmanager/service-rooms/internal/platform/domain"
	"github.com/hotelmanager/service-rooms/internal/platform/kafka"
)

// CreateRoomRequest holds the data needed to add a single room.
type CreateRoomRequest struct {
	RoomNumber  int    `json:"room_number" binding:"required"`
	RoomType    string `json:"room_type" binding:"required"`
	Floor       int    `json:"floor"`
	Description string `json:"description"`
}

// UpdateRoomRequest holds the metadata fields a manager may edit.
type UpdateRoomRequest struct {
	RoomNumber  int    `json:"room_number" binding:"required"`
	RoomType    string `json:"room_type" binding:"required"`
	Floor       int    `json:"floor"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// GenerateRoomsRequest describes the hotel structure pushed by the
// hotel-configuration service when inventory is (re)generated.
type GenerateRoomsRequest struct {
	Floors        int      `json:"floors" binding:"required"`
	RoomsPerFloor int      `json:"rooms_per_floor" binding:"required"`
	RoomTypes     []string `json:"room_types"`
}

// RoomDTO is the response representation of a room.
type RoomDTO struct {
	ID          uuid.UUID  `json:"id"`
	HotelID     uuid.UUID  `json:"hotel_id"`
	RoomNumber  int        `json:"room_number"`
	RoomType    string     `json:"room_type"`
	Floor       int        `json:"floor"`
	Description string     `json:"description,omitempty"`
	State       string     `json:"state"`
	Active      bool       `json:"active"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	LastUpdated time.Time  `json:"last_updated"`
}

// RoomService owns room inventory and the manual room state machine.
type RoomService struct {
	uow      UnitOfWork
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewRoomService creates a new RoomService.
func NewRoomService(uow UnitOfWork, producer *kafka.Producer, logger *zap.Logger) *RoomService {
	return &RoomService{uow: uow, producer: producer, logger: logger}
}

// ListRooms returns every room of the manager's hotel.
func (s *RoomService) ListRooms(ctx context.Context, hotelID uuid.UUID) ([]RoomDTO, error) {
	rooms, err := s.uow.Rooms().FindByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	dtos := make([]RoomDTO, len(rooms))
	for i, rm := range rooms {
		dtos[i] = toRoomDTO(rm)
	}
	return dtos, nil
}

// GetRoom returns a single room, scoped to the caller's hotel.
func (s *RoomService) GetRoom(ctx context.Context, hotelID, roomID uuid.UUID) (*RoomDTO, error) {
	rm, err := s.loadForHotel(ctx, s.uow, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	dto := toRoomDTO(rm)
	return &dto, nil
}

// CreateRoom adds a room to the hotel's inventory in state FREE.
func (s *RoomService) CreateRoom(ctx context.Context, hotelID uuid.UUID, req CreateRoomRequest) (*RoomDTO, error) {
	taken, err := s.uow.Rooms().ExistsByHotelAndNumber(ctx, hotelID, req.RoomNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.NewBusinessRuleError(fmt.Sprintf("room number %d already used in this hotel", req.RoomNumber))
	}

	rm, err := room.NewRoom(hotelID, req.RoomNumber, req.RoomType, req.Floor, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.uow.Rooms().Save(ctx, rm); err != nil {
		return nil, err
	}

	dto := toRoomDTO(rm)
	return &dto, nil
}

// UpdateRoom edits room metadata. State is out of scope here; it only moves
// through UpdateState or reservation sync.
func (s *RoomService) UpdateRoom(ctx context.Context, hotelID, roomID uuid.UUID, req UpdateRoomRequest) (*RoomDTO, error) {
	rm, err := s.loadForHotel(ctx, s.uow, hotelID, roomID)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != rm.RoomNumber() {
		taken, err := s.uow.Rooms().ExistsByHotelAndNumber(ctx, hotelID, req.RoomNumber)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.NewBusinessRuleError(fmt.Sprintf("room number %d already used in this hotel", req.RoomNumber))
		}
	}

	if err := rm.UpdateDetails(req.RoomNumber, req.RoomType, req.Floor, req.Description, req.Active); err != nil {
		return nil, err
	}
	if err := s.uow.Rooms().Update(ctx, rm); err != nil {
		return nil, err
	}

	dto := toRoomDTO(rm)
	return &dto, nil
}

// DeleteRoom removes a room from inventory. Only rooms in state FREE are
// deletable.
func (s *RoomService) DeleteRoom(ctx context.Context, hotelID, roomID uuid.UUID) error {
	rm, err := s.loadForHotel(ctx, s.uow, hotelID, roomID)
	if err != nil {
		return err
	}
	if !rm.Deletable() {
		return domain.NewBusinessRuleError(fmt.Sprintf("cannot delete room in state %s", rm.State()))
	}
	return s.uow.Rooms().Delete(ctx, rm.ID())
}

// UpdateState performs a manual room state change, validated against the
// transition table. Raw state tokens are normalized before lookup.
func (s *RoomService) UpdateState(ctx context.Context, hotelID, roomID uuid.UUID, rawState string) (*RoomDTO, error) {
	target, err := room.ParseState(rawState)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	var updated *room.Room
	var previous room.State
	err = s.uow.InTransaction(ctx, func(repos RepoSet) error {
		rm, err := s.loadForHotel(ctx, repos, hotelID, roomID)
		if err != nil {
			return err
		}
		previous = rm.State()
		if err := rm.TransitionTo(target); err != nil {
			return err
		}
		if err := repos.Rooms().Update(ctx, rm); err != nil {
			return err
		}
		updated = rm
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Publish after commit; event delivery is best-effort and never fails the
	// state change.
	s.publishRoomStateChanged(ctx, updated, previous)

	dto := toRoomDTO(updated)
	return &dto, nil
}

// ApplyTransition is the event-consumer entry point for room state changes.
// Same semantics as UpdateState, without the DTO result.
func (s *RoomService) ApplyTransition(ctx context.Context, hotelID, roomID uuid.UUID, rawState string) error {
	_, err := s.UpdateState(ctx, hotelID, roomID, rawState)
	return err
}

// AllowedStates returns the legal next states for a room, for UI gating.
func (s *RoomService) AllowedStates(ctx context.Context, hotelID, roomID uuid.UUID) ([]string, error) {
	rm, err := s.loadForHotel(ctx, s.uow, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	targets := rm.State().AllowedTargets()
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = string(t)
	}
	return out, nil
}

// GenerateRooms destructively regenerates the hotel's room inventory from its
// structure: floors x roomsPerFloor rooms numbered floor*100+n, all FREE.
// Regeneration is refused while any active reservation exists for the hotel,
// since dropping the rooms would orphan those reservations.
func (s *RoomService) GenerateRooms(ctx context.Context, hotelID uuid.UUID, req GenerateRoomsRequest) ([]RoomDTO, error) {
	if req.Floors < 1 || req.RoomsPerFloor < 1 {
		return nil, domain.NewValidationError("floors and rooms per floor must be positive")
	}

	roomType := "Standard"
	if len(req.RoomTypes) > 0 && req.RoomTypes[0] != "" {
		roomType = req.RoomTypes[0]
	}

	var dtos []RoomDTO
	err := s.uow.InTransaction(ctx, func(repos RepoSet) error {
		active, err := repos.Reservations().CountActiveByHotel(ctx, hotelID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.NewBusinessRuleError(fmt.Sprintf("cannot regenerate rooms: %d active reservations exist", active))
		}

		if err := repos.Rooms().DeleteByHotel(ctx, hotelID); err != nil {
			return err
		}

		rooms := make([]*room.Room, 0, req.Floors*req.RoomsPerFloor)
		for floor := 0; floor < req.Floors; floor++ {
			for n := 1; n <= req.RoomsPerFloor; n++ {
				number := floor*100 + n
				rm, err := room.NewRoom(hotelID, number, roomType, floor, fmt.Sprintf("Room %d", number))
				if err != nil {
					return err
				}
				rooms = append(rooms, rm)
			}
		}
		if err := repos.Rooms().SaveAll(ctx, rooms); err != nil {
			return err
		}

		dtos = make([]RoomDTO, len(rooms))
		for i, rm := range rooms {
			dtos[i] = toRoomDTO(rm)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}

// --- Helpers ---

// loadForHotel loads a room and enforces hotel scoping: a room belonging to
// another hotel is reported as a business rule violation, not leaked.
func (s *RoomService) loadForHotel(ctx context.Context, repos RepoSet, hotelID, roomID uuid.UUID) (*room.Room, error) {
	rm, err := repos.Rooms().FindByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if rm.HotelID() != hotelID {
		return nil, domain.NewBusinessRuleError("room does not belong to this hotel")
	}
	return rm, nil
}

func (s *RoomService) publishRoomStateChanged(ctx context.Context, rm *room.Room, previous room.State) {
	if s.producer == nil {
		return
	}
	evt := events.RoomStateChangedEvent{
		RoomID:        rm.ID(),
		HotelID:       rm.HotelID(),
		RoomNumber:    rm.RoomNumber(),
		PreviousState: string(previous),
		NewState:      string(rm.State()),
		OccurredAt:    time.Now().UTC(),
	}
	ce, err := kafka.NewCloudEvent("service-rooms", events.RoomStateChanged, evt)
	if err != nil {
		s.logger.Error("failed to create room event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicRoomEvents, ce); err != nil {
		s.logger.Error("failed to publish room event",
			zap.String("room_id", rm.ID().String()),
			zap.Error(err),
		)
	}
}

func toRoomDTO(rm *room.Room) RoomDTO {
	return RoomDTO{
		ID:          rm.ID(),
		HotelID:     rm.HotelID(),
		RoomNumber:  rm.RoomNumber(),
		RoomType:    rm.RoomType(),
		Floor:       rm.Floor(),
		Description: rm.Description(),
		State:       string(rm.State()),
		Active:      rm.Active(),
		ClientID:    rm.ClientID(),
		LastUpdated: rm.LastUpdated(),
	}
}
