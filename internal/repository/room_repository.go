package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	roomDomain "github.com/hotelmanager/service-rooms/internal/domain/room"
	"github.com/hotelmanager/service-rooms/internal/platform/domain"
)

// RoomModel is the GORM model for the rooms table.
type RoomModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	HotelID     uuid.UUID  `gorm:"type:uuid;index;not null;uniqueIndex:idx_rooms_hotel_number"`
	RoomNumber  int        `gorm:"not null;uniqueIndex:idx_rooms_hotel_number"`
	RoomType    string     `gorm:"not null;size:50"`
	Floor       int        `gorm:"not null"`
	Description string     `gorm:"size:1000"`
	State       string     `gorm:"not null;size:30;index"`
	Active      bool       `gorm:"not null;default:true"`
	ClientID    *uuid.UUID `gorm:"type:uuid"`
	LastUpdated time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RoomModel) TableName() string {
	return "rooms"
}

// GormRoomRepository is the GORM-based implementation of room.Repository.
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository.
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// FindByID retrieves a room by its unique identifier.
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*roomDomain.Room, error) {
	var model RoomModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Room", id.String())
		}
		return nil, fmt.Errorf("failed to find room by ID: %w", err)
	}
	return toDomainRoom(&model)
}

// FindByHotel retrieves all rooms of a hotel, ordered by room number.
func (r *GormRoomRepository) FindByHotel(ctx context.Context, hotelID uuid.UUID) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("room_number ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find rooms by hotel: %w", err)
	}
	return toDomainRooms(models)
}

// FindAvailable retrieves the FREE rooms of a hotel with no active
// reservation overlapping [startAt, endAt).
func (r *GormRoomRepository) FindAvailable(ctx context.Context, hotelID uuid.UUID, startAt, endAt time.Time) ([]*roomDomain.Room, error) {
	var models []RoomModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ? AND state = ? AND active = ?", hotelID, string(roomDomain.StateFree), true).
		Where(`NOT EXISTS (
			SELECT 1 FROM reservations res
			WHERE res.room_id = rooms.id
			  AND res.status IN ?
			  AND NOT (res.end_at <= ? OR res.start_at >= ?)
		)`, activeStatusStrings(), startAt, endAt).
		Order("room_number ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find available rooms: %w", err)
	}
	return toDomainRooms(models)
}

// ExistsByHotelAndNumber reports whether a room number is already taken
// within a hotel.
func (r *GormRoomRepository) ExistsByHotelAndNumber(ctx context.Context, hotelID uuid.UUID, roomNumber int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&RoomModel{}).
		Where("hotel_id = ? AND room_number = ?", hotelID, roomNumber).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check room number: %w", err)
	}
	return count > 0, nil
}

// Save persists a new room.
func (r *GormRoomRepository) Save(ctx context.Context, rm *roomDomain.Room) error {
	if err := r.db.WithContext(ctx).Create(toRoomModel(rm)).Error; err != nil {
		return fmt.Errorf("failed to save room: %w", err)
	}
	return nil
}

// SaveAll persists a batch of new rooms.
func (r *GormRoomRepository) SaveAll(ctx context.Context, rooms []*roomDomain.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	models := make([]*RoomModel, len(rooms))
	for i, rm := range rooms {
		models[i] = toRoomModel(rm)
	}
	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return fmt.Errorf("failed to save rooms: %w", err)
	}
	return nil
}

// Update persists changes to an existing room.
func (r *GormRoomRepository) Update(ctx context.Context, rm *roomDomain.Room) error {
	model := toRoomModel(rm)
	result := r.db.WithContext(ctx).
		Model(&RoomModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"room_number":  model.RoomNumber,
			"room_type":    model.RoomType,
			"floor":        model.Floor,
			"description":  model.Description,
			"state":        model.State,
			"active":       model.Active,
			"client_id":    model.ClientID,
			"last_updated": model.LastUpdated,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Room", model.ID.String())
	}
	return nil
}

// Delete removes a room from inventory.
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&RoomModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete room: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Room", id.String())
	}
	return nil
}

// DeleteByHotel removes every room of a hotel.
func (r *GormRoomRepository) DeleteByHotel(ctx context.Context, hotelID uuid.UUID) error {
	if err := r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Delete(&RoomModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete hotel rooms: %w", err)
	}
	return nil
}

// --- Conversion Helpers ---

func toRoomModel(rm *roomDomain.Room) *RoomModel {
	return &RoomModel{
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

func toDomainRoom(m *RoomModel) (*roomDomain.Room, error) {
	state, err := roomDomain.ParseState(m.State)
	if err != nil {
		return nil, err
	}
	return roomDomain.Reconstruct(
		m.ID,
		m.HotelID,
		m.RoomNumber,
		m.RoomType,
		m.Floor,
		m.Description,
		state,
		m.Active,
		m.ClientID,
		m.LastUpdated,
	), nil
}

func toDomainRooms(models []RoomModel) ([]*roomDomain.Room, error) {
	rooms := make([]*roomDomain.Room, len(models))
	for i, m := range models {
		rm, err := toDomainRoom(&m)
		if err != nil {
			return nil, err
		}
		rooms[i] = rm
	}
	return rooms, nil
}
