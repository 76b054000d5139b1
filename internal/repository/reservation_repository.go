package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	reservationDomain "github.com/hotelmanager/service-rooms/internal/domain/reservation"
	"github.com/hotelmanager/service-rooms/internal/platform/domain"
)

// Postgres error codes raised by the reservations exclusion constraint and
// unique indexes. Both translate to the same conflict error the application
// pre-check produces, so callers see one failure mode.
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// ReservationModel is the GORM model for the reservations table.
type ReservationModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	HotelID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	RoomID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	ClientID       *uuid.UUID `gorm:"type:uuid;index"`
	GuestFirstName string     `gorm:"not null;size:100"`
	GuestLastName  string     `gorm:"not null;size:100"`
	GuestPhone     string     `gorm:"size:30"`
	StartAt        time.Time  `gorm:"not null"`
	EndAt          time.Time  `gorm:"not null"`
	Status         string     `gorm:"not null;size:30;index"`
	Version        int64      `gorm:"not null;default:1"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReservationModel) TableName() string {
	return "reservations"
}

// GormReservationRepository is the GORM-based implementation of
// reservation.Repository.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GormReservationRepository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// FindByID retrieves a reservation by its unique identifier.
func (r *GormReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservationDomain.Reservation, error) {
	var model ReservationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Reservation", id.String())
		}
		return nil, fmt.Errorf("failed to find reservation by ID: %w", err)
	}
	return toDomainReservation(&model)
}

// FindByHotel retrieves every reservation of a hotel, newest first.
func (r *GormReservationRepository) FindByHotel(ctx context.Context, hotelID uuid.UUID) ([]*reservationDomain.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reservations by hotel: %w", err)
	}
	return toDomainReservations(models)
}

// FindByClient retrieves the reservations owned by a client account.
func (r *GormReservationRepository) FindByClient(ctx context.Context, clientID uuid.UUID) ([]*reservationDomain.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("start_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find reservations by client: %w", err)
	}
	return toDomainReservations(models)
}

// ExistsOverlapping reports whether any active reservation on the room
// intersects the half-open interval [startAt, endAt). Back-to-back stays
// where one ends exactly when the next begins do not count as overlap.
func (r *GormReservationRepository) ExistsOverlapping(ctx context.Context, roomID uuid.UUID, startAt, endAt time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Where("room_id = ? AND status IN ?", roomID, activeStatusStrings()).
		Where("NOT (end_at <= ? OR start_at >= ?)", startAt, endAt).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check overlap: %w", err)
	}
	return count > 0, nil
}

// FindActiveFutureByRoom retrieves the active reservations on a room whose
// endAt is after ref, ordered by startAt.
func (r *GormReservationRepository) FindActiveFutureByRoom(ctx context.Context, roomID uuid.UUID, ref time.Time) ([]*reservationDomain.Reservation, error) {
	var models []ReservationModel
	if err := r.db.WithContext(ctx).
		Where("room_id = ? AND status IN ? AND end_at > ?", roomID, activeStatusStrings(), ref).
		Order("start_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find active reservations by room: %w", err)
	}
	return toDomainReservations(models)
}

// CountActiveByHotel counts active reservations across a hotel's rooms.
func (r *GormReservationRepository) CountActiveByHotel(ctx context.Context, hotelID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ReservationModel{}).
		Where("hotel_id = ? AND status IN ?", hotelID, activeStatusStrings()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active reservations: %w", err)
	}
	return count, nil
}

// Save persists a new reservation. The exclusion constraint on the
// reservations table may reject the insert under concurrency; that failure
// is reported as a conflict, identical to a failed overlap pre-check.
func (r *GormReservationRepository) Save(ctx context.Context, res *reservationDomain.Reservation) error {
	if err := r.db.WithContext(ctx).Create(toReservationModel(res)).Error; err != nil {
		if isConstraintConflict(err) {
			return domain.WrapConflict("room is already booked for this interval", err)
		}
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

// Update persists changes to an existing reservation with optimistic locking.
func (r *GormReservationRepository) Update(ctx context.Context, res *reservationDomain.Reservation) error {
	model := toReservationModel(res)

	// Only update if the version matches (current version - 1 since
	// IncrementVersion was called).
	expectedVersion := res.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ReservationModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"client_id":        model.ClientID,
			"guest_first_name": model.GuestFirstName,
			"guest_last_name":  model.GuestLastName,
			"guest_phone":      model.GuestPhone,
			"start_at":         model.StartAt,
			"end_at":           model.EndAt,
			"status":           model.Status,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})
	if result.Error != nil {
		if isConstraintConflict(result.Error) {
			return domain.WrapConflict("room is already booked for this interval", result.Error)
		}
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("reservation was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func isConstraintConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation || pgErr.Code == pgUniqueViolation
	}
	return false
}

func activeStatusStrings() []string {
	statuses := reservationDomain.ActiveStatuses()
	out := make([]string, len(statuses))
	for i, st := range statuses {
		out[i] = string(st)
	}
	return out
}

func toReservationModel(res *reservationDomain.Reservation) *ReservationModel {
	return &ReservationModel{
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

func toDomainReservation(m *ReservationModel) (*reservationDomain.Reservation, error) {
	status, err := reservationDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return reservationDomain.Reconstruct(
		m.ID,
		m.HotelID,
		m.RoomID,
		m.ClientID,
		m.GuestFirstName,
		m.GuestLastName,
		m.GuestPhone,
		m.StartAt,
		m.EndAt,
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainReservations(models []ReservationModel) ([]*reservationDomain.Reservation, error) {
	reservations := make([]*reservationDomain.Reservation, len(models))
	for i, m := range models {
		res, err := toDomainReservation(&m)
		if err != nil {
			return nil, err
		}
		reservations[i] = res
	}
	return reservations, nil
}
