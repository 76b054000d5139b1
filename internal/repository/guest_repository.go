package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	guestDomain "github.com/hotelmanager/service-rooms/internal/domain/guest"
	"github.com/hotelmanager/service-rooms/internal/platform/domain"
)

// GuestModel is the GORM model for the guest_accounts table.
type GuestModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	HotelID      uuid.UUID `gorm:"type:uuid;index;not null"`
	FirstName    string    `gorm:"not null;size:100"`
	LastName     string    `gorm:"not null;size:100"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string    `gorm:"not null;size:100"`
	Enabled      bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (GuestModel) TableName() string {
	return "guest_accounts"
}

// GormGuestRepository is the GORM-based implementation of guest.Repository.
type GormGuestRepository struct {
	db *gorm.DB
}

// NewGormGuestRepository creates a new GormGuestRepository.
func NewGormGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{db: db}
}

// FindByID retrieves a guest account by its unique identifier.
func (r *GormGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*guestDomain.Account, error) {
	var model GuestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("GuestAccount", id.String())
		}
		return nil, fmt.Errorf("failed to find guest account by ID: %w", err)
	}
	return toDomainGuest(&model), nil
}

// ExistsByEmail reports whether an account with the email already exists.
func (r *GormGuestRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&GuestModel{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check guest email: %w", err)
	}
	return count > 0, nil
}

// Save persists a new guest account.
func (r *GormGuestRepository) Save(ctx context.Context, a *guestDomain.Account) error {
	model := &GuestModel{
		ID:           a.ID(),
		HotelID:      a.HotelID(),
		FirstName:    a.FirstName(),
		LastName:     a.LastName(),
		Email:        a.Email(),
		PasswordHash: a.PasswordHash(),
		Enabled:      a.Enabled(),
		CreatedAt:    a.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save guest account: %w", err)
	}
	return nil
}

func toDomainGuest(m *GuestModel) *guestDomain.Account {
	return guestDomain.Reconstruct(
		m.ID,
		m.HotelID,
		m.FirstName,
		m.LastName,
		m.Email,
		m.PasswordHash,
		m.Enabled,
		m.CreatedAt,
	)
}
