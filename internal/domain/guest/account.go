package guest

import (
	"time"

	"github.com/google/uuid"

	"github.com/hotelmanager/service-rooms/internal/platform/domain"
)

// Account is a guest account provisioned during booking. Only the credential
// hash is ever stored; the raw password is surfaced once at booking time.
type Account struct {
	id           uuid.UUID
	hotelID      uuid.UUID
	firstName    string
	lastName     string
	email        string
	passwordHash string
	enabled      bool
	createdAt    time.Time
}

// NewAccount creates an enabled guest account.
func NewAccount(hotelID uuid.UUID, firstName, lastName, email, passwordHash string) (*Account, error) {
	if hotelID == uuid.Nil {
		return nil, domain.NewValidationError("hotel ID is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}

	return &Account{
		id:           uuid.New(),
		hotelID:      hotelID,
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		passwordHash: passwordHash,
		enabled:      true,
		createdAt:    time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds an Account from persistence data.
func Reconstruct(id, hotelID uuid.UUID, firstName, lastName, email, passwordHash string, enabled bool, createdAt time.Time) *Account {
	return &Account{
		id:           id,
		hotelID:      hotelID,
		firstName:    firstName,
		lastName:     lastName,
		email:        email,
		passwordHash: passwordHash,
		enabled:      enabled,
		createdAt:    createdAt,
	}
}

func (a *Account) ID() uuid.UUID        { return a.id }
func (a *Account) HotelID() uuid.UUID   { return a.hotelID }
func (a *Account) FirstName() string    { return a.firstName }
func (a *Account) LastName() string     { return a.lastName }
func (a *Account) Email() string        { return a.email }
func (a *Account) PasswordHash() string { return a.passwordHash }
func (a *Account) Enabled() bool        { return a.enabled }
func (a *Account) CreatedAt() time.Time { return a.createdAt }
