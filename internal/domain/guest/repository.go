package guest

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for guest accounts.
type Repository interface {
	// FindByID retrieves an account by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// ExistsByEmail reports whether an account with the email already exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Save persists a new account.
	Save(ctx context.Context, a *Account) error
}
