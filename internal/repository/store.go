package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/hotelmanager/service-rooms/internal/application"
	"github.com/hotelmanager/service-rooms/internal/domain/guest"
	"github.com/hotelmanager/service-rooms/internal/domain/reservation"
	"github.com/hotelmanager/service-rooms/internal/domain/room"
)

// Store bundles the GORM repositories behind the application's unit-of-work
// contract. Outside a transaction the repositories run on the shared
// connection pool; InTransaction hands the callback a repo set bound to a
// single transaction so read-check-write sequences commit or roll back as
// one.
type Store struct {
	db *gorm.DB

	rooms        *GormRoomRepository
	reservations *GormReservationRepository
	guests       *GormGuestRepository
}

// NewStore creates a Store on top of an open GORM connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		rooms:        NewGormRoomRepository(db),
		reservations: NewGormReservationRepository(db),
		guests:       NewGormGuestRepository(db),
	}
}

// Rooms returns the room repository bound to the shared connection.
func (s *Store) Rooms() room.Repository { return s.rooms }

// Reservations returns the reservation repository bound to the shared
// connection.
func (s *Store) Reservations() reservation.Repository { return s.reservations }

// Guests returns the guest account repository bound to the shared connection.
func (s *Store) Guests() guest.Repository { return s.guests }

// InTransaction runs fn inside a database transaction. The repo set passed to
// fn is bound to that transaction; returning an error rolls everything back.
func (s *Store) InTransaction(ctx context.Context, fn func(repos application.RepoSet) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txRepoSet{
			rooms:        NewGormRoomRepository(tx),
			reservations: NewGormReservationRepository(tx),
			guests:       NewGormGuestRepository(tx),
		})
	})
}

type txRepoSet struct {
	rooms        *GormRoomRepository
	reservations *GormReservationRepository
	guests       *GormGuestRepository
}

func (t *txRepoSet) Rooms() room.Repository               { return t.rooms }
func (t *txRepoSet) Reservations() reservation.Repository { return t.reservations }
func (t *txRepoSet) Guests() guest.Repository             { return t.guests }

// EnsureOverlapConstraint installs the btree_gist exclusion constraint that
// rejects concurrent overlapping inserts for the same room. Migrations create
// it in deployed environments; this covers ad-hoc databases such as test
// containers.
func EnsureOverlapConstraint(db *gorm.DB) error {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM pg_constraint WHERE conname = 'reservations_no_overlap'
			) THEN
				ALTER TABLE reservations
					ADD CONSTRAINT reservations_no_overlap
					EXCLUDE USING gist (
						room_id WITH =,
						tstzrange(start_at, end_at) WITH &&
					)
					WHERE (status IN ('PENDING', 'CONFIRMED', 'CHECKED_IN'));
			END IF;
		END $$`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to install overlap constraint: %w", err)
		}
	}
	return nil
}
