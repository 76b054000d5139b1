package application

import (
	"context"

	"github.com/hotelmanager/service-rooms/internal/domain/guest"
	"github.com/hotelmanager/service-rooms/internal/domain/reservation"
	"github.com/hotelmanager/service-rooms/internal/domain/room"
)

// RepoSet gives access to the repositories, all bound to the same underlying
// connection or transaction.
type RepoSet interface {
	Rooms() room.Repository
	Reservations() reservation.Repository
	Guests() guest.Repository
}

// UnitOfWork runs multi-repository work atomically. Outside InTransaction the
// RepoSet methods operate auto-committed; inside the callback every repository
// is bound to one transaction that commits when the callback returns nil and
// rolls back otherwise.
type UnitOfWork interface {
	RepoSet
	InTransaction(ctx context.Context, fn func(repos RepoSet) error) error
}
