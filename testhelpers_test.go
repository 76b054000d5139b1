//go:build integration

package main_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hotelmanager/service-rooms/internal/application"
	"github.com/hotelmanager/service-rooms/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB      *gorm.DB
	Cleanup func()
}

// roomsStack holds the wired-up services. Event publishing is disabled in
// integration tests; the producer is nil and the services skip it.
type roomsStack struct {
	Store        *repository.Store
	Rooms        *application.RoomService
	Reservations *application.ReservationService
}

// setupPostgres starts a PostgreSQL testcontainer and returns a connected GORM DB
// with the schema and the overlap constraint installed.
func setupPostgres(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_rooms",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test_rooms sslmode=disable", pgHost, pgPort.Port())

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.RoomModel{},
		&repository.GuestModel{},
		&repository.ReservationModel{},
	))
	require.NoError(t, repository.EnsureOverlapConstraint(db))

	cleanup := func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{DB: db, Cleanup: cleanup}
}

// setupRoomsStack wires up the services on top of the test database.
func setupRoomsStack(t *testing.T, db *gorm.DB) *roomsStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	store := repository.NewStore(db)
	roomSvc := application.NewRoomService(store, nil, logger)
	provisioner := application.NewGuestProvisioner("guests.test")
	reservationSvc := application.NewReservationService(store, provisioner, nil, logger)

	return &roomsStack{
		Store:        store,
		Rooms:        roomSvc,
		Reservations: reservationSvc,
	}
}

// seedRoom inserts a FREE room and returns its ID.
func seedRoom(t *testing.T, db *gorm.DB, hotelID uuid.UUID, number int) uuid.UUID {
	t.Helper()
	id := uuid.New()
	model := repository.RoomModel{
		ID:          id,
		HotelID:     hotelID,
		RoomNumber:  number,
		RoomType:    "Standard",
		Floor:       number / 100,
		State:       "FREE",
		Active:      true,
		LastUpdated: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&model).Error, "failed to seed room")
	return id
}

// fetchRoom reads a room row back for assertions.
func fetchRoom(t *testing.T, db *gorm.DB, id uuid.UUID) repository.RoomModel {
	t.Helper()
	var model repository.RoomModel
	require.NoError(t, db.Where("id = ?", id).First(&model).Error)
	return model
}

// fetchReservation reads a reservation row back for assertions.
func fetchReservation(t *testing.T, db *gorm.DB, id uuid.UUID) repository.ReservationModel {
	t.Helper()
	var model repository.ReservationModel
	require.NoError(t, db.Where("id = ?", id).First(&model).Error)
	return model
}

// nights builds a half-open stay interval n days from now, lasting the given
// number of days.
func nights(fromNowDays, lengthDays int) (time.Time, time.Time) {
	start := time.Now().UTC().Truncate(time.Hour).AddDate(0, 0, fromNowDays)
	return start, start.AddDate(0, 0, lengthDays)
}
