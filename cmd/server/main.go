package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hotelmanager/service-rooms/internal/application"
	"github.com/hotelmanager/service-rooms/internal/config"
	roomEvents "github.com/hotelmanager/service-rooms/internal/events"
	"github.com/hotelmanager/service-rooms/internal/handler"
	"github.com/hotelmanager/service-rooms/internal/platform/auth"
	"github.com/hotelmanager/service-rooms/internal/platform/database"
	"github.com/hotelmanager/service-rooms/internal/platform/health"
	"github.com/hotelmanager/service-rooms/internal/platform/kafka"
	"github.com/hotelmanager/service-rooms/internal/platform/logger"
	"github.com/hotelmanager/service-rooms/internal/platform/middleware"
	"github.com/hotelmanager/service-rooms/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-rooms")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-rooms",
		zap.String("port", cfg.Port),
	)

	// Connect to database
	dbConfig := database.PostgresConfig{
		Host:     cfg.DBConfig.Host,
		Port:     cfg.DBConfig.Port,
		User:     cfg.DBConfig.User,
		Password: cfg.DBConfig.Password,
		DBName:   cfg.DBConfig.DBName,
		SSLMode:  cfg.DBConfig.SSLMode,
	}
	db, err := database.Connect(dbConfig, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(&repository.RoomModel{}, &repository.GuestModel{}, &repository.ReservationModel{}); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		if err := repository.EnsureOverlapConstraint(db); err != nil {
			log.Fatal("failed to install overlap constraint", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		dbURL := database.DatabaseURL(dbConfig)
		if err := database.RunMigrations(dbURL, "migrations", log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(
		cfg.JWTConfig.Secret,
		15*time.Minute,
		7*24*time.Hour,
	)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaConfig.Brokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize persistence
	store := repository.NewStore(db)

	// Initialize application services
	roomService := application.NewRoomService(store, kafkaProducer, log)
	provisioner := application.NewGuestProvisioner(cfg.GuestEmailDomain)
	reservationService := application.NewReservationService(store, provisioner, kafkaProducer, log)

	// Initialize and start housekeeping event consumer in a goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	groupID := cfg.KafkaConfig.GroupPrefix + "rooms-service"
	housekeepingConsumer := roomEvents.NewHousekeepingEventConsumer(
		cfg.KafkaConfig.Brokers,
		groupID,
		roomService,
		log,
	)
	defer func() { _ = housekeepingConsumer.Close() }()

	go func() {
		log.Info("starting housekeeping event consumer")
		if err := housekeepingConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("housekeeping event consumer error", zap.Error(err))
		}
	}()

	// Initialize HTTP handlers
	roomHandler := handler.NewRoomHandler(roomService)
	reservationHandler := handler.NewReservationHandler(reservationService)
	publicHandler := handler.NewPublicHandler(reservationService)
	clientHandler := handler.NewClientHandler(reservationService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	// Register health check routes
	healthHandler := health.NewHandler(db, "service-rooms")
	healthHandler.RegisterRoutes(router)

	// Register routes
	roomHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	reservationHandler.RegisterRoutes(&router.RouterGroup, jwtManager)
	publicHandler.RegisterRoutes(&router.RouterGroup)
	clientHandler.RegisterRoutes(&router.RouterGroup, jwtManager)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-rooms...")

	// Cancel the consumer context
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-rooms stopped")
}
