package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "github.com/kevserarslan/car-rental-management/internal/api/http"
	"github.com/kevserarslan/car-rental-management/internal/config"
	"github.com/kevserarslan/car-rental-management/internal/logger"
	"github.com/kevserarslan/car-rental-management/internal/repository/postgres"
	"github.com/kevserarslan/car-rental-management/internal/security"
	"github.com/kevserarslan/car-rental-management/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// A missing .env is fine; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Car Rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := db.PingContext(ctx); err != nil {
		cancel()
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			cancel()
			log.Fatalf("Failed to apply schema: %v", err)
		}
		logger.Info("Database schema applied")
	}
	cancel()

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.TokenExpiry())

	// Initialize Services
	availability := service.NewAvailabilityChecker(store.Cars, store.Reservations)
	authSvc := service.NewAuthService(store.Users, tokenManager)
	userSvc := service.NewUserService(store.Users)
	categorySvc := service.NewCategoryService(store.Categories)
	carSvc := service.NewCarService(store.Cars, store.Categories, availability)
	reservationSvc := service.NewReservationService(store.Repositories, store)
	rentalSvc := service.NewRentalService(store.Repositories, store)

	httpClient := service.NewHTTPClient(cfg.ExternalTimeout())
	currencySvc := service.NewCurrencyConverter(cfg.External.CurrencyBaseURL, httpClient)
	vehicleSvc := service.NewVehicleLookup(cfg.External.VehicleBaseURL, httpClient)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	admin, err := userSvc.EnsureAdmin(seedCtx, service.AdminSeed{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
		Phone:    cfg.Admin.Phone,
		Address:  cfg.Admin.Address,
	})
	seedCancel()
	if err != nil {
		logger.Error("Failed to seed admin account", "error", err)
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	logger.Info("Admin account ready", "admin_id", admin.ID, "email", admin.Email)

	// Initialize HTTP handlers
	handlers := httpapi.Handlers{
		Auth:         httpapi.NewAuthHandler(authSvc),
		Cars:         httpapi.NewCarHandler(carSvc),
		Categories:   httpapi.NewCategoryHandler(categorySvc),
		Reservations: httpapi.NewReservationHandler(reservationSvc),
		Rentals:      httpapi.NewRentalHandler(rentalSvc),
		Users:        httpapi.NewUserHandler(userSvc),
		Currency:     httpapi.NewCurrencyHandler(currencySvc),
		Vehicles:     httpapi.NewVehicleHandler(vehicleSvc),
		Health:       httpapi.NewHealthHandler(db),
	}
	router := httpapi.NewRouter(handlers, httpapi.NewAuthMiddleware(tokenManager, store.Users), cfg.CORS)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
