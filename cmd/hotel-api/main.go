package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/hotel_booking/internal/adapter/handler"
	"github.com/srgjo27/hotel_booking/internal/adapter/ledger"
	"github.com/srgjo27/hotel_booking/internal/adapter/repository/memory"
	"github.com/srgjo27/hotel_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/hotel_booking/internal/core/ports"
	"github.com/srgjo27/hotel_booking/internal/core/services"
	"github.com/srgjo27/hotel_booking/internal/platform/config"
	"github.com/srgjo27/hotel_booking/internal/platform/database"
	"github.com/srgjo27/hotel_booking/internal/platform/logger"
	"github.com/srgjo27/hotel_booking/internal/platform/servicetoken"
	"github.com/srgjo27/hotel_booking/internal/platform/shutdown"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "hotel-service"})
	cfg.LogConfiguration(log)

	if err := run(cfg, log); err != nil {
		log.Error("hotel service stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := shutdown.WithSignals(context.Background())
	defer stop()

	var roomRepo ports.RoomRepository
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(ctx, db, "rooms.sql"); err != nil {
			return err
		}
		roomRepo = postgres.NewRoomRepository(db)
	default:
		rooms, err := loadRooms(cfg.RoomsSeedFile)
		if err != nil {
			return err
		}
		log.Warn("using in-memory room storage", "rooms", len(rooms))
		roomRepo = memory.NewRoomRepository(rooms...)
	}

	var idempotency ports.IdempotencyLedger
	switch cfg.Ledger {
	case config.LedgerRedis:
		log.Info("connecting to redis", "addr", cfg.RedisAddr)
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: 0})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("redis connected")
		idempotency = ledger.NewRedis(rdb, cfg.LedgerTTL)
	default:
		idempotency = ledger.NewMemory(cfg.LedgerMaxEntries, cfg.LedgerTTL)
	}

	var verifier handler.TokenVerifier
	if cfg.ServiceTokenSecret != "" {
		verifier = servicetoken.NewVerifier(cfg.ServiceTokenSecret)
	} else {
		log.Warn("SERVICE_TOKEN_SECRET not set, confirm and release are unauthenticated")
	}

	availabilityService := services.NewAvailabilityService(roomRepo, idempotency, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewHotelRouter(handler.NewAvailabilityHandler(availabilityService, log), verifier, log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return shutdown.Serve(ctx, server, cfg.ShutdownTimeout, log)
}
