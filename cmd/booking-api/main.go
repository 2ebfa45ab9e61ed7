package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/srgjo27/hotel_booking/internal/adapter/events"
	"github.com/srgjo27/hotel_booking/internal/adapter/gateway"
	"github.com/srgjo27/hotel_booking/internal/adapter/handler"
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

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "booking-service"})
	cfg.LogConfiguration(log)

	if err := run(cfg, log); err != nil {
		log.Error("booking service stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := shutdown.WithSignals(context.Background())
	defer stop()

	var bookingRepo ports.BookingRepository
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := database.NewPostgresDB(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(ctx, db, "bookings.sql"); err != nil {
			return err
		}
		bookingRepo = postgres.NewBookingRepository(db)
	default:
		log.Warn("using in-memory booking storage, data is lost on restart")
		bookingRepo = memory.NewBookingRepository()
	}

	var publisher ports.EventPublisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		defer kafka.Close()
		publisher = kafka
	}

	bookingService := services.NewBookingService(bookingRepo, newGateway(cfg, log), publisher, log)

	go bookingService.RunReconciler(ctx, cfg.ReconcileInterval, cfg.ReconcileStaleAfter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewBookingRouter(handler.NewBookingHandler(bookingService, log), log),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	return shutdown.Serve(ctx, server, cfg.ShutdownTimeout, log)
}

func newGateway(cfg *config.Config, log *slog.Logger) ports.AvailabilityGateway {
	if cfg.HotelServiceURL == "" {
		return gateway.New(nil, log)
	}

	var tokens gateway.TokenSource
	if cfg.ServiceTokenSecret != "" {
		tokens = servicetoken.NewSigner(cfg.ServiceTokenSecret, "booking-service", cfg.ServiceTokenTTL)
	}

	client := gateway.NewHTTPClient(cfg.HotelServiceURL, cfg.HotelServiceTimeout, tokens, log)
	return gateway.New(client, log)
}
