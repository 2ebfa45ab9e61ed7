package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/srgjo27/hotel_booking/internal/platform/database"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	LedgerMemory = "memory"
	LedgerRedis  = "redis"
)

type Config struct {
	Port          string
	Storage       string
	Database      database.Config
	RoomsSeedFile string

	RedisAddr        string
	Ledger           string
	LedgerMaxEntries int
	LedgerTTL        time.Duration

	HotelServiceURL     string
	HotelServiceTimeout time.Duration

	ServiceTokenSecret string
	ServiceTokenTTL    time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	ReconcileInterval   time.Duration
	ReconcileStaleAfter time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads an optional .env file, then the process environment.
func Load(envFile string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	cfg := &Config{
		Port:    getEnvStr("PORT", "8080"),
		Storage: getEnvStr("STORAGE", StoragePostgres),
		Database: database.Config{
			Host:     getEnvStr("DB_HOST", "localhost"),
			Port:     getEnvStr("DB_PORT", "5432"),
			User:     getEnvStr("DB_USER", "postgres"),
			Password: getEnvStr("DB_PASSWORD", ""),
			DBName:   getEnvStr("DB_NAME", "hotel_booking"),
		},
		RoomsSeedFile: getEnvStr("ROOMS_SEED_FILE", ""),

		RedisAddr:        getEnvStr("REDIS_ADDR", "localhost:6379"),
		Ledger:           getEnvStr("LEDGER", LedgerMemory),
		LedgerMaxEntries: getEnvNum("LEDGER_MAX_ENTRIES", 10000),
		LedgerTTL:        getEnvDuration("LEDGER_TTL", 24*time.Hour),

		HotelServiceURL:     getEnvStr("HOTEL_SERVICE_URL", "http://localhost:8081"),
		HotelServiceTimeout: getEnvDuration("HOTEL_SERVICE_TIMEOUT", 5*time.Second),

		ServiceTokenSecret: getEnvStr("SERVICE_TOKEN_SECRET", ""),
		ServiceTokenTTL:    getEnvDuration("SERVICE_TOKEN_TTL", 5*time.Minute),

		KafkaBrokers: getEnvList("KAFKA_BROKERS"),
		KafkaTopic:   getEnvStr("KAFKA_TOPIC", "booking.events"),

		ReconcileInterval:   getEnvDuration("RECONCILE_INTERVAL", time.Minute),
		ReconcileStaleAfter: getEnvDuration("RECONCILE_STALE_AFTER", 15*time.Minute),

		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),

		LogLevel:  getEnvStr("LOG_LEVEL", "info"),
		LogFormat: getEnvStr("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got: %s", cfg.Port))
	}
	if cfg.Storage != StorageMemory && cfg.Storage != StoragePostgres {
		problems = append(problems, fmt.Sprintf("STORAGE must be %q or %q, got: %s", StorageMemory, StoragePostgres, cfg.Storage))
	}
	if cfg.Ledger != LedgerMemory && cfg.Ledger != LedgerRedis {
		problems = append(problems, fmt.Sprintf("LEDGER must be %q or %q, got: %s", LedgerMemory, LedgerRedis, cfg.Ledger))
	}
	if cfg.LedgerMaxEntries <= 0 {
		problems = append(problems, fmt.Sprintf("LEDGER_MAX_ENTRIES must be positive, got: %d", cfg.LedgerMaxEntries))
	}
	if cfg.LedgerTTL <= 0 {
		problems = append(problems, fmt.Sprintf("LEDGER_TTL must be positive, got: %s", cfg.LedgerTTL))
	}
	if cfg.HotelServiceURL != "" {
		if u, err := url.Parse(cfg.HotelServiceURL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("HOTEL_SERVICE_URL must be an absolute URL, got: %s", cfg.HotelServiceURL))
		}
	}
	if cfg.HotelServiceTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("HOTEL_SERVICE_TIMEOUT must be positive, got: %s", cfg.HotelServiceTimeout))
	}
	if cfg.ServiceTokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("SERVICE_TOKEN_TTL must be positive, got: %s", cfg.ServiceTokenTTL))
	}
	if cfg.ReconcileInterval <= 0 {
		problems = append(problems, fmt.Sprintf("RECONCILE_INTERVAL must be positive, got: %s", cfg.ReconcileInterval))
	}
	if cfg.ReconcileStaleAfter <= 0 {
		problems = append(problems, fmt.Sprintf("RECONCILE_STALE_AFTER must be positive, got: %s", cfg.ReconcileStaleAfter))
	}
	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.ShutdownTimeout <= 0 {
		problems = append(problems, "READ_TIMEOUT, WRITE_TIMEOUT and SHUTDOWN_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		msg := "configuration validation failed:\n"
		for i, p := range problems {
			msg += fmt.Sprintf("  %d. %s\n", i+1, p)
		}
		return fmt.Errorf("%s", msg)
	}

	return nil
}

func (cfg *Config) LogConfiguration(log *slog.Logger) {
	log.Info("configuration loaded",
		"port", cfg.Port,
		"storage", cfg.Storage,
		"db_host", cfg.Database.Host,
		"db_name", cfg.Database.DBName,
		"ledger", cfg.Ledger,
		"ledger_max_entries", cfg.LedgerMaxEntries,
		"ledger_ttl", cfg.LedgerTTL,
		"hotel_service_url", cfg.HotelServiceURL,
		"service_token_set", cfg.ServiceTokenSecret != "",
		"kafka_brokers", cfg.KafkaBrokers,
		"kafka_topic", cfg.KafkaTopic,
		"reconcile_interval", cfg.ReconcileInterval,
		"reconcile_stale_after", cfg.ReconcileStaleAfter,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
