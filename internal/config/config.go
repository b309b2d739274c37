package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	HoldTTL         time.Duration
	SweepInterval   time.Duration
	SlotCount       int
	PaymentAsset    string
	PaymentAddress  string
	GoogleClientID  string
	GoogleSecret    string
	GoogleTokenPath string
	CalendarTimeout time.Duration
	OTLPEndpoint    string
	LogLevel        string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	holdTTL, _ := time.ParseDuration(os.Getenv("HOLD_TTL"))
	if holdTTL <= 0 {
		holdTTL = 15 * time.Minute
	}

	sweepInterval, _ := time.ParseDuration(os.Getenv("SWEEP_INTERVAL"))
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}

	calendarTimeout, _ := time.ParseDuration(os.Getenv("CALENDAR_TIMEOUT"))
	if calendarTimeout <= 0 {
		calendarTimeout = 10 * time.Second
	}

	return &Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		HoldTTL:         holdTTL,
		SweepInterval:   sweepInterval,
		SlotCount:       3,
		PaymentAsset:    getEnv("PAYMENT_ASSET", "USDC"),
		PaymentAddress:  getEnv("PAYMENT_ADDRESS", "0xDEMOADDRESS"),
		GoogleClientID:  os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleSecret:    os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleTokenPath: getEnv("GOOGLE_TOKEN_PATH", defaultTokenPath()),
		CalendarTimeout: calendarTimeout,
		OTLPEndpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "google_calendar_token.json"
	}
	return home + "/.config/chronolock/google_calendar_token.json"
}
