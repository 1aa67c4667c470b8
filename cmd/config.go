package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"bloom/internal/core/application/usecases/commands"
	"bloom/internal/core/domain/model/attachment"
	"bloom/internal/pkg/errs"
)

// DefaultGrantRetention is how long expired upload grants stay in the ledger.
const DefaultGrantRetention = 72 * time.Hour

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GCSBucket           string
	GCSSignerEmail      string
	GCSSignerPrivateKey string
	PresignTTL          time.Duration
	GrantRetention      time.Duration
	ShippingZonesFile   string

	PresignURL          string
	OrdersURL           string
	ConfirmationBaseURL string
	MaxImages           int
	MaxImageMB          int
}

// LoadConfig reads every setting through getenv. Empty optional values take their defaults;
// malformed values are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:            getenv("HTTP_PORT"),
		DBHost:              getenv("DB_HOST"),
		DBPort:              getenv("DB_PORT"),
		DBUser:              getenv("DB_USER"),
		DBPassword:          getenv("DB_PASSWORD"),
		DBName:              getenv("DB_NAME"),
		DBSslMode:           getenv("DB_SSLMODE"),
		GCSBucket:           getenv("GCS_BUCKET"),
		GCSSignerEmail:      getenv("GCS_SIGNER_EMAIL"),
		GCSSignerPrivateKey: getenv("GCS_SIGNER_PRIVATE_KEY"),
		ShippingZonesFile:   getenv("SHIPPING_ZONES_FILE"),
		PresignURL:          getenv("PRESIGN_URL"),
		OrdersURL:           getenv("ORDERS_URL"),
		ConfirmationBaseURL: getenv("CONFIRMATION_BASE_URL"),
	}

	var problems []error
	var err error
	if cfg.PresignTTL, err = durationOr(getenv, "PRESIGN_TTL", commands.DefaultUploadGrantTTL); err != nil {
		problems = append(problems, err)
	}
	if cfg.GrantRetention, err = durationOr(getenv, "GRANT_RETENTION", DefaultGrantRetention); err != nil {
		problems = append(problems, err)
	}
	if cfg.MaxImages, err = positiveIntOr(getenv, "MAX_IMAGES", attachment.DefaultMaxCount); err != nil {
		problems = append(problems, err)
	}
	if cfg.MaxImageMB, err = positiveIntOr(getenv, "MAX_IMAGE_MB", attachment.DefaultMaxSizeMB); err != nil {
		problems = append(problems, err)
	}
	return cfg, errors.Join(problems...)
}

// DSN is the gorm postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func durationOr(getenv func(string) string, key string, fallback time.Duration) (time.Duration, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsOutOfRangeError(key, d, "1ns", "unbounded")
	}
	return d, nil
}

func positiveIntOr(getenv func(string) string, key string, fallback int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if n < 1 {
		return 0, errs.NewValueIsOutOfRangeError(key, n, 1, "unbounded")
	}
	return n, nil
}
