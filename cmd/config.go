package cmd

import (
	"errors"
	"fmt"
	"time"

	"errands/internal/pkg/errs"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// JWTSecret verifies the HS256 bearer tokens issued by the identity provider.
	JWTSecret string

	AutoConfirmSchedule string
	AutoConfirmWindow   time.Duration
	ExpirySchedule      string
	SweepBatchSize      int

	// SweepLeaseEnabled makes the sweeps take a Postgres advisory lock, for multi-instance deployments.
	SweepLeaseEnabled bool
}

// DSN is the libpq keyword/value connection string shared by gorm and the lease pool.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) Validate() error {
	var problems []error
	required := map[string]string{
		"HTTP_PORT":  c.HTTPPort,
		"DB_HOST":    c.DBHost,
		"DB_PORT":    c.DBPort,
		"DB_USER":    c.DBUser,
		"DB_NAME":    c.DBName,
		"JWT_SECRET": c.JWTSecret,
	}
	for name, value := range required {
		if value == "" {
			problems = append(problems, errs.NewValueIsRequiredError(name))
		}
	}
	if c.AutoConfirmWindow <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("AUTO_CONFIRM_WINDOW"))
	}
	if c.SweepBatchSize <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("SWEEP_BATCH_SIZE"))
	}
	return errors.Join(problems...)
}
