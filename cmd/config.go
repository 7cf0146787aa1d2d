package cmd

import (
	"fmt"
	"time"
)

// Config carries the runtime settings read from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// PlatformAccountID is the ledger party credited with commissions.
	PlatformAccountID string

	// CommissionBasisPoints is the platform fee in basis points of the
	// agreed price (150 = 1.5%).
	CommissionBasisPoints int64

	// HandoverAckTimeout bounds how long a relay handover may await
	// acknowledgement before custody reverts.
	HandoverAckTimeout time.Duration

	// ValidationCodeTTL bounds how long an issued proof-of-delivery code
	// stays valid.
	ValidationCodeTTL time.Duration
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
