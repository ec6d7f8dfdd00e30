package database

import (
	"fmt"
	"time"
)

// Config holds all settings needed to connect to PostgreSQL.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string

	// DSN, when set, wins over the discrete fields.
	DSN string

	// Pool tuning
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration

	// ConnectTimeout is the limit for establishing a new connection.
	ConnectTimeout time.Duration
}

// DefaultConfig returns settings suited to a short-lived introspection
// session: a small pool with a snappy connect timeout.
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		Port:            5432,
		SSLMode:         "disable",
		MaxConns:        4,
		MinConns:        1,
		MaxConnIdleTime: time.Minute,
		ConnectTimeout:  10 * time.Second,
	}
}

// ConfigFromDSN returns a default config carrying the given connection
// string.
func ConfigFromDSN(dsn string) *Config {
	cfg := DefaultConfig()
	cfg.DSN = dsn
	return cfg
}

// ConnString returns the effective connection string.
func (c *Config) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	port := c.Port
	if port == 0 {
		port = 5432
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, port, c.User, c.Password, c.Database, sslMode,
	)
}
