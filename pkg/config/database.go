package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DriverPgx  = "pgx"
	DriverGorm = "gorm"
)

type DatabaseConfig struct {
	Driver      string        `koanf:"driver"`
	URL         string        `koanf:"url"`
	Timeout     time.Duration `koanf:"timeout"`
	AutoMigrate bool          `koanf:"automigrate"`
}

// String returns a string representation of the database configuration.
func (c *DatabaseConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Database ---\n")
	b.WriteString(fmt.Sprintf("  driver: %s\n", c.Driver))
	b.WriteString(fmt.Sprintf("  url: %s\n", MaskURL(c.URL)))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	b.WriteString(fmt.Sprintf("  automigrate: %t\n", c.AutoMigrate))
	return b.String()
}

func (c *DatabaseConfig) Validate() error {
	if c.Driver == "" {
		c.Driver = DriverPgx
	}
	if c.URL == "" {
		return fmt.Errorf("database URL is not configured")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("database connect timeout is not configured")
	}
	switch c.Driver {
	case DriverPgx:
		if !IsPostgresURL(c.URL) {
			return fmt.Errorf("database URL must start with 'postgres://' for driver %s: %s", c.Driver, MaskURL(c.URL))
		}
	case DriverGorm:
		if !IsPostgresURL(c.URL) && !IsSqliteURL(c.URL) {
			return fmt.Errorf("database URL must be a postgres or sqlite URL for driver %s: %s", c.Driver, MaskURL(c.URL))
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
	return nil
}

// IsPostgresURL checks if the provided URL is a valid PostgreSQL URL
func IsPostgresURL(url string) bool {
	return strings.HasPrefix(url, "postgres://") ||
		strings.HasPrefix(url, "postgresql://")
}

// IsSqliteURL reports whether the URL points to a sqlite database ("sqlite://path" or "file:path").
func IsSqliteURL(url string) bool {
	return strings.HasPrefix(url, "sqlite://") ||
		strings.HasPrefix(url, "file:")
}

// MaskURL hides the credentials part of a connection URL.
func MaskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	if IsSqliteURL(url) {
		return url
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}
