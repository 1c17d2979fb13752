package config

import (
	"fmt"
	"strings"
)

// DefaultAllowedOrigins are the front-end origins allowed when none are configured.
var DefaultAllowedOrigins = []string{
	"https://web-productos.vercel.app",
	"http://localhost:4200",
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowedOrigins"`
	AllowCredentials bool     `koanf:"allowCredentials"`
	MaxAge           int      `koanf:"maxAge"`
}

// String returns a string representation of the CORS configuration.
func (c *CORSConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- CORS ---\n")
	b.WriteString(fmt.Sprintf("  allowedOrigins: %s\n", strings.Join(c.AllowedOrigins, ",")))
	b.WriteString(fmt.Sprintf("  allowCredentials: %t\n", c.AllowCredentials))
	b.WriteString(fmt.Sprintf("  maxAge: %d\n", c.MaxAge))
	return b.String()
}

func (c *CORSConfig) Validate() error {
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = DefaultAllowedOrigins
	}
	for _, origin := range c.AllowedOrigins {
		if c.AllowCredentials && origin == "*" {
			return fmt.Errorf("cors: wildcard origin cannot be combined with credentials")
		}
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("cors: maxAge must not be negative")
	}
	return nil
}
