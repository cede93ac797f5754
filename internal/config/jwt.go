package config

import (
	"fmt"
	"time"
)

// JWTConfig holds configuration for JWT token generation and validation.
// An empty Secret disables authenticated routes.
type JWTConfig struct {
	Secret          string `mapstructure:"jwt_secret"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
	Issuer          string `mapstructure:"issuer"`
}

// Enabled reports whether a signing secret is configured.
func (c JWTConfig) Enabled() bool {
	return c.Secret != ""
}

// Expiration returns the token lifetime.
func (c JWTConfig) Expiration() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if c.Secret == "" {
		return fmt.Errorf("jwt_secret cannot be empty")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("jwt_secret must be at least 16 bytes, got %d", len(c.Secret))
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("expiration_hours must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
