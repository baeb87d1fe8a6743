package config

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.SessionSecret) < 32 {
		return fmt.Errorf("auth.session_secret must be at least 32 characters (got %d)", len(c.Auth.SessionSecret))
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be > 0 (got %s)", c.Auth.SessionTTL)
	}
	if strings.TrimSpace(c.Auth.CookieName) == "" {
		return fmt.Errorf("auth.cookie_name must not be empty")
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be between %d and %d (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Lexicon.validate(); err != nil {
		return fmt.Errorf("lexicon: %w", err)
	}

	if c.RateLimit.LoginPerMinute < 0 {
		return fmt.Errorf("rate_limit.login_per_minute must be >= 0 (got %d)", c.RateLimit.LoginPerMinute)
	}

	if c.CORS.AllowCredentials && slices.Contains(c.CORS.Origins(), "*") {
		return fmt.Errorf("cors.allowed_origins must list explicit origins when allow_credentials is set")
	}

	return nil
}

func (l *LexiconConfig) validate() error {
	if l.SearchLimit == 0 {
		return fmt.Errorf("search_limit must be > 0")
	}
	if l.RecountInterval < 0 {
		return fmt.Errorf("recount_interval must be >= 0 (got %s)", l.RecountInterval)
	}
	if l.RecountWorkers < 1 {
		return fmt.Errorf("recount_workers must be >= 1 (got %d)", l.RecountWorkers)
	}
	return nil
}
