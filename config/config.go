package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/nandha2804/TMS/pkg/constant"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DBURL string `env:"DB_URL,required,notEmpty"`

	JWTSecret          string        `env:"JWT_SECRET,required"`
	AccessTokenExpiry  time.Duration `env:"JWT_EXPIRES_IN" envDefault:"15m"`
	RefreshTokenExpiry time.Duration `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"168h"`

	RateLimitWindow      time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitMaxRequests int           `env:"RATE_LIMIT_MAX_REQUESTS" envDefault:"100"`

	LoginRateLimitWindow time.Duration `env:"LOGIN_RATE_LIMIT_WINDOW" envDefault:"1h"`
	LoginMaxAttempts     int           `env:"LOGIN_RATE_LIMIT_MAX_ATTEMPTS" envDefault:"5"`

	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	// BcryptCost defaults per environment: 12 in production, 10 elsewhere.
	// Higher cost is a deliberate throughput/security trade-off.
	BcryptCost int `env:"PASSWORD_HASH_COST"`
}

// Load reads configuration from environment variables and validates it.
// Missing or invalid required values fail here, at startup, never at
// request time.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.JWTSecret) < constant.MinJWTSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters long, got %d",
			constant.MinJWTSecretLength, len(cfg.JWTSecret))
	}

	if cfg.LoginMaxAttempts < 1 {
		return nil, fmt.Errorf("LOGIN_RATE_LIMIT_MAX_ATTEMPTS must be positive, got %d", cfg.LoginMaxAttempts)
	}

	if cfg.BcryptCost == 0 {
		if cfg.IsProduction() {
			cfg.BcryptCost = 12
		} else {
			cfg.BcryptCost = 10
		}
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
