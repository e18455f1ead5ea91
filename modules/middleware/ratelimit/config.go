package ratelimit

import (
	"errors"
	"time"
)

// Config is read with the RATE_LIMIT_ prefix.
type Config struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Limit   int64         `env:"LIMIT"   envDefault:"100"`
	Window  time.Duration `env:"WINDOW"  envDefault:"1m"`

	// Use the nearest X-Forwarded-For hop instead of the socket peer.
	// Only safe behind a proxy that sets the header.
	TrustForwardedFor bool `env:"TRUST_FORWARDED_FOR"`

	// Paths never limited, e.g. probes.
	SkipPaths []string `env:"SKIP_PATHS" envDefault:"/healthz,/readyz"`
}

func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Limit <= 0 {
		return errors.New("ratelimit: LIMIT must be positive")
	}
	if c.Window <= 0 {
		return errors.New("ratelimit: WINDOW must be positive")
	}
	return nil
}
