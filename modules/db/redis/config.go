package redis

import "time"

// RedisConfig contains configuration for constructing a rueidis.Client.
//
// URL is a standard Redis URI, for example:
//
//   - Single:  redis://:password@localhost:6379/0
//   - TLS:     rediss://:password@my-redis.example.com:6379/0
//   - Cluster: redis://:password@host1:6379/0?addr=host2:6379&addr=host3:6379
//
// An empty URL means Redis is not used.
type RedisConfig struct {
	URL string `env:"URL"`

	// Optional: client name visible in CLIENT LIST, etc.
	ClientName string `env:"CLIENT_NAME" envDefault:"profile-service"`

	// SkipTLSVerify disables TLS certificate verification. Only use this in trusted
	// environments (e.g. some managed offerings with non-standard certs).
	SkipTLSVerify bool `env:"SKIP_TLS_VERIFY"`

	// RequireTLS rejects plaintext redis:// URLs.
	RequireTLS bool `env:"REQUIRE_TLS"`

	// Tuning flags, zero keeps the rueidis defaults.
	DisableRetry     bool          `env:"DISABLE_RETRY"`
	ConnWriteTimeout time.Duration `env:"CONN_WRITE_TIMEOUT"`

	// Counters are never read through the client side cache.
	DisableCache bool `env:"DISABLE_CACHE" envDefault:"true"`

	// Wrap the client with rueidisotel for traces and metrics.
	EnableOtel bool `env:"ENABLE_OTEL"`
}

// Enabled reports whether a Redis URL was configured.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}
