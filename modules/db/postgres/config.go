package postgres

const defaultPoolMaxConns = 10

type (
	// Note: For env parsing to work, we must export all struct fields
	PostgresConfig struct {
		// URL takes precedence over WriteConfig when set (DATABASE_URL).
		URL string `env:"URL"`

		WriteConfig PoolConfig   `envPrefix:"PRIMARY_"`
		ReadConfigs []PoolConfig `envPrefix:"REPLICA_"`

		// AutoMigrate applies pending migrations on the primary at startup.
		AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`
	}

	PoolConfig struct {
		Host         string `env:"HOST"     envDefault:"localhost"`
		Port         uint16 `env:"PORT"     envDefault:"5432"`
		User         string `env:"USER"     envDefault:"postgres"`
		Password     string `env:"PASSWORD" envDefault:"postgres"`
		Database     string `env:"DATABASE"`
		SSLMode      string `env:"SSL_MODE" envDefault:"disable"`
		// PoolMaxConns of 0 keeps pool_max_conns from URL, or
		// defaultPoolMaxConns for pools built from the fields above.
		PoolMaxConns int `env:"POOL_MAX_CONNS"`
	}
)
