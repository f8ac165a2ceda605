package config

import "time"

type Postgres struct {
	DSN             string        `env:"PG_DSN,notEmpty" json:"-"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"10" validate:"gt=0"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5" validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"5m"`
}

type Redis struct {
	Address            string        `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	Username           string        `env:"REDIS_USERNAME"`
	Password           string        `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber     int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize           int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConnections int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	MaxIdleConnections int           `env:"REDIS_MAX_IDLE_CONNS" envDefault:"5"`
	Timeout            time.Duration `env:"REDIS_TIMEOUT" envDefault:"3s" validate:"gte=0"`
}

// Cache selects where the discovery snapshot lives. Redis is only
// connected when it is the chosen backend.
type Cache struct {
	Backend         string        `env:"CACHE_BACKEND" envDefault:"memory" validate:"oneof=memory redis"`
	Key             string        `env:"CACHE_KEY" envDefault:"map_providers" validate:"required"`
	TTL             time.Duration `env:"CACHE_TTL" envDefault:"900s" validate:"gt=0"`
	CleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"10m"`
	// WarmInterval of zero disables background warming.
	WarmInterval time.Duration `env:"CACHE_WARM_INTERVAL" envDefault:"1m" validate:"gte=0"`
}
