package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	HTTP     HTTP
	Probe    Probe
	Metrics  Metrics
	Postgres Postgres
	Redis    Redis
	Cache    Cache
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"provider-map"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
	// Debug exposes internal error text in API responses.
	Debug    bool   `env:"APP_DEBUG" envDefault:"false"`
	LogLevel string `env:"APP_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	NoColor  bool   `env:"APP_LOG_NO_COLOR" envDefault:"false"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("validator.Struct: %w", err)
	}

	return config, nil
}
