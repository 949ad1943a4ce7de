package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"5000" validate:"required,numeric"`
	Store          string        `env:"STORE" envDefault:"mongo" validate:"oneof=mongo memory"`
	MongoURI       string        `env:"MONGODB_CONNSTRING" validate:"required_if=Store mongo"`
	Database       string        `env:"MONGODB_DATABASE" envDefault:"conference-service" validate:"required"`
	ConnectTimeout time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	CORSOrigin     string        `env:"CORS_ORIGIN" envDefault:"*"`
	AdminAuth      bool          `env:"ADMIN_AUTH" envDefault:"false"`
	Sign           string        `env:"SIGN" validate:"required_if=AdminAuth true"`
}

// ListenAddr is the address passed to fiber.App.Listen.
func (c Config) ListenAddr() string {
	return ":" + c.Port
}

// Load reads an optional .env file, then the environment, and validates
// the result. Variables already in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env file: %w", err)
	}

	return Parse()
}

// Parse reads the environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
