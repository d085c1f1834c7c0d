package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EngineConfigEnv holds the engine configuration JSON.
const EngineConfigEnv = "SENZING_ENGINE_CONFIGURATION_JSON"

// ErrMissingEngineConfig is returned when EngineConfigEnv is unset or empty.
var ErrMissingEngineConfig = errors.New(EngineConfigEnv + " is not set")

// MissingEngineConfigHelp is printed on stderr for ErrMissingEngineConfig.
const MissingEngineConfigHelp = "The environment variable " + EngineConfigEnv + " must be set with a proper JSON configuration.\n" +
	"Please see https://senzing.zendesk.com/hc/en-us/articles/360038774134-G2Module-Configuration-and-the-Senzing-API"

type Config struct {
	EngineConfigJSON string `env:"SENZING_ENGINE_CONFIGURATION_JSON"`

	Driver       string `env:"SZ_INIT_DB_DRIVER" envDefault:"postgres"`
	InstanceName string `env:"SZ_INIT_INSTANCE_NAME" envDefault:"sz_init_postgresql"`
	LogLevel     string `env:"SZ_INIT_LOG_LEVEL" envDefault:"info"`

	DebugTrace      bool
	SkipEnginePrime bool
}

// Overrides holds CLI flag values that take priority over env vars.
type Overrides struct {
	EnvFile         string
	LogLevel        string
	Driver          string
	InstanceName    string
	DebugTrace      bool
	SkipEnginePrime bool
}

// Load reads configuration from .env file, environment variables, and CLI overrides.
// Priority: CLI flags > environment variables > .env file > struct defaults.
func Load(overrides Overrides) (*Config, error) {
	// An explicitly named env file must exist; the default .env is optional.
	envFile := overrides.EnvFile
	if envFile == "" {
		envFile = ".env"
		if _, err := os.Stat(envFile); err != nil {
			envFile = ""
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Apply CLI overrides (non-empty values win)
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}
	if overrides.Driver != "" {
		cfg.Driver = overrides.Driver
	}
	if overrides.InstanceName != "" {
		cfg.InstanceName = overrides.InstanceName
	}
	cfg.DebugTrace = overrides.DebugTrace
	cfg.SkipEnginePrime = overrides.SkipEnginePrime

	if cfg.EngineConfigJSON == "" {
		return nil, ErrMissingEngineConfig
	}
	return cfg, nil
}
