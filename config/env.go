package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Env is the configuration read from the environment
type Env struct {
	// root folder of results and launch records
	StoragePath string `env:"LOCAL_STORAGE_PATH" envDefault:"."`
	WandbAPIKey string `env:"WANDB_API_KEY"`
	RedisAddr   string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	RedisDB     int    `env:"REDIS_DB" envDefault:"0"`
	// interpreter used by the train commands
	Python string `env:"PYTHON" envDefault:"python3"`
	Shell  string `env:"SWEEP_SHELL" envDefault:"/bin/sh"`
}

// LoadDotEnv loads the given .env files into the process environment.
// Missing files are skipped, variables already set are not overridden
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseEnv fills an Env from environment variables
func ParseEnv() (*Env, error) {
	cfg := &Env{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Load reads the .env files then the environment
func Load(dotEnvFiles ...string) (*Env, error) {
	if err := LoadDotEnv(dotEnvFiles...); err != nil {
		return nil, err
	}
	return ParseEnv()
}

// Exitf writes a formatted error message to stderr and exits with code 1
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
