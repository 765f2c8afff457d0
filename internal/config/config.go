// Package config loads scorer settings from .env files, the environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/DoyleJ11/innings-scorer/internal/engine"
)

type Config struct {
	Addr           string   `env:"SCORER_ADDR" envDefault:":8080"`
	LogLevel       string   `env:"SCORER_LOG_LEVEL" envDefault:"info"`
	LogDev         bool     `env:"SCORER_LOG_DEV" envDefault:"false"`
	OpenerA        string   `env:"SCORER_OPENER_A" envDefault:"Rahul"`
	OpenerB        string   `env:"SCORER_OPENER_B" envDefault:"Rohit"`
	ClientBuffer   int      `env:"SCORER_CLIENT_BUFFER" envDefault:"8"`
	OriginPatterns []string `env:"SCORER_ORIGIN_PATTERNS" envSeparator:","`
}

func (c Config) Openers() engine.Lineup {
	return engine.Lineup{A: strings.TrimSpace(c.OpenerA), B: strings.TrimSpace(c.OpenerB)}
}

// LoadEnvFiles reads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if f == "" {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The scorer server listen address")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.OpenerA, "opener-a", cfg.OpenerA, "Default opener in slot A")
	fs.StringVar(&cfg.OpenerB, "opener-b", cfg.OpenerB, "Default opener in slot B")
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("parse flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.ClientBuffer <= 0 {
		return fmt.Errorf("SCORER_CLIENT_BUFFER must be positive, got %d", c.ClientBuffer)
	}
	if strings.TrimSpace(c.OpenerA) == "" || strings.TrimSpace(c.OpenerB) == "" {
		return errors.New("opener names must not be blank")
	}
	return nil
}
