package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FRAGMENTS_"

// DefaultEnvFiles are the env files the CLI looks for.
var DefaultEnvFiles = []string{".env", ".env.local"}

type lookupFunc func(key string) (string, bool)

func loadEnvFiles(files ...string) error {
	var existing []string
	for _, name := range files {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, err := os.Stat(name); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: stat env file %q: %w", name, err)
		}
		existing = append(existing, name)
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		*dst = parsed
		return nil
	}
	duration := func(name string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		*dst = parsed
		return nil
	}

	str("APP_TITLE", &cfg.AppTitle)
	str("ADDR", &cfg.Server.Addr)
	str("TEMPLATES_DIR", &cfg.Templates.Dir)
	str("STATIC_DIR", &cfg.Static.Dir)
	str("STYLESHEET", &cfg.Static.Stylesheet)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)
	str("METRICS_PATH", &cfg.Metrics.Path)

	for name, dst := range map[string]*bool{
		"TEMPLATES_WATCH": &cfg.Templates.Watch,
		"METRICS_ENABLED": &cfg.Metrics.Enabled,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}
	for name, dst := range map[string]*time.Duration{
		"READ_TIMEOUT":   &cfg.Server.ReadTimeout,
		"WRITE_TIMEOUT":  &cfg.Server.WriteTimeout,
		"SHUTDOWN_GRACE": &cfg.Server.ShutdownGrace,
	} {
		if err := duration(name, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup(EnvPrefix + "COUNTER_SEED"); ok {
		parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("config: %sCOUNTER_SEED: %w", EnvPrefix, err)
		}
		cfg.Seed.Counter = parsed
	}
	return nil
}
