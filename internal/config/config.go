// Package config loads server configuration from defaults, an optional YAML
// file, .env files and FRAGMENTS_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	AppTitle  string          `yaml:"app_title"`
	Server    ServerConfig    `yaml:"server"`
	Templates TemplatesConfig `yaml:"templates"`
	Static    StaticConfig    `yaml:"static"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Seed      SeedConfig      `yaml:"seed"`
}

type ServerConfig struct {
	Addr          string        `yaml:"addr"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace"`
}

// TemplatesConfig selects where templates come from. An empty Dir means the
// embedded copy. Watch only applies to a directory.
type TemplatesConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

// StaticConfig selects the directory served under /static/ and the
// stylesheet served at /assets/main.css. Empty values use the embedded copies.
type StaticConfig struct {
	Dir        string `yaml:"dir"`
	Stylesheet string `yaml:"stylesheet"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// SeedConfig is the state the stores start with.
type SeedConfig struct {
	Counter  uint64        `yaml:"counter"`
	Contacts []SeedContact `yaml:"contacts"`
}

type SeedContact struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		AppTitle: "Fragments",
		Server: ServerConfig{
			Addr:          "0.0.0.0:1337",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  10 * time.Second,
			ShutdownGrace: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
		Seed: SeedConfig{
			Contacts: []SeedContact{
				{Name: "John Doe", Email: "johndoe@hotmail.com"},
			},
		},
	}
}

// Load builds the configuration. path may be empty; a non-empty path must
// exist. Env files are read from envFiles (missing ones are skipped) without
// overriding variables already set in the process.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Defaults()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: %q: %w", path, err)
		}
	}

	if err := loadEnvFiles(envFiles...); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse overlays YAML data on cfg. Keys missing from data keep their values.
func Parse(data []byte, cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil target")
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr is required")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownGrace < 0 {
		problems = append(problems, "server timeouts must not be negative")
	}
	if c.Templates.Watch && strings.TrimSpace(c.Templates.Dir) == "" {
		problems = append(problems, "templates.watch requires templates.dir")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		problems = append(problems, "metrics.path must start with /")
	}
	seen := make(map[string]struct{}, len(c.Seed.Contacts))
	for i, contact := range c.Seed.Contacts {
		if strings.TrimSpace(contact.Name) == "" || strings.TrimSpace(contact.Email) == "" {
			problems = append(problems, fmt.Sprintf("seed.contacts[%d] needs name and email", i))
			continue
		}
		if _, dup := seen[contact.Email]; dup {
			problems = append(problems, fmt.Sprintf("seed.contacts[%d] repeats email %q", i, contact.Email))
		}
		seen[contact.Email] = struct{}{}
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: invalid: %s", strings.Join(problems, "; "))
	}
	return nil
}
