// Package config loads, validates and applies the YAML configuration of the
// cfpq tooling.
//
// A file looks like:
//
//	closure:
//	  max_passes: 0   # 0 = automatic bound
//	  workers: 1
//	log:
//	  level: info     # debug | info | warn | error
//	  format: text    # text | json
//	store:
//	  path: ~/.cfpq/cache
//	  in_memory: false
//	  sync_writes: true
//
// Library code never reads this file; it is turned into closure options and a
// store.Config by the CLI.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/cfpq/closure"
	"github.com/katalvlaran/cfpq/store"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the root of the YAML document.
type Config struct {
	Closure ClosureConfig `yaml:"closure"`
	Log     LogConfig     `yaml:"log"`
	Store   StoreConfig   `yaml:"store"`
}

// ClosureConfig tunes closure.Compute.
type ClosureConfig struct {
	// MaxPasses caps the fixpoint passes; 0 uses the automatic bound.
	MaxPasses int `yaml:"max_passes" validate:"gte=0"`
	// Workers is the number of goroutines per pass.
	Workers int `yaml:"workers" validate:"gte=1,lte=1024"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// StoreConfig locates the result cache.
type StoreConfig struct {
	Path       string `yaml:"path" validate:"required_unless=InMemory true"`
	InMemory   bool   `yaml:"in_memory"`
	SyncWrites bool   `yaml:"sync_writes"`
}

// Default returns the configuration written by `cfpq config init`.
func Default() Config {
	path := ".cfpq/cache"
	if home, err := os.UserHomeDir(); err == nil {
		path = filepath.Join(home, ".cfpq", "cache")
	}

	return Config{
		Closure: ClosureConfig{Workers: closure.DefaultWorkers},
		Log:     LogConfig{Level: "info", Format: "text"},
		Store:   StoreConfig{Path: path, SyncWrites: true},
	}
}

// Validate checks field constraints. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// Load reads path, layering it over Default, and validates the result.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse %s: %w", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Write validates cfg and writes it to path, creating parent directories.
func Write(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}

	return nil
}

// Logger returns a slog.Logger writing to w at the configured level and format.
func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(c.Log.Level)}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}

	return lvl
}

// ClosureOptions translates the closure section into closure.Compute options.
func (c Config) ClosureOptions(logger *slog.Logger) []closure.Option {
	opts := []closure.Option{closure.WithWorkers(c.Closure.Workers)}
	if c.Closure.MaxPasses > 0 {
		opts = append(opts, closure.WithMaxPasses(c.Closure.MaxPasses))
	}
	if logger != nil {
		opts = append(opts, closure.WithLogger(logger))
	}

	return opts
}

// StoreConfig translates the store section into a store.Config.
func (c Config) StoreConfig(logger *slog.Logger) store.Config {
	if c.Store.InMemory {
		sc := store.InMemoryConfig()
		sc.Logger = logger
		return sc
	}
	sc := store.DefaultConfig()
	sc.Path = c.Store.Path
	sc.SyncWrites = c.Store.SyncWrites
	sc.Logger = logger

	return sc
}
