package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cosunae/serialbox2/domain/entities"
	"github.com/cosunae/serialbox2/domain/errors"
	"github.com/cosunae/serialbox2/domain/ports"
	"github.com/cosunae/serialbox2/infrastructure/parser"
	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvConfigFile      = "SERIALBOX_CONFIG"
	EnvLibrary         = "SERIALBOX_LIBRARY"
	EnvLibraryPath     = "SERIALBOX_LIBRARY_PATH"
	EnvLibraryName     = "SERIALBOX_LIBRARY_NAME"
	EnvUseSystemPaths  = "SERIALBOX_USE_SYSTEM_PATHS"
	EnvBackend         = "SERIALBOX_BACKEND"
	EnvRequiredSymbols = "SERIALBOX_REQUIRED_SYMBOLS"
	EnvStrictRegistry  = "SERIALBOX_STRICT_REGISTRY"
	EnvLogLevel        = "SERIALBOX_LOG_LEVEL"
)

// LookupFunc reads one environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// loadConfig holds configuration for Load.
type loadConfig struct {
	file      string
	dotEnv    []string
	lookup    LookupFunc
	parser    ports.ConfigParser
	validator ports.ConfigValidator
}

func defaultLoadConfig() loadConfig {
	return loadConfig{
		lookup: os.LookupEnv,
		parser: parser.NewYamlConfigParser(),
	}
}

// LoadOption configures Load.
type LoadOption func(*loadConfig)

// WithFile reads a YAML configuration file. Overrides SERIALBOX_CONFIG.
func WithFile(path string) LoadOption {
	return func(c *loadConfig) {
		c.file = path
	}
}

// WithDotEnv reads variables from .env files. The process environment wins
// over values found there.
func WithDotEnv(paths ...string) LoadOption {
	return func(c *loadConfig) {
		c.dotEnv = append(c.dotEnv, paths...)
	}
}

// WithLookup replaces the process environment, mostly for tests.
func WithLookup(fn LookupFunc) LoadOption {
	return func(c *loadConfig) {
		if fn != nil {
			c.lookup = fn
		}
	}
}

// WithParser sets a custom configuration file parser.
func WithParser(p ports.ConfigParser) LoadOption {
	return func(c *loadConfig) {
		c.parser = p
	}
}

// WithValidator sets a custom configuration validator.
func WithValidator(v ports.ConfigValidator) LoadOption {
	return func(c *loadConfig) {
		c.validator = v
	}
}

// Load returns a validated resolver configuration.
func Load(opts ...LoadOption) (entities.ResolverConfig, error) {
	lc := defaultLoadConfig()
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.validator == nil {
		lc.validator = NewValidator()
	}

	lookup := lc.lookup
	if len(lc.dotEnv) > 0 {
		values, err := godotenv.Read(lc.dotEnv...)
		if err != nil {
			return entities.ResolverConfig{}, fmt.Errorf("failed to read env file: %w", err)
		}
		lookup = layered(lc.lookup, values)
	}

	cfg := entities.DefaultResolverConfig()

	file := lc.file
	if file == "" {
		file, _ = lookup(EnvConfigFile)
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return entities.ResolverConfig{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := lc.parser.Parse(data, &cfg); err != nil {
			return entities.ResolverConfig{}, fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return entities.ResolverConfig{}, err
	}

	if err := lc.validator.Validate(&cfg); err != nil {
		return entities.ResolverConfig{}, err
	}
	return cfg, nil
}

// layered looks a key up in primary first, then in values.
func layered(primary LookupFunc, values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := primary(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}
}

func applyEnv(cfg *entities.ResolverConfig, lookup LookupFunc) error {
	if v, ok := nonEmpty(lookup, EnvLibraryName); ok {
		cfg.LibraryName = v
	}
	if v, ok := nonEmpty(lookup, EnvLibrary); ok {
		cfg.LibraryPath = v
	}
	if v, ok := nonEmpty(lookup, EnvLibraryPath); ok {
		cfg.SearchPaths = splitList(filepath.SplitList(v))
	}
	if v, ok := nonEmpty(lookup, EnvBackend); ok {
		cfg.Backend = entities.Backend(strings.ToLower(v))
	}
	// Set but empty disables the symbol check.
	if v, ok := lookup(EnvRequiredSymbols); ok {
		cfg.RequiredSymbols = splitList(strings.Split(v, ","))
	}
	if v, ok := nonEmpty(lookup, EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(v)
	}

	var err error
	if cfg.UseSystemPaths, err = envBool(lookup, EnvUseSystemPaths, "use_system_paths", cfg.UseSystemPaths); err != nil {
		return err
	}
	if cfg.StrictRegistry, err = envBool(lookup, EnvStrictRegistry, "strict_registry", cfg.StrictRegistry); err != nil {
		return err
	}
	return nil
}

func nonEmpty(lookup LookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func envBool(lookup LookupFunc, key, field string, current bool) (bool, error) {
	v, ok := nonEmpty(lookup, key)
	if !ok {
		return current, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return current, &errors.ConfigError{Field: field, Err: fmt.Errorf("%s=%q is not a boolean", key, v)}
	}
	return b, nil
}

// splitList trims entries and drops empty ones.
func splitList(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
