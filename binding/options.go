package binding

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/cosunae/serialbox2/domain/entities"
	"github.com/cosunae/serialbox2/domain/ports"
	"github.com/cosunae/serialbox2/infrastructure/dynlib"
	"github.com/cosunae/serialbox2/infrastructure/wazero"
)

// resolverConfig holds configuration for the Resolver.
type resolverConfig struct {
	config     entities.ResolverConfig
	native     ports.DynamicLoader
	wasm       ports.DynamicLoader
	logger     *slog.Logger
	goos       string
	lookupEnv  func(string) (string, bool)
	executable func() (string, error)
}

func defaultResolverConfig() resolverConfig {
	return resolverConfig{
		config:     entities.DefaultResolverConfig(),
		native:     dynlib.NewLoader(),
		wasm:       wazero.NewLoader(),
		logger:     slog.Default(),
		goos:       runtime.GOOS,
		lookupEnv:  os.LookupEnv,
		executable: os.Executable,
	}
}

// Option configures a Resolver.
type Option func(*resolverConfig)

// WithConfig replaces the whole resolver configuration, typically the result
// of config.Load. Options applied after it refine it.
func WithConfig(cfg entities.ResolverConfig) Option {
	return func(c *resolverConfig) {
		c.config = cfg
	}
}

// WithLibraryName sets the logical library name.
func WithLibraryName(name string) Option {
	return func(c *resolverConfig) {
		c.config.LibraryName = name
	}
}

// WithLibraryPath sets an explicit library file; no search is performed.
func WithLibraryPath(path string) Option {
	return func(c *resolverConfig) {
		c.config.LibraryPath = path
	}
}

// WithSearchPaths appends directories searched before the system locations.
func WithSearchPaths(dirs ...string) Option {
	return func(c *resolverConfig) {
		c.config.SearchPaths = append(append([]string(nil), c.config.SearchPaths...), dirs...)
	}
}

// WithSystemPaths enables/disables the platform library variable and the
// executable directories. Default is true.
func WithSystemPaths(enabled bool) Option {
	return func(c *resolverConfig) {
		c.config.UseSystemPaths = enabled
	}
}

// WithBackend restricts candidates to one backend.
func WithBackend(b entities.Backend) Option {
	return func(c *resolverConfig) {
		c.config.Backend = b
	}
}

// WithRequiredSymbols replaces the symbols checked after loading. Passing
// none disables the check.
func WithRequiredSymbols(symbols ...string) Option {
	return func(c *resolverConfig) {
		c.config.RequiredSymbols = symbols
	}
}

// WithNativeLoader sets the loader used for shared objects.
func WithNativeLoader(l ports.DynamicLoader) Option {
	return func(c *resolverConfig) {
		c.native = l
	}
}

// WithWasmLoader sets the loader used for .wasm files.
func WithWasmLoader(l ports.DynamicLoader) Option {
	return func(c *resolverConfig) {
		c.wasm = l
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *resolverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEnv replaces the environment used for the platform library variable.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(c *resolverConfig) {
		if lookup != nil {
			c.lookupEnv = lookup
		}
	}
}

// WithGOOS resolves file names and variables as on another operating system.
func WithGOOS(goos string) Option {
	return func(c *resolverConfig) {
		c.goos = goos
	}
}

// WithExecutable replaces os.Executable for the executable-relative directories.
func WithExecutable(fn func() (string, error)) Option {
	return func(c *resolverConfig) {
		c.executable = fn
	}
}
