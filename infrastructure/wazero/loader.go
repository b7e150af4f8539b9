package wazero

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/cosunae/serialbox2/domain/ports"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
)

// loaderConfig holds configuration for the Loader.
type loaderConfig struct {
	runtimeConfig wazero.RuntimeConfig
	wasi          bool   // Provide wasi_snapshot_preview1 to the module
	initFunction  string // Reactor initializer, called once if exported
}

func defaultLoaderConfig() loaderConfig {
	return loaderConfig{
		runtimeConfig: wazero.NewRuntimeConfig(),
		wasi:          true,
		initFunction:  "_initialize",
	}
}

// LoaderOption configures a Loader instance.
type LoaderOption func(*loaderConfig)

// WithRuntimeConfig sets the wazero runtime configuration used for every module.
func WithRuntimeConfig(rc wazero.RuntimeConfig) LoaderOption {
	return func(c *loaderConfig) {
		c.runtimeConfig = rc
	}
}

// WithWASI enables/disables instantiating WASI before the module.
// Default is true since wasm builds of the engine are compiled against WASI.
func WithWASI(enabled bool) LoaderOption {
	return func(c *loaderConfig) {
		c.wasi = enabled
	}
}

// WithInitFunction sets the export called after instantiation. Empty disables it.
func WithInitFunction(name string) LoaderOption {
	return func(c *loaderConfig) {
		c.initFunction = name
	}
}

// Loader implements ports.DynamicLoader for WebAssembly modules.
// Every opened module gets its own runtime so modules never share a namespace.
type Loader struct {
	config loaderConfig
}

// NewLoader creates a new Loader with the given options.
func NewLoader(opts ...LoaderOption) ports.DynamicLoader {
	cfg := defaultLoaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Loader{config: cfg}
}

// Open compiles and instantiates the module at path.
func (l *Loader) Open(ctx context.Context, path string) (ports.Library, error) {
	wasmBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module: %w", err)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, l.config.runtimeConfig)

	if l.config.wasi {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
			rt.Close(ctx)
			return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
		}
	}

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}

	// Anonymous module with no start functions; the engine is a library, not a command.
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName("").WithStartFunctions())
	if err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if l.config.initFunction != "" {
		if init := mod.ExportedFunction(l.config.initFunction); init != nil {
			if _, err := init.Call(ctx); err != nil {
				rt.Close(ctx)
				return nil, fmt.Errorf("failed to call %s: %w", l.config.initFunction, err)
			}
		}
	}

	return &Module{runtime: rt, module: mod}, nil
}

// Module is an instantiated WebAssembly library.
type Module struct {
	mu      sync.Mutex
	runtime wazero.Runtime
	module  api.Module
	closed  bool
}

// HasSymbol reports whether the module exports a function called name.
func (m *Module) HasSymbol(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	return m.module.ExportedFunction(name) != nil
}

// Bind stores the exported function name into fptr, which must be an *api.Function.
func (m *Module) Bind(fptr any, name string) error {
	target, ok := fptr.(*api.Function)
	if !ok || target == nil {
		return fmt.Errorf("wasm symbols bind to *api.Function, got %T", fptr)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("module is closed")
	}
	f := m.module.ExportedFunction(name)
	if f == nil {
		return fmt.Errorf("export %q not found", name)
	}
	*target = f
	return nil
}

// Close releases the module and its runtime. Calling Close twice is a no-op.
func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	m.closed = true
	return m.runtime.Close(context.Background())
}
