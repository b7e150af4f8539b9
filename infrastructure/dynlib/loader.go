package dynlib

import (
	"context"
	"fmt"
	"sync"

	"github.com/cosunae/serialbox2/domain/ports"
)

// loaderConfig holds configuration for the Loader.
type loaderConfig struct {
	lazy bool // Resolve symbols on first use instead of at open time
}

func defaultLoaderConfig() loaderConfig {
	return loaderConfig{
		lazy: false, // Fail at open time on unresolved dependencies
	}
}

// LoaderOption configures a Loader instance.
type LoaderOption func(*loaderConfig)

// WithLazyBinding enables/disables lazy symbol binding (RTLD_LAZY). Ignored on windows.
func WithLazyBinding(enabled bool) LoaderOption {
	return func(c *loaderConfig) {
		c.lazy = enabled
	}
}

// Loader implements ports.DynamicLoader for native shared objects.
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

// Open maps the shared object at path into the process.
func (l *Loader) Open(_ context.Context, path string) (ports.Library, error) {
	h, err := openLibrary(path, l.config.lazy)
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, fmt.Errorf("shared library handle is nil after loading: %s", path)
	}
	return &SharedLibrary{handle: h, path: path}, nil
}

// SharedLibrary is a mapped native library.
type SharedLibrary struct {
	mu     sync.Mutex
	handle uintptr
	path   string
}

// HasSymbol reports whether the library exports name.
func (so *SharedLibrary) HasSymbol(name string) bool {
	so.mu.Lock()
	defer so.mu.Unlock()
	if so.handle == 0 {
		return false
	}
	addr, err := lookupSymbol(so.handle, name)
	return err == nil && addr != 0
}

// Bind registers fptr, a pointer to a Go func variable, to call the named C symbol.
func (so *SharedLibrary) Bind(fptr any, name string) (err error) {
	so.mu.Lock()
	defer so.mu.Unlock()
	if so.handle == 0 {
		return fmt.Errorf("library %s is closed", so.path)
	}

	addr, err := lookupSymbol(so.handle, name)
	if err != nil {
		return err
	}
	if addr == 0 {
		return fmt.Errorf("symbol %s resolved to nil", name)
	}

	// purego panics on unsupported function signatures.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cannot bind %T: %v", fptr, r)
		}
	}()
	registerFunc(fptr, addr)
	return nil
}

// Close releases the dynamically loaded library from this process.
// Calling Close twice is a no-op.
func (so *SharedLibrary) Close() error {
	so.mu.Lock()
	defer so.mu.Unlock()
	if so.handle == 0 {
		return nil
	}
	if err := closeLibrary(so.handle); err != nil {
		return fmt.Errorf("failed to close library: %w", err)
	}
	so.handle = 0
	return nil
}
