package registry

import (
	"log/slog"
	"reflect"
	"sort"
	"sync"

	"github.com/cosunae/serialbox2/domain/errors"
	"github.com/cosunae/serialbox2/domain/ports"
	"github.com/hengadev/errsx"
)

// registryConfig holds configuration for the Registry.
type registryConfig struct {
	strictMode bool // Fail on conflicting registrations
	logger     *slog.Logger
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		strictMode: true, // Secure default: prevent accidental overwrites
		logger:     slog.Default(),
	}
}

// RegistryOption configures a Registry instance.
type RegistryOption func(*registryConfig)

// WithStrictMode enables/disables strict mode for conflicting registrations.
// Default is true (fail when another handle holds the name). When disabled the
// new handle replaces the old one, which goes back to the caller unclosed.
func WithStrictMode(enabled bool) RegistryOption {
	return func(c *registryConfig) {
		c.strictMode = enabled
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) RegistryOption {
	return func(c *registryConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Registry implements LibraryRegistry. It is safe for concurrent use.
type Registry struct {
	config  registryConfig
	mu      sync.RWMutex
	handles map[string]ports.LibraryHandle
}

// NewRegistry creates a new, empty Registry with the given options.
func NewRegistry(opts ...RegistryOption) ports.LibraryRegistry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{config: cfg, handles: make(map[string]ports.LibraryHandle)}
}

// Register adds h under h.Name().
//
// Registering the handle already stored under that name is a no-op. Another
// handle under the same name is rejected with *errors.RegistrationConflictError
// in strict mode and replaces the entry otherwise.
func (r *Registry) Register(h ports.LibraryHandle) error {
	if isNil(h) {
		return &errors.InvalidHandleError{Reason: "nil handle"}
	}
	name := h.Name()
	if !h.Loaded() {
		return &errors.InvalidHandleError{Name: name, Reason: "handle is not loaded"}
	}
	if name == "" {
		return &errors.InvalidHandleError{Reason: "handle has no name"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.handles[name]; ok {
		if existing == h {
			return nil
		}
		if r.config.strictMode {
			return &errors.RegistrationConflictError{Name: name, Existing: existing.Path(), Incoming: h.Path()}
		}
		r.config.logger.Warn("replacing registered library", "library", name, "old", existing.Path(), "new", h.Path())
	}

	r.handles[name] = h
	r.config.logger.Debug("library registered", "library", name, "path", h.Path())
	return nil
}

// Get returns the handle registered under name.
func (r *Registry) Get(name string) (ports.LibraryHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handles[name]
	return h, ok
}

// Unregister removes name; the caller owns the returned handle.
func (r *Registry) Unregister(name string) (ports.LibraryHandle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.handles[name]
	if ok {
		delete(r.handles, name)
	}
	return h, ok
}

// List returns all registered library names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handles))
	for name := range r.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered handles.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handles)
}

// Close closes every registered handle and empties the registry.
// Failures are collected per library name.
func (r *Registry) Close() error {
	r.mu.Lock()
	handles := r.handles
	r.handles = make(map[string]ports.LibraryHandle)
	r.mu.Unlock()

	errs := make(errsx.Map)
	for name, h := range handles {
		if err := h.Close(); err != nil {
			errs.Set(name, err)
		}
	}
	return errs.AsError()
}

func isNil(h ports.LibraryHandle) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
