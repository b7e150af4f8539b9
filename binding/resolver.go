package binding

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cosunae/serialbox2/domain/entities"
	"github.com/cosunae/serialbox2/domain/errors"
	"github.com/cosunae/serialbox2/domain/ports"
)

// Resolver locates and loads the serialbox library.
type Resolver struct {
	config resolverConfig
}

// NewResolver creates a new Resolver with defaults.
func NewResolver(opts ...Option) *Resolver {
	cfg := defaultResolverConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Resolver{config: cfg}
}

// Name returns the logical name of the library this resolver looks for.
func (r *Resolver) Name() string {
	return r.config.config.LibraryName
}

// Resolve loads the first existing candidate file and returns a loaded handle.
//
// It fails with *errors.LibraryNotFoundError when no candidate exists and
// with *errors.LibraryLoadError when the first existing candidate cannot be
// loaded or lacks a required symbol. Later candidates are not tried.
func (r *Resolver) Resolve(ctx context.Context) (*Handle, error) {
	logger := r.config.logger.With("library", r.Name())
	candidates := r.Candidates()

	for _, path := range candidates {
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			logger.Debug("candidate skipped", "path", path)
			continue
		}
		return r.load(ctx, path)
	}

	logger.Debug("library not found", "searched", len(candidates))
	return nil, &errors.LibraryNotFoundError{Name: r.Name(), Searched: candidates}
}

func (r *Resolver) load(ctx context.Context, path string) (*Handle, error) {
	cfg := r.config.config
	backend := r.backendFor(path)

	var loader ports.DynamicLoader
	switch backend {
	case entities.BackendWasm:
		loader = r.config.wasm
	default:
		loader = r.config.native
	}
	if loader == nil {
		return nil, &errors.LibraryLoadError{Path: path, Err: fmt.Errorf("no loader configured for backend %s", backend)}
	}

	lib, err := loader.Open(ctx, path)
	if err != nil {
		return nil, &errors.LibraryLoadError{Path: path, Err: err}
	}

	var missing []string
	for _, sym := range cfg.RequiredSymbols {
		if !lib.HasSymbol(sym) {
			missing = append(missing, sym)
		}
	}
	if len(missing) > 0 {
		if cerr := lib.Close(); cerr != nil {
			r.config.logger.Warn("failed to unload rejected library", "path", path, "error", cerr)
		}
		return nil, &errors.LibraryLoadError{Path: path, MissingSymbols: missing}
	}

	r.config.logger.Info("library loaded", "library", cfg.LibraryName, "path", path, "backend", backend)
	return newHandle(cfg.LibraryName, path, backend, lib, cfg.RequiredSymbols), nil
}

// backendFor picks the configured backend, or guesses it from the extension.
func (r *Resolver) backendFor(path string) entities.Backend {
	switch b := r.config.config.Backend; b {
	case entities.BackendNative, entities.BackendWasm:
		return b
	}
	if strings.EqualFold(filepath.Ext(path), ".wasm") {
		return entities.BackendWasm
	}
	return entities.BackendNative
}

// ResolveAndRegister returns the handle registered under the resolver's
// library name, resolving and registering it first if needed. A registered
// handle that has been closed is replaced.
func ResolveAndRegister(ctx context.Context, reg ports.LibraryRegistry, opts ...Option) (*Handle, error) {
	r := NewResolver(opts...)

	if existing, ok := reg.Get(r.Name()); ok {
		if !existing.Loaded() {
			// Closed behind the registry's back; drop the stale entry.
			reg.Unregister(r.Name())
		} else if h, ok := existing.(*Handle); ok {
			return h, nil
		}
	}

	h, err := r.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(h); err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("failed to register library: %w", err)
	}
	return h, nil
}

// FromRegistry returns the handle registered under name.
func FromRegistry(reg ports.LibraryRegistry, name string) (*Handle, error) {
	existing, ok := reg.Get(name)
	if !ok {
		return nil, &errors.InvalidHandleError{Name: name, Reason: "not registered"}
	}
	h, ok := existing.(*Handle)
	if !ok {
		return nil, &errors.InvalidHandleError{Name: name, Reason: fmt.Sprintf("registered handle is %T", existing)}
	}
	return h, nil
}
