package binding

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cosunae/serialbox2/domain/entities"
	"github.com/cosunae/serialbox2/domain/errors"
	"github.com/cosunae/serialbox2/domain/ports"
	"github.com/cosunae/serialbox2/metainfo"
)

// Handle is an opaque reference to a loaded serialbox library.
// The zero value and nil are unloaded handles.
type Handle struct {
	mu      sync.RWMutex
	name    string
	path    string
	backend entities.Backend
	symbols []string
	lib     ports.Library
	state   entities.LoadState
}

func newHandle(name, path string, backend entities.Backend, lib ports.Library, symbols []string) *Handle {
	return &Handle{
		name:    name,
		path:    path,
		backend: backend,
		symbols: append([]string(nil), symbols...),
		lib:     lib,
		state:   entities.StateLoaded,
	}
}

// Name returns the logical library name.
func (h *Handle) Name() string {
	if h == nil {
		return ""
	}
	return h.name
}

// Path returns the resolved file.
func (h *Handle) Path() string {
	if h == nil {
		return ""
	}
	return h.path
}

// Backend returns the loader kind that produced the handle.
func (h *Handle) Backend() entities.Backend {
	if h == nil {
		return ""
	}
	return h.backend
}

// State returns the current load state.
func (h *Handle) State() entities.LoadState {
	if h == nil {
		return entities.StateUnloaded
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Loaded reports whether the library is still mapped.
func (h *Handle) Loaded() bool {
	return h.State() == entities.StateLoaded
}

// HasSymbol reports whether the loaded library exports name.
func (h *Handle) HasSymbol(name string) bool {
	if h == nil {
		return false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state == entities.StateLoaded && h.lib.HasSymbol(name)
}

// Bind points fptr at symbol. Native handles take a pointer to a Go func
// variable; wasm handles take an *api.Function.
func (h *Handle) Bind(fptr any, symbol string) error {
	if h == nil {
		return &errors.InvalidHandleError{Reason: "nil handle"}
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state != entities.StateLoaded {
		return &errors.InvalidHandleError{Name: h.name, Reason: "handle is not loaded"}
	}
	if err := h.lib.Bind(fptr, symbol); err != nil {
		return &errors.SymbolError{Symbol: symbol, Err: err}
	}
	return nil
}

// Close unloads the library. Calling Close on an unloaded handle is a no-op.
// A failed unload leaves the handle loaded so Close can be retried.
func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != entities.StateLoaded {
		return nil
	}
	if err := h.lib.Close(); err != nil {
		return fmt.Errorf("failed to unload %s: %w", h.path, err)
	}
	h.state = entities.StateUnloaded
	return nil
}

// Info returns a snapshot of the handle.
func (h *Handle) Info() entities.LibraryInfo {
	return entities.LibraryInfo{
		Name:    h.Name(),
		Path:    h.Path(),
		Backend: h.Backend(),
		State:   h.State(),
		Symbols: h.requiredSymbols(),
	}
}

func (h *Handle) requiredSymbols() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.symbols...)
}

// MetaInfo describes the handle as a meta-information map.
func (h *Handle) MetaInfo() *metainfo.Map {
	info := h.Info()
	m := metainfo.New()
	_, _ = m.Insert("name", info.Name)
	_, _ = m.Insert("path", info.Path)
	_, _ = m.Insert("backend", string(info.Backend))
	_, _ = m.Insert("loaded", info.State == entities.StateLoaded)
	if len(info.Symbols) > 0 {
		_, _ = m.Insert("required_symbols", strings.Join(info.Symbols, ","))
	}
	return m
}

func (h *Handle) String() string {
	if h == nil {
		return "<nil handle>"
	}
	return fmt.Sprintf("%s (%s, %s, %s)", h.name, h.path, h.backend, h.State())
}
