package serialbox

import (
	"context"
	"fmt"
	"sync"

	"github.com/cosunae/serialbox2/application/config"
	"github.com/cosunae/serialbox2/binding"
	"github.com/cosunae/serialbox2/binding/registry"
	"github.com/cosunae/serialbox2/domain/errors"
	"github.com/cosunae/serialbox2/domain/ports"
	"github.com/cosunae/serialbox2/log"
)

var (
	defaultOnce     sync.Once
	defaultRegistry ports.LibraryRegistry
)

// DefaultRegistry returns the process-wide registry used by RegisterLibrary.
// It is strict unless SERIALBOX_STRICT_REGISTRY disables it.
func DefaultRegistry() ports.LibraryRegistry {
	defaultOnce.Do(func() {
		strict := true
		if cfg, err := config.Load(); err == nil {
			strict = cfg.StrictRegistry
		}
		defaultRegistry = registry.NewRegistry(registry.WithStrictMode(strict))
	})
	return defaultRegistry
}

// GetLibrary resolves the engine library configured by the environment and
// returns a loaded handle owned by the caller. Options refine the loaded
// configuration.
func GetLibrary(ctx context.Context, opts ...binding.Option) (*binding.Handle, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	all := append([]binding.Option{
		binding.WithConfig(cfg),
		binding.WithLogger(log.FromContext(ctx)),
	}, opts...)
	return binding.NewResolver(all...).Resolve(ctx)
}

// RegisterLibrary adds h to the default registry.
// Registering the same handle twice is a no-op.
func RegisterLibrary(h *binding.Handle) error {
	if h == nil {
		return &errors.InvalidHandleError{Reason: "nil handle"}
	}
	return DefaultRegistry().Register(h)
}

// Library returns the handle registered in the default registry under name.
func Library(name string) (*binding.Handle, bool) {
	h, err := binding.FromRegistry(DefaultRegistry(), name)
	if err != nil {
		return nil, false
	}
	return h, true
}

// Shutdown closes every handle in the default registry and empties it.
func Shutdown() error {
	return DefaultRegistry().Close()
}
