package ports

import "context"

// DynamicLoader opens a library file and maps it into the process or a runtime.
type DynamicLoader interface {
	// Open loads the file at path. The returned Library owns the mapping.
	Open(ctx context.Context, path string) (Library, error)
}

// Library is an opened library as seen by the resolver.
// Raw addresses never leave the implementation.
type Library interface {
	// HasSymbol reports whether the library exports the named symbol.
	HasSymbol(name string) bool

	// Bind points fptr at the exported symbol. The accepted fptr types
	// depend on the implementation.
	Bind(fptr any, name string) error

	// Close unmaps the library.
	Close() error
}
