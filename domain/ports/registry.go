package ports

// LibraryHandle is what a LibraryRegistry stores.
type LibraryHandle interface {
	// Name returns the logical library name used as registry key.
	Name() string

	// Path returns the resolved file.
	Path() string

	// Loaded reports whether the library is still mapped.
	Loaded() bool

	// Close unloads the library.
	Close() error
}

// LibraryRegistry maps logical library names to loaded handles.
type LibraryRegistry interface {
	// Register adds a loaded handle under its name.
	Register(h LibraryHandle) error

	// Get returns the handle registered under name.
	Get(name string) (LibraryHandle, bool)

	// Unregister removes name and hands the handle back to the caller.
	Unregister(name string) (LibraryHandle, bool)

	// List returns all registered names, sorted.
	List() []string

	// Len returns the number of registered handles.
	Len() int

	// Close closes every registered handle and empties the registry.
	Close() error
}
