package entities

// Backend identifies the loader that produced a library handle.
type Backend string

const (
	// BackendAuto lets the resolver pick the backend from the candidate file.
	BackendAuto Backend = "auto"
	// BackendNative loads shared objects with the platform dynamic loader.
	BackendNative Backend = "native"
	// BackendWasm loads WebAssembly builds of the engine into wazero.
	BackendWasm Backend = "wasm"
)

// LoadState is the lifecycle state of a library handle.
type LoadState int

const (
	// StateUnloaded is the state of a closed or zero handle.
	StateUnloaded LoadState = iota
	// StateLoaded is the state of a handle whose library is mapped.
	StateLoaded
)

func (s LoadState) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	default:
		return "unloaded"
	}
}

// MarshalText encodes the state as its name.
func (s LoadState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LibraryInfo is a snapshot of a library handle for diagnostics.
type LibraryInfo struct {
	Name    string    `json:"name" yaml:"name"`
	Path    string    `json:"path" yaml:"path"`
	Backend Backend   `json:"backend" yaml:"backend"`
	State   LoadState `json:"state" yaml:"state"`
	// Symbols lists the required symbols that were verified at load time.
	Symbols []string `json:"symbols,omitempty" yaml:"symbols,omitempty"`
}
