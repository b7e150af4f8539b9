package entities

// DefaultLibraryName is the logical name of the serialbox C library.
const DefaultLibraryName = "SerialboxC"

// DefaultRequiredSymbols are checked on every resolved library unless overridden.
var DefaultRequiredSymbols = []string{
	"serialboxSerializerCreate",
	"serialboxSerializerDestroy",
}

// ResolverConfig controls where and how the serialbox library is located.
type ResolverConfig struct {
	// LibraryName is the logical name; file names are derived from it.
	LibraryName string `json:"library_name" yaml:"library_name" validate:"required,libname" jsonschema:"default=SerialboxC"`

	// LibraryPath is an explicit file. When set no search is performed.
	LibraryPath string `json:"library_path,omitempty" yaml:"library_path,omitempty"`

	// SearchPaths are directories tried before the system locations.
	SearchPaths []string `json:"search_paths,omitempty" yaml:"search_paths,omitempty" validate:"dive,required"`

	// UseSystemPaths enables the platform library variable and the executable directories.
	UseSystemPaths bool `json:"use_system_paths" yaml:"use_system_paths"`

	// Backend restricts the candidates to one loader.
	Backend Backend `json:"backend" yaml:"backend" validate:"oneof=auto native wasm" jsonschema:"enum=auto,enum=native,enum=wasm"`

	// RequiredSymbols must all be exported by the library.
	RequiredSymbols []string `json:"required_symbols,omitempty" yaml:"required_symbols,omitempty" validate:"dive,required"`

	// StrictRegistry rejects conflicting registrations instead of replacing.
	StrictRegistry bool `json:"strict_registry" yaml:"strict_registry"`

	// LogLevel is the logging verbosity ("debug", "info", "warn", "error").
	LogLevel string `json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// DefaultResolverConfig returns the configuration used when nothing is set.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		LibraryName:     DefaultLibraryName,
		UseSystemPaths:  true,
		Backend:         BackendAuto,
		RequiredSymbols: append([]string(nil), DefaultRequiredSymbols...),
		StrictRegistry:  true,
		LogLevel:        "info",
	}
}
