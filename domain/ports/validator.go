package ports

import "github.com/cosunae/serialbox2/domain/entities"

// ConfigValidator checks a resolver configuration before use.
type ConfigValidator interface {
	// Validate returns a *errors.ConfigError describing the first invalid field.
	Validate(cfg *entities.ResolverConfig) error
}
