package ports

import "github.com/cosunae/serialbox2/domain/entities"

// ConfigParser decodes a configuration document onto an existing config.
type ConfigParser interface {
	// Parse overwrites the fields present in data and keeps the others.
	Parse(data []byte, cfg *entities.ResolverConfig) error
}
