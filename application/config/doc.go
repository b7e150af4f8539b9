// Package config builds the resolver configuration from defaults, an optional
// YAML file, optional .env files and the process environment, in that order
// of increasing precedence.
package config
