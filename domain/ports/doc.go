// Package ports defines the interfaces the binding layer depends on: dynamic
// loaders, the library registry, and configuration parsing and validation.
// Infrastructure packages provide the implementations.
package ports
