// Package entities provides the plain data types shared by the resolver, the
// registry and the configuration layer.
package entities
