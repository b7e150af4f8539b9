// Package registry stores loaded library handles by logical name so that
// every binding in a process shares one mapping of each library.
package registry
