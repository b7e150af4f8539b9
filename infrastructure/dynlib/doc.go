// Package dynlib opens native shared libraries with the platform dynamic
// loader: dlopen through purego on unix-like systems and LoadLibrary on
// windows. No cgo is required.
package dynlib
