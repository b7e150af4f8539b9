// Package errors provides the error taxonomy of the library resolver.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/cosunae/serialbox2/domain/entities"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrLibraryNotFound      = stdErrors.New("library not found")
	ErrLibraryLoad          = stdErrors.New("library could not be loaded")
	ErrInvalidHandle        = stdErrors.New("invalid library handle")
	ErrRegistrationConflict = stdErrors.New("library already registered")
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is an interface for custom error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// LibraryNotFoundError is returned when no candidate file exists.
type LibraryNotFoundError struct {
	Name     string
	Searched []string // Every path that was tried, in order
}

func (e *LibraryNotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("library %s not found: no search locations", e.Name)
	}
	return fmt.Sprintf("library %s not found (searched: %s)", e.Name, strings.Join(e.Searched, ", "))
}

func (e *LibraryNotFoundError) Is(target error) bool {
	return target == ErrLibraryNotFound
}

// ToErrorDetail implements DetailedError.
func (e *LibraryNotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message:    e.Error(),
		Type:       "not_found",
		Code:       e.Name,
		IsNotFound: true,
		Details:    map[string]any{"searched": e.Searched},
	}
}

// LibraryLoadError is returned when a file exists but cannot be used.
type LibraryLoadError struct {
	Err            error
	Path           string
	MissingSymbols []string
}

func (e *LibraryLoadError) Error() string {
	if len(e.MissingSymbols) > 0 {
		return fmt.Sprintf("library %s is missing symbols: %s", e.Path, strings.Join(e.MissingSymbols, ", "))
	}
	return fmt.Sprintf("failed to load library %s: %v", e.Path, e.Err)
}

func (e *LibraryLoadError) Unwrap() error {
	return e.Err
}

func (e *LibraryLoadError) Is(target error) bool {
	return target == ErrLibraryLoad
}

// ToErrorDetail implements DetailedError.
func (e *LibraryLoadError) ToErrorDetail() *entities.ErrorDetail {
	detail := &entities.ErrorDetail{Message: e.Error(), Type: "load", Code: "load_failed"}
	if len(e.MissingSymbols) > 0 {
		detail.Code = "missing_symbols"
		detail.Details = map[string]any{"missing": e.MissingSymbols}
	}
	return detail
}

// InvalidHandleError is returned when a nil or unloaded handle is used.
type InvalidHandleError struct {
	Name   string
	Reason string
}

func (e *InvalidHandleError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid library handle %s: %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("invalid library handle: %s", e.Reason)
}

func (e *InvalidHandleError) Is(target error) bool {
	return target == ErrInvalidHandle
}

// ToErrorDetail implements DetailedError.
func (e *InvalidHandleError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "invalid_handle", Code: e.Reason}
}

// RegistrationConflictError is returned by a strict registry when a different
// handle is already registered under the same name.
type RegistrationConflictError struct {
	Name     string
	Existing string // Path of the registered handle
	Incoming string // Path of the rejected handle
}

func (e *RegistrationConflictError) Error() string {
	return fmt.Sprintf("library %q already registered from %s (rejected %s)", e.Name, e.Existing, e.Incoming)
}

func (e *RegistrationConflictError) Is(target error) bool {
	return target == ErrRegistrationConflict
}

// ToErrorDetail implements DetailedError.
func (e *RegistrationConflictError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "conflict", Code: e.Name}
}

// SymbolError is returned when binding a symbol of a loaded library fails.
type SymbolError struct {
	Err    error
	Symbol string
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("symbol %s: %v", e.Symbol, e.Err)
}

func (e *SymbolError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *SymbolError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "symbol", Code: e.Symbol}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// MetaInfoError represents a failure reading or converting a meta-information entry.
type MetaInfoError struct {
	Err error
	Key string
}

func (e *MetaInfoError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("meta-info key '%s': %v", e.Key, e.Err)
	}
	return fmt.Sprintf("meta-info: %v", e.Err)
}

func (e *MetaInfoError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *MetaInfoError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "metainfo", Code: e.Key}
}
