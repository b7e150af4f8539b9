package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryNotFoundError(t *testing.T) {
	err := &LibraryNotFoundError{
		Name:     "SerialboxC",
		Searched: []string{"/opt/lib/libSerialboxC.so", "/usr/lib/libSerialboxC.so"},
	}

	assert.Equal(t, "library SerialboxC not found (searched: /opt/lib/libSerialboxC.so, /usr/lib/libSerialboxC.so)", err.Error())
	assert.True(t, errors.Is(err, ErrLibraryNotFound))
	assert.False(t, errors.Is(err, ErrLibraryLoad))

	wrapped := fmt.Errorf("resolve: %w", err)
	var nf *LibraryNotFoundError
	require.True(t, errors.As(wrapped, &nf))
	assert.Len(t, nf.Searched, 2)
}

func TestLibraryNotFoundError_NoLocations(t *testing.T) {
	err := &LibraryNotFoundError{Name: "SerialboxC"}
	assert.Equal(t, "library SerialboxC not found: no search locations", err.Error())
}

func TestLibraryLoadError(t *testing.T) {
	baseErr := fmt.Errorf("invalid ELF header")
	err := &LibraryLoadError{Path: "/tmp/libSerialboxC.so", Err: baseErr}

	assert.Equal(t, "failed to load library /tmp/libSerialboxC.so: invalid ELF header", err.Error())
	assert.True(t, errors.Is(err, baseErr))
	assert.True(t, errors.Is(err, ErrLibraryLoad))
}

func TestLibraryLoadError_MissingSymbols(t *testing.T) {
	err := &LibraryLoadError{Path: "/tmp/libSerialboxC.so", MissingSymbols: []string{"a", "b"}}
	assert.Equal(t, "library /tmp/libSerialboxC.so is missing symbols: a, b", err.Error())

	detail := err.ToErrorDetail()
	assert.Equal(t, "load", detail.Type)
	assert.Equal(t, "missing_symbols", detail.Code)
	assert.Equal(t, []string{"a", "b"}, detail.Details["missing"])
}

func TestInvalidHandleError(t *testing.T) {
	err := &InvalidHandleError{Reason: "nil handle"}
	assert.Equal(t, "invalid library handle: nil handle", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidHandle))

	named := &InvalidHandleError{Name: "SerialboxC", Reason: "unloaded"}
	assert.Equal(t, "invalid library handle SerialboxC: unloaded", named.Error())
}

func TestRegistrationConflictError(t *testing.T) {
	err := &RegistrationConflictError{Name: "SerialboxC", Existing: "/a.so", Incoming: "/b.so"}
	assert.Equal(t, `library "SerialboxC" already registered from /a.so (rejected /b.so)`, err.Error())
	assert.True(t, errors.Is(err, ErrRegistrationConflict))
}

func TestSymbolError(t *testing.T) {
	baseErr := fmt.Errorf("undefined symbol")
	err := &SymbolError{Symbol: "serialboxSerializerCreate", Err: baseErr}
	assert.Equal(t, "symbol serialboxSerializerCreate: undefined symbol", err.Error())
	assert.True(t, errors.Is(err, baseErr))
}

func TestConfigError(t *testing.T) {
	baseErr := fmt.Errorf("must not be empty")
	err := &ConfigError{Field: "library_name", Err: baseErr}
	assert.Equal(t, "config validation failed for field 'library_name': must not be empty", err.Error())
	assert.True(t, errors.Is(err, baseErr))

	noField := &ConfigError{Err: baseErr}
	assert.Equal(t, "config validation failed: must not be empty", noField.Error())
}

func TestMetaInfoError(t *testing.T) {
	err := &MetaInfoError{Key: "step", Err: fmt.Errorf("type mismatch")}
	assert.Equal(t, "meta-info key 'step': type mismatch", err.Error())
}

func TestToErrorDetail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
		wantCode string
	}{
		{"nil", nil, "", ""},
		{"generic", fmt.Errorf("boom"), "internal", ""},
		{"not found", &LibraryNotFoundError{Name: "SerialboxC"}, "not_found", "SerialboxC"},
		{"load", &LibraryLoadError{Path: "/x", Err: fmt.Errorf("bad")}, "load", "load_failed"},
		{"invalid handle", &InvalidHandleError{Reason: "nil handle"}, "invalid_handle", "nil handle"},
		{"wrapped conflict", fmt.Errorf("register: %w", &RegistrationConflictError{Name: "n"}), "conflict", "n"},
		{"config", &ConfigError{Field: "backend", Err: fmt.Errorf("x")}, "config", "backend"},
		{"detail passthrough", &ErrorDetail{Type: "symbol", Code: "s"}, "symbol", "s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := ToErrorDetail(tt.err)
			if tt.err == nil {
				assert.Nil(t, detail)
				return
			}
			require.NotNil(t, detail)
			assert.Equal(t, tt.wantType, detail.Type)
			assert.Equal(t, tt.wantCode, detail.Code)
		})
	}
}

func TestToErrorDetail_NotFoundFlag(t *testing.T) {
	detail := ToErrorDetail(&LibraryNotFoundError{Name: "SerialboxC", Searched: []string{"/a"}})
	assert.True(t, detail.IsNotFound)
	assert.Equal(t, []string{"/a"}, detail.Details["searched"])
}
