package parser

import (
	"testing"

	"github.com/cosunae/serialbox2/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYamlConfigParser_Parse(t *testing.T) {
	data := `
library_name: SerialboxC
search_paths:
  - /opt/serialbox/lib
  - /usr/local/lib
use_system_paths: false
backend: native
required_symbols:
  - serialboxSerializerCreate
strict_registry: false
log_level: debug
`
	cfg := entities.DefaultResolverConfig()
	require.NoError(t, NewYamlConfigParser().Parse([]byte(data), &cfg))

	assert.Equal(t, "SerialboxC", cfg.LibraryName)
	assert.Equal(t, []string{"/opt/serialbox/lib", "/usr/local/lib"}, cfg.SearchPaths)
	assert.False(t, cfg.UseSystemPaths)
	assert.Equal(t, entities.BackendNative, cfg.Backend)
	assert.Equal(t, []string{"serialboxSerializerCreate"}, cfg.RequiredSymbols)
	assert.False(t, cfg.StrictRegistry)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestYamlConfigParser_KeepsUnsetFields(t *testing.T) {
	cfg := entities.DefaultResolverConfig()
	require.NoError(t, NewYamlConfigParser().Parse([]byte("library_path: /tmp/libSerialboxC.so\n"), &cfg))

	assert.Equal(t, "/tmp/libSerialboxC.so", cfg.LibraryPath)
	assert.Equal(t, entities.DefaultLibraryName, cfg.LibraryName)
	assert.True(t, cfg.UseSystemPaths)
	assert.Equal(t, entities.DefaultRequiredSymbols, cfg.RequiredSymbols)
}

func TestYamlConfigParser_Invalid(t *testing.T) {
	cfg := entities.DefaultResolverConfig()
	err := NewYamlConfigParser().Parse([]byte("search_paths: [unterminated"), &cfg)
	assert.Error(t, err)

	assert.Error(t, NewYamlConfigParser().Parse([]byte("{}"), nil))
}
