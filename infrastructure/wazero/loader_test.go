package wazero

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/cosunae/serialbox2/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

func TestDefaultLoaderConfig(t *testing.T) {
	cfg := defaultLoaderConfig()

	if !cfg.wasi {
		t.Errorf("wasi = false, want true")
	}
	if cfg.initFunction != "_initialize" {
		t.Errorf("initFunction = %q, want %q", cfg.initFunction, "_initialize")
	}
}

func TestLoaderOptions(t *testing.T) {
	cfg := defaultLoaderConfig()
	WithWASI(false)(&cfg)
	WithInitFunction("")(&cfg)
	rc := wazero.NewRuntimeConfigInterpreter()
	WithRuntimeConfig(rc)(&cfg)

	assert.False(t, cfg.wasi)
	assert.Empty(t, cfg.initFunction)
	assert.Equal(t, rc, cfg.runtimeConfig)
}

func TestLoader_OpenAndBind(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteFile(t, t.TempDir(), "SerialboxC.wasm",
		testutil.WasmModule("serialboxSerializerCreate", "serialboxSerializerDestroy"))

	lib, err := NewLoader().Open(ctx, path)
	require.NoError(t, err)
	defer lib.Close()

	assert.True(t, lib.HasSymbol("serialboxSerializerCreate"))
	assert.True(t, lib.HasSymbol("serialboxSerializerDestroy"))
	assert.False(t, lib.HasSymbol("serialboxFieldMetainfoCreate"))

	var create api.Function
	require.NoError(t, lib.Bind(&create, "serialboxSerializerCreate"))
	require.NotNil(t, create)

	results, err := create.Call(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLoader_BindErrors(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteFile(t, t.TempDir(), "SerialboxC.wasm", testutil.WasmModule("f"))

	lib, err := NewLoader().Open(ctx, path)
	require.NoError(t, err)
	defer lib.Close()

	var fn func()
	assert.Error(t, lib.Bind(&fn, "f"), "non api.Function targets are rejected")

	var missing api.Function
	err = lib.Bind(&missing, "g")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `export "g" not found`)
}

func TestLoader_Close(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteFile(t, t.TempDir(), "SerialboxC.wasm", testutil.WasmModule("f"))

	lib, err := NewLoader().Open(ctx, path)
	require.NoError(t, err)

	require.NoError(t, lib.Close())
	assert.NoError(t, lib.Close(), "second close is a no-op")
	assert.False(t, lib.HasSymbol("f"))

	var f api.Function
	assert.Error(t, lib.Bind(&f, "f"))
}

func TestLoader_OpenFailures(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{
			name:    "missing file",
			path:    filepath.Join(dir, "absent.wasm"),
			wantMsg: "failed to read module",
		},
		{
			name:    "not wasm",
			path:    testutil.WriteFile(t, dir, "garbage.wasm", []byte("not a module")),
			wantMsg: "failed to compile module",
		},
		{
			name:    "unresolved import",
			path:    testutil.WriteFile(t, dir, "imports.wasm", testutil.WasmModuleImporting("env", "missing")),
			wantMsg: "failed to instantiate module",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lib, err := NewLoader().Open(ctx, tt.path)
			require.Error(t, err)
			assert.Nil(t, lib)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoader_WithoutWASI(t *testing.T) {
	ctx := context.Background()
	path := testutil.WriteFile(t, t.TempDir(), "SerialboxC.wasm", testutil.WasmModule("f"))

	lib, err := NewLoader(WithWASI(false), WithRuntimeConfig(wazero.NewRuntimeConfigInterpreter())).Open(ctx, path)
	require.NoError(t, err)
	assert.True(t, lib.HasSymbol("f"))
	assert.NoError(t, lib.Close())
}
