package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/cosunae/serialbox2/application/config"
	"github.com/cosunae/serialbox2/domain/entities"
	"github.com/cosunae/serialbox2/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func wasmLibrary(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, t.TempDir(), "SerialboxC.wasm", testutil.WasmModule(entities.DefaultRequiredSymbols...))
}

func TestRun_Resolve(t *testing.T) {
	path := wasmLibrary(t)

	code, stdout, stderr := execute(t, "-env", "", "-library", path, "resolve")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, path, strings.TrimSpace(stdout))
}

func TestRun_ResolveFromEnvFile(t *testing.T) {
	path := wasmLibrary(t)
	envFile := testutil.WriteFile(t, t.TempDir(), ".env", []byte(config.EnvLibrary+"="+path+"\n"))

	code, stdout, stderr := execute(t, "-env", envFile, "resolve")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, path, strings.TrimSpace(stdout))
}

func TestRun_Info(t *testing.T) {
	path := wasmLibrary(t)

	code, stdout, stderr := execute(t, "-env", "", "-library", path, "-backend", "wasm", "info")
	require.Equal(t, 0, code, stderr)

	var got map[string]struct {
		TypeID int `json:"type_id"`
		Value  any `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, path, got["path"].Value)
	assert.Equal(t, "wasm", got["backend"].Value)
	assert.Equal(t, true, got["loaded"].Value)
}

func TestRun_NotFound(t *testing.T) {
	t.Setenv(config.EnvLibraryPath, t.TempDir())
	t.Setenv(config.EnvUseSystemPaths, "false")

	code, stdout, stderr := execute(t, "-env", "", "-json", "resolve")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "command failed")
	assert.Contains(t, stderr, "not found")
}

func TestRun_Schema(t *testing.T) {
	code, stdout, _ := execute(t, "schema")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "library_name")
	assert.True(t, json.Valid([]byte(stdout)))
}

func TestRun_BadBackendFlag(t *testing.T) {
	code, _, stderr := execute(t, "-env", "", "-backend", "jvm", "resolve")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid configuration")
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := execute(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage:")

	code, _, stderr = execute(t, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown command")

	code, _, _ = execute(t, "-h")
	assert.Equal(t, 0, code)
}
