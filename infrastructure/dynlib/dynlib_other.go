//go:build !(darwin || freebsd || linux || windows)

package dynlib

import (
	"fmt"
	"runtime"
)

var errUnsupported = fmt.Errorf("native libraries are not supported on %s", runtime.GOOS)

func openLibrary(string, bool) (uintptr, error) { return 0, errUnsupported }

func lookupSymbol(uintptr, string) (uintptr, error) { return 0, errUnsupported }

func closeLibrary(uintptr) error { return errUnsupported }

func registerFunc(any, uintptr) { panic(errUnsupported) }
