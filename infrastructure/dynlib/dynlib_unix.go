//go:build darwin || freebsd || linux

package dynlib

import (
	"github.com/ebitengine/purego"
)

func openLibrary(path string, lazy bool) (uintptr, error) {
	mode := purego.RTLD_NOW
	if lazy {
		mode = purego.RTLD_LAZY
	}
	return purego.Dlopen(path, mode|purego.RTLD_GLOBAL)
}

func lookupSymbol(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func closeLibrary(handle uintptr) error {
	return purego.Dlclose(handle)
}

func registerFunc(fptr any, addr uintptr) {
	purego.RegisterFunc(fptr, addr)
}
