package binding_test

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/cosunae/serialbox2/domain/ports"
)

type fakeLoader struct {
	mu      sync.Mutex
	symbols []string
	openErr error
	opened  []string
	libs    []*fakeLibrary
}

func (l *fakeLoader) Open(_ context.Context, path string) (ports.Library, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.opened = append(l.opened, path)
	if l.openErr != nil {
		return nil, l.openErr
	}
	lib := &fakeLibrary{symbols: map[string]bool{}}
	for _, s := range l.symbols {
		lib.symbols[s] = true
	}
	l.libs = append(l.libs, lib)
	return lib, nil
}

type fakeLibrary struct {
	symbols  map[string]bool
	closed   int
	closeErr error // returned by the next Close only
}

func (f *fakeLibrary) HasSymbol(name string) bool { return f.symbols[name] }

func (f *fakeLibrary) Bind(fptr any, name string) error {
	if !f.symbols[name] {
		return errors.New("symbol not found")
	}
	p, ok := fptr.(*func() int)
	if !ok {
		return errors.New("unsupported target")
	}
	*p = func() int { return 42 }
	return nil
}

func (f *fakeLibrary) Close() error {
	f.closed++
	err := f.closeErr
	f.closeErr = nil
	return err
}

func noEnv(string) (string, bool) { return "", false }

func noExecutable() (string, error) { return "", errors.New("no executable") }

func mkdir(path string) error { return os.Mkdir(path, 0o755) }

// fakeHandle is a registry entry that was not produced by a Resolver.
type fakeHandle struct {
	name string
	path string
}

func (h *fakeHandle) Name() string { return h.name }
func (h *fakeHandle) Path() string { return h.path }
func (h *fakeHandle) Loaded() bool { return true }
func (h *fakeHandle) Close() error { return nil }
