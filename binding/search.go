package binding

import (
	"path/filepath"
	"strings"

	"github.com/cosunae/serialbox2/domain/entities"
)

// FileNames returns the candidate file names of a logical library, in the
// order they are tried.
func FileNames(name, goos string, backend entities.Backend) []string {
	var native string
	switch goos {
	case "darwin", "ios":
		native = "lib" + name + ".dylib"
	case "windows":
		native = name + ".dll"
	default:
		native = "lib" + name + ".so"
	}
	wasm := name + ".wasm"

	switch backend {
	case entities.BackendNative:
		return []string{native}
	case entities.BackendWasm:
		return []string{wasm}
	default:
		return []string{native, wasm}
	}
}

// libraryPathVars lists the environment variables holding library directories.
func libraryPathVars(goos string) []string {
	switch goos {
	case "darwin", "ios":
		return []string{"DYLD_LIBRARY_PATH", "DYLD_FALLBACK_LIBRARY_PATH"}
	case "windows":
		return []string{"PATH"}
	default:
		return []string{"LD_LIBRARY_PATH"}
	}
}

// SearchDirs returns the directories searched, deduplicated, in order.
func (r *Resolver) SearchDirs() []string {
	cfg := r.config.config
	dirs := append([]string(nil), cfg.SearchPaths...)

	if cfg.UseSystemPaths {
		for _, v := range libraryPathVars(r.config.goos) {
			if val, ok := r.config.lookupEnv(v); ok {
				dirs = append(dirs, filepath.SplitList(val)...)
			}
		}
		if r.config.executable != nil {
			if exe, err := r.config.executable(); err == nil {
				dir := filepath.Dir(exe)
				dirs = append(dirs, dir, filepath.Join(dir, "..", "lib"))
			}
		}
	}

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		if strings.TrimSpace(d) == "" {
			continue
		}
		d = filepath.Clean(d)
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// Candidates returns every file Resolve would try, in order.
func (r *Resolver) Candidates() []string {
	cfg := r.config.config
	if cfg.LibraryPath != "" {
		return []string{cfg.LibraryPath}
	}

	names := FileNames(cfg.LibraryName, r.config.goos, cfg.Backend)
	dirs := r.SearchDirs()
	out := make([]string, 0, len(dirs)*len(names))
	for _, d := range dirs {
		for _, n := range names {
			out = append(out, filepath.Join(d, n))
		}
	}
	return out
}
