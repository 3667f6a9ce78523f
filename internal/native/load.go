package native

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

// EnvLibraryPath names the environment variable that overrides the
// engine library location.
const EnvLibraryPath = "SKIA_LIBRARY_PATH"

var (
	// ErrLibraryNotFound is returned when no candidate library could be opened.
	ErrLibraryNotFound = errors.New("native: engine library not found")

	// ErrSymbol is returned when the opened library lacks required symbols.
	ErrSymbol = errors.New("native: missing engine symbols")

	// ErrUnsupportedPlatform is returned on platforms without a known library name.
	ErrUnsupportedPlatform = errors.New("native: unsupported platform")
)

// Library is an opened engine library together with its bound function table.
type Library struct {
	Lib  *Lib
	Path string

	handle uintptr
}

// Close unloads the library. The function table must not be used afterwards.
func (l *Library) Close() error {
	if l == nil || l.handle == 0 {
		return nil
	}
	err := closeLibrary(l.handle)
	l.handle = 0
	return err
}

// LibraryNames returns the primary and fallback file names of the engine
// library for goos.
func LibraryNames(goos string) ([]string, error) {
	switch goos {
	case "darwin", "ios":
		return []string{"libSkiaSharp.dylib", "libskia.dylib"}, nil
	case "linux", "android", "freebsd":
		return []string{"libSkiaSharp.so", "libskia.so"}, nil
	case "windows":
		return []string{"libSkiaSharp.dll", "skia.dll"}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

// Candidates returns the ordered list of paths Load tries. An explicit path
// wins, then the environment override, then files next to the executable
// and in the working directory, and finally the bare names, which are
// resolved by the system loader.
func Candidates(explicit string) ([]string, error) {
	names, err := LibraryNames(runtime.GOOS)
	if err != nil {
		return nil, err
	}

	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	if env := strings.TrimSpace(os.Getenv(EnvLibraryPath)); env != "" {
		paths = append(paths, env)
	}

	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	for _, dir := range dirs {
		for _, name := range names {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				paths = append(paths, p)
			}
		}
	}

	return append(paths, names...), nil
}

// Load opens the first loadable candidate and binds every engine symbol.
func Load(explicit string) (*Library, error) {
	paths, err := Candidates(explicit)
	if err != nil {
		return nil, err
	}

	var errs []error
	for _, p := range paths {
		h, err := openLibrary(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		lib, err := bind(h)
		if err != nil {
			_ = closeLibrary(h)
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		return &Library{Lib: lib, Path: p, handle: h}, nil
	}
	return nil, fmt.Errorf("%w (tried %s): %w", ErrLibraryNotFound, strings.Join(paths, ", "), errors.Join(errs...))
}

// bind resolves every symbol of the table in the library h.
func bind(h uintptr) (*Lib, error) {
	lib := &Lib{}
	var missing []string
	for _, s := range lib.symbols() {
		addr, err := lookupSymbol(h, s.name)
		if err != nil || addr == 0 {
			missing = append(missing, s.name)
			continue
		}
		registerFunc(s.fn, addr)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSymbol, strings.Join(missing, ", "))
	}
	return lib, nil
}

func isNilFunc(fptr any) bool {
	return reflect.ValueOf(fptr).Elem().IsNil()
}
