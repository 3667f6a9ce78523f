package native

import (
	"errors"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
)

func TestLibraryNames(t *testing.T) {
	tests := []struct {
		goos    string
		primary string
		wantErr bool
	}{
		{"linux", "libSkiaSharp.so", false},
		{"darwin", "libSkiaSharp.dylib", false},
		{"windows", "libSkiaSharp.dll", false},
		{"plan9", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			names, err := LibraryNames(tt.goos)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedPlatform) {
					t.Fatalf("LibraryNames(%q) error = %v, want ErrUnsupportedPlatform", tt.goos, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LibraryNames(%q) error = %v", tt.goos, err)
			}
			if len(names) < 2 || names[0] != tt.primary {
				t.Errorf("LibraryNames(%q) = %v, want primary %q plus fallback", tt.goos, names, tt.primary)
			}
		})
	}
}

func TestCandidatesOrder(t *testing.T) {
	if _, err := LibraryNames(runtime.GOOS); err != nil {
		t.Skip("unsupported platform")
	}
	env := filepath.Join(t.TempDir(), "env-lib.so")
	t.Setenv(EnvLibraryPath, env)

	paths, err := Candidates("/explicit/lib.so")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) < 4 {
		t.Fatalf("Candidates() = %v, want explicit, env and bare names", paths)
	}
	if paths[0] != "/explicit/lib.so" {
		t.Errorf("paths[0] = %q, want explicit path first", paths[0])
	}
	if paths[1] != env {
		t.Errorf("paths[1] = %q, want env override second", paths[1])
	}
	names, _ := LibraryNames(runtime.GOOS)
	if got := paths[len(paths)-len(names):]; got[0] != names[0] {
		t.Errorf("bare names not last: %v", paths)
	}
}

func TestCandidatesWithoutOverride(t *testing.T) {
	if _, err := LibraryNames(runtime.GOOS); err != nil {
		t.Skip("unsupported platform")
	}
	t.Setenv(EnvLibraryPath, "  ")

	paths, err := Candidates("")
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range paths {
		if p == "" || p == "  " {
			t.Errorf("blank candidate in %v", paths)
		}
	}
}

func TestLoadMissingLibrary(t *testing.T) {
	t.Setenv(EnvLibraryPath, "")
	lib, err := Load(filepath.Join(t.TempDir(), "does-not-exist.so"))
	if err == nil {
		// A system-wide engine install satisfied the bare-name fallback.
		defer lib.Close()
		if len(lib.Lib.Missing()) != 0 {
			t.Errorf("loaded library has unbound symbols: %v", lib.Lib.Missing())
		}
		return
	}
	if !errors.Is(err, ErrLibraryNotFound) && !errors.Is(err, ErrSymbol) && !errors.Is(err, ErrUnsupportedPlatform) {
		t.Errorf("Load() error = %v, want ErrLibraryNotFound", err)
	}
}

func TestSymbolTable(t *testing.T) {
	var lib Lib
	syms := lib.symbols()
	seen := make(map[string]bool, len(syms))
	for _, s := range syms {
		if seen[s.name] {
			t.Errorf("symbol %s bound twice", s.name)
		}
		seen[s.name] = true
	}
	if n := reflect.TypeOf(lib).NumField(); n != len(syms) {
		t.Errorf("Lib has %d fields, symbol table lists %d", n, len(syms))
	}
	if got := len(lib.Missing()); got != len(syms) {
		t.Errorf("Missing() on empty table = %d names, want %d", got, len(syms))
	}

	lib.CanvasSave = func(Handle) int32 { return 1 }
	if got := len(lib.Missing()); got != len(syms)-1 {
		t.Errorf("Missing() after binding one = %d, want %d", got, len(syms)-1)
	}
}

func TestLibraryCloseNil(t *testing.T) {
	var l *Library
	if err := l.Close(); err != nil {
		t.Errorf("nil Close() = %v", err)
	}
}
