//go:build !darwin && !linux && !freebsd && !windows

package native

func openLibrary(string) (uintptr, error) { return 0, ErrUnsupportedPlatform }

func closeLibrary(uintptr) error { return nil }

func lookupSymbol(uintptr, string) (uintptr, error) { return 0, ErrUnsupportedPlatform }

func registerFunc(any, uintptr) {}
