package skia

import (
	"fmt"
	"os"
	"runtime"
	"unsafe"

	"github.com/gogpu/skia/internal/native"
)

// Data is an immutable, reference-counted byte buffer owned by the engine.
type Data struct {
	*resource
}

// NewData copies b into a new engine buffer.
func NewData(b []byte) (*Data, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	var p unsafe.Pointer
	if len(b) > 0 {
		p = unsafe.Pointer(&b[0])
	}
	h := eng.lib.DataNewWithCopy(p, uintptr(len(b)))
	runtime.KeepAlive(b)
	return wrapData(eng, h)
}

// NewDataFromFile reads a file into a new engine buffer.
func NewDataFromFile(path string) (*Data, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	h := eng.lib.DataNewFromFile(path)
	if h == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	return wrapData(eng, h)
}

func wrapData(eng *engineState, h native.Handle) (*Data, error) {
	r, err := newResource(eng, h, "data", eng.lib.DataUnref)
	if err != nil {
		return nil, err
	}
	d := &Data{r}
	track(d, r)
	return d, nil
}

// Len returns the buffer size in bytes.
func (d *Data) Len() (int, error) {
	defer runtime.KeepAlive(d)
	h, lib, err := d.get()
	if err != nil {
		return 0, err
	}
	return int(lib.DataGetSize(h)), nil
}

// Bytes returns a copy of the buffer contents.
func (d *Data) Bytes() ([]byte, error) {
	defer runtime.KeepAlive(d)
	h, lib, err := d.get()
	if err != nil {
		return nil, err
	}
	return copyData(lib, h), nil
}

// copyData copies the contents of an engine buffer into Go memory.
func copyData(lib *native.Lib, h native.Handle) []byte {
	n := int(lib.DataGetSize(h))
	out := make([]byte, n)
	if n > 0 {
		copy(out, unsafe.Slice((*byte)(lib.DataGetData(h)), n))
	}
	return out
}
