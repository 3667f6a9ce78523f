package softengine

import (
	"fmt"
	"sync"

	"github.com/gogpu/skia/internal/native"
)

// handleBase is the first handle value. Handles are spaced like aligned
// pointers so that they never look like small integers.
const (
	handleBase native.Handle = 0x10000
	handleStep native.Handle = 0x10
)

type handleEntry struct {
	obj  any
	kind string
}

// handleTable maps handles to Go objects.
//
// Every handle given to the binding is owned by exactly one caller and is
// given back exactly once. Returning an unknown handle is a bug in the
// caller and panics.
type handleTable struct {
	mu       sync.Mutex
	next     native.Handle
	entries  map[native.Handle]handleEntry
	released map[string]int
}

func newHandleTable() *handleTable {
	return &handleTable{
		next:     handleBase,
		entries:  make(map[native.Handle]handleEntry),
		released: make(map[string]int),
	}
}

// add registers obj and returns its handle. A nil obj yields the null
// handle, which is how creation failures are reported.
func (t *handleTable) add(kind string, obj any) native.Handle {
	if obj == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.next
	t.next += handleStep
	t.entries[h] = handleEntry{obj: obj, kind: kind}
	return h
}

func (t *handleTable) lookup(h native.Handle) any {
	if h == 0 {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.entries[h].obj
}

// remove drops h and returns its object.
func (t *handleTable) remove(h native.Handle) any {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[h]
	if !ok {
		panic(fmt.Sprintf("softengine: release of unknown handle %#x", uintptr(h)))
	}
	delete(t.entries, h)
	t.released[e.kind]++
	return e.obj
}

// forget drops h if present. Used for handles owned by another object.
func (t *handleTable) forget(h native.Handle) {
	if h == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, h)
}

func (t *handleTable) live(kind string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, e := range t.entries {
		if kind == "" || e.kind == kind {
			n++
		}
	}
	return n
}

func (t *handleTable) releasedCount(kind string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.released[kind]
}

// get looks up h and asserts its type. The zero value comes back for
// unknown handles and handles of another kind.
func get[T any](t *handleTable, h native.Handle) T {
	v, _ := t.lookup(h).(T)
	return v
}
