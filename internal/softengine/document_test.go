package softengine

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/skia/internal/native"
)

func detach(t *testing.T, l *native.Lib, stream native.Handle) []byte {
	t.Helper()
	d := l.DynamicMemoryWStreamDetachAsData(stream)
	require.NotZero(t, d)
	defer l.DataUnref(d)
	n := l.DataGetSize(d)
	if n == 0 {
		return nil
	}
	return bytes.Clone(unsafe.Slice((*byte)(l.DataGetData(d)), n))
}

func TestDocumentWritesPDF(t *testing.T) {
	e, l := newTestLib(t)
	stream := l.DynamicMemoryWStreamNew()
	defer l.DynamicMemoryWStreamDestroy(stream)
	doc := l.DocumentCreatePDFFromStream(stream)
	require.NotZero(t, doc)

	for i := 0; i < 2; i++ {
		c := l.DocumentBeginPage(doc, 200, 100, nil)
		require.NotZero(t, c)
		p := l.PaintNew()
		l.PaintSetColor(p, 0xFF3366CC)
		r := native.Rect{Left: 10, Top: 10, Right: 190, Bottom: 90}
		l.CanvasDrawRect(c, &r, p)
		l.CanvasDrawCircle(c, 100, 50, 20, p)
		l.PaintDelete(p)
		l.DocumentEndPage(doc)
	}
	l.DocumentClose(doc)
	l.DocumentUnref(doc)

	out := detach(t, l, stream)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	require.Zero(t, e.Live(KindCanvas))
	require.Zero(t, e.Live(KindDocument))
}

func TestDocumentWithoutPagesWritesNothing(t *testing.T) {
	_, l := newTestLib(t)
	stream := l.DynamicMemoryWStreamNew()
	defer l.DynamicMemoryWStreamDestroy(stream)
	doc := l.DocumentCreatePDFFromStream(stream)
	l.DocumentClose(doc)
	l.DocumentUnref(doc)
	require.Empty(t, detach(t, l, stream))
}

func TestDocumentBeginPageEndsOpenPage(t *testing.T) {
	e, l := newTestLib(t)
	stream := l.DynamicMemoryWStreamNew()
	defer l.DynamicMemoryWStreamDestroy(stream)
	doc := l.DocumentCreatePDFFromStream(stream)
	defer l.DocumentUnref(doc)

	first := l.DocumentBeginPage(doc, 100, 100, nil)
	second := l.DocumentBeginPage(doc, 100, 100, nil)
	require.NotEqual(t, first, second)
	require.Equal(t, 1, e.Live(KindCanvas))
	require.Zero(t, l.CanvasGetSaveCount(first))

	l.DocumentAbort(doc)
	require.Zero(t, l.DocumentBeginPage(doc, 100, 100, nil), "an aborted document takes no pages")
	require.Zero(t, e.Live(KindCanvas))
}

func TestDocumentToFile(t *testing.T) {
	_, l := newTestLib(t)
	path := filepath.Join(t.TempDir(), "out.pdf")
	stream := l.FileWStreamNew(path)
	require.NotZero(t, stream)
	doc := l.DocumentCreatePDFFromStream(stream)
	l.DocumentBeginPage(doc, 50, 50, nil)
	l.DocumentClose(doc)
	l.DocumentUnref(doc)
	l.FileWStreamDestroy(stream)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(b, []byte("%PDF")))

	require.Zero(t, l.FileWStreamNew(filepath.Join(t.TempDir(), "missing", "out.pdf")))
}

func TestDocumentCreateNeedsStream(t *testing.T) {
	_, l := newTestLib(t)
	p := l.PaintNew()
	defer l.PaintDelete(p)
	require.Zero(t, l.DocumentCreatePDFFromStream(p))
}
