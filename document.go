package skia

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/gogpu/skia/internal/native"
)

// docHandles are the engine objects of one document session. They are
// created together and released together.
type docHandles struct {
	eng    *engineState
	doc    native.Handle
	stream native.Handle
	memory bool // stream is a dynamic memory stream
}

// release frees the document before its stream.
func (d *docHandles) release() {
	if d.doc == 0 {
		return
	}
	if enginePtr.Load() != d.eng {
		Logger().Warn("skia: release skipped, engine no longer loaded", "kind", "document")
		d.doc, d.stream = 0, 0
		return
	}
	d.eng.lib.DocumentUnref(d.doc)
	if d.memory {
		d.eng.lib.DynamicMemoryWStreamDestroy(d.stream)
	} else {
		d.eng.lib.FileWStreamDestroy(d.stream)
	}
	d.doc, d.stream = 0, 0
	Logger().Debug("skia: released", "kind", "document")
}

// Document is a multi-page PDF session.
//
// The lifecycle is Open, then any number of BeginPage / EndPage pairs, then
// Close or Abort. Both end states are final and calling either again is a
// no-op. After that every other operation returns ErrDocumentClosed.
//
// Close must be called explicitly; an unreachable document is only
// abandoned by the garbage collector, and its output is not guaranteed to
// be complete. A document cannot outlive the engine it was created in:
// after Shutdown every operation returns ErrUseAfterRelease.
type Document struct {
	h       *docHandles
	path    string    // output file, empty for writer-backed documents
	w       io.Writer // destination of writer-backed documents
	page    *Canvas
	pages   int
	closed  bool
	cleanup runtime.Cleanup
}

// CreatePDF starts a PDF document written to path.
func CreatePDF(path string) (*Document, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	stream := eng.lib.FileWStreamNew(path)
	if stream == 0 {
		return nil, fmt.Errorf("%w: cannot open %s for writing", ErrNullHandle, path)
	}
	doc := eng.lib.DocumentCreatePDFFromStream(stream)
	if doc == 0 {
		eng.lib.FileWStreamDestroy(stream)
		return nil, fmt.Errorf("%w: pdf document", ErrNullHandle)
	}
	return newDocument(&docHandles{eng: eng, doc: doc, stream: stream}, path, nil), nil
}

// NewPDF starts a PDF document whose bytes are written to w on Close.
func NewPDF(w io.Writer) (*Document, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	stream := eng.lib.DynamicMemoryWStreamNew()
	if stream == 0 {
		return nil, fmt.Errorf("%w: memory stream", ErrNullHandle)
	}
	doc := eng.lib.DocumentCreatePDFFromStream(stream)
	if doc == 0 {
		eng.lib.DynamicMemoryWStreamDestroy(stream)
		return nil, fmt.Errorf("%w: pdf document", ErrNullHandle)
	}
	return newDocument(&docHandles{eng: eng, doc: doc, stream: stream, memory: true}, "", w), nil
}

func newDocument(h *docHandles, path string, w io.Writer) *Document {
	d := &Document{h: h, path: path, w: w}
	d.cleanup = runtime.AddCleanup(d, (*docHandles).release, h)
	return d
}

// lib returns the engine of the document, failing once that engine was
// shut down or replaced.
func (d *Document) lib() (*native.Lib, error) {
	if enginePtr.Load() != d.h.eng {
		return nil, fmt.Errorf("%w: document outlived its engine", ErrUseAfterRelease)
	}
	return d.h.eng.lib, nil
}

// IsClosed reports whether the document was closed or aborted.
func (d *Document) IsClosed() bool {
	return d.closed
}

// PageCount returns the number of pages begun so far.
func (d *Document) PageCount() int {
	return d.pages
}

// BeginPage starts a page of the given size in points and returns its
// canvas. An open page is ended first. The canvas is valid until the page
// ends.
func (d *Document) BeginPage(width, height float64) (*Canvas, error) {
	defer runtime.KeepAlive(d)
	if d.closed {
		return nil, ErrDocumentClosed
	}
	if err := d.EndPage(); err != nil {
		return nil, err
	}
	lib, err := d.lib()
	if err != nil {
		return nil, err
	}
	h := lib.DocumentBeginPage(d.h.doc, float32(width), float32(height), nil)
	if h == 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrPageBeginFailed, width, height)
	}
	c, err := wrapCanvas(d.h.eng, h, "page canvas", d)
	if err != nil {
		return nil, err
	}
	d.page = c
	d.pages++
	return c, nil
}

// EndPage finishes the open page, if any.
func (d *Document) EndPage() error {
	if d.closed {
		return ErrDocumentClosed
	}
	if d.page == nil {
		return nil
	}
	defer runtime.KeepAlive(d)
	d.page.Release()
	d.page = nil
	lib, err := d.lib()
	if err != nil {
		return err
	}
	lib.DocumentEndPage(d.h.doc)
	return nil
}

// WithPage runs fn on a new page and ends the page afterwards, whether or
// not fn fails.
func (d *Document) WithPage(width, height float64, fn func(*Canvas) error) (err error) {
	c, err := d.BeginPage(width, height)
	if err != nil {
		return err
	}
	defer func() {
		if eerr := d.EndPage(); eerr != nil && err == nil {
			err = eerr
		}
	}()
	return fn(c)
}

// Close ends the open page, finishes the document and closes its output.
// Closing a document that never began a page aborts it instead, removes
// the output file and returns ErrEmptyDocument.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	defer runtime.KeepAlive(d)
	if d.pages == 0 {
		err := d.Abort()
		if d.path != "" {
			if rerr := os.Remove(d.path); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				err = errors.Join(err, rerr)
			}
		}
		return errors.Join(ErrEmptyDocument, err)
	}
	lib, err := d.lib()
	if err != nil {
		d.discard()
		return err
	}
	if err := d.EndPage(); err != nil {
		return err
	}
	lib.DocumentClose(d.h.doc)

	var out []byte
	if d.h.memory {
		out = detachStream(lib, d.h.stream)
	}
	d.finish()

	if d.w != nil {
		if _, err := d.w.Write(out); err != nil {
			return fmt.Errorf("skia: writing pdf: %w", err)
		}
	}
	return nil
}

// Abort discards the document. Output already written to a file is left
// incomplete.
func (d *Document) Abort() error {
	if d.closed {
		return nil
	}
	defer runtime.KeepAlive(d)
	lib, err := d.lib()
	if err != nil {
		d.discard()
		return err
	}
	if d.page != nil {
		d.page.Release()
		d.page = nil
	}
	lib.DocumentAbort(d.h.doc)
	d.finish()
	return nil
}

// discard ends a document whose engine is gone without calling into it.
func (d *Document) discard() {
	if d.page != nil {
		d.page.Release()
		d.page = nil
	}
	d.finish()
}

func (d *Document) finish() {
	d.closed = true
	d.cleanup.Stop()
	d.h.release()
}

func detachStream(lib *native.Lib, stream native.Handle) []byte {
	data := lib.DynamicMemoryWStreamDetachAsData(stream)
	if data == 0 {
		return nil
	}
	defer lib.DataUnref(data)
	return copyData(lib, data)
}

// WritePDF creates a PDF at path, runs fn and closes the document. If fn
// fails the document is aborted, the partial file removed and fn's error
// returned.
//
// Example:
//
//	err := skia.WritePDF("report.pdf", func(doc *skia.Document) error {
//	    return doc.WithPage(612, 792, func(c *skia.Canvas) error {
//	        return c.DrawText("Hello", 72, 72, font, paint)
//	    })
//	})
func WritePDF(path string, fn func(*Document) error) (err error) {
	doc, err := CreatePDF(path)
	if err != nil {
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			_ = doc.Abort()
			_ = os.Remove(path)
			panic(r)
		}
	}()
	if err := fn(doc); err != nil {
		_ = doc.Abort()
		_ = os.Remove(path)
		return err
	}
	return doc.Close()
}
