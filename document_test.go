package skia

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/skia/internal/softengine"
)

func TestEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	doc, err := CreatePDF(path)
	mustNoErr(t, err)

	if err := doc.Close(); !errors.Is(err, ErrEmptyDocument) {
		t.Errorf("Close() = %v, want ErrEmptyDocument", err)
	}
	if !doc.IsClosed() {
		t.Error("document still open")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("empty pdf left on disk: %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}

func TestDocumentClosedRejectsPages(t *testing.T) {
	var buf bytes.Buffer
	doc, err := NewPDF(&buf)
	mustNoErr(t, err)
	mustNoErr(t, doc.WithPage(100, 100, func(c *Canvas) error { return c.Clear(White) }))
	mustNoErr(t, doc.Close())

	if _, err := doc.BeginPage(100, 100); !errors.Is(err, ErrDocumentClosed) {
		t.Errorf("BeginPage() after Close = %v, want ErrDocumentClosed", err)
	}
	if err := doc.EndPage(); !errors.Is(err, ErrDocumentClosed) {
		t.Errorf("EndPage() after Close = %v, want ErrDocumentClosed", err)
	}
}

func TestDocumentToWriter(t *testing.T) {
	var buf bytes.Buffer
	doc, err := NewPDF(&buf)
	mustNoErr(t, err)

	red, err := NewFillPaint(Red)
	mustNoErr(t, err)
	defer red.Release()

	for i := range 3 {
		c, err := doc.BeginPage(612, 792)
		mustNoErr(t, err)
		mustNoErr(t, c.DrawRect(RectFromXYWH(72, 72, float64(100*(i+1)), 50), red))
	}
	if doc.PageCount() != 3 {
		t.Errorf("PageCount() = %d", doc.PageCount())
	}
	if buf.Len() != 0 {
		t.Error("bytes written before Close")
	}
	mustNoErr(t, doc.Close())
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output starts with %q", buf.Bytes()[:min(8, buf.Len())])
	}
}

func TestPageCanvasEndsWithPage(t *testing.T) {
	var buf bytes.Buffer
	doc, err := NewPDF(&buf)
	mustNoErr(t, err)
	defer doc.Abort()

	c, err := doc.BeginPage(100, 100)
	mustNoErr(t, err)
	mustNoErr(t, doc.EndPage())
	if err := c.Clear(Red); !errors.Is(err, ErrUseAfterRelease) {
		t.Errorf("Clear() on ended page = %v, want ErrUseAfterRelease", err)
	}

	first, err := doc.BeginPage(100, 100)
	mustNoErr(t, err)
	_, err = doc.BeginPage(200, 200)
	mustNoErr(t, err)
	if err := first.Clear(Red); !errors.Is(err, ErrUseAfterRelease) {
		t.Errorf("BeginPage did not end the open page: %v", err)
	}
}

func TestAbortDiscards(t *testing.T) {
	var buf bytes.Buffer
	doc, err := NewPDF(&buf)
	mustNoErr(t, err)
	_, err = doc.BeginPage(100, 100)
	mustNoErr(t, err)
	mustNoErr(t, doc.Abort())
	mustNoErr(t, doc.Close())
	if buf.Len() != 0 {
		t.Errorf("aborted document wrote %d bytes", buf.Len())
	}
}

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	font, err := NewDefaultFont()
	mustNoErr(t, err)
	defer font.Release()
	black, err := NewFillPaint(Black)
	mustNoErr(t, err)
	defer black.Release()

	ok := filepath.Join(dir, "ok.pdf")
	mustNoErr(t, WritePDF(ok, func(doc *Document) error {
		return doc.WithPage(612, 792, func(c *Canvas) error {
			return c.DrawText("Hello, PDF", 72, 72, font, black)
		})
	}))
	b, err := os.ReadFile(ok)
	mustNoErr(t, err)
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("missing PDF header")
	}

	bad := filepath.Join(dir, "bad.pdf")
	boom := errors.New("boom")
	err = WritePDF(bad, func(doc *Document) error {
		if _, err := doc.BeginPage(100, 100); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("WritePDF() = %v, want boom", err)
	}
	if _, err := os.Stat(bad); !errors.Is(err, os.ErrNotExist) {
		t.Error("failed pdf left on disk")
	}
}

func TestDocumentOutlivesEngine(t *testing.T) {
	useFreshEngine(t)
	var buf bytes.Buffer
	doc, err := NewPDF(&buf)
	mustNoErr(t, err)
	page, err := doc.BeginPage(200, 200)
	mustNoErr(t, err)
	other, err := CreatePDF(filepath.Join(t.TempDir(), "other.pdf"))
	mustNoErr(t, err)
	_, err = other.BeginPage(100, 100)
	mustNoErr(t, err)

	mustNoErr(t, Shutdown())
	mustNoErr(t, Init(WithEngine(softengine.New().Lib())))

	if _, err := doc.BeginPage(200, 200); !errors.Is(err, ErrUseAfterRelease) {
		t.Errorf("BeginPage() after engine swap = %v, want ErrUseAfterRelease", err)
	}
	if err := page.DrawColor(Red, BlendSrcOver); !errors.Is(err, ErrUseAfterRelease) {
		t.Errorf("page draw after engine swap = %v, want ErrUseAfterRelease", err)
	}
	if err := doc.Close(); !errors.Is(err, ErrUseAfterRelease) {
		t.Errorf("Close() after engine swap = %v, want ErrUseAfterRelease", err)
	}
	if !doc.IsClosed() {
		t.Error("document still open after a failed Close")
	}
	if err := doc.Close(); err != nil {
		t.Errorf("second Close() = %v, want nil", err)
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written through a stale engine", buf.Len())
	}

	if err := other.Abort(); !errors.Is(err, ErrUseAfterRelease) {
		t.Errorf("Abort() after engine swap = %v, want ErrUseAfterRelease", err)
	}
	if err := other.EndPage(); !errors.Is(err, ErrDocumentClosed) {
		t.Errorf("EndPage() after Abort = %v, want ErrDocumentClosed", err)
	}
}
