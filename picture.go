package skia

import (
	"fmt"
	"os"
	"runtime"

	"github.com/gogpu/skia/internal/native"
)

// PictureRecorder captures drawing calls into a Picture.
//
// It moves between idle and recording: BeginRecording returns a canvas
// that records instead of drawing, and EndRecording turns what was
// recorded into a Picture and invalidates that canvas.
type PictureRecorder struct {
	*resource
	canvas *Canvas
}

// NewPictureRecorder creates an idle recorder.
func NewPictureRecorder() (*PictureRecorder, error) {
	eng, err := currentEngine()
	if err != nil {
		return nil, err
	}
	r, err := newResource(eng, eng.lib.PictureRecorderNew(), "picture recorder", eng.lib.PictureRecorderDelete)
	if err != nil {
		return nil, err
	}
	pr := &PictureRecorder{resource: r}
	track(pr, r)
	return pr, nil
}

// BeginRecording starts recording calls bounded by cull. Starting while
// already recording is an error.
func (pr *PictureRecorder) BeginRecording(cull Rect) (*Canvas, error) {
	defer runtime.KeepAlive(pr)
	h, lib, err := pr.get()
	if err != nil {
		return nil, err
	}
	if pr.canvas != nil {
		return nil, fmt.Errorf("%w: already recording", ErrRecordingFailed)
	}
	nr := cull.toNative()
	ch := lib.PictureRecorderBeginRecording(h, &nr)
	if ch == 0 {
		return nil, ErrRecordingFailed
	}
	c, err := wrapCanvas(pr.eng, ch, "recording canvas", pr)
	if err != nil {
		return nil, err
	}
	pr.canvas = c
	return c, nil
}

// IsRecording reports whether a recording is in progress.
func (pr *PictureRecorder) IsRecording() bool {
	return pr.canvas != nil
}

// RecordingCanvas returns the canvas of the current recording, nil when
// idle.
func (pr *PictureRecorder) RecordingCanvas() *Canvas {
	return pr.canvas
}

// EndRecording finishes the recording and returns the picture. Calling it
// while idle returns (nil, nil).
func (pr *PictureRecorder) EndRecording() (*Picture, error) {
	defer runtime.KeepAlive(pr)
	h, lib, err := pr.get()
	if err != nil {
		return nil, err
	}
	if pr.canvas == nil {
		return nil, nil
	}
	pr.canvas.Release()
	pr.canvas = nil
	pic := lib.PictureRecorderEndRecording(h)
	if pic == 0 {
		return nil, ErrRecordingFailed
	}
	return wrapPicture(pr.eng, pic)
}

// Release frees the recorder. A recording in progress is dropped.
func (pr *PictureRecorder) Release() {
	if pr == nil {
		return
	}
	if pr.canvas != nil {
		pr.canvas.Release()
		pr.canvas = nil
	}
	pr.resource.Release()
}

// RecordPicture records fn into a new picture bounded by cull.
//
// Example:
//
//	pic, err := skia.RecordPicture(skia.RectFromWH(100, 100), func(c *skia.Canvas) error {
//	    return c.DrawCircle(50, 50, 40, paint)
//	})
func RecordPicture(cull Rect, fn func(*Canvas) error) (*Picture, error) {
	pr, err := NewPictureRecorder()
	if err != nil {
		return nil, err
	}
	defer pr.Release()
	c, err := pr.BeginRecording(cull)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	return pr.EndRecording()
}

// Picture is an immutable recording of drawing calls.
type Picture struct {
	*resource
}

func wrapPicture(eng *engineState, h native.Handle) (*Picture, error) {
	r, err := newResource(eng, h, "picture", eng.lib.PictureUnref)
	if err != nil {
		return nil, err
	}
	p := &Picture{r}
	track(p, r)
	return p, nil
}

// PictureFromBytes deserializes bytes produced by Serialize.
func PictureFromBytes(b []byte) (*Picture, error) {
	data, err := NewData(b)
	if err != nil {
		return nil, err
	}
	defer data.Release()
	return pictureFromData(data)
}

// LoadPicture reads a picture saved with Save.
func LoadPicture(path string) (*Picture, error) {
	data, err := NewDataFromFile(path)
	if err != nil {
		return nil, err
	}
	defer data.Release()
	p, err := pictureFromData(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func pictureFromData(data *Data) (*Picture, error) {
	defer runtime.KeepAlive(data)
	dh, lib, err := data.get()
	if err != nil {
		return nil, err
	}
	h := lib.PictureDeserializeFromData(dh)
	if h == 0 {
		return nil, fmt.Errorf("%w: picture", ErrDecodingFailed)
	}
	return wrapPicture(data.eng, h)
}

// UniqueID returns the engine identifier of this picture. It is not
// preserved by serialization.
func (p *Picture) UniqueID() (uint32, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return lib.PictureGetUniqueID(h), nil
}

// CullRect returns the bounds declared when recording.
func (p *Picture) CullRect() (Rect, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return Rect{}, err
	}
	var r native.Rect
	lib.PictureGetCullRect(h, &r)
	return rectFromNative(r), nil
}

// ApproximateOpCount returns the number of recorded operations, counting
// into nested pictures.
func (p *Picture) ApproximateOpCount() (int, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return int(lib.PictureApproximateOpCount(h, true)), nil
}

// ApproximateBytesUsed returns the memory held by the recording.
func (p *Picture) ApproximateBytesUsed() (int, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return 0, err
	}
	return int(lib.PictureApproximateBytesUsed(h)), nil
}

// Playback replays the recording onto c.
func (p *Picture) Playback(c *Canvas) error {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: canvas", ErrNullHandle)
	}
	defer runtime.KeepAlive(c)
	ch, _, err := c.get()
	if err != nil {
		return err
	}
	lib.PicturePlayback(h, ch)
	return nil
}

// Serialize encodes the picture. The bytes are only meaningful to
// PictureFromBytes.
func (p *Picture) Serialize() ([]byte, error) {
	defer runtime.KeepAlive(p)
	h, lib, err := p.get()
	if err != nil {
		return nil, err
	}
	data := lib.PictureSerializeToData(h)
	if data == 0 {
		return nil, fmt.Errorf("%w: picture", ErrEncodingFailed)
	}
	defer lib.DataUnref(data)
	return copyData(lib, data), nil
}

// Save serializes the picture to path.
func (p *Picture) Save(path string) error {
	b, err := p.Serialize()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
