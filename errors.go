package skia

import "errors"

var (
	// ErrNullHandle is returned when an engine creation call yields no
	// usable resource (malformed input, unsupported format, missing file).
	ErrNullHandle = errors.New("skia: engine returned a null handle")

	// ErrUseAfterRelease is returned by any operation on a released wrapper.
	ErrUseAfterRelease = errors.New("skia: use after release")

	// ErrEncodingFailed is returned when a pixel encoder rejects its input.
	ErrEncodingFailed = errors.New("skia: encoding failed")

	// ErrDecodingFailed is returned when encoded bytes cannot be decoded.
	ErrDecodingFailed = errors.New("skia: decoding failed")

	// ErrDocumentClosed is returned by operations on a closed or aborted document.
	ErrDocumentClosed = errors.New("skia: document closed")

	// ErrInvalidGradientSpec is returned when gradient colors and positions disagree.
	ErrInvalidGradientSpec = errors.New("skia: invalid gradient spec")

	// ErrFileNotFound is returned when a path-based load fails.
	ErrFileNotFound = errors.New("skia: file not found")

	// ErrPageBeginFailed is returned when the engine cannot start a document page.
	ErrPageBeginFailed = errors.New("skia: page begin failed")

	// ErrRecordingFailed is returned when the engine cannot start a recording.
	ErrRecordingFailed = errors.New("skia: recording failed")

	// ErrInvalidSaveCount is returned by RestoreToCount for a count outside
	// the range [session start, current save count].
	ErrInvalidSaveCount = errors.New("skia: invalid save count")

	// ErrEmptyDocument is returned when a document is closed before any page
	// was begun. The partial output is discarded.
	ErrEmptyDocument = errors.New("skia: document has no pages")

	// ErrEngineNotLoaded is returned when the engine library could not be
	// loaded or was shut down.
	ErrEngineNotLoaded = errors.New("skia: engine not loaded")
)
