package softengine

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/skia/internal/native"
)

func encodeSurface(t *testing.T, l *native.Lib, s native.Handle, enc func(stream, pm native.Handle) bool) []byte {
	t.Helper()
	pm := l.PixmapNew()
	defer l.PixmapDestructor(pm)
	require.True(t, l.SurfacePeekPixels(s, pm))

	stream := l.DynamicMemoryWStreamNew()
	defer l.DynamicMemoryWStreamDestroy(stream)
	if !enc(stream, pm) {
		return nil
	}
	return detach(t, l, stream)
}

func TestEncodeMagic(t *testing.T) {
	_, l := newTestLib(t)
	s, c := newTestSurface(t, l, 16, 16)
	l.CanvasClear(c, 0xFF808080)

	pngOut := encodeSurface(t, l, s, func(st, pm native.Handle) bool {
		return l.PNGEncoderEncode(st, pm, &native.PNGEncoderOptions{FilterFlags: native.PNGFilterAll, ZLibLevel: 6})
	})
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, pngOut[:4])

	jpegOut := encodeSurface(t, l, s, func(st, pm native.Handle) bool {
		return l.JPEGEncoderEncode(st, pm, &native.JPEGEncoderOptions{Quality: 80})
	})
	require.Equal(t, []byte{0xFF, 0xD8}, jpegOut[:2])

	webpOut := encodeSurface(t, l, s, func(st, pm native.Handle) bool {
		return l.WebPEncoderEncode(st, pm, &native.WebPEncoderOptions{Quality: 80})
	})
	require.Nil(t, webpOut)
}

func TestEncodeWithoutPixels(t *testing.T) {
	_, l := newTestLib(t)
	pm := l.PixmapNew()
	defer l.PixmapDestructor(pm)
	stream := l.DynamicMemoryWStreamNew()
	defer l.DynamicMemoryWStreamDestroy(stream)
	require.False(t, l.PNGEncoderEncode(stream, pm, nil))

	var info native.ImageInfo
	l.PixmapGetInfo(pm, &info)
	require.Zero(t, info.Width)
}

func TestImageDecodeRoundTrip(t *testing.T) {
	_, l := newTestLib(t)
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.SetNRGBA(1, 1, color.NRGBA{10, 20, 30, 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	b := buf.Bytes()

	d := l.DataNewWithCopy(unsafe.Pointer(&b[0]), uintptr(len(b)))
	defer l.DataUnref(d)
	img := l.ImageNewFromEncoded(d)
	require.NotZero(t, img)
	defer l.ImageUnref(img)

	require.EqualValues(t, 3, l.ImageGetWidth(img))
	require.EqualValues(t, 2, l.ImageGetHeight(img))
	require.NotZero(t, l.ImageGetUniqueID(img))

	bad := []byte("nope")
	bd := l.DataNewWithCopy(unsafe.Pointer(&bad[0]), uintptr(len(bad)))
	defer l.DataUnref(bd)
	require.Zero(t, l.ImageNewFromEncoded(bd))
}

func TestSnapshotIsIndependent(t *testing.T) {
	e, l := newTestLib(t)
	s, c := newTestSurface(t, l, 4, 4)
	l.CanvasClear(c, 0xFFFF0000)
	img := l.SurfaceNewImageSnapshot(s)
	defer l.ImageUnref(img)
	l.CanvasClear(c, 0xFF0000FF)

	pm := l.PixmapNew()
	defer l.PixmapDestructor(pm)
	require.True(t, l.ImagePeekPixels(img, pm))
	require.Equal(t, color.RGBA{255, 0, 0, 255}, get[*pixmapData](e.h, pm).pix.RGBAAt(0, 0))
}

func TestDrawImagePlacesPixels(t *testing.T) {
	e, l := newTestLib(t)
	s, c := newTestSurface(t, l, 10, 10)

	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	im := newImage(src)
	h := e.h.add(KindImage, im)
	defer l.ImageUnref(h)

	l.CanvasDrawImage(c, h, 4, 4, 0)
	require.Equal(t, color.RGBA{255, 255, 255, 255}, pixelAt(t, l, e, s, 5, 5))
	require.Equal(t, color.RGBA{}, pixelAt(t, l, e, s, 6, 6))

	dst := native.Rect{Left: 0, Top: 0, Right: 4, Bottom: 4}
	l.CanvasDrawImageRect(c, h, nil, &dst, 0)
	require.Equal(t, color.RGBA{255, 255, 255, 255}, pixelAt(t, l, e, s, 1, 1))
}

func TestJPEGBlendOnBlack(t *testing.T) {
	pix := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(pix.Pix); i += 4 {
		pix.Pix[i], pix.Pix[i+3] = 0x80, 0x80 // half transparent red
	}
	var buf bytes.Buffer
	require.True(t, encodeJPEG(&buf, pix, &native.JPEGEncoderOptions{Quality: 100, AlphaOption: native.JPEGAlphaBlendOnBlack}))
	img, _, err := image.Decode(&buf)
	require.NoError(t, err)
	r, _, _, _ := img.At(4, 4).RGBA()
	require.InDelta(t, 0x80, r>>8, 8)
}
