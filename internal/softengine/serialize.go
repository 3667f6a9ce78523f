package softengine

import (
	"errors"
	"fmt"
	"image"

	"github.com/ugorji/go/codec"
)

// pictureMagic tags serialized pictures of this engine.
const pictureMagic = "softengine.picture/1"

var errBadPicture = errors.New("softengine: malformed picture data")

type imageFile struct {
	W, H int
	Pix  []byte
}

type faceFile struct {
	Name  string
	Data  []byte
	Index int
}

type fontFile struct {
	Face   int
	Size   float64
	ScaleX float64
	SkewX  float64
}

type pictureFile struct {
	Magic    string
	Cull     [4]float64
	Cmds     []command
	Paths    []*pathData
	Paints   []*paintData
	Images   []imageFile
	Faces    []faceFile
	Fonts    []fontFile
	Pictures []pictureFile
}

var msgpack codec.MsgpackHandle

func serializePicture(pic *pictureData) ([]byte, error) {
	var out []byte
	if err := codec.NewEncoderBytes(&out, &msgpack).Encode(toFile(pic)); err != nil {
		return nil, err
	}
	return out, nil
}

func toFile(pic *pictureData) pictureFile {
	pool := pic.Pool
	f := pictureFile{
		Magic:  pictureMagic,
		Cull:   [4]float64{pic.Cull.l, pic.Cull.t, pic.Cull.r, pic.Cull.b},
		Cmds:   pic.Cmds,
		Paths:  pool.paths,
		Paints: pool.paints,
	}
	for _, img := range pool.images {
		b := img.pix.Rect
		f.Images = append(f.Images, imageFile{W: b.Dx(), H: b.Dy(), Pix: img.pix.Pix})
	}
	faces := map[*typefaceData]int{}
	for _, fd := range pool.fonts {
		idx, ok := faces[fd.face]
		if !ok {
			idx = len(f.Faces)
			faces[fd.face] = idx
			f.Faces = append(f.Faces, faceFile{Name: fd.face.name, Data: fd.face.data, Index: fd.face.index})
		}
		f.Fonts = append(f.Fonts, fontFile{Face: idx, Size: fd.size, ScaleX: fd.scaleX, SkewX: fd.skewX})
	}
	for _, sub := range pool.pictures {
		f.Pictures = append(f.Pictures, toFile(sub))
	}
	return f
}

func deserializePicture(b []byte) (*pictureData, error) {
	var f pictureFile
	if err := codec.NewDecoderBytes(b, &msgpack).Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadPicture, err)
	}
	return fromFile(&f)
}

func fromFile(f *pictureFile) (*pictureData, error) {
	if f.Magic != pictureMagic {
		return nil, fmt.Errorf("%w: bad magic %q", errBadPicture, f.Magic)
	}
	pool := &resourcePool{}
	for _, p := range f.Paths {
		if p == nil || !p.valid() {
			return nil, fmt.Errorf("%w: bad path", errBadPicture)
		}
		p.fixup()
		pool.paths = append(pool.paths, p)
	}
	for _, p := range f.Paints {
		if p == nil {
			return nil, fmt.Errorf("%w: bad paint", errBadPicture)
		}
		pool.paints = append(pool.paints, p)
	}
	for _, img := range f.Images {
		if img.W <= 0 || img.H <= 0 || len(img.Pix) != img.W*img.H*4 {
			return nil, fmt.Errorf("%w: bad image", errBadPicture)
		}
		rgba := &image.RGBA{Pix: img.Pix, Stride: img.W * 4, Rect: image.Rect(0, 0, img.W, img.H)}
		pool.images = append(pool.images, newImage(rgba))
	}
	faces := make([]*typefaceData, len(f.Faces))
	for i, ff := range f.Faces {
		tf, err := loadTypeface(ff.Name, ff.Data, ff.Index)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errBadPicture, err)
		}
		faces[i] = tf
	}
	for _, ff := range f.Fonts {
		if ff.Face < 0 || ff.Face >= len(faces) {
			return nil, fmt.Errorf("%w: bad font", errBadPicture)
		}
		pool.fonts = append(pool.fonts, &fontData{face: faces[ff.Face], size: ff.Size, scaleX: ff.ScaleX, skewX: ff.SkewX})
	}
	for i := range f.Pictures {
		sub, err := fromFile(&f.Pictures[i])
		if err != nil {
			return nil, err
		}
		pool.pictures = append(pool.pictures, sub)
	}
	for _, cmd := range f.Cmds {
		if err := checkCommand(cmd, pool); err != nil {
			return nil, err
		}
	}
	cull := rect{f.Cull[0], f.Cull[1], f.Cull[2], f.Cull[3]}
	return newPicture(cull, &recording{cmds: f.Cmds, pool: pool}), nil
}

// floatsPerCommand is the operand count each command carries; -1 allows
// an optional operand list.
var floatsPerCommand = [numCommandTypes]int{
	cmdSaveLayer:     -1,
	cmdConcat:        9,
	cmdSetMatrix:     9,
	cmdClipRect:      4,
	cmdDrawRect:      4,
	cmdDrawRoundRect: 6,
	cmdDrawCircle:    3,
	cmdDrawOval:      4,
	cmdDrawLine:      4,
	cmdDrawPoint:     2,
	cmdDrawImageRect: 8,
	cmdDrawText:      2,
	cmdDrawPicture:   -1,
}

func checkCommand(cmd command, pool *resourcePool) error {
	if cmd.Op >= numCommandTypes {
		return fmt.Errorf("%w: unknown command %d", errBadPicture, cmd.Op)
	}
	if want := floatsPerCommand[cmd.Op]; want >= 0 && len(cmd.F) != want {
		return fmt.Errorf("%w: %s takes %d operands", errBadPicture, cmd.Op, want)
	}
	inRange := func(ref int32, n int, required bool) bool {
		if ref == 0 {
			return !required
		}
		return ref > 0 && int(ref) <= n
	}
	ok := inRange(cmd.Paint, len(pool.paints), false) &&
		inRange(cmd.Path, len(pool.paths), cmd.Op == cmdDrawPath || cmd.Op == cmdClipPath) &&
		inRange(cmd.Image, len(pool.images), cmd.Op == cmdDrawImageRect) &&
		inRange(cmd.Font, len(pool.fonts), cmd.Op == cmdDrawText) &&
		inRange(cmd.Picture, len(pool.pictures), cmd.Op == cmdDrawPicture)
	switch cmd.Op {
	case cmdDrawPaint, cmdDrawRect, cmdDrawRoundRect, cmdDrawCircle, cmdDrawOval,
		cmdDrawPath, cmdDrawLine, cmdDrawPoint, cmdDrawText:
		ok = ok && cmd.Paint != 0
	}
	if !ok {
		return fmt.Errorf("%w: %s has a dangling reference", errBadPicture, cmd.Op)
	}
	return nil
}
