package softengine

import (
	"sync/atomic"

	"github.com/gogpu/skia/internal/native"
)

// commandType identifies a recorded canvas call.
type commandType uint8

const (
	cmdSave commandType = iota
	cmdSaveLayer
	cmdRestore
	cmdConcat
	cmdSetMatrix
	cmdClipRect
	cmdClipPath
	cmdDrawPaint
	cmdClear
	cmdDrawColor
	cmdDrawRect
	cmdDrawRoundRect
	cmdDrawCircle
	cmdDrawOval
	cmdDrawPath
	cmdDrawLine
	cmdDrawPoint
	cmdDrawImageRect
	cmdDrawText
	cmdDrawPicture

	numCommandTypes
)

var commandTypeNames = [...]string{
	cmdSave:          "Save",
	cmdSaveLayer:     "SaveLayer",
	cmdRestore:       "Restore",
	cmdConcat:        "Concat",
	cmdSetMatrix:     "SetMatrix",
	cmdClipRect:      "ClipRect",
	cmdClipPath:      "ClipPath",
	cmdDrawPaint:     "DrawPaint",
	cmdClear:         "Clear",
	cmdDrawColor:     "DrawColor",
	cmdDrawRect:      "DrawRect",
	cmdDrawRoundRect: "DrawRoundRect",
	cmdDrawCircle:    "DrawCircle",
	cmdDrawOval:      "DrawOval",
	cmdDrawPath:      "DrawPath",
	cmdDrawLine:      "DrawLine",
	cmdDrawPoint:     "DrawPoint",
	cmdDrawImageRect: "DrawImageRect",
	cmdDrawText:      "DrawText",
	cmdDrawPicture:   "DrawPicture",
}

func (c commandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// command is one recorded call. Resource references index the pool and
// are one-based so that zero means none.
type command struct {
	Op      commandType
	F       []float64 `codec:",omitempty"`
	Path    int32     `codec:",omitempty"`
	Paint   int32     `codec:",omitempty"`
	Image   int32     `codec:",omitempty"`
	Font    int32     `codec:",omitempty"`
	Picture int32     `codec:",omitempty"`
	Text    []byte    `codec:",omitempty"`
	Mode    int32     `codec:",omitempty"`
	Flag    bool      `codec:",omitempty"`
	Color   uint32    `codec:",omitempty"`
}

// resourcePool holds snapshots of the objects a recording references.
// Mutable objects are copied when recorded; immutable ones are shared.
type resourcePool struct {
	paths    []*pathData
	paints   []*paintData
	images   []*imageData
	fonts    []*fontData
	pictures []*pictureData
}

func (p *resourcePool) addPath(v *pathData) int32 {
	p.paths = append(p.paths, v.clone())
	return int32(len(p.paths))
}

func (p *resourcePool) addPaint(v *paintData) int32 {
	if v == nil {
		return 0
	}
	p.paints = append(p.paints, v.clone())
	return int32(len(p.paints))
}

func (p *resourcePool) addImage(v *imageData) int32 {
	for i, img := range p.images {
		if img == v {
			return int32(i + 1)
		}
	}
	p.images = append(p.images, v)
	return int32(len(p.images))
}

func (p *resourcePool) addFont(v *fontData) int32 {
	p.fonts = append(p.fonts, v.clone())
	return int32(len(p.fonts))
}

func (p *resourcePool) addPicture(v *pictureData) int32 {
	p.pictures = append(p.pictures, v)
	return int32(len(p.pictures))
}

func (p *resourcePool) path(ref int32) *pathData       { return p.paths[ref-1] }
func (p *resourcePool) image(ref int32) *imageData     { return p.images[ref-1] }
func (p *resourcePool) font(ref int32) *fontData       { return p.fonts[ref-1] }
func (p *resourcePool) picture(ref int32) *pictureData { return p.pictures[ref-1] }

func (p *resourcePool) paint(ref int32) *paintData {
	if ref == 0 {
		return nil
	}
	return p.paints[ref-1]
}

// recording collects commands while a recorder is active.
type recording struct {
	cmds []command
	pool *resourcePool
}

func (r *recording) add(cmd command) {
	r.cmds = append(r.cmds, cmd)
}

// recorderData is the state behind a picture recorder handle.
type recorderData struct {
	canvas  *canvas
	canvasH native.Handle
	cull    rect
}

var pictureIDs atomic.Uint32

// pictureData is an immutable recorded command list.
type pictureData struct {
	id   uint32
	Cull rect
	Cmds []command
	Pool *resourcePool
}

func newPicture(cull rect, rec *recording) *pictureData {
	return &pictureData{id: pictureIDs.Add(1), Cull: cull, Cmds: rec.cmds, Pool: rec.pool}
}

// opCount is the number of recorded commands, including those of nested
// pictures when nested is set.
func (pic *pictureData) opCount(nested bool) int {
	n := len(pic.Cmds)
	if !nested {
		return n
	}
	for _, cmd := range pic.Cmds {
		if cmd.Op == cmdDrawPicture {
			n += pic.Pool.picture(cmd.Picture).opCount(true)
		}
	}
	return n
}

// bytesUsed estimates the memory held by the picture.
func (pic *pictureData) bytesUsed() int {
	const cmdSize = 96
	n := 64 + len(pic.Cmds)*cmdSize
	for _, cmd := range pic.Cmds {
		n += len(cmd.F)*8 + len(cmd.Text)
	}
	for _, p := range pic.Pool.paths {
		n += len(p.Verbs) + 4*len(p.Points) + 4*len(p.Weights)
	}
	n += len(pic.Pool.paints) * 96
	for _, img := range pic.Pool.images {
		n += len(img.pix.Pix)
	}
	n += len(pic.Pool.fonts) * 48
	for _, sub := range pic.Pool.pictures {
		n += sub.bytesUsed()
	}
	return n
}

func matOf(f []float64) mat3 {
	var m mat3
	copy(m[:], f)
	return m
}

func rectOf(f []float64) rect {
	return rect{f[0], f[1], f[2], f[3]}
}

// playback replays the picture onto c. Matrices set by the picture are
// relative to the matrix of c at the start, and the save stack of c is
// left as it was.
func (pic *pictureData) playback(c *canvas) {
	base := c.top().m
	n := c.save()
	for _, cmd := range pic.Cmds {
		pic.exec(c, cmd, base)
	}
	c.restoreToCount(n)
}

func (pic *pictureData) exec(c *canvas, cmd command, base mat3) {
	pool := pic.Pool
	switch cmd.Op {
	case cmdSave:
		c.save()
	case cmdSaveLayer:
		var b *rect
		if len(cmd.F) == 4 {
			r := rectOf(cmd.F)
			b = &r
		}
		c.saveLayer(b, pool.paint(cmd.Paint))
	case cmdRestore:
		c.restore()
	case cmdConcat:
		c.concat(matOf(cmd.F))
	case cmdSetMatrix:
		c.setMatrix(base.mul(matOf(cmd.F)))
	case cmdClipRect:
		c.clipRect(rectOf(cmd.F), native.ClipOp(cmd.Mode), cmd.Flag)
	case cmdClipPath:
		c.clipPath(pool.path(cmd.Path), native.ClipOp(cmd.Mode), cmd.Flag)
	case cmdDrawPaint:
		c.drawPaint(pool.paint(cmd.Paint))
	case cmdClear:
		c.clear(cmd.Color)
	case cmdDrawColor:
		c.drawColor(cmd.Color, native.BlendMode(cmd.Mode))
	case cmdDrawRect:
		c.drawRect(rectOf(cmd.F), pool.paint(cmd.Paint))
	case cmdDrawRoundRect:
		c.drawRoundRect(rectOf(cmd.F), cmd.F[4], cmd.F[5], pool.paint(cmd.Paint))
	case cmdDrawCircle:
		c.drawCircle(cmd.F[0], cmd.F[1], cmd.F[2], pool.paint(cmd.Paint))
	case cmdDrawOval:
		c.drawOval(rectOf(cmd.F), pool.paint(cmd.Paint))
	case cmdDrawPath:
		c.drawPath(pool.path(cmd.Path), pool.paint(cmd.Paint))
	case cmdDrawLine:
		c.drawLine(cmd.F[0], cmd.F[1], cmd.F[2], cmd.F[3], pool.paint(cmd.Paint))
	case cmdDrawPoint:
		c.drawPoint(cmd.F[0], cmd.F[1], pool.paint(cmd.Paint))
	case cmdDrawImageRect:
		c.drawImageRect(pool.image(cmd.Image), rectOf(cmd.F[:4]), rectOf(cmd.F[4:]), pool.paint(cmd.Paint))
	case cmdDrawText:
		c.drawText(cmd.Text, native.TextEncoding(cmd.Mode), cmd.F[0], cmd.F[1], pool.font(cmd.Font), pool.paint(cmd.Paint))
	case cmdDrawPicture:
		var m *mat3
		if len(cmd.F) == 9 {
			mm := matOf(cmd.F)
			m = &mm
		}
		c.drawPicture(pool.picture(cmd.Picture), m, pool.paint(cmd.Paint))
	}
}
