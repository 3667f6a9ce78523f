package softengine

import "github.com/gogpu/skia/internal/native"

// paintData is the draw style. Fields are exported so that recordings can
// serialize it.
type paintData struct {
	AA     bool
	Color  uint32
	Style  int32
	Width  float64
	Miter  float64
	Cap    int32
	Join   int32
	Blend  int32
	Shader *shaderData
	Blur   *blurData
}

func defaultPaint() *paintData {
	return &paintData{
		Color: 0xff000000,
		Miter: 4,
		Blend: int32(native.BlendModeSrcOver),
	}
}

func (p *paintData) clone() *paintData {
	cp := *p
	return &cp
}
