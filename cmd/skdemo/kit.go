package main

import (
	"errors"

	"github.com/gogpu/skia"
)

type releaser interface{ Release() }

// kit creates the engine objects of one scene and releases them together.
// Creation errors are collected in err; a failed constructor hands back
// nil, which draw calls then reject.
type kit struct {
	owned []releaser
	err   error
}

func (k *kit) keep(r releaser, err error) {
	if err != nil {
		k.check(err)
		return
	}
	k.owned = append(k.owned, r)
}

// check records err if it is not nil.
func (k *kit) check(err error) {
	if err != nil {
		k.err = errors.Join(k.err, err)
	}
}

// Err returns every error recorded so far. Call it after the objects of
// a draw statement were created.
func (k *kit) Err() error {
	return k.err
}

func (k *kit) release() {
	for i := len(k.owned) - 1; i >= 0; i-- {
		k.owned[i].Release()
	}
	k.owned = nil
}

func (k *kit) fill(c skia.Color) *skia.Paint {
	p, err := skia.NewFillPaint(c)
	if err != nil {
		k.keep(nil, err)
		return nil
	}
	k.keep(p, nil)
	return p
}

func (k *kit) stroke(c skia.Color, width float64) *skia.Paint {
	p, err := skia.NewStrokePaint(c, width)
	if err != nil {
		k.keep(nil, err)
		return nil
	}
	k.keep(p, nil)
	return p
}

func (k *kit) font(size float64) *skia.Font {
	f, err := skia.NewFont(nil, size)
	if err != nil {
		k.keep(nil, err)
		return nil
	}
	k.keep(f, nil)
	return f
}

func (k *kit) path() *skia.Path {
	p, err := skia.NewPath()
	if err != nil {
		k.keep(nil, err)
		return nil
	}
	k.keep(p, nil)
	return p
}

// shader keeps a shader built by one of the gradient constructors.
func (k *kit) shader(s *skia.Shader, err error) *skia.Shader {
	if err != nil {
		k.keep(nil, err)
		return nil
	}
	k.keep(s, nil)
	return s
}

// measure returns the advance of text, 0 when f is unusable.
func (k *kit) measure(f *skia.Font, text string) (float64, skia.Rect) {
	if f == nil {
		return 0, skia.Rect{}
	}
	w, b, err := f.MeasureText(text)
	k.check(err)
	return w, b
}
