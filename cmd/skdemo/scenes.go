package main

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/skia"
)

type renderFunc func(j Job, path string) ([]string, error)

type scene struct {
	ext           string
	width, height int
	render        renderFunc
}

var scenes = map[string]scene{
	"basic":      {".png", 640, 480, raster(drawBasic)},
	"gradient":   {".png", 400, 400, raster(drawGradient)},
	"barchart":   {".png", 600, 400, raster(drawBarChart)},
	"gauge":      {".png", 800, 500, raster(drawDashboard)},
	"text":       {".png", 640, 480, raster(drawText)},
	"avatar":     {".png", 128, 128, raster(drawAvatar)},
	"socialcard": {".png", 1200, 630, raster(drawSocialCard)},
	"transform":  {".png", 800, 300, raster(drawTransforms)},
	"picture":    {".png", 640, 480, renderPicture},
	"pdf":        {".pdf", 612, 792, renderPDF},
}

func sceneNames() []string {
	return slices.Sorted(maps.Keys(scenes))
}

func encodeOptions(j Job) []skia.EncodeOption {
	if j.Quality > 0 {
		return []skia.EncodeOption{skia.WithQuality(j.Quality)}
	}
	return nil
}

// raster renders draw onto a fresh surface and saves it in the format
// named by the output extension.
func raster(draw func(c *skia.Canvas, k *kit, j Job) error) renderFunc {
	return func(j Job, path string) ([]string, error) {
		s, err := skia.NewSurface(j.Width, j.Height)
		if err != nil {
			return nil, err
		}
		defer s.Release()

		k := &kit{}
		defer k.release()
		if err := s.Draw(func(c *skia.Canvas) error { return draw(c, k, j) }); err != nil {
			return nil, err
		}
		if err := s.Save(path, encodeOptions(j)...); err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
}

func drawBasic(c *skia.Canvas, k *kit, _ Job) error {
	tri := k.path()
	if tri != nil {
		tri.MoveTo(100, 300).LineTo(200, 400).LineTo(50, 400).Close()
	}
	return errors.Join(
		c.Clear(skia.White),
		c.DrawRect(skia.RectFromXYWH(50, 50, 150, 100), k.fill(skia.Red)),
		c.DrawCircle(400, 200, 80, k.fill(skia.Blue)),
		c.DrawOval(skia.RectFromXYWH(200, 300, 200, 100), k.stroke(skia.Green, 3)),
		c.DrawPath(tri, k.fill(skia.RGB(255, 165, 0))),
		c.DrawLine(500, 50, 600, 150, k.stroke(skia.Magenta, 2)),
		k.Err(),
	)
}

func drawGradient(c *skia.Canvas, k *kit, j Job) error {
	w, h := float64(j.Width), float64(j.Height)
	linear := k.shader(skia.NewLinearGradient(skia.Pt(0, 0), skia.Pt(w, 0),
		[]skia.Color{skia.Red, skia.Yellow, skia.Blue}))
	radial := k.shader(skia.NewRadialGradient(skia.Pt(w/2, h*3/4), h/4,
		[]skia.Color{skia.White, skia.Blue}))

	top, disc := k.fill(skia.Black), k.fill(skia.Black)
	if top != nil && disc != nil {
		top.SetShader(linear)
		disc.SetShader(radial)
		k.check(errors.Join(top.Err(), disc.Err()))
	}
	return errors.Join(
		c.Clear(skia.White),
		c.DrawRect(skia.RectFromWH(w, h/2), top),
		c.DrawCircle(w/2, h*3/4, h/4, disc),
		k.Err(),
	)
}

type barDatum struct {
	name  string
	value float64
}

func drawBarChart(c *skia.Canvas, k *kit, j Job) error {
	data := []barDatum{{"Maguro", 92}, {"Salmon", 88}, {"Ebi", 75}, {"Tamago", 68}, {"Ika", 45}}
	colors := []skia.Color{
		skia.RGB(220, 53, 69), skia.RGB(255, 127, 80), skia.RGB(255, 182, 193),
		skia.RGB(255, 215, 0), skia.RGB(230, 230, 250),
	}
	const (
		top, right, bottom, left = 40.0, 30.0, 60.0, 80.0
		maxValue                 = 100.0
	)
	w, h := float64(j.Width), float64(j.Height)
	chartW, chartH := w-left-right, h-top-bottom

	title := j.Title
	if title == "" {
		title = "Sushi Popularity Ranking"
	}
	titleFont, axisFont := k.font(20), k.font(12)
	black, grid, outline := k.fill(skia.Black), k.stroke(skia.RGB(200, 200, 200), 1), k.stroke(skia.RGB(100, 100, 100), 1)

	errs := []error{c.Clear(skia.White), c.DrawText(title, 180, 28, titleFont, black)}
	for i := range 5 {
		v := float64(i) * 25
		y := top + chartH - v/maxValue*chartH
		errs = append(errs,
			c.DrawLine(left, y, w-right, y, grid),
			c.DrawText(fmt.Sprint(v), left-35, y+4, axisFont, black))
	}

	spacing := chartW / float64(len(data))
	barW := spacing * 0.7
	for i, d := range data {
		x := left + float64(i)*spacing + (spacing-barW)/2
		barH := d.value / maxValue * chartH
		y := top + chartH - barH
		bar := skia.RectFromXYWH(x, y, barW, barH)

		nameW, _ := k.measure(axisFont, d.name)
		label := fmt.Sprintf("%g%%", d.value)
		labelW, _ := k.measure(axisFont, label)
		errs = append(errs,
			c.DrawRect(bar, k.fill(colors[i%len(colors)])),
			c.DrawRect(bar, outline),
			c.DrawText(d.name, x+(barW-nameW)/2, h-bottom+20, axisFont, black),
			c.DrawText(label, x+(barW-labelW)/2, y-8, axisFont, black))
	}
	return errors.Join(append(errs, k.Err())...)
}

func drawDashboard(c *skia.Canvas, k *kit, j Job) error {
	w := float64(j.Width)
	errs := []error{
		c.Clear(skia.RGB(245, 247, 250)),
		c.DrawText("System Dashboard", 30, 45, k.font(28), k.fill(skia.RGB(50, 50, 50))),
	}
	gauges := []struct {
		progress float64
		label    string
		color    skia.Color
	}{
		{78, "CPU Usage", skia.RGB(59, 130, 246)},
		{45, "Memory", skia.RGB(16, 185, 129)},
		{92, "Disk", skia.RGB(245, 158, 11)},
		{23, "Network", skia.RGB(139, 92, 246)},
	}
	for i, g := range gauges {
		errs = append(errs, drawCircularProgress(c, k, 130+float64(i)*180, 180, 70, g.progress, g.label, g.color))
	}
	tasks := []struct {
		label    string
		progress float64
		color    skia.Color
	}{
		{"Project Alpha", 85, skia.RGB(59, 130, 246)},
		{"Project Beta", 60, skia.RGB(16, 185, 129)},
		{"Project Gamma", 35, skia.RGB(245, 158, 11)},
	}
	for i, t := range tasks {
		errs = append(errs, drawLinearProgress(c, k, 50, 320+float64(i)*55, w-100, 16, t.progress, t.label, t.color))
	}
	return errors.Join(append(errs, k.Err())...)
}

func drawCircularProgress(c *skia.Canvas, k *kit, cx, cy, r, progress float64, label string, col skia.Color) error {
	track := k.stroke(skia.RGB(230, 230, 230), 12)
	arcPaint := k.stroke(col, 12)
	if arcPaint != nil {
		arcPaint.SetStrokeCap(skia.CapRound)
	}
	arc := k.path()
	if arc != nil {
		arc.ArcToOval(skia.RectFromXYWH(cx-r, cy-r, 2*r, 2*r), -90, progress*360/100, true)
	}

	valueFont, labelFont := k.font(r*0.5), k.font(r*0.25)
	value := fmt.Sprintf("%d%%", int(progress))
	valueW, _ := k.measure(valueFont, value)
	labelW, _ := k.measure(labelFont, label)
	return errors.Join(
		c.DrawCircle(cx, cy, r, track),
		c.DrawPath(arc, arcPaint),
		c.DrawText(value, cx-valueW/2, cy+r*0.15, valueFont, k.fill(skia.RGB(50, 50, 50))),
		c.DrawText(label, cx-labelW/2, cy+r+25, labelFont, k.fill(skia.RGB(120, 120, 120))),
	)
}

func drawLinearProgress(c *skia.Canvas, k *kit, x, y, w, h, progress float64, label string, col skia.Color) error {
	font, text := k.font(14), k.fill(skia.RGB(80, 80, 80))
	percent := fmt.Sprintf("%d%%", int(progress))
	percentW, _ := k.measure(font, percent)
	errs := []error{
		c.DrawText(label, x, y-10, font, text),
		c.DrawText(percent, x+w-percentW, y-10, font, text),
		c.DrawRoundRect(skia.RectFromXYWH(x, y, w, h), h/2, h/2, k.fill(skia.RGB(230, 230, 230))),
	}
	if filled := w * progress / 100; filled > h {
		errs = append(errs, c.DrawRoundRect(skia.RectFromXYWH(x, y, filled, h), h/2, h/2, k.fill(col)))
	}
	return errors.Join(errs...)
}

func drawText(c *skia.Canvas, k *kit, _ Job) error {
	big, small := k.font(48), k.font(24)
	width, bounds := k.measure(big, "Measured Text")
	return errors.Join(
		c.Clear(skia.White),
		c.DrawText("Hello, Skia!", 50, 100, big, k.fill(skia.Black)),
		c.DrawText("Red Text", 50, 180, big, k.fill(skia.Red)),
		c.DrawText("Blue Text", 50, 260, big, k.fill(skia.Blue)),
		c.DrawText("Smaller green text", 50, 320, small, k.fill(skia.Green)),
		c.DrawRect(skia.RectFromXYWH(50, 380+bounds.Top, width, bounds.Height()), k.fill(skia.ARGB(100, 255, 200, 0))),
		c.DrawText("Measured Text", 50, 380, big, k.fill(skia.Black)),
		k.Err(),
	)
}

// initials returns the first letters of the first two words of name.
func initials(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		r := []rune(w)
		b.WriteString(strings.ToUpper(string(r[0])))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}

// avatarColor derives a stable background hue from name.
func avatarColor(name string) skia.Color {
	var sum int
	for _, r := range name {
		sum += int(r)
	}
	return skia.ColorFromHSV(float64(sum%360), 0.75, 0.8)
}

func drawAvatar(c *skia.Canvas, k *kit, j Job) error {
	name := j.Name
	if name == "" {
		name = "Go Gopher"
	}
	size := float64(min(j.Width, j.Height))
	font := k.font(size * 0.4)
	text := initials(name)
	textW, _ := k.measure(font, text)

	var baseline float64
	if font != nil {
		m, err := font.Metrics()
		k.check(err)
		baseline = size/2 - (m.Ascent+m.Descent)/2
	}
	return errors.Join(
		c.Clear(skia.Transparent),
		c.DrawCircle(size/2, size/2, size/2, k.fill(avatarColor(name))),
		c.DrawText(text, (size-textW)/2, baseline, font, k.fill(skia.White)),
		k.Err(),
	)
}

// wrapWords breaks text into lines of at most limit characters, never
// splitting a word.
func wrapWords(text string, limit int) []string {
	var lines []string
	var cur string
	for _, w := range strings.Fields(text) {
		next := w
		if cur != "" {
			next = cur + " " + w
		}
		if len(next) > limit && cur != "" {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur = next
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func drawSocialCard(c *skia.Canvas, k *kit, j Job) error {
	w, h := float64(j.Width), float64(j.Height)
	title := j.Title
	if title == "" {
		title = "Building Go Bindings for the Skia Graphics Library"
	}

	bg := k.fill(skia.Black)
	if bg != nil {
		bg.SetShader(k.shader(skia.NewLinearGradient(skia.Pt(0, 0), skia.Pt(w, h),
			[]skia.Color{skia.RGB(102, 126, 234), skia.RGB(118, 75, 162)})))
		k.check(bg.Err())
	}
	bubble := k.fill(skia.ARGB(30, 255, 255, 255))
	errs := []error{
		c.DrawRect(skia.RectFromWH(w, h), bg),
		c.DrawCircle(100, 100, 200, bubble),
		c.DrawCircle(w-100, h-130, 250, bubble),
		c.DrawCircle(w-300, 50, 100, bubble),
		c.DrawRoundRect(skia.RectFromXYWH(60, 60, w-120, h-120), 20, 20, k.fill(skia.White)),
	}

	titleFont, titlePaint := k.font(52), k.fill(skia.RGB(30, 30, 30))
	for i, line := range wrapWords(title, 28) {
		errs = append(errs, c.DrawText(line, 100, 160+float64(i)*70, titleFont, titlePaint))
	}

	tagFont, tagBg, tagText := k.font(24), k.fill(skia.RGB(102, 126, 234)), k.fill(skia.White)
	x := 100.0
	for _, tag := range j.Tags {
		label := "#" + tag
		tw, _ := k.measure(tagFont, label)
		errs = append(errs,
			c.DrawRoundRect(skia.RectFromXYWH(x-10, h-205, tw+20, 35), 17, 17, tagBg),
			c.DrawText(label, x, h-180, tagFont, tagText))
		x += tw + 30
	}
	if j.Author != "" {
		errs = append(errs, c.DrawText(j.Author, 100, h-100, k.font(28), k.fill(skia.RGB(100, 100, 100))))
	}
	if j.Site != "" {
		siteFont := k.font(24)
		sw, _ := k.measure(siteFont, j.Site)
		errs = append(errs, c.DrawText(j.Site, w-100-sw, h-100, siteFont, k.fill(skia.RGB(150, 150, 150))))
	}
	return errors.Join(append(errs, k.Err())...)
}

func drawTransforms(c *skia.Canvas, k *kit, j Job) error {
	errs := []error{c.Clear(skia.RGB(25, 40, 70))}
	for i := range 8 {
		paint := k.fill(skia.ColorFromHSV(float64(i)*45, 0.6, 0.9))
		errs = append(errs, c.WithSave(func(c *skia.Canvas) error {
			return errors.Join(
				c.Translate(150, 150),
				c.Rotate(float64(i)*45),
				c.DrawRect(skia.RectFromXYWH(-30, -30, 60, 60), paint),
			)
		}))
	}

	wave := k.path()
	if wave != nil {
		wave.MoveTo(0, 0).CubicTo(50, -50, 100, 50, 150, 0).CubicTo(200, -30, 250, 30, 300, 0)
	}
	star := k.path()
	if star != nil {
		const points, outer, inner = 5, 60.0, 30.0
		for i := range points * 2 {
			r := outer
			if i%2 == 1 {
				r = inner
			}
			a := float64(i)*math.Pi/points - math.Pi/2
			if i == 0 {
				star.MoveTo(r*math.Cos(a), r*math.Sin(a))
			} else {
				star.LineTo(r*math.Cos(a), r*math.Sin(a))
			}
		}
		star.Close()
	}
	wavePaint := k.stroke(skia.RGB(255, 128, 0), 6)
	errs = append(errs, c.WithSave(func(c *skia.Canvas) error {
		return errors.Join(
			c.Translate(300, 150),
			c.DrawPath(wave, wavePaint),
			c.Translate(400, 0),
			c.DrawPath(star, k.fill(skia.Yellow)),
		)
	}))
	return errors.Join(append(errs, k.Err())...)
}

// renderPicture records a scene once, round-trips it through its
// serialized form and plays it back four times with different transforms.
// The serialized picture is written next to the image.
func renderPicture(j Job, path string) ([]string, error) {
	k := &kit{}
	defer k.release()
	red, ring := k.fill(skia.Red), k.stroke(skia.Blue, 5)
	if err := k.Err(); err != nil {
		return nil, err
	}

	pic, err := skia.RecordPicture(skia.RectFromWH(200, 200), func(c *skia.Canvas) error {
		return errors.Join(c.DrawCircle(100, 100, 80, red), c.DrawCircle(100, 100, 80, ring))
	})
	if err != nil {
		return nil, err
	}
	defer pic.Release()

	skp := strings.TrimSuffix(path, filepath.Ext(path)) + ".skp"
	if err := pic.Save(skp); err != nil {
		return nil, err
	}
	loaded, err := skia.LoadPicture(skp)
	if err != nil {
		return nil, err
	}
	defer loaded.Release()

	s, err := skia.NewSurface(j.Width, j.Height)
	if err != nil {
		return nil, err
	}
	defer s.Release()

	placements := []func(c *skia.Canvas) error{
		func(c *skia.Canvas) error { return c.Translate(50, 50) },
		func(c *skia.Canvas) error { return errors.Join(c.Translate(300, 50), c.Scale(0.5, 0.5)) },
		func(c *skia.Canvas) error { return errors.Join(c.Translate(50, 280), c.Scale(1.5, 1.5)) },
		func(c *skia.Canvas) error { return errors.Join(c.Translate(400, 280), c.RotateAround(45, 100, 100)) },
	}
	err = s.Draw(func(c *skia.Canvas) error {
		if err := c.Clear(skia.White); err != nil {
			return err
		}
		for _, place := range placements {
			if err := c.WithSave(func(c *skia.Canvas) error {
				if err := place(c); err != nil {
					return err
				}
				return loaded.Playback(c)
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.Save(path, encodeOptions(j)...); err != nil {
		return nil, err
	}
	return []string{skp, path}, nil
}

func renderPDF(j Job, path string) ([]string, error) {
	k := &kit{}
	defer k.release()
	w, h := float64(j.Width), float64(j.Height)

	err := skia.WritePDF(path, func(doc *skia.Document) error {
		err := doc.WithPage(w, h, func(c *skia.Canvas) error {
			return errors.Join(
				c.Clear(skia.White),
				c.DrawText("Hello, PDF!", 50, 100, k.font(36), k.fill(skia.Black)),
				c.DrawRect(skia.RectFromXYWH(50, 150, 200, 100), k.fill(skia.Red)),
				c.DrawCircle(400, 300, 80, k.fill(skia.Blue)),
				k.Err(),
			)
		})
		if err != nil {
			return err
		}
		return doc.WithPage(w, h, func(c *skia.Canvas) error {
			tri := k.path()
			if tri != nil {
				tri.MoveTo(100, 200).LineTo(200, 400).LineTo(50, 400).Close()
			}
			return errors.Join(
				c.Clear(skia.White),
				c.DrawText("Page 2", 50, 100, k.font(24), k.fill(skia.Black)),
				c.DrawPath(tri, k.fill(skia.Green)),
				k.Err(),
			)
		})
	})
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}
