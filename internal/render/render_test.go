package render

import (
	"fmt"
	"image/color"
)

// fakeSurface is a deterministic headless surface: text measures as
// len(text)*size wide and size high, canvases record their draw calls.
type fakeSurface struct {
	canvases []*fakeCanvas
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{}
}

func (s *fakeSurface) NewCanvas(width, height int) (Canvas, error) {
	c := &fakeCanvas{width: width, height: height}
	s.canvases = append(s.canvases, c)
	return c, nil
}

func (s *fakeSurface) MeasureText(text string, font Font, size float64) TextMetrics {
	return TextMetrics{Width: len(text) * int(size), Height: int(size)}
}

// drawOp is one recorded canvas operation, flattened to a comparable string.
type drawOp struct {
	op   string
	x, y int
	w, h int
	text string
}

type fakeCanvas struct {
	width, height int
	ops           []drawOp
}

func (c *fakeCanvas) Fill(col color.Color) {
	c.ops = append(c.ops, drawOp{op: "fill", w: c.width, h: c.height})
}

func (c *fakeCanvas) FillRect(x, y, w, h int, col color.Color) {
	c.ops = append(c.ops, drawOp{op: "rect", x: x, y: y, w: w, h: h})
}

func (c *fakeCanvas) StrokeRect(x, y, w, h int, col color.Color) {
	c.ops = append(c.ops, drawOp{op: "stroke", x: x, y: y, w: w, h: h})
}

func (c *fakeCanvas) DrawText(text string, x, y int, font Font, size float64, col color.Color, centered bool) {
	c.ops = append(c.ops, drawOp{op: "text", x: x, y: y, text: text})
}

func (c *fakeCanvas) Compose(src Canvas, x, y int) {
	from := src.(*fakeCanvas)
	c.ops = append(c.ops, drawOp{op: "compose", x: x, y: y, w: from.width, h: from.height})
}

func (c *fakeCanvas) Encode(format Format) ([]byte, error) {
	return []byte(fmt.Sprintf("%s:%dx%d", format, c.width, c.height)), nil
}

// bars returns the recorded filled rectangles, the drawn bar modules.
func (c *fakeCanvas) bars() []drawOp {
	var out []drawOp
	for _, op := range c.ops {
		if op.op == "rect" {
			out = append(out, op)
		}
	}
	return out
}
