package render

import (
	"testing"

	"go-barcode-engine/internal/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEncoding builds a small encoding: start and stop of two narrow modules
// each, one four-module data symbol. Eight narrow units total.
func testEncoding() *pattern.Encoding {
	return &pattern.Encoding{Symbols: []pattern.Symbol{
		pattern.NewSymbol("", pattern.ClassStart, 1, 1),
		pattern.NewSymbol("A", pattern.ClassData, 1, 1, 1, 1),
		pattern.NewSymbol("", pattern.ClassStop, 1, 1),
	}}
}

func baseOptions() Options {
	return Options{
		DPI:           96,
		XDimension:    2,
		BarHeight:     30,
		LabelPosition: LabelHidden,
		LabelFont:     FontRegular,
		EncodingFont:  FontMono,
		Format:        FormatPNG,
	}
}

func TestXDimensionForTargetWidth(t *testing.T) {
	assert.Equal(t, 1, XDimensionForTargetWidth(0, 10))
	assert.Equal(t, 1, XDimensionForTargetWidth(-5, 10))
	assert.Equal(t, 1, XDimensionForTargetWidth(100, 0))
	assert.Equal(t, 10, XDimensionForTargetWidth(100, 10))
	assert.Equal(t, 9, XDimensionForTargetWidth(99, 10))
	assert.Equal(t, 1, XDimensionForTargetWidth(10, 10))
	assert.Equal(t, 1, XDimensionForTargetWidth(5, 10), "never below 1 even when nothing fits")
}

func TestXDimensionForTargetWidthMonotonic(t *testing.T) {
	prev := 0
	for target := 1; target <= 500; target++ {
		x := XDimensionForTargetWidth(target, 37)
		assert.GreaterOrEqual(t, x, prev, "target %d", target)
		prev = x
	}
}

func TestQuietZoneWidth(t *testing.T) {
	// 20 narrow modules dominate at low DPI.
	assert.Equal(t, 20, QuietZoneWidth(2, 96))
	// A quarter inch dominates for narrow bars at print resolution.
	assert.Equal(t, 75, QuietZoneWidth(1, 600))
	assert.Equal(t, 100, QuietZoneWidth(10, 96))
}

func TestRenderValidation(t *testing.T) {
	e := NewEngine(newFakeSurface())
	enc := testEncoding()

	var cfgErr *ConfigurationError
	for name, mutate := range map[string]func(*Options){
		"dpi":        func(o *Options) { o.DPI = 0 },
		"xdimension": func(o *Options) { o.XDimension = 0 },
		"height":     func(o *Options) { o.BarHeight = 0 },
	} {
		opts := baseOptions()
		mutate(&opts)
		_, err := e.Render(enc, opts, false)
		assert.ErrorAs(t, err, &cfgErr, name)
	}

	_, err := e.Render(&pattern.Encoding{}, baseOptions(), false)
	assert.ErrorAs(t, err, &cfgErr, "empty encoding")
}

func TestRenderBarsOnly(t *testing.T) {
	s := newFakeSurface()
	e := NewEngine(s)

	result, err := e.Render(testEncoding(), baseOptions(), false)
	require.NoError(t, err)

	assert.Equal(t, 16, result.Width, "8 narrow units at x=2")
	assert.Equal(t, 30, result.Height)
	assert.Equal(t, 2, result.XDimension)
	assert.False(t, result.XDimensionOverridden)
	assert.Equal(t, 0, result.QuietZone)
	assert.Equal(t, []byte("png:16x30"), result.Data)

	// One bar canvas and the combined canvas.
	require.Len(t, s.canvases, 2)
	bars := s.canvases[0].bars()
	require.Len(t, bars, 4, "four bar modules")
	assert.Equal(t, drawOp{op: "rect", x: 0, y: 0, w: 2, h: 30}, bars[0])
	assert.Equal(t, drawOp{op: "rect", x: 4, y: 0, w: 2, h: 30}, bars[1])
}

func TestRenderVectors(t *testing.T) {
	vectors := Vectors(testEncoding(), 3)
	require.Len(t, vectors, 8)
	assert.Equal(t, Vector{Bar: true, Width: 3}, vectors[0])
	assert.Equal(t, Vector{Bar: false, Width: 3}, vectors[1])
}

func TestRenderQuietZone(t *testing.T) {
	s := newFakeSurface()
	e := NewEngine(s)
	opts := baseOptions()
	opts.QuietZone = true

	result, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	assert.Equal(t, 20, result.QuietZone)
	assert.Equal(t, 16+2*20, result.Width)

	// Bars composed centered, leaving the quiet zone on both sides.
	final := s.canvases[len(s.canvases)-1]
	var composed []drawOp
	for _, op := range final.ops {
		if op.op == "compose" {
			composed = append(composed, op)
		}
	}
	require.Len(t, composed, 1)
	assert.Equal(t, 20, composed[0].x)
}

func TestRenderTargetWidthGrowsXDimension(t *testing.T) {
	e := NewEngine(newFakeSurface())
	opts := baseOptions()
	opts.XDimension = 1
	opts.TargetWidth = 100

	result, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	assert.Equal(t, 12, result.XDimension, "largest x with 8x <= 100")
	assert.True(t, result.XDimensionOverridden)
	assert.Equal(t, 96, result.Width)
}

func TestRenderTargetWidthNeverShrinks(t *testing.T) {
	e := NewEngine(newFakeSurface())
	opts := baseOptions()
	opts.XDimension = 5
	opts.TargetWidth = 20 // would fit only x=2

	result, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	assert.Equal(t, 5, result.XDimension)
	assert.False(t, result.XDimensionOverridden)
}

func TestRenderClampsToPixelCeiling(t *testing.T) {
	e := NewEngine(newFakeSurface())
	opts := baseOptions()
	opts.XDimension = 2000

	result, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	assert.Equal(t, 1500, result.XDimension, "8 units clamp to 12000 pixels")
	assert.True(t, result.XDimensionOverridden)
	assert.LessOrEqual(t, result.Width, maxPixelWidth)
}

func TestRenderLabelBelow(t *testing.T) {
	s := newFakeSurface()
	e := NewEngine(s)
	opts := baseOptions()
	opts.LabelPosition = LabelBelow
	opts.LabelText = "A"

	result, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	// The fake fits "A" to the 16-pixel bar width at size 15.
	assert.Equal(t, 15, result.LabelFontSize)
	assert.False(t, result.LabelFontAdjusted)
	assert.Equal(t, 30+17, result.Height)

	final := s.canvases[len(s.canvases)-1]
	var composed []drawOp
	for _, op := range final.ops {
		if op.op == "compose" {
			composed = append(composed, op)
		}
	}
	require.Len(t, composed, 2)
	assert.Equal(t, 0, composed[0].y, "bars on top")
	assert.Equal(t, 30, composed[1].y, "label below the bars")
}

func TestRenderLabelAbove(t *testing.T) {
	s := newFakeSurface()
	e := NewEngine(s)
	opts := baseOptions()
	opts.LabelPosition = LabelAbove
	opts.LabelText = "A"

	_, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	final := s.canvases[len(s.canvases)-1]
	var composed []drawOp
	for _, op := range final.ops {
		if op.op == "compose" {
			composed = append(composed, op)
		}
	}
	require.Len(t, composed, 2)
	assert.Equal(t, 17, composed[0].y, "bars pushed down by the label")
	assert.Equal(t, 0, composed[1].y, "label at the top")
}

func TestRenderLabelEmbedded(t *testing.T) {
	s := newFakeSurface()
	e := NewEngine(s)
	opts := baseOptions()
	opts.LabelPosition = LabelEmbedded
	opts.LabelText = "A"

	result, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	// The label's top half overlaps the bars, shrinking the total height.
	assert.Equal(t, 30+17-17/2, result.Height)

	final := s.canvases[len(s.canvases)-1]
	var composed []drawOp
	for _, op := range final.ops {
		if op.op == "compose" {
			composed = append(composed, op)
		}
	}
	require.Len(t, composed, 2)
	assert.Equal(t, 30-17/2, composed[1].y)
}

func TestRenderLabelRequestedSizeClamped(t *testing.T) {
	e := NewEngine(newFakeSurface())
	opts := baseOptions()
	opts.LabelPosition = LabelBelow
	opts.LabelText = "A"
	opts.LabelFontSize = 99

	result, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	assert.Equal(t, 15, result.LabelFontSize)
	assert.True(t, result.LabelFontAdjusted)
}

func TestRenderEANFamilyForcesQuietZoneAndAlignment(t *testing.T) {
	s := newFakeSurface()
	e := NewEngine(s)
	opts := baseOptions()
	opts.QuietZone = false
	opts.LabelPosition = LabelBelow
	opts.LabelText = "12345"

	enc := testEncoding()
	enc.Prefix = "9"
	result, err := e.Render(enc, opts, true)
	require.NoError(t, err)

	assert.Greater(t, result.QuietZone, 0, "retail symbologies always get a quiet zone")

	// Symbol-aligned labels draw per-symbol characters plus the prefix in
	// the quiet zone, not one centered block.
	var texts []string
	for _, c := range s.canvases {
		for _, op := range c.ops {
			if op.op == "text" {
				texts = append(texts, op.text)
			}
		}
	}
	assert.Contains(t, texts, "A", "data symbol character")
	assert.Contains(t, texts, "9", "prefix in the quiet zone")
	assert.NotContains(t, texts, "12345", "no single centered block")
}

func TestRenderEncodingStrip(t *testing.T) {
	s := newFakeSurface()
	e := NewEngine(s)
	opts := baseOptions()
	opts.ShowEncoding = true
	opts.EncodingFontSize = 10

	result, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	assert.Equal(t, 30+14, result.Height, "bars plus strip")

	// The strip canvas boxes all three symbols and draws the data char.
	strip := s.canvases[1]
	var strokes, texts int
	for _, op := range strip.ops {
		switch op.op {
		case "stroke":
			strokes++
		case "text":
			texts++
		}
	}
	assert.Equal(t, 3, strokes)
	assert.Equal(t, 1, texts, "only the data symbol has a character")
}
