package render

import (
	"fmt"
	"image/color"

	"go-barcode-engine/internal/pattern"
)

// LabelPosition places the human-readable text relative to the bars.
type LabelPosition int

const (
	LabelBelow LabelPosition = iota
	LabelAbove
	LabelEmbedded
	LabelHidden
)

// maxPixelWidth is the hard ceiling on rendered barcode width:
// 20 inches at 600 DPI.
const maxPixelWidth = 12000

// Options carries the rendering configuration for one layout pass.
type Options struct {
	DPI         int
	XDimension  int // pixels per narrow-bar unit
	TargetWidth int // desired pixel width; 0 disables the fit search
	QuietZone   bool
	BarHeight   int

	LabelPosition LabelPosition
	LabelText     string
	LabelFont     Font
	LabelFontSize int // requested point size; 0 fits automatically
	SymbolAligned bool

	ShowEncoding     bool
	EncodingFont     Font
	EncodingFontSize int

	Format Format
}

// Vector is one module of the rendered barcode in pixel units.
type Vector struct {
	Bar   bool `json:"bar"`
	Width int  `json:"width"`
}

// Result is a finished layout pass: encoded image bytes plus the derived
// read-only data callers may want without decoding the image.
type Result struct {
	Data   []byte
	Width  int
	Height int

	XDimension           int
	XDimensionOverridden bool
	QuietZone            int

	LabelFontSize     int
	LabelFontAdjusted bool

	Vectors []Vector
}

// XDimensionForTargetWidth returns the largest x-dimension such that
// minimumWidth*x still fits into targetWidth, and 1 when no search is
// possible. The result is monotonic non-decreasing in targetWidth.
func XDimensionForTargetWidth(targetWidth, minimumWidth int) int {
	if targetWidth <= 0 || minimumWidth <= 0 {
		return 1
	}
	x := 1
	for minimumWidth*(x+1) <= targetWidth {
		x++
	}
	return x
}

// QuietZoneWidth returns the quiet-zone width in pixels for one side of the
// barcode.
func QuietZoneWidth(xDimension, dpi int) int {
	w := 20 * xDimension
	if dpi/4 > w {
		w = dpi / 4
	}
	return w / 2
}

// Engine lays out barcodes on an injected drawing surface.
type Engine struct {
	surface Surface
}

// NewEngine creates a layout engine drawing on the given surface.
func NewEngine(surface Surface) *Engine {
	return &Engine{surface: surface}
}

// visualElement is one positioned pixel buffer within a layout pass. It
// lives only until composited into the combined canvas.
type visualElement struct {
	canvas Canvas
	width  int
	height int
}

// Render lays out the encoding and produces the final encoded image.
// eanFamily applies the retail-family overrides: quiet zone forced on and
// the label forced symbol-aligned.
func (e *Engine) Render(enc *pattern.Encoding, opts Options, eanFamily bool) (*Result, error) {
	if opts.DPI <= 0 {
		return nil, &ConfigurationError{Field: "dpi", Reason: "must be positive"}
	}
	if opts.XDimension < 1 {
		return nil, &ConfigurationError{Field: "x-dimension", Reason: "must be at least 1"}
	}
	if opts.BarHeight < 1 {
		return nil, &ConfigurationError{Field: "barcode height", Reason: "must be at least 1"}
	}
	minWidth := enc.MinimumWidth()
	if minWidth == 0 {
		return nil, &ConfigurationError{Field: "encoding", Reason: "has no modules"}
	}

	// Effective x-dimension: grow towards the target width, then clamp
	// against the absolute pixel ceiling.
	x := opts.XDimension
	if opts.TargetWidth > 0 {
		if fit := XDimensionForTargetWidth(opts.TargetWidth, minWidth); fit > x {
			x = fit
		}
	}
	if minWidth*x > maxPixelWidth {
		x = XDimensionForTargetWidth(maxPixelWidth, minWidth)
	}
	overridden := x != opts.XDimension

	quietOn := opts.QuietZone
	aligned := opts.SymbolAligned
	if eanFamily {
		quietOn = true
		aligned = true
	}

	quiet := 0
	if quietOn {
		quiet = QuietZoneWidth(x, opts.DPI)
	}

	barWidth := minWidth * x

	bars, err := e.buildBars(enc, x, barWidth, opts.BarHeight)
	if err != nil {
		return nil, err
	}

	var label *visualElement
	labelSize, labelAdjusted := 0, false
	showLabel := opts.LabelPosition != LabelHidden && opts.LabelText != ""
	if showLabel {
		label, labelSize, labelAdjusted, err = e.buildLabel(enc, opts, aligned, x, barWidth, quiet)
		if err != nil {
			return nil, err
		}
	}

	var strip *visualElement
	if opts.ShowEncoding {
		strip, err = e.buildEncodingStrip(enc, opts, x, barWidth)
		if err != nil {
			return nil, err
		}
	}

	labelH, stripH := 0, 0
	if label != nil {
		labelH = label.height
	}
	if strip != nil {
		stripH = strip.height
	}

	totalW := barWidth + 2*quiet
	if label != nil && label.width > totalW {
		totalW = label.width
	}
	totalH := opts.BarHeight + stripH + labelH
	if opts.LabelPosition == LabelEmbedded && label != nil {
		totalH -= labelH / 2
	}

	var labelY, barY, stripY int
	switch opts.LabelPosition {
	case LabelAbove:
		labelY, barY, stripY = 0, labelH, labelH+opts.BarHeight
	case LabelEmbedded:
		// The label's top half overlaps the barcode's lower edge.
		barY = 0
		labelY = opts.BarHeight - labelH/2
		stripY = opts.BarHeight + labelH - labelH/2
	default:
		barY, stripY = 0, opts.BarHeight
		labelY = opts.BarHeight + stripH
	}

	canvas, err := e.surface.NewCanvas(totalW, totalH)
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas: %w", err)
	}
	canvas.Fill(color.White)
	canvas.Compose(bars.canvas, (totalW-bars.width)/2, barY)
	if strip != nil {
		canvas.Compose(strip.canvas, (totalW-strip.width)/2, stripY)
	}
	if label != nil {
		canvas.Compose(label.canvas, (totalW-label.width)/2, labelY)
	}

	data, err := canvas.Encode(opts.Format)
	if err != nil {
		return nil, err
	}

	return &Result{
		Data:                 data,
		Width:                totalW,
		Height:               totalH,
		XDimension:           x,
		XDimensionOverridden: overridden,
		QuietZone:            quiet,
		LabelFontSize:        labelSize,
		LabelFontAdjusted:    labelAdjusted,
		Vectors:              Vectors(enc, x),
	}, nil
}

// Vectors snapshots the module sequence in pixel units.
func Vectors(enc *pattern.Encoding, xDimension int) []Vector {
	modules := enc.Modules()
	out := make([]Vector, 0, len(modules))
	for _, m := range modules {
		out = append(out, Vector{Bar: m.Kind == pattern.Bar, Width: m.Width * xDimension})
	}
	return out
}

func (e *Engine) buildBars(enc *pattern.Encoding, x, barWidth, barHeight int) (*visualElement, error) {
	canvas, err := e.surface.NewCanvas(barWidth, barHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to create bar canvas: %w", err)
	}
	canvas.Fill(color.White)
	off := 0
	for _, m := range enc.Modules() {
		w := m.Width * x
		if m.Kind == pattern.Bar {
			canvas.FillRect(off, 0, w, barHeight, color.Black)
		}
		off += w
	}
	return &visualElement{canvas: canvas, width: barWidth, height: barHeight}, nil
}

// buildLabel renders the human-readable text. Centered mode sizes one text
// block to the bar width; symbol-aligned mode centers each character under
// its own symbol's pixel span with prefix/suffix blocks in the quiet zones.
func (e *Engine) buildLabel(enc *pattern.Encoding, opts Options, aligned bool, x, barWidth, quiet int) (*visualElement, int, bool, error) {
	if !aligned {
		size, adjusted := ResolveFontSize(e.surface, opts.LabelText, opts.LabelFont, barWidth, opts.LabelFontSize)
		m := e.surface.MeasureText(opts.LabelText, opts.LabelFont, float64(size))
		canvas, err := e.surface.NewCanvas(barWidth, m.Height+2)
		if err != nil {
			return nil, 0, false, fmt.Errorf("failed to create label canvas: %w", err)
		}
		canvas.Fill(color.White)
		canvas.DrawText(opts.LabelText, barWidth/2, m.Height, opts.LabelFont, float64(size), color.Black, true)
		return &visualElement{canvas: canvas, width: barWidth, height: m.Height + 2}, size, adjusted, nil
	}

	// One character per symbol: size the font to the widest symbol span.
	span := enc.WidestSymbol() * x
	size, adjusted := ResolveFontSize(e.surface, "0", opts.LabelFont, span, opts.LabelFontSize)
	m := e.surface.MeasureText("0", opts.LabelFont, float64(size))
	width := barWidth + 2*quiet
	canvas, err := e.surface.NewCanvas(width, m.Height+2)
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to create label canvas: %w", err)
	}
	canvas.Fill(color.White)

	off := 0
	for _, s := range enc.Symbols {
		w := s.Width() * x
		if s.Char != "" && s.Class == pattern.ClassData {
			canvas.DrawText(s.Char, quiet+off+w/2, m.Height, opts.LabelFont, float64(size), color.Black, true)
		}
		off += w
	}
	if enc.Prefix != "" && quiet > 0 {
		canvas.DrawText(enc.Prefix, quiet/2, m.Height, opts.LabelFont, float64(size), color.Black, true)
	}
	if enc.Suffix != "" && quiet > 0 {
		canvas.DrawText(enc.Suffix, quiet+barWidth+quiet/2, m.Height, opts.LabelFont, float64(size), color.Black, true)
	}
	return &visualElement{canvas: canvas, width: width, height: m.Height + 2}, size, adjusted, nil
}

// buildEncodingStrip renders the raw-encoding annotation: one boxed glyph
// per symbol, inverted for start/stop/check/shift symbols.
func (e *Engine) buildEncodingStrip(enc *pattern.Encoding, opts Options, x, barWidth int) (*visualElement, error) {
	size := opts.EncodingFontSize
	if size <= 0 {
		size = FitFontSize(e.surface, "W", opts.EncodingFont, enc.WidestSymbol()*x)
	}
	m := e.surface.MeasureText("W", opts.EncodingFont, float64(size))
	height := m.Height + 4
	canvas, err := e.surface.NewCanvas(barWidth, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create encoding strip canvas: %w", err)
	}
	canvas.Fill(color.White)

	off := 0
	for _, s := range enc.Symbols {
		w := s.Width() * x
		special := s.Class != pattern.ClassData
		fg, bg := color.Color(color.Black), color.Color(color.White)
		if special {
			fg, bg = color.White, color.Black
		}
		canvas.FillRect(off, 0, w, height, bg)
		canvas.StrokeRect(off, 0, w, height, color.Black)
		if s.Char != "" {
			canvas.DrawText(s.Char, off+w/2, m.Height+1, opts.EncodingFont, float64(size), fg, true)
		}
		off += w
	}
	return &visualElement{canvas: canvas, width: barWidth, height: height}, nil
}
