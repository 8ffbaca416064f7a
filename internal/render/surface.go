// Package render turns a pattern.Encoding into a positioned composite image:
// bar strip, human-readable label and raw-encoding annotation. All pixel
// work is delegated to a Surface implementation so the layout engine can be
// tested headless.
package render

import "image/color"

// Format names an output image encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatBMP  Format = "bmp"
)

// Font names one of the faces a surface must provide.
type Font string

const (
	FontRegular Font = "regular"
	FontBold    Font = "bold"
	FontMono    Font = "mono"
)

// TextMetrics is the measured pixel extent of a string at a font and size.
type TextMetrics struct {
	Width  int
	Height int
}

// Surface is the drawing capability the layout engine consumes. It creates
// off-screen canvases and measures text; it never sees barcode semantics.
type Surface interface {
	NewCanvas(width, height int) (Canvas, error)
	MeasureText(text string, font Font, size float64) TextMetrics
}

// Canvas is one off-screen pixel buffer. Canvases created during a layout
// pass are owned by that pass and dropped once composited.
type Canvas interface {
	// Fill paints the whole canvas.
	Fill(c color.Color)
	// FillRect paints a solid rectangle.
	FillRect(x, y, w, h int, c color.Color)
	// StrokeRect draws a one-pixel rectangle outline.
	StrokeRect(x, y, w, h int, c color.Color)
	// DrawText draws text with its baseline-left anchor at (x, y); with
	// centered set, x is the horizontal midpoint instead.
	DrawText(text string, x, y int, font Font, size float64, c color.Color, centered bool)
	// Compose draws src onto this canvas at the given offset.
	Compose(src Canvas, x, y int)
	// Encode serializes the canvas to the requested image format.
	Encode(format Format) ([]byte, error)
}
