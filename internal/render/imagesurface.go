package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var (
	fontsOnce sync.Once
	fontFaces map[Font]*sfnt.Font
)

func loadFonts() {
	fontFaces = make(map[Font]*sfnt.Font, 3)
	for f, ttf := range map[Font][]byte{
		FontRegular: goregular.TTF,
		FontBold:    gobold.TTF,
		FontMono:    gomono.TTF,
	} {
		parsed, err := opentype.Parse(ttf)
		if err != nil {
			// The bundled Go fonts are known-good; a parse failure here is
			// a build problem, not a runtime condition.
			panic(fmt.Sprintf("parse bundled font %s: %v", f, err))
		}
		fontFaces[f] = parsed
	}
}

// ImageSurface is the stdlib-image backed Surface used in production. Text
// is set in the bundled Go fonts at the surface's DPI.
type ImageSurface struct {
	dpi float64
}

// NewImageSurface creates a surface whose text rendering uses the given DPI.
func NewImageSurface(dpi int) *ImageSurface {
	fontsOnce.Do(loadFonts)
	if dpi <= 0 {
		dpi = 72
	}
	return &ImageSurface{dpi: float64(dpi)}
}

func (s *ImageSurface) face(f Font, size float64) font.Face {
	parsed, ok := fontFaces[f]
	if !ok {
		parsed = fontFaces[FontRegular]
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     s.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(fmt.Sprintf("build face %s@%g: %v", f, size, err))
	}
	return face
}

// NewCanvas allocates a white-initialized pixel buffer.
func (s *ImageSurface) NewCanvas(width, height int) (Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas size %dx%d is not positive", width, height)
	}
	return &imageCanvas{
		surface: s,
		img:     image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// MeasureText returns the pixel extent of text at the given font and size.
func (s *ImageSurface) MeasureText(text string, f Font, size float64) TextMetrics {
	face := s.face(f, size)
	defer face.Close()
	m := face.Metrics()
	return TextMetrics{
		Width:  font.MeasureString(face, text).Ceil(),
		Height: (m.Ascent + m.Descent).Ceil(),
	}
}

type imageCanvas struct {
	surface *ImageSurface
	img     *image.RGBA
}

func (c *imageCanvas) Fill(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *imageCanvas) FillRect(x, y, w, h int, col color.Color) {
	draw.Draw(c.img, image.Rect(x, y, x+w, y+h), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *imageCanvas) StrokeRect(x, y, w, h int, col color.Color) {
	c.FillRect(x, y, w, 1, col)
	c.FillRect(x, y+h-1, w, 1, col)
	c.FillRect(x, y, 1, h, col)
	c.FillRect(x+w-1, y, 1, h, col)
}

func (c *imageCanvas) DrawText(text string, x, y int, f Font, size float64, col color.Color, centered bool) {
	face := c.surface.face(f, size)
	defer face.Close()
	dot := fixed.P(x, y)
	if centered {
		dot.X -= font.MeasureString(face, text) / 2
	}
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}

func (c *imageCanvas) Compose(src Canvas, x, y int) {
	sc, ok := src.(*imageCanvas)
	if !ok {
		return
	}
	b := sc.img.Bounds()
	draw.Draw(c.img, image.Rect(x, y, x+b.Dx(), y+b.Dy()), sc.img, b.Min, draw.Over)
}

func (c *imageCanvas) Encode(format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, c.img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, c.img, &jpeg.Options{Quality: 100}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(&buf, c.img); err != nil {
			return nil, fmt.Errorf("failed to encode BMP: %w", err)
		}
	default:
		return nil, &UnsupportedFormatError{Format: format}
	}
	return buf.Bytes(), nil
}
