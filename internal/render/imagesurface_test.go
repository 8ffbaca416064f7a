package render

import (
	"bytes"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageSurfaceCanvasEncode(t *testing.T) {
	s := NewImageSurface(96)
	canvas, err := s.NewCanvas(40, 20)
	require.NoError(t, err)

	for _, format := range []Format{FormatPNG, FormatJPEG, FormatBMP} {
		data, err := canvas.Encode(format)
		require.NoError(t, err, format)
		require.NotEmpty(t, data, format)

		var decodeErr error
		switch format {
		case FormatPNG:
			_, decodeErr = png.Decode(bytes.NewReader(data))
		case FormatJPEG:
			_, decodeErr = jpeg.Decode(bytes.NewReader(data))
		case FormatBMP:
			_, decodeErr = bmp.Decode(bytes.NewReader(data))
		}
		assert.NoError(t, decodeErr, format)
	}

	_, err = canvas.Encode(Format("tiff"))
	var fmtErr *UnsupportedFormatError
	assert.ErrorAs(t, err, &fmtErr)
}

func TestImageSurfaceRejectsEmptyCanvas(t *testing.T) {
	s := NewImageSurface(96)
	_, err := s.NewCanvas(0, 10)
	assert.Error(t, err)
	_, err = s.NewCanvas(10, -1)
	assert.Error(t, err)
}

func TestImageSurfaceMeasureText(t *testing.T) {
	s := NewImageSurface(96)

	small := s.MeasureText("HELLO", FontRegular, 8)
	large := s.MeasureText("HELLO", FontRegular, 24)
	assert.Greater(t, large.Width, small.Width)
	assert.Greater(t, large.Height, small.Height)

	longer := s.MeasureText("HELLO WORLD", FontRegular, 12)
	shorter := s.MeasureText("HELLO", FontRegular, 12)
	assert.Greater(t, longer.Width, shorter.Width)
}

func TestImageSurfaceEndToEndRender(t *testing.T) {
	e := NewEngine(NewImageSurface(96))
	opts := baseOptions()
	opts.QuietZone = true
	opts.LabelPosition = LabelBelow
	opts.LabelText = "TEST"

	result, err := e.Render(testEncoding(), opts, false)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(result.Data))
	require.NoError(t, err)
	assert.Equal(t, result.Width, img.Bounds().Dx())
	assert.Equal(t, result.Height, img.Bounds().Dy())
}
