package imagemeta

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"go-barcode-engine/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4)), nil))
	return buf.Bytes()
}

func TestInjectDPIPNG(t *testing.T) {
	data := encodePNG(t)
	out := InjectDPI(data, render.FormatPNG, 300)

	require.Len(t, out, len(data)+21)

	// The pHYs chunk sits directly after the signature and IHDR.
	chunk := out[33 : 33+21]
	assert.Equal(t, uint32(9), binary.BigEndian.Uint32(chunk[0:4]))
	assert.Equal(t, []byte("pHYs"), chunk[4:8])

	// 300 DPI converts to 11811 pixels per meter on both axes.
	assert.Equal(t, uint32(11811), binary.BigEndian.Uint32(chunk[8:12]))
	assert.Equal(t, uint32(11811), binary.BigEndian.Uint32(chunk[12:16]))
	assert.Equal(t, byte(1), chunk[16], "unit is the meter")

	crc := crc32.ChecksumIEEE(chunk[4:17])
	assert.Equal(t, crc, binary.BigEndian.Uint32(chunk[17:21]))

	// The result is still a decodable PNG.
	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestInjectDPIPNGIgnoresNonPNGBytes(t *testing.T) {
	data := []byte("not a png at all, promise")
	out := InjectDPI(data, render.FormatPNG, 300)
	assert.Equal(t, data, out)
}

func TestInjectDPIJPEG(t *testing.T) {
	data := encodeJPEG(t)
	out := InjectDPI(data, render.FormatJPEG, 203)

	require.Len(t, out, len(data)+18)

	// A fresh APP0/JFIF segment directly after SOI.
	seg := out[2 : 2+18]
	assert.Equal(t, []byte{0xFF, 0xE0}, seg[0:2])
	assert.Equal(t, uint16(16), binary.BigEndian.Uint16(seg[2:4]))
	assert.Equal(t, []byte("JFIF\x00"), seg[4:9])
	assert.Equal(t, byte(1), seg[11], "units are dots per inch")
	assert.Equal(t, uint16(203), binary.BigEndian.Uint16(seg[12:14]))
	assert.Equal(t, uint16(203), binary.BigEndian.Uint16(seg[14:16]))

	// Decoders tolerate the duplicate APP0 further down the stream.
	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
}

func TestInjectDPIJPEGIgnoresNonJPEGBytes(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02}
	out := InjectDPI(data, render.FormatJPEG, 300)
	assert.Equal(t, data, out)
}

func TestInjectDPIBMPPassesThrough(t *testing.T) {
	data := []byte("BMwhatever")
	out := InjectDPI(data, render.FormatBMP, 300)
	assert.Equal(t, data, out)
}
