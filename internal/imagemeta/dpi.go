// Package imagemeta patches physical-resolution metadata into already
// encoded image byte streams. It is a pure byte transform: pixels are never
// re-rendered and unknown formats pass through untouched.
package imagemeta

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"math"

	"go-barcode-engine/internal/render"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// pngHeaderLen is the 8-byte PNG signature plus the complete IHDR chunk:
// 4-byte length, 4-byte type, 13 bytes of data and the 4-byte CRC. The
// injector assumes exactly this layout rather than re-parsing chunks
// generically.
const pngHeaderLen = 8 + 25

// InjectDPI embeds the given DPI into encoded image bytes. PNG gains a pHYs
// chunk directly after IHDR, JPEG a fresh APP0/JFIF segment after SOI; BMP
// and anything else is returned unchanged because the transform cannot
// represent DPI there. The input is assumed well-formed; malformed bytes
// are a precondition violation of the upstream encoder.
func InjectDPI(data []byte, format render.Format, dpi int) []byte {
	switch format {
	case render.FormatPNG:
		return injectPNG(data, dpi)
	case render.FormatJPEG:
		return injectJPEG(data, dpi)
	default:
		return data
	}
}

// injectPNG inserts a pHYs chunk after IHDR carrying the DPI converted to
// pixels per meter.
func injectPNG(data []byte, dpi int) []byte {
	if len(data) < pngHeaderLen || !bytes.Equal(data[:8], pngSignature) {
		return data
	}

	pixelsPerMeter := uint32(math.Round(float64(dpi) * 39.3701))

	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, 9) // data length
	chunk = append(chunk, 'p', 'H', 'Y', 's')
	chunk = binary.BigEndian.AppendUint32(chunk, pixelsPerMeter)
	chunk = binary.BigEndian.AppendUint32(chunk, pixelsPerMeter)
	chunk = append(chunk, 1) // unit: meter
	crc := crc32.ChecksumIEEE(chunk[4:])
	chunk = binary.BigEndian.AppendUint32(chunk, crc)

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:pngHeaderLen]...)
	out = append(out, chunk...)
	out = append(out, data[pngHeaderLen:]...)
	return out
}

// injectJPEG prepends a JFIF APP0 segment carrying the DPI right after the
// SOI marker. A pre-existing APP0 further down the stream is left in place;
// viewers tolerate the duplicate.
func injectJPEG(data []byte, dpi int) []byte {
	if len(data) < 2 || data[0] != 0xFF || data[1] != 0xD8 {
		return data
	}

	seg := make([]byte, 0, 18)
	seg = append(seg, 0xFF, 0xE0)                       // APP0 marker
	seg = binary.BigEndian.AppendUint16(seg, 16)        // segment length
	seg = append(seg, 'J', 'F', 'I', 'F', 0)            // identifier
	seg = append(seg, 1, 1)                             // JFIF version 1.1
	seg = append(seg, 1)                                // units: dots per inch
	seg = binary.BigEndian.AppendUint16(seg, uint16(dpi)) // X density
	seg = binary.BigEndian.AppendUint16(seg, uint16(dpi)) // Y density
	seg = append(seg, 0, 0)                             // no thumbnail

	out := make([]byte, 0, len(data)+len(seg))
	out = append(out, data[:2]...)
	out = append(out, seg...)
	out = append(out, data[2:]...)
	return out
}
