// Package zpl serializes an encoded barcode as ZPL II commands, a direct
// transliteration of the module sequence into graphic-box draws for Zebra
// label printers.
package zpl

import (
	"fmt"
	"strings"

	"go-barcode-engine/internal/pattern"
)

// Export renders the encoding as one ZPL label. Each bar module becomes a
// ^GB graphic box of the module's pixel width; spaces only advance the
// cursor.
func Export(enc *pattern.Encoding, xDimension, height int) string {
	if xDimension < 1 {
		xDimension = 1
	}
	if height < 1 {
		height = 1
	}

	var b strings.Builder
	b.WriteString("^XA\n")
	fmt.Fprintf(&b, "^PW%d\n", enc.MinimumWidth()*xDimension)

	off := 0
	for _, m := range enc.Modules() {
		w := m.Width * xDimension
		if m.Kind == pattern.Bar {
			fmt.Fprintf(&b, "^FO%d,0^GB%d,%d,%d,B,0^FS\n", off, w, height, w)
		}
		off += w
	}

	b.WriteString("^XZ\n")
	return b.String()
}
