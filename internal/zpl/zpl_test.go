package zpl

import (
	"strings"
	"testing"

	"go-barcode-engine/internal/pattern"

	"github.com/stretchr/testify/assert"
)

func testEncoding() *pattern.Encoding {
	return &pattern.Encoding{Symbols: []pattern.Symbol{
		pattern.NewSymbol("", pattern.ClassStart, 2, 1),
		pattern.NewSymbol("7", pattern.ClassData, 1, 1, 3),
		pattern.NewSymbol("", pattern.ClassStop, 2),
	}}
}

func TestExport(t *testing.T) {
	out := Export(testEncoding(), 2, 100)

	assert.True(t, strings.HasPrefix(out, "^XA\n"))
	assert.True(t, strings.HasSuffix(out, "^XZ\n"))
	assert.Contains(t, out, "^PW20\n", "10 narrow units at x=2")

	// One graphic box per bar module, spaces only advance the cursor.
	assert.Equal(t, 4, strings.Count(out, "^GB"))
	assert.Contains(t, out, "^FO0,0^GB4,100,4,B,0^FS")
	assert.Contains(t, out, "^FO6,0^GB2,100,2,B,0^FS")
	assert.Contains(t, out, "^FO10,0^GB6,100,6,B,0^FS")
	assert.Contains(t, out, "^FO16,0^GB4,100,4,B,0^FS")
}

func TestExportClampsParameters(t *testing.T) {
	out := Export(testEncoding(), 0, -5)

	assert.Contains(t, out, "^PW10\n", "x-dimension clamps to 1")
	assert.Contains(t, out, "^FO0,0^GB2,1,2,B,0^FS", "height clamps to 1")
}
