package symbology

import (
	"testing"

	"go-barcode-engine/internal/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestITFStructure(t *testing.T) {
	enc, err := Encode(Interleaved2of5, "1234")
	require.NoError(t, err)

	symbols := enc.Symbols
	require.Len(t, symbols, 4)

	start := symbols[0]
	assert.Equal(t, pattern.ClassStart, start.Class)
	assert.Equal(t, 4, start.Width())

	stop := symbols[3]
	assert.Equal(t, pattern.ClassStop, stop.Class)
	assert.Equal(t, 5, stop.Width())
	assert.Equal(t, pattern.Bar, stop.Modules[0].Kind)
	assert.Equal(t, 3, stop.Modules[0].Width)
}

func TestITFInterleavesPairs(t *testing.T) {
	enc, err := Encode(Interleaved2of5, "12")
	require.NoError(t, err)

	// Bars take their widths from digit 1, spaces from digit 2.
	sym := enc.Symbols[1]
	assert.Equal(t, "12", sym.Char)
	require.Len(t, sym.Modules, 10)
	for j := 0; j < 5; j++ {
		bar := sym.Modules[2*j]
		space := sym.Modules[2*j+1]
		assert.Equal(t, pattern.Bar, bar.Kind)
		assert.Equal(t, itfPatterns[1][j], bar.Width)
		assert.Equal(t, pattern.Space, space.Kind)
		assert.Equal(t, itfPatterns[2][j], space.Width)
	}
}

func TestITFPadsOddLengthWithLeadingZero(t *testing.T) {
	enc, err := Encode(Interleaved2of5, "123")
	require.NoError(t, err)

	require.Len(t, enc.Symbols, 4)
	assert.Equal(t, "01", enc.Symbols[1].Char)
	assert.Equal(t, "23", enc.Symbols[2].Char)
}

func TestITFChecksumThenPad(t *testing.T) {
	// "12" gains check digit 3; the odd result "123" is then zero-padded.
	enc, err := Encode(Interleaved2of5Checksum, "12")
	require.NoError(t, err)

	require.Len(t, enc.Symbols, 4)
	assert.Equal(t, "01", enc.Symbols[1].Char)
	assert.Equal(t, "23", enc.Symbols[2].Char)
}

func TestITFChecksumEvenResultNeedsNoPad(t *testing.T) {
	// "123" gains check digit 6, leaving an even four digits.
	enc, err := Encode(Interleaved2of5Checksum, "123")
	require.NoError(t, err)

	require.Len(t, enc.Symbols, 4)
	assert.Equal(t, "12", enc.Symbols[1].Char)
	assert.Equal(t, "36", enc.Symbols[2].Char)
}

func TestITFRejectsNonDigits(t *testing.T) {
	var encErr *EncodingError
	_, err := Encode(Interleaved2of5, "12a4")
	assert.ErrorAs(t, err, &encErr)
}

func TestMod10CheckDigit(t *testing.T) {
	// UPC reference value: 036000291452 carries check digit 2.
	assert.Equal(t, 2, mod10CheckDigit("03600029145"))
	assert.Equal(t, 5, mod10CheckDigit("123456789"))
	assert.Equal(t, 0, mod10CheckDigit("0"))
}
