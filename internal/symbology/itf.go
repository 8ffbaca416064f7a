package symbology

import (
	"go-barcode-engine/internal/pattern"
)

// itfPatterns gives the five narrow/wide widths per digit (narrow 1, wide 3).
var itfPatterns = [10][5]int{
	{1, 1, 3, 3, 1}, // 0
	{3, 1, 1, 1, 3}, // 1
	{1, 3, 1, 1, 3}, // 2
	{3, 3, 1, 1, 1}, // 3
	{1, 1, 3, 1, 3}, // 4
	{3, 1, 3, 1, 1}, // 5
	{1, 3, 3, 1, 1}, // 6
	{1, 1, 1, 3, 3}, // 7
	{3, 1, 1, 3, 1}, // 8
	{1, 3, 1, 3, 1}, // 9
}

// encodeITF encodes Interleaved 2 of 5. Digits are consumed in pairs, the
// first digit supplying the bar widths and the second the space widths of
// one combined symbol.
//
// Odd-length policy: an optional mod-10 check digit is appended first; if
// the result still has odd length a zero is prepended. Inputs are never
// rejected for parity alone.
func encodeITF(kind Kind, value string, checksum bool) (*pattern.Encoding, error) {
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return nil, encodingErr(kind, value, "character %q (position %d) is not a digit", value[i], i)
		}
	}

	digits := value
	if checksum {
		digits += string(rune('0' + mod10CheckDigit(digits)))
	}
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}

	symbols := make([]pattern.Symbol, 0, len(digits)/2+2)
	symbols = append(symbols, pattern.NewSymbol("", pattern.ClassStart, 1, 1, 1, 1))

	for i := 0; i < len(digits); i += 2 {
		d1 := digits[i] - '0'
		d2 := digits[i+1] - '0'
		widths := make([]int, 10)
		for j := 0; j < 5; j++ {
			widths[2*j] = itfPatterns[d1][j]
			widths[2*j+1] = itfPatterns[d2][j]
		}
		symbols = append(symbols, pattern.NewSymbol(digits[i:i+2], pattern.ClassData, widths...))
	}

	symbols = append(symbols, pattern.NewSymbol("", pattern.ClassStop, 3, 1, 1))
	return &pattern.Encoding{Symbols: symbols}, nil
}

// mod10CheckDigit computes the standard alternating 3/1-weighted mod-10
// check digit, weighting from the rightmost digit leftwards starting at 3.
func mod10CheckDigit(digits string) int {
	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	return (10 - sum%10) % 10
}
