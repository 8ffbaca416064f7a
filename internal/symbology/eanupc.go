package symbology

import (
	"go-barcode-engine/internal/pattern"
)

// eanLPatterns holds the odd-parity left-half digit patterns as widths of
// space, bar, space, bar. The even-parity (G) set is the reverse of L and
// the right-half (R) set uses the L widths bar-first.
var eanLPatterns = [10][4]int{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
}

// eanParities encodes, per leading EAN-13 digit, which of the six left-half
// positions use the even-parity G pattern (set bit = G).
var eanParities = [10]int{
	0x00, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A,
}

func eanDigitSymbol(digit byte, char string, g, right bool) pattern.Symbol {
	p := eanLPatterns[digit-'0']
	if g {
		p = [4]int{p[3], p[2], p[1], p[0]}
	}
	if right {
		return pattern.NewSymbol(char, pattern.ClassData, p[0], p[1], p[2], p[3])
	}
	return pattern.NewSpaceFirstSymbol(char, pattern.ClassData, p[0], p[1], p[2], p[3])
}

func eanGuard() pattern.Symbol {
	return pattern.NewSymbol("", pattern.ClassGuard, 1, 1, 1)
}

func eanMiddleGuard() pattern.Symbol {
	return pattern.NewSpaceFirstSymbol("", pattern.ClassGuard, 1, 1, 1, 1, 1)
}

func eanValidate(kind Kind, value string, length int) error {
	if len(value) != length {
		return encodingErr(kind, value, "%s requires exactly %d digits, got %d", kind, length, len(value))
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return encodingErr(kind, value, "character %q (position %d) is not a digit", value[i], i)
		}
	}
	if check := mod10CheckDigit(value[:length-1]); int(value[length-1]-'0') != check {
		return encodingErr(kind, value, "check digit mismatch: expected %d, got %c", check, value[length-1])
	}
	return nil
}

// ean13Symbols builds the full EAN-13 bar sequence for a validated 13-digit
// string. The leading digit selects the left-half parity pattern and is not
// drawn itself.
func ean13Symbols(digits string) []pattern.Symbol {
	parities := eanParities[digits[0]-'0']
	symbols := make([]pattern.Symbol, 0, 15)
	symbols = append(symbols, eanGuard())
	for i := 1; i <= 6; i++ {
		g := (parities>>(6-i))&1 == 1
		symbols = append(symbols, eanDigitSymbol(digits[i], string(digits[i]), g, false))
	}
	symbols = append(symbols, eanMiddleGuard())
	for i := 7; i <= 12; i++ {
		symbols = append(symbols, eanDigitSymbol(digits[i], string(digits[i]), false, true))
	}
	symbols = append(symbols, eanGuard())
	return symbols
}

// encodeEAN13 validates a 13-digit value (last digit is the mod-10 check
// digit) and encodes it. The leading digit becomes the human-readable
// prefix rendered left of the bars.
func encodeEAN13(kind Kind, value string) (*pattern.Encoding, error) {
	if err := eanValidate(kind, value, 13); err != nil {
		return nil, err
	}
	return &pattern.Encoding{
		Symbols: ean13Symbols(value),
		Prefix:  value[:1],
	}, nil
}

// encodeUPCA validates a 12-digit value and encodes it through the EAN-13
// tables with an implied leading zero. The number-system digit and the
// check digit are rendered as flanking prefix/suffix text, so their drawn
// symbols carry no label character of their own.
func encodeUPCA(value string) (*pattern.Encoding, error) {
	if err := eanValidate(UPCA, value, 12); err != nil {
		return nil, err
	}
	symbols := ean13Symbols("0" + value)
	symbols[1].Char = ""
	symbols[len(symbols)-2].Char = ""
	return &pattern.Encoding{
		Symbols: symbols,
		Prefix:  value[:1],
		Suffix:  value[11:],
	}, nil
}

// encodeEAN8 validates an 8-digit value (last digit is the mod-10 check
// digit) and encodes it: four L-pattern digits, a middle guard, four
// R-pattern digits.
func encodeEAN8(value string) (*pattern.Encoding, error) {
	if err := eanValidate(EAN8, value, 8); err != nil {
		return nil, err
	}
	symbols := make([]pattern.Symbol, 0, 11)
	symbols = append(symbols, eanGuard())
	for i := 0; i <= 3; i++ {
		symbols = append(symbols, eanDigitSymbol(value[i], string(value[i]), false, false))
	}
	symbols = append(symbols, eanMiddleGuard())
	for i := 4; i <= 7; i++ {
		symbols = append(symbols, eanDigitSymbol(value[i], string(value[i]), false, true))
	}
	symbols = append(symbols, eanGuard())
	return &pattern.Encoding{Symbols: symbols}, nil
}
