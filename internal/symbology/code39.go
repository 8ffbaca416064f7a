package symbology

import (
	"strings"

	"go-barcode-engine/internal/pattern"
)

// code39Alphabet lists the 43 encodable characters in table order; the table
// index doubles as the character's value for the mod-43 checksum.
const code39Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

// code39Encodings holds one 9-bit mask per alphabet character; a set bit
// means the corresponding bar or space is wide. Bars and spaces alternate,
// bar first.
var code39Encodings = [43]int{
	0x034, 0x121, 0x061, 0x160, 0x031, 0x130, 0x070, 0x025, 0x124, 0x064, // 0-9
	0x109, 0x049, 0x148, 0x019, 0x118, 0x058, 0x00D, 0x10C, 0x04C, 0x01C, // A-J
	0x103, 0x043, 0x142, 0x013, 0x112, 0x052, 0x007, 0x106, 0x046, 0x016, // K-T
	0x181, 0x0C1, 0x1C0, 0x091, 0x190, 0x0D0, 0x085, 0x184, 0x0C4, 0x0A8, // U-Z, -, ., space, $
	0x0A2, 0x08A, 0x02A, // /, +, %
}

const code39AsteriskEncoding = 0x094

const code39Wide = 2

// code39Symbol expands a 9-bit wide/narrow mask into a symbol. Every symbol
// except the closing asterisk carries the narrow inter-character gap as a
// trailing space module.
func code39Symbol(char string, class pattern.SymbolClass, mask int, gap bool) pattern.Symbol {
	widths := make([]int, 0, 10)
	for i := 0; i < 9; i++ {
		w := 1
		if mask&(1<<uint(8-i)) != 0 {
			w = code39Wide
		}
		widths = append(widths, w)
	}
	if gap {
		widths = append(widths, 1)
	}
	return pattern.NewSymbol(char, class, widths...)
}

// code39Expand rewrites characters outside the base alphabet into the
// two-character escape pairs of full-ASCII Code 39.
func code39Expand(value string) (string, bool) {
	var out strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case c == 0:
			out.WriteString("%U")
		case c == ' ' || c == '-' || c == '.':
			out.WriteByte(c)
		case c == '@':
			out.WriteString("%V")
		case c == '`':
			out.WriteString("%W")
		case c <= 26:
			out.WriteByte('$')
			out.WriteByte('A' + c - 1)
		case c < ' ':
			out.WriteByte('%')
			out.WriteByte('A' + c - 27)
		case c <= ',' || c == '/' || c == ':':
			out.WriteByte('/')
			out.WriteByte('A' + c - 33)
		case c <= '9':
			out.WriteByte(c)
		case c <= '?':
			out.WriteByte('%')
			out.WriteByte('F' + c - 59)
		case c <= 'Z':
			out.WriteByte(c)
		case c <= '_':
			out.WriteByte('%')
			out.WriteByte('K' + c - 91)
		case c <= 'z':
			out.WriteByte('+')
			out.WriteByte('A' + c - 97)
		case c <= 127:
			out.WriteByte('%')
			out.WriteByte('P' + c - 123)
		default:
			return "", false
		}
	}
	return out.String(), true
}

// encodeCode39 maps each character to its fixed 9-module pattern, framed by
// asterisk start/stop symbols. With checksum enabled one extra symbol is
// appended whose table index is the sum of all data indices mod 43.
func encodeCode39(kind Kind, value string, fullASCII, checksum bool) (*pattern.Encoding, error) {
	data := value
	if fullASCII {
		expanded, ok := code39Expand(value)
		if !ok {
			return nil, encodingErr(kind, value, "input contains non-ASCII characters")
		}
		data = expanded
	}

	indices := make([]int, len(data))
	for i := 0; i < len(data); i++ {
		idx := strings.IndexByte(code39Alphabet, data[i])
		if idx < 0 {
			return nil, encodingErr(kind, value, "character %q (position %d) is outside the Code 39 alphabet", data[i], i)
		}
		indices[i] = idx
	}

	symbols := make([]pattern.Symbol, 0, len(indices)+3)
	symbols = append(symbols, code39Symbol("*", pattern.ClassStart, code39AsteriskEncoding, true))

	checkSum := 0
	for i, idx := range indices {
		symbols = append(symbols, code39Symbol(string(data[i]), pattern.ClassData, code39Encodings[idx], true))
		checkSum += idx
	}

	if checksum {
		check := checkSum % 43
		symbols = append(symbols, code39Symbol(string(code39Alphabet[check]), pattern.ClassCheck, code39Encodings[check], true))
	}

	symbols = append(symbols, code39Symbol("*", pattern.ClassStop, code39AsteriskEncoding, false))
	return &pattern.Encoding{Symbols: symbols}, nil
}
