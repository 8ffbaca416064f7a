package symbology

import (
	"strconv"

	"go-barcode-engine/internal/pattern"
)

// fnc1 is the in-band escape rune for the FNC1 function code, used by
// GS1-128 to flag application-identifier data.
const fnc1 = 'ñ'

type code128Set int

const (
	codeSetAuto code128Set = iota
	codeSetA
	codeSetB
	codeSetC
)

const (
	code128IdxCodeC  = 99
	code128IdxCodeB  = 100
	code128IdxCodeA  = 101
	code128IdxFNC1   = 102
	code128IdxStartA = 103
	code128IdxStartB = 104
	code128IdxStartC = 105
	code128IdxStop   = 106
)

// code128Patterns holds the bar/space widths for every Code 128 value.
// Index 106 is the Stop pattern, which carries the extra termination bar.
var code128Patterns = [107][]int{
	{2, 1, 2, 2, 2, 2}, {2, 2, 2, 1, 2, 2}, {2, 2, 2, 2, 2, 1}, {1, 2, 1, 2, 2, 3},
	{1, 2, 1, 3, 2, 2}, {1, 3, 1, 2, 2, 2}, {1, 2, 2, 2, 1, 3}, {1, 2, 2, 3, 1, 2},
	{1, 3, 2, 2, 1, 2}, {2, 2, 1, 2, 1, 3}, {2, 2, 1, 3, 1, 2}, {2, 3, 1, 2, 1, 2},
	{1, 1, 2, 2, 3, 2}, {1, 2, 2, 1, 3, 2}, {1, 2, 2, 2, 3, 1}, {1, 1, 3, 2, 2, 2},
	{1, 2, 3, 1, 2, 2}, {1, 2, 3, 2, 2, 1}, {2, 2, 3, 2, 1, 1}, {2, 2, 1, 1, 3, 2},
	{2, 2, 1, 2, 3, 1}, {2, 1, 3, 2, 1, 2}, {2, 2, 3, 1, 1, 2}, {3, 1, 2, 1, 3, 1},
	{3, 1, 1, 2, 2, 2}, {3, 2, 1, 1, 2, 2}, {3, 2, 1, 2, 2, 1}, {3, 1, 2, 2, 1, 2},
	{3, 2, 2, 1, 1, 2}, {3, 2, 2, 2, 1, 1}, {2, 1, 2, 1, 2, 3}, {2, 1, 2, 3, 2, 1},
	{2, 3, 2, 1, 2, 1}, {1, 1, 1, 3, 2, 3}, {1, 3, 1, 1, 2, 3}, {1, 3, 1, 3, 2, 1},
	{1, 1, 2, 3, 1, 3}, {1, 3, 2, 1, 1, 3}, {1, 3, 2, 3, 1, 1}, {2, 1, 1, 3, 1, 3},
	{2, 3, 1, 1, 1, 3}, {2, 3, 1, 3, 1, 1}, {1, 1, 2, 1, 3, 3}, {1, 1, 2, 3, 3, 1},
	{1, 3, 2, 1, 3, 1}, {1, 1, 3, 1, 2, 3}, {1, 1, 3, 3, 2, 1}, {1, 3, 3, 1, 2, 1},
	{3, 1, 3, 1, 2, 1}, {2, 1, 1, 3, 3, 1}, {2, 3, 1, 1, 3, 1}, {2, 1, 3, 1, 1, 3},
	{2, 1, 3, 3, 1, 1}, {2, 1, 3, 1, 3, 1}, {3, 1, 1, 1, 2, 3}, {3, 1, 1, 3, 2, 1},
	{3, 3, 1, 1, 2, 1}, {3, 1, 2, 1, 1, 3}, {3, 1, 2, 3, 1, 1}, {3, 3, 2, 1, 1, 1},
	{3, 1, 4, 1, 1, 1}, {2, 2, 1, 4, 1, 1}, {4, 3, 1, 1, 1, 1}, {1, 1, 1, 2, 2, 4},
	{1, 1, 1, 4, 2, 2}, {1, 2, 1, 1, 2, 4}, {1, 2, 1, 4, 2, 1}, {1, 4, 1, 1, 2, 2},
	{1, 4, 1, 2, 2, 1}, {1, 1, 2, 2, 1, 4}, {1, 1, 2, 4, 1, 2}, {1, 2, 2, 1, 1, 4},
	{1, 2, 2, 4, 1, 1}, {1, 4, 2, 1, 1, 2}, {1, 4, 2, 2, 1, 1}, {2, 4, 1, 2, 1, 1},
	{2, 2, 1, 1, 1, 4}, {4, 1, 3, 1, 1, 1}, {2, 4, 1, 1, 1, 2}, {1, 3, 4, 1, 1, 1},
	{1, 1, 1, 2, 4, 2}, {1, 2, 1, 1, 4, 2}, {1, 2, 1, 2, 4, 1}, {1, 1, 4, 2, 1, 2},
	{1, 2, 4, 1, 1, 2}, {1, 2, 4, 2, 1, 1}, {4, 1, 1, 2, 1, 2}, {4, 2, 1, 1, 1, 2},
	{4, 2, 1, 2, 1, 1}, {2, 1, 2, 1, 4, 1}, {2, 1, 4, 1, 2, 1}, {4, 1, 2, 1, 2, 1},
	{1, 1, 1, 1, 4, 3}, {1, 1, 1, 3, 4, 1}, {1, 3, 1, 1, 4, 1}, {1, 1, 4, 1, 1, 3},
	{1, 1, 4, 3, 1, 1}, {4, 1, 1, 1, 1, 3}, {4, 1, 1, 3, 1, 1}, {1, 1, 3, 1, 4, 1},
	{1, 1, 4, 1, 3, 1}, {3, 1, 1, 1, 4, 1}, {4, 1, 1, 1, 3, 1}, {2, 1, 1, 4, 1, 2},
	{2, 1, 1, 2, 1, 4}, {2, 1, 1, 2, 3, 2}, {2, 3, 3, 1, 1, 1, 2},
}

var code128ControlNames = map[int]string{
	code128IdxCodeC:  "CodeC",
	code128IdxCodeB:  "CodeB",
	code128IdxCodeA:  "CodeA",
	code128IdxFNC1:   "FNC1",
	code128IdxStartA: "StartA",
	code128IdxStartB: "StartB",
	code128IdxStartC: "StartC",
	code128IdxStop:   "Stop",
}

// code128CharClass classifies the next stretch of input for the dynamic
// code-set chooser.
type code128CharClass int

const (
	code128Uncodable code128CharClass = iota
	code128OneDigit
	code128TwoDigits
	code128FNC1
)

func code128ClassifyAt(value []rune, pos int) code128CharClass {
	if pos >= len(value) {
		return code128Uncodable
	}
	c := value[pos]
	if c == fnc1 {
		return code128FNC1
	}
	if c < '0' || c > '9' {
		return code128Uncodable
	}
	if pos+1 >= len(value) {
		return code128OneDigit
	}
	c = value[pos+1]
	if c < '0' || c > '9' {
		return code128OneDigit
	}
	return code128TwoDigits
}

// code128Choose picks the code set for the input at pos, preferring set C for
// digit runs long enough to pay for the switch symbol: at least four in the
// middle of the input, two when the run opens the barcode or ends it.
func code128Choose(value []rune, pos int, active code128Set) code128Set {
	lookahead := code128ClassifyAt(value, pos)
	if lookahead == code128OneDigit {
		if active == codeSetA {
			return codeSetA
		}
		return codeSetB
	}
	if lookahead == code128Uncodable {
		if pos < len(value) {
			c := value[pos]
			if c < ' ' || (active == codeSetA && c < '`') {
				return codeSetA
			}
		}
		return codeSetB
	}
	if active == codeSetA && lookahead == code128FNC1 {
		return codeSetA
	}
	if active == codeSetC {
		return codeSetC
	}
	if active == codeSetB {
		if lookahead == code128FNC1 {
			return codeSetB
		}
		lookahead = code128ClassifyAt(value, pos+2)
		if lookahead == code128Uncodable || lookahead == code128OneDigit {
			return codeSetB
		}
		if lookahead == code128FNC1 {
			if code128ClassifyAt(value, pos+3) == code128TwoDigits {
				return codeSetC
			}
			return codeSetB
		}
		i := pos + 4
		for code128ClassifyAt(value, i) == code128TwoDigits {
			i += 2
		}
		if code128ClassifyAt(value, i) == code128OneDigit {
			return codeSetB
		}
		return codeSetC
	}
	// No active set yet: two leading digits are enough to open in C.
	if lookahead == code128FNC1 {
		lookahead = code128ClassifyAt(value, pos+1)
	}
	if lookahead == code128TwoDigits {
		return codeSetC
	}
	return codeSetB
}

func code128Validate(kind Kind, value []rune, forced code128Set) error {
	digits := 0
	for i, c := range value {
		if c == fnc1 {
			continue
		}
		if c > 127 {
			return encodingErr(kind, string(value), "character %q (position %d) is outside the Code 128 alphabet", c, i)
		}
		if c >= '0' && c <= '9' {
			digits++
		}
		switch forced {
		case codeSetA:
			if c > 95 {
				return encodingErr(kind, string(value), "character %q (position %d) cannot be encoded in code set A", c, i)
			}
		case codeSetB:
			if c < 32 {
				return encodingErr(kind, string(value), "character %q (position %d) cannot be encoded in code set B", c, i)
			}
		case codeSetC:
			if c < '0' || c > '9' {
				return encodingErr(kind, string(value), "character %q (position %d) cannot be encoded in code set C", c, i)
			}
		}
	}
	if forced == codeSetC && digits%2 != 0 {
		return encodingErr(kind, string(value), "code set C needs an even number of digits, got %d", digits)
	}
	return nil
}

func code128Symbol(idx int, char string, class pattern.SymbolClass) pattern.Symbol {
	return pattern.NewSymbol(char, class, code128Patterns[idx]...)
}

func code128Name(idx int, active code128Set) string {
	if name, ok := code128ControlNames[idx]; ok {
		return name
	}
	switch {
	case active == codeSetC:
		return ""
	case active == codeSetA && idx >= 64:
		// Control characters 0..31 map to indices 64..95 in set A.
		return strconv.Itoa(idx - 64)
	default:
		return string(rune(idx + ' '))
	}
}

// encodeCode128 runs the Code 128 state machine: choose a code set per
// position, emit switch symbols when it changes, then append the mod-103
// check symbol and the Stop pattern. With gs1 set, FNC1 is emitted directly
// after the Start symbol.
func encodeCode128(kind Kind, value string, forced code128Set, gs1 bool) (*pattern.Encoding, error) {
	runes := []rune(value)
	if err := code128Validate(kind, runes, forced); err != nil {
		return nil, err
	}

	var indices []int
	var symbols []pattern.Symbol
	active := codeSetAuto
	pos := 0

	emit := func(idx int, char string, class pattern.SymbolClass) {
		indices = append(indices, idx)
		symbols = append(symbols, code128Symbol(idx, char, class))
	}

	for pos < len(runes) {
		next := forced
		if forced == codeSetAuto {
			next = code128Choose(runes, pos, active)
		}

		if next != active {
			if active == codeSetAuto {
				switch next {
				case codeSetA:
					emit(code128IdxStartA, "StartA", pattern.ClassStart)
				case codeSetB:
					emit(code128IdxStartB, "StartB", pattern.ClassStart)
				default:
					emit(code128IdxStartC, "StartC", pattern.ClassStart)
				}
				if gs1 {
					emit(code128IdxFNC1, "FNC1", pattern.ClassShift)
				}
			} else {
				switch next {
				case codeSetA:
					emit(code128IdxCodeA, "CodeA", pattern.ClassShift)
				case codeSetB:
					emit(code128IdxCodeB, "CodeB", pattern.ClassShift)
				default:
					emit(code128IdxCodeC, "CodeC", pattern.ClassShift)
				}
			}
			active = next
			continue
		}

		c := runes[pos]
		switch {
		case c == fnc1:
			emit(code128IdxFNC1, "FNC1", pattern.ClassShift)
			pos++
		case active == codeSetC:
			if pos+1 >= len(runes) || runes[pos+1] < '0' || runes[pos+1] > '9' {
				return nil, encodingErr(kind, value, "odd trailing digit at position %d for code set C", pos)
			}
			idx, err := strconv.Atoi(string(runes[pos : pos+2]))
			if err != nil {
				return nil, encodingErr(kind, value, "non-digit pair at position %d for code set C", pos)
			}
			emit(idx, string(runes[pos:pos+2]), pattern.ClassData)
			pos += 2
		case active == codeSetA:
			idx := int(c) - ' '
			if idx < 0 {
				idx = int(c) + 64
			}
			emit(idx, code128Name(idx, active), pattern.ClassData)
			pos++
		default:
			emit(int(c)-' ', string(c), pattern.ClassData)
			pos++
		}
	}

	check := indices[0]
	for i := 1; i < len(indices); i++ {
		check += indices[i] * i
	}
	check %= 103
	symbols = append(symbols, code128Symbol(check, code128Name(check, active), pattern.ClassCheck))
	symbols = append(symbols, code128Symbol(code128IdxStop, "Stop", pattern.ClassStop))

	return &pattern.Encoding{Symbols: symbols}, nil
}
