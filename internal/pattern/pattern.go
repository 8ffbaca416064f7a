package pattern

// ModuleKind distinguishes bars from spaces.
type ModuleKind int

const (
	Bar ModuleKind = iota
	Space
)

// Module is the smallest unit of a linear barcode: one bar or space with a
// width measured in narrow-bar units, not pixels.
type Module struct {
	Kind  ModuleKind
	Width int
}

// SymbolClass tags what role a symbol plays in the encoding. The layout
// engine renders non-data symbols inverted in the raw-encoding strip.
type SymbolClass int

const (
	ClassData SymbolClass = iota
	ClassStart
	ClassStop
	ClassCheck
	ClassShift
	ClassGuard
)

// Symbol is one encoded character: the character it displays, its class and
// the ordered bar/space modules that make it up. Symbols are immutable once
// produced by an encoder.
type Symbol struct {
	Char    string
	Class   SymbolClass
	Modules []Module
}

// Width returns the symbol's total width in narrow-bar units.
func (s Symbol) Width() int {
	w := 0
	for _, m := range s.Modules {
		w += m.Width
	}
	return w
}

// Encoding is the ordered symbol sequence produced by a symbology encoder.
// Prefix and Suffix carry human-readable text that must be rendered outside
// the bar area (EAN-13 leading digit, UPC-A number-system and check digits).
// An Encoding is produced fresh on every encode call and is read-only to the
// layout engine.
type Encoding struct {
	Symbols []Symbol
	Prefix  string
	Suffix  string
}

// MinimumWidth returns the sum of all symbol widths in narrow-bar units, the
// narrowest the barcode can be drawn.
func (e *Encoding) MinimumWidth() int {
	w := 0
	for _, s := range e.Symbols {
		w += s.Width()
	}
	return w
}

// WidestSymbol returns the width of the widest single symbol, used when
// sizing symbol-aligned label text.
func (e *Encoding) WidestSymbol() int {
	max := 0
	for _, s := range e.Symbols {
		if w := s.Width(); w > max {
			max = w
		}
	}
	return max
}

// Modules flattens the symbol sequence into one module slice.
func (e *Encoding) Modules() []Module {
	var out []Module
	for _, s := range e.Symbols {
		out = append(out, s.Modules...)
	}
	return out
}

// NewSymbol builds a symbol from alternating widths, starting with a bar.
// A zero width is skipped, which lets tables encode trailing gaps optionally.
func NewSymbol(char string, class SymbolClass, widths ...int) Symbol {
	return newSymbol(char, class, Bar, widths)
}

// NewSpaceFirstSymbol builds a symbol whose first module is a space, as used
// by the left half of EAN/UPC digit patterns.
func NewSpaceFirstSymbol(char string, class SymbolClass, widths ...int) Symbol {
	return newSymbol(char, class, Space, widths)
}

func newSymbol(char string, class SymbolClass, kind ModuleKind, widths []int) Symbol {
	s := Symbol{Char: char, Class: class}
	for _, w := range widths {
		if w > 0 {
			s.Modules = append(s.Modules, Module{Kind: kind, Width: w})
		}
		if kind == Bar {
			kind = Space
		} else {
			kind = Bar
		}
	}
	return s
}
