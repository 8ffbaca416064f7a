// Package symbology implements the linear barcode encoding engines. Each
// encoder turns an input string into a validated, checksummed sequence of
// bar/space modules (a pattern.Encoding); pixel concerns live elsewhere.
package symbology

import (
	"fmt"

	"go-barcode-engine/internal/pattern"
)

// Kind identifies a concrete symbology. The set is closed: Encode dispatches
// over every value and anything else is rejected.
type Kind int

const (
	Code128 Kind = iota // code set chosen dynamically per run
	Code128A
	Code128B
	Code128C
	GS1128
	Code39
	Code39Checksum
	Code39FullASCII
	Code39FullASCIIChecksum
	Interleaved2of5
	Interleaved2of5Checksum
	EAN13
	EAN8
	UPCA
)

var kindNames = map[Kind]string{
	Code128:                 "code128",
	Code128A:                "code128a",
	Code128B:                "code128b",
	Code128C:                "code128c",
	GS1128:                  "gs1-128",
	Code39:                  "code39",
	Code39Checksum:          "code39-checksum",
	Code39FullASCII:         "code39-full-ascii",
	Code39FullASCIIChecksum: "code39-full-ascii-checksum",
	Interleaved2of5:         "interleaved2of5",
	Interleaved2of5Checksum: "interleaved2of5-checksum",
	EAN13:                   "ean13",
	EAN8:                    "ean8",
	UPCA:                    "upca",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("symbology(%d)", int(k))
}

// ParseKind maps a symbology name, as used by the HTTP API and CLI, to its
// Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown symbology %q", name)
}

// EncodingError reports input that the selected symbology cannot encode:
// characters outside its alphabet or a length that violates a fixed-length
// family.
type EncodingError struct {
	Symbology string
	Value     string
	Reason    string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot encode %q as %s: %s", e.Value, e.Symbology, e.Reason)
}

func encodingErr(kind Kind, value, format string, args ...interface{}) error {
	return &EncodingError{
		Symbology: kind.String(),
		Value:     value,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// Encode runs the encoder for the given symbology. The returned Encoding is
// freshly built on every call and owned by the caller.
func Encode(kind Kind, value string) (*pattern.Encoding, error) {
	if value == "" {
		return nil, encodingErr(kind, value, "value is empty")
	}
	switch kind {
	case Code128:
		return encodeCode128(kind, value, codeSetAuto, false)
	case Code128A:
		return encodeCode128(kind, value, codeSetA, false)
	case Code128B:
		return encodeCode128(kind, value, codeSetB, false)
	case Code128C:
		return encodeCode128(kind, value, codeSetC, false)
	case GS1128:
		return encodeGS1128(value)
	case Code39:
		return encodeCode39(kind, value, false, false)
	case Code39Checksum:
		return encodeCode39(kind, value, false, true)
	case Code39FullASCII:
		return encodeCode39(kind, value, true, false)
	case Code39FullASCIIChecksum:
		return encodeCode39(kind, value, true, true)
	case Interleaved2of5:
		return encodeITF(kind, value, false)
	case Interleaved2of5Checksum:
		return encodeITF(kind, value, true)
	case EAN13:
		return encodeEAN13(kind, value)
	case EAN8:
		return encodeEAN8(value)
	case UPCA:
		return encodeUPCA(value)
	default:
		return nil, fmt.Errorf("unsupported symbology %s", kind)
	}
}

// IsEANFamily reports whether the symbology belongs to the EAN/UPC retail
// family, which forces quiet zones on and symbol-aligned labels.
func (k Kind) IsEANFamily() bool {
	switch k {
	case EAN13, EAN8, UPCA:
		return true
	}
	return false
}
