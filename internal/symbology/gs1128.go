package symbology

import (
	"strings"

	"go-barcode-engine/internal/pattern"
)

// gs1Segment is one parsed "(AI)data" element of a GS1-128 value.
type gs1Segment struct {
	ai   string
	data string
}

// parseGS1 splits a value of the form "(01)09501101530003(17)261231" into
// its application-identifier segments. AIs are 2 to 4 digits and every
// segment must carry data.
func parseGS1(value string) ([]gs1Segment, error) {
	var segments []gs1Segment
	rest := value
	for len(rest) > 0 {
		if rest[0] != '(' {
			return nil, encodingErr(GS1128, value, "expected '(' at the start of an application identifier")
		}
		close := strings.IndexByte(rest, ')')
		if close < 0 {
			return nil, encodingErr(GS1128, value, "unterminated application identifier")
		}
		ai := rest[1:close]
		if len(ai) < 2 || len(ai) > 4 {
			return nil, encodingErr(GS1128, value, "application identifier must be 2 to 4 digits, got %q", ai)
		}
		for i := 0; i < len(ai); i++ {
			if ai[i] < '0' || ai[i] > '9' {
				return nil, encodingErr(GS1128, value, "application identifier must be numeric, got %q", ai)
			}
		}
		rest = rest[close+1:]
		end := strings.IndexByte(rest, '(')
		if end < 0 {
			end = len(rest)
		}
		data := rest[:end]
		if data == "" {
			return nil, encodingErr(GS1128, value, "application identifier %q has no data", ai)
		}
		segments = append(segments, gs1Segment{ai: ai, data: data})
		rest = rest[end:]
	}
	if len(segments) == 0 {
		return nil, encodingErr(GS1128, value, "no application identifier segments")
	}
	return segments, nil
}

// encodeGS1128 validates the parenthesized AI segments, then encodes them as
// Code 128 with FNC1 after the Start symbol and FNC1 separators between
// segments. The parenthesized form stays available as the human-readable
// label via the service layer.
func encodeGS1128(value string) (*pattern.Encoding, error) {
	segments, err := parseGS1(value)
	if err != nil {
		return nil, err
	}
	var raw strings.Builder
	for i, seg := range segments {
		if i > 0 {
			raw.WriteRune(fnc1)
		}
		raw.WriteString(seg.ai)
		raw.WriteString(seg.data)
	}
	return encodeCode128(GS1128, raw.String(), codeSetAuto, true)
}
