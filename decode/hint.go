package decode

import "fmt"

// Hint tells a Deserializer what shape the caller expects.
type Hint int

const (
	HintAny Hint = iota
	HintBool
	HintInt
	HintUint
	HintFloat
	HintString
	HintBytes
	HintUnit
	HintOption
	HintSeq
	HintTuple
	HintMap
	HintStruct
	HintIdentifier
)

var hintNames = map[Hint]string{
	HintAny:        "any",
	HintBool:       "bool",
	HintInt:        "int",
	HintUint:       "uint",
	HintFloat:      "float",
	HintString:     "string",
	HintBytes:      "bytes",
	HintUnit:       "unit",
	HintOption:     "option",
	HintSeq:        "seq",
	HintTuple:      "tuple",
	HintMap:        "map",
	HintStruct:     "struct",
	HintIdentifier: "identifier",
}

func (h Hint) String() string {
	if s, ok := hintNames[h]; ok {
		return s
	}
	return "<unknown hint>"
}

func (h Hint) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hint) UnmarshalText(d []byte) error {
	for k, v := range hintNames {
		if v == string(d) {
			*h = k
			return nil
		}
	}
	return fmt.Errorf("unrecognized hint %q", d)
}

// textual reports whether h takes the text of any scalar as is.
func (h Hint) textual() bool {
	return h == HintString || h == HintBytes || h == HintIdentifier
}
