package ir

import (
	"fmt"

	json "github.com/goccy/go-json"
)

type irEntry struct {
	Key   *Value `json:"key"`
	Value *Value `json:"value"`
}

type irBase struct {
	Type    Type      `json:"type"`
	Number  string    `json:"number,omitempty"`
	Values  []*Value  `json:"values,omitempty"`
	Entries []irEntry `json:"entries,omitempty"`
	Tag     Tag       `json:"tag,omitempty"`
	Value   *Value    `json:"value,omitempty"`
}

// MarshalJSON writes the value tree dump format, which keeps types,
// numeric kinds, key order and tags.
func (v *Value) MarshalJSON() ([]byte, error) {
	base := &irBase{Type: v.Type}
	switch v.Type {
	case StringType:
		type C struct {
			irBase
			String string `json:"string"`
		}
		return json.Marshal(C{irBase: *base, String: v.String})
	case BoolType:
		type C struct {
			irBase
			Bool bool `json:"bool"`
		}
		return json.Marshal(C{irBase: *base, Bool: v.Bool})
	case NumberType:
		base.Number = v.Number.String()
	case SequenceType:
		base.Values = v.Values
		if base.Values == nil {
			base.Values = []*Value{}
		}
	case MappingType:
		base.Entries = make([]irEntry, 0, v.Mapping.Len())
		for k, e := range v.Mapping.All() {
			base.Entries = append(base.Entries, irEntry{Key: k, Value: e})
		}
	case TaggedType:
		base.Tag = v.Tagged.Tag
		base.Value = v.Tagged.Value
	}
	return json.Marshal(base)
}

func (v *Value) UnmarshalJSON(d []byte) error {
	type C struct {
		irBase
		String string `json:"string"`
		Bool   bool   `json:"bool"`
	}
	tmp := &C{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	*v = Value{Type: tmp.Type}
	switch tmp.Type {
	case NullType:
	case BoolType:
		v.Bool = tmp.Bool
	case StringType:
		v.String = tmp.String
	case NumberType:
		n, err := ParseNumber(tmp.Number)
		if err != nil {
			return err
		}
		v.Number = n
	case SequenceType:
		v.Values = tmp.Values
		if v.Values == nil {
			v.Values = []*Value{}
		}
	case MappingType:
		v.Mapping = NewMapping()
		for _, e := range tmp.Entries {
			if err := v.Mapping.Insert(nonNil(e.Key), nonNil(e.Value)); err != nil {
				return err
			}
		}
	case TaggedType:
		if tmp.Tag == "" {
			return fmt.Errorf("tagged value without tag")
		}
		v.Tagged = &TaggedValue{Tag: tmp.Tag, Value: nonNil(tmp.Value)}
	}
	return nil
}

func nonNil(v *Value) *Value {
	if v == nil {
		return Null()
	}
	return v
}
