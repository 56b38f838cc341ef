// Package yml converts between Go values, generic [ir.Value] trees and
// YAML text.
//
// Decoding resolves plain scalars to null, booleans, integers and
// floats, rejects duplicate mapping keys and resolves aliases into
// copies of their anchored nodes.  Encoding writes the same model back
// so that decoding its output yields an equal value.
//
// Enums are Go interfaces registered with [WithEnums].  By default a
// unit variant is written as its name and other variants as a mapping
// with a single entry, the variant name:
//
//	Stopped
//	Moved:
//	  x: 1
//	  y: 2
//
// The tagged forms "!Stopped" and "!Moved {x: 1, y: 2}" are accepted
// as well and are written when [TaggedVariants] is set.
package yml

import (
	"bytes"
	"io"

	"github.com/signadot/go-yml/decode"
	"github.com/signadot/go-yml/encode"
	"github.com/signadot/go-yml/gomap"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/parse"
)

// Marshal returns the YAML encoding of v as a single document.
func Marshal(v any, opts ...Option) ([]byte, error) {
	return gomap.ToYAML(v, newConfig(opts).mapOptions()...)
}

// Unmarshal decodes the single YAML document in d into the value v
// points to.  Empty input decodes as null.
func Unmarshal(d []byte, v any, opts ...Option) error {
	return gomap.FromYAML(d, v, newConfig(opts).unmapOptions()...)
}

// UnmarshalAll decodes every document in d.
func UnmarshalAll[T any](d []byte, opts ...Option) ([]T, error) {
	cfg := newConfig(opts)
	docs, err := parse.ParseAll(d, cfg.parse...)
	if err != nil {
		return nil, err
	}
	res := make([]T, len(docs))
	for i, doc := range docs {
		if err := gomap.Decode(decode.New(doc, cfg.decode...), &res[i], cfg.unmapOptions()...); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// ParseValue decodes the single YAML document in d to a Value.
func ParseValue(d []byte, opts ...Option) (*ir.Value, error) {
	cfg := newConfig(opts)
	doc, err := parse.Parse(d, cfg.parse...)
	if err != nil {
		return nil, err
	}
	return decode.Value(decode.New(doc, cfg.decode...))
}

// ParseValues decodes every document in d to a Value.
func ParseValues(d []byte, opts ...Option) ([]*ir.Value, error) {
	cfg := newConfig(opts)
	docs, err := parse.ParseAll(d, cfg.parse...)
	if err != nil {
		return nil, err
	}
	res := make([]*ir.Value, len(docs))
	for i, doc := range docs {
		if res[i], err = decode.Value(decode.New(doc, cfg.decode...)); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// MarshalValue returns the YAML encoding of v.
func MarshalValue(v *ir.Value, opts ...Option) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := EncodeValues(buf, []*ir.Value{v}, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeValues writes vs to w, one document each.
func EncodeValues(w io.Writer, vs []*ir.Value, opts ...Option) error {
	enc := encode.NewWriter(w, newConfig(opts).encode...)
	for _, v := range vs {
		if err := enc.Value(v); err != nil {
			return err
		}
	}
	return enc.Close()
}

// ToValue converts v to a Value as if it were encoded and decoded.
func ToValue(v any, opts ...Option) (*ir.Value, error) {
	return gomap.ToValue(v, newConfig(opts).mapOptions()...)
}

// FromValue decodes val into the value v points to.
func FromValue(val *ir.Value, v any, opts ...Option) error {
	return gomap.FromValue(val, v, newConfig(opts).unmapOptions()...)
}
