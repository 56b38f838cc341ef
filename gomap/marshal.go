package gomap

import (
	"bytes"

	"github.com/signadot/go-yml/decode"
	"github.com/signadot/go-yml/encode"
	"github.com/signadot/go-yml/parse"
)

// ToYAML encodes v as a single YAML document.
func ToYAML(v any, opts ...MapOption) ([]byte, error) {
	cfg := newMapConfig(opts)
	buf := bytes.NewBuffer(nil)
	enc := encode.NewWriter(buf, cfg.EncodeOptions...)
	if err := Encode(enc, v, opts...); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromYAML decodes the single YAML document in d into the value v
// points to.
func FromYAML(d []byte, v any, opts ...UnmapOption) error {
	cfg := newUnmapConfig(opts)
	doc, err := parse.Parse(d, cfg.ParseOptions...)
	if err != nil {
		return err
	}
	return Decode(decode.New(doc, cfg.DecodeOptions...), v, opts...)
}
