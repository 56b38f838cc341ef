package yml

import (
	"io"

	"github.com/signadot/go-yml/decode"
	"github.com/signadot/go-yml/encode"
	"github.com/signadot/go-yml/gomap"
	"github.com/signadot/go-yml/ir"
	"github.com/signadot/go-yml/parse"
	"github.com/signadot/go-yml/stream"
)

// Decoder reads successive documents from a stream.  Input is consumed
// one document at a time.
type Decoder struct {
	l   *parse.Loader
	cfg *config
}

func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	cfg := newConfig(opts)
	return &Decoder{l: parse.NewLoader(stream.NewNodeReader(r), cfg.parse...), cfg: cfg}
}

// Decode reads the next document into the value v points to.  It
// returns io.EOF when the stream has no more documents.
func (d *Decoder) Decode(v any) error {
	doc, err := d.l.Next()
	if err != nil {
		return err
	}
	return gomap.Decode(decode.New(doc, d.cfg.decode...), v, d.cfg.unmapOptions()...)
}

// DecodeValue reads the next document as a Value.
func (d *Decoder) DecodeValue() (*ir.Value, error) {
	doc, err := d.l.Next()
	if err != nil {
		return nil, err
	}
	return decode.Value(decode.New(doc, d.cfg.decode...))
}

// Encoder writes one document per call to Encode.  Close must be
// called to end the stream.
type Encoder struct {
	enc *encode.Encoder
	cfg *config
}

func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	cfg := newConfig(opts)
	return &Encoder{enc: encode.NewWriter(w, cfg.encode...), cfg: cfg}
}

func (e *Encoder) Encode(v any) error {
	return gomap.Encode(e.enc, v, e.cfg.mapOptions()...)
}

func (e *Encoder) EncodeValue(v *ir.Value) error {
	return e.enc.Value(v)
}

func (e *Encoder) Close() error {
	return e.enc.Close()
}
