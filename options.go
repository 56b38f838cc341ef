package yml

import (
	"github.com/signadot/go-yml/decode"
	"github.com/signadot/go-yml/encode"
	"github.com/signadot/go-yml/gomap"
	"github.com/signadot/go-yml/parse"
	"github.com/signadot/go-yml/token"
)

// Option configures the functions of this package.  Options for a
// stage a call does not run are ignored.
type Option func(*config)

type config struct {
	parse  []parse.ParseOption
	decode []decode.DecodeOption
	encode []encode.EncodeOption
	mapper []gomap.MapOption
	unmap  []gomap.UnmapOption
}

func newConfig(opts []Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (c *config) mapOptions() []gomap.MapOption {
	return append([]gomap.MapOption{gomap.EncodeOptions(c.encode...)}, c.mapper...)
}

func (c *config) unmapOptions() []gomap.UnmapOption {
	return append([]gomap.UnmapOption{
		gomap.ParseOptions(c.parse...),
		gomap.DecodeOptions(c.decode...),
	}, c.unmap...)
}

func ParseOptions(opts ...parse.ParseOption) Option {
	return func(c *config) { c.parse = append(c.parse, opts...) }
}

func DecodeOptions(opts ...decode.DecodeOption) Option {
	return func(c *config) { c.decode = append(c.decode, opts...) }
}

func EncodeOptions(opts ...encode.EncodeOption) Option {
	return func(c *config) { c.encode = append(c.encode, opts...) }
}

// WithEnums registers enums for both directions.
func WithEnums(enums ...*gomap.Enum) Option {
	return func(c *config) {
		o := gomap.WithEnums(enums...)
		c.mapper = append(c.mapper, o)
		c.unmap = append(c.unmap, o)
	}
}

// DisallowUnknownFields makes mapping keys that match no struct field
// an error.
func DisallowUnknownFields() Option {
	return func(c *config) { c.unmap = append(c.unmap, gomap.DisallowUnknownFields()) }
}

// CoreBools resolves only true and false as booleans.
func CoreBools() Option {
	return DecodeOptions(decode.DecodeBoolLiterals(token.Core))
}

// MergeKeys applies "<<" merge keys to decoded Values.
func MergeKeys() Option {
	return DecodeOptions(decode.DecodeMergeKeys(true))
}

// RecursionLimit bounds the nesting depth accepted by the loader and
// the decoder.
func RecursionLimit(n int) Option {
	return func(c *config) {
		c.parse = append(c.parse, parse.ParseRecursionLimit(n))
		c.decode = append(c.decode, decode.DecodeRecursionLimit(n))
	}
}

// TaggedVariants writes enum variants as tagged values instead of
// singleton maps.
func TaggedVariants() Option {
	return EncodeOptions(encode.VariantTags(true))
}
