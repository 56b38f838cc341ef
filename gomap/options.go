package gomap

import (
	"github.com/signadot/go-yml/decode"
	"github.com/signadot/go-yml/encode"
	"github.com/signadot/go-yml/parse"
)

// MapOption is an option for controlling the mapping process from Go to YAML.
type MapOption interface {
	applyMap(*mapConfig)
}

// UnmapOption is an option for controlling the unmapping process from YAML to Go.
type UnmapOption interface {
	applyUnmap(*unmapConfig)
}

// Option is both a MapOption and an UnmapOption.
type Option interface {
	MapOption
	UnmapOption
}

type mapConfig struct {
	// EncodeOptions to pass through to the encoder
	EncodeOptions []encode.EncodeOption
	enums         []*Enum
}

type unmapConfig struct {
	ParseOptions  []parse.ParseOption
	DecodeOptions []decode.DecodeOption

	disallowUnknown bool
	enums           []*Enum
}

func newMapConfig(opts []MapOption) *mapConfig {
	cfg := &mapConfig{}
	for _, opt := range opts {
		opt.applyMap(cfg)
	}
	return cfg
}

func newUnmapConfig(opts []UnmapOption) *unmapConfig {
	cfg := &unmapConfig{}
	for _, opt := range opts {
		opt.applyUnmap(cfg)
	}
	return cfg
}

type encodeOptions []encode.EncodeOption

func (o encodeOptions) applyMap(c *mapConfig) {
	c.EncodeOptions = append(c.EncodeOptions, o...)
}

// EncodeOptions passes options to the encoder.
func EncodeOptions(opts ...encode.EncodeOption) MapOption {
	return encodeOptions(opts)
}

type parseOptions []parse.ParseOption

func (o parseOptions) applyUnmap(c *unmapConfig) {
	c.ParseOptions = append(c.ParseOptions, o...)
}

func ParseOptions(opts ...parse.ParseOption) UnmapOption {
	return parseOptions(opts)
}

type decodeOptions []decode.DecodeOption

func (o decodeOptions) applyUnmap(c *unmapConfig) {
	c.DecodeOptions = append(c.DecodeOptions, o...)
}

func DecodeOptions(opts ...decode.DecodeOption) UnmapOption {
	return decodeOptions(opts)
}

type disallowUnknown struct{}

func (disallowUnknown) applyUnmap(c *unmapConfig) {
	c.disallowUnknown = true
}

// DisallowUnknownFields makes mapping keys that name no struct field
// an error.
func DisallowUnknownFields() UnmapOption {
	return disallowUnknown{}
}

type enumsOption []*Enum

func (o enumsOption) applyMap(c *mapConfig) {
	c.enums = append(c.enums, o...)
}

func (o enumsOption) applyUnmap(c *unmapConfig) {
	c.enums = append(c.enums, o...)
}

// WithEnums registers enums for both directions.
func WithEnums(es ...*Enum) Option {
	return enumsOption(es)
}
