// Package stream provides the YAML event vocabulary together with event
// sources and sinks.
//
// A [Reader] turns YAML text into events using the goccy/go-yaml parser
// and a [NodeReader] does the same, one document at a time, with
// gopkg.in/yaml.v3.  A [Writer] turns events back into YAML text.
// [State] tracks the structural context of an event stream and rejects
// events out of order; the Writer and the encoder share it.
//
// Events carry scalars as raw text with their style.  Typing scalars is
// left to the decoder.
package stream
