// Package decode drives visitor style decoding of YAML documents.
//
// A [Deserializer] is a cursor on one node.  The caller asks it for a
// value under a [Hint] and it reports what it finds to a [Visitor].
// Plain scalars are typed under the self describing hints; quoted and
// block scalars are always strings.  Aliases are followed on every
// visit so that decoded values never share structure.
package decode

import (
	"github.com/signadot/go-yml/token"
	"github.com/signadot/go-yml/variant"
	"github.com/signadot/go-yml/yamlerr"
)

// DefaultRecursionLimit bounds the number of nested descents, alias
// jumps included.
const DefaultRecursionLimit = 128

type Deserializer interface {
	Deserialize(h Hint, v Visitor) error
	DeserializeEnum(t *variant.Table, v Visitor) error

	// IsNull reports whether the node is null under the self
	// describing typing.
	IsNull() bool
	Location() *yamlerr.Location
	Path() string

	// Fail returns err as an error of kind located at this node.
	Fail(kind yamlerr.Kind, err error) error
}

type decodeOpts struct {
	bools token.BoolLiterals
	limit int
	merge bool
}

func newDecodeOpts(opts []DecodeOption) *decodeOpts {
	res := &decodeOpts{bools: token.YAML11, limit: DefaultRecursionLimit}
	for _, f := range opts {
		f(res)
	}
	return res
}

type DecodeOption func(*decodeOpts)

// DecodeBoolLiterals selects the plain scalars read as booleans.  The
// default accepts yes/no/on/off as well as true/false.
func DecodeBoolLiterals(b token.BoolLiterals) DecodeOption {
	return func(o *decodeOpts) { o.bools = b }
}

func DecodeRecursionLimit(n int) DecodeOption {
	return func(o *decodeOpts) { o.limit = n }
}

// DecodeMergeKeys applies "<<" merge keys when decoding to a Value.
func DecodeMergeKeys(v bool) DecodeOption {
	return func(o *decodeOpts) { o.merge = v }
}

type optioner interface {
	options() *decodeOpts
}

func fail(d Deserializer, kind yamlerr.Kind, err error) error {
	if err == nil {
		return nil
	}
	return yamlerr.Wrap(kind, err).WithLocation(d.Location()).WithPath(d.Path())
}

func tooDeep(d Deserializer, limit int) error {
	return fail(d, yamlerr.RecursionLimitExceeded,
		yamlerr.Newf(yamlerr.RecursionLimitExceeded, "recursion limit of %d exceeded", limit))
}
