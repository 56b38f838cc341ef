package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

// seed is shared so that equal values hash equally within a process.
var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of v consistent with Equal.
func (v *Value) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	v.hash(&h)
	return h.Sum64()
}

func (v *Value) hash(h *maphash.Hash) {
	v = orNull(v)
	var b [8]byte
	h.WriteByte(byte(v.Type))
	switch v.Type {
	case NullType:
	case BoolType:
		if v.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		n := v.Number
		h.WriteByte(byte(n.kind))
		var bits uint64
		switch n.kind {
		case intKind:
			bits = uint64(n.i)
		case uintKind:
			bits = n.u
		default:
			switch {
			case math.IsNaN(n.f):
				bits = math.Float64bits(math.NaN())
			case n.f == 0:
				// -0 == 0
			default:
				bits = math.Float64bits(n.f)
			}
		}
		binary.LittleEndian.PutUint64(b[:], bits)
		h.Write(b[:])
	case StringType:
		h.WriteString(v.String)
	case SequenceType:
		binary.LittleEndian.PutUint64(b[:], uint64(len(v.Values)))
		h.Write(b[:])
		for _, e := range v.Values {
			e.hash(h)
		}
	case MappingType:
		binary.LittleEndian.PutUint64(b[:], uint64(v.Mapping.Len()))
		h.Write(b[:])
		for k, e := range v.Mapping.All() {
			k.hash(h)
			e.hash(h)
		}
	case TaggedType:
		h.WriteString(v.Tagged.Tag.Nobang())
		h.WriteByte(0)
		v.Tagged.Value.hash(h)
	}
}
