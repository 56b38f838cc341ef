package ir

import (
	"errors"
	"fmt"
)

var (
	ErrMerge = errors.New("invalid merge")
	ErrPath  = errors.New("invalid path")
)

// DuplicateKeyError is returned by strict mapping insertion when the
// key is already present.
type DuplicateKeyError struct {
	Key *Value
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate entry with key " + describeKey(e.Key)
}

func describeKey(k *Value) string {
	if k == nil {
		return "null"
	}
	switch k.Type {
	case StringType:
		return fmt.Sprintf("%q", k.String)
	case NumberType:
		return k.Number.String()
	case BoolType:
		if k.Bool {
			return "true"
		}
		return "false"
	case NullType:
		return "null"
	case TaggedType:
		return string(k.Tagged.Tag) + " " + describeKey(k.Tagged.Value)
	default:
		return "of type " + k.Type.String()
	}
}
