package ir

import "fmt"

// MergeKey is the key whose value is merged into its enclosing mapping.
const MergeKey = "<<"

// ApplyMerge resolves "<<" merge keys everywhere under v.  The value of
// a merge key is a mapping or a sequence of mappings; its entries are
// added to the enclosing mapping unless the key is already present, and
// earlier mappings of a sequence take precedence over later ones.
func (v *Value) ApplyMerge() error {
	stack := []*Value{v}
	mk := FromString(MergeKey)
	for len(stack) > 0 {
		x := orNull(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		switch x.Type {
		case MappingType:
			if merge := x.Mapping.Remove(mk); merge != nil {
				if err := mergeInto(x.Mapping, merge); err != nil {
					return err
				}
			}
			for k, e := range x.Mapping.All() {
				stack = append(stack, k, e)
			}
		case SequenceType:
			stack = append(stack, x.Values...)
		case TaggedType:
			stack = append(stack, x.Tagged.Value)
		}
	}
	return nil
}

func mergeInto(m *Mapping, merge *Value) error {
	switch merge.Type {
	case MappingType:
		for k, e := range merge.Mapping.All() {
			m.Entry(k.Clone()).OrInsert(e.Clone())
		}
		return nil
	case SequenceType:
		for _, elt := range merge.Values {
			switch elt.Type {
			case MappingType:
				for k, e := range elt.Mapping.All() {
					m.Entry(k.Clone()).OrInsert(e.Clone())
				}
			case SequenceType:
				return fmt.Errorf("%w: expected a mapping for merging, but found sequence", ErrMerge)
			case TaggedType:
				return fmt.Errorf("%w: unexpected tagged value in merge", ErrMerge)
			default:
				return fmt.Errorf("%w: expected a mapping for merging, but found scalar", ErrMerge)
			}
		}
		return nil
	case TaggedType:
		return fmt.Errorf("%w: unexpected tagged value in merge", ErrMerge)
	default:
		return fmt.Errorf("%w: expected a mapping or list of mappings for merging, but found scalar", ErrMerge)
	}
}
