package ir

// Truth reports whether v is non-empty: true, a non-zero number, a
// non-empty string or a non-empty collection.  Tags are looked through.
func Truth(v *Value) bool {
	v = orNull(v.Untag())
	switch v.Type {
	case MappingType:
		return v.Mapping.Len() != 0
	case SequenceType:
		return len(v.Values) != 0
	case StringType:
		return v.String != ""
	case NumberType:
		if v.Number.IsNaN() {
			return false
		}
		f, _ := v.Number.AsFloat64()
		return f != 0
	case BoolType:
		return v.Bool
	default:
		return false
	}
}
