package ir

// Get indexes v, looking through tags.  A string or *Value key selects a
// mapping entry and an int selects a sequence element or, on a mapping,
// the entry with that integer key.  Get returns nil when there is no
// such entry or v cannot be indexed.
func (v *Value) Get(key any) *Value {
	v = v.Untag()
	if v == nil {
		return nil
	}
	switch k := key.(type) {
	case int:
		switch v.Type {
		case SequenceType:
			if k < 0 || k >= len(v.Values) {
				return nil
			}
			return v.Values[k]
		case MappingType:
			return v.Mapping.Get(FromInt(int64(k)))
		}
	case string:
		if v.Type == MappingType {
			return v.Mapping.GetString(k)
		}
	case *Value:
		if v.Type == MappingType {
			return v.Mapping.Get(k)
		}
	}
	return nil
}
