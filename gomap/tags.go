package gomap

import (
	"fmt"
	"reflect"
	"strings"
)

// fieldInfo holds field metadata extracted from struct tags
type fieldInfo struct {
	// Name is the key the field is written under
	Name      string
	Index     []int
	OmitEmpty bool
}

type structInfo struct {
	fields []fieldInfo
	byName map[string]int
	// inlineMap is the index of an inline map field, or nil
	inlineMap []int
}

// parseTag splits a `yaml:"name,flag,..."` tag.
func parseTag(tag string) (name string, flags map[string]bool) {
	parts := strings.Split(tag, ",")
	flags = map[string]bool{}
	for _, p := range parts[1:] {
		flags[strings.TrimSpace(p)] = true
	}
	return parts[0], flags
}

func getStructInfo(t reflect.Type) (*structInfo, error) {
	si := &structInfo{byName: map[string]int{}}
	if err := si.add(t, nil); err != nil {
		return nil, err
	}
	return si, nil
}

func (si *structInfo) add(t reflect.Type, index []int) error {
	for i := range t.NumField() {
		f := t.Field(i)
		tag, hasTag := f.Tag.Lookup("yaml")
		if tag == "-" {
			continue
		}
		name, flags := parseTag(tag)
		inline := flags["inline"] || (f.Anonymous && !hasTag && f.Type.Kind() == reflect.Struct)
		if !f.IsExported() && !(inline && f.Anonymous) {
			continue
		}
		idx := append(append([]int(nil), index...), i)
		if inline {
			switch f.Type.Kind() {
			case reflect.Struct:
				if err := si.add(f.Type, idx); err != nil {
					return err
				}
			case reflect.Map:
				if si.inlineMap != nil {
					return fmt.Errorf("%s: multiple inline maps", t)
				}
				if f.Type.Key().Kind() != reflect.String {
					return fmt.Errorf("%s: inline map %s must have string keys", t, f.Name)
				}
				si.inlineMap = idx
			default:
				return fmt.Errorf("%s: field %s of type %s cannot be inline", t, f.Name, f.Type)
			}
			continue
		}
		if name == "" {
			name = f.Name
		}
		if _, dup := si.byName[name]; dup {
			return fmt.Errorf("%s: duplicate field name %q", t, name)
		}
		si.byName[name] = len(si.fields)
		si.fields = append(si.fields, fieldInfo{Name: name, Index: idx, OmitEmpty: flags["omitempty"]})
	}
	return nil
}

func (si *structInfo) names() []string {
	res := make([]string, len(si.fields))
	for i := range si.fields {
		res[i] = si.fields[i].Name
	}
	return res
}
