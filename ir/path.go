package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// AppendField extends the path expression p with a mapping field.
func AppendField(p, field string) string {
	return p + "." + pathString(field)
}

// AppendIndex extends the path expression p with a sequence index.
func AppendIndex(p string, i int) string {
	return p + "[" + strconv.Itoa(i) + "]"
}

// Path is a parsed path expression such as "$.a[0]", "$.items[*].name"
// or "$..id".
type Path struct {
	IndexAll bool
	Index    *int
	Field    *string
	Subtree  bool
	Next     *Path
}

func (p *Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	prevSubtree := false
	for x := p; x != nil; x = x.Next {
		switch {
		case x.Subtree:
			buf.WriteString("..")
		case x.IndexAll:
			buf.WriteString("[*]")
		case x.Field != nil:
			if !prevSubtree {
				buf.WriteByte('.')
			}
			buf.WriteString(pathString(*x.Field))
		case x.Index != nil:
			fmt.Fprintf(buf, "[%d]", *x.Index)
		}
		prevSubtree = x.Subtree
	}
	return buf.String()
}

func ParsePath(p string) (*Path, error) {
	if len(p) == 0 || p[0] != '$' {
		return nil, fmt.Errorf("%w: %q should start with '$'", ErrPath, p)
	}
	root := &Path{}
	if len(p) == 1 {
		return root, nil
	}
	err := parseFrag(p[1:], root)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func parseFrag(frag string, parent *Path) error {
	if len(frag) == 0 {
		return nil
	}
	switch frag[0] {
	case '.':
		if len(frag) > 1 && frag[1] == '.' {
			parent.Subtree = true
			rest := frag[2:]
			if rest == "" {
				return nil
			}
			if rest[0] != '[' {
				rest = "." + rest
			}
			next := &Path{}
			err := parseFrag(rest, next)
			if err != nil {
				return err
			}
			parent.Next = next
			return nil
		}
		field, rest, err := parseField(frag[1:])
		if err != nil {
			return err
		}
		parent.Field = &field
		if len(rest) == 0 {
			return nil
		}
		next := &Path{}
		err = parseFrag(rest, next)
		if err != nil {
			return err
		}
		parent.Next = next
		return nil
	case '[':
		i := strings.IndexByte(frag[1:], ']')
		if i == -1 {
			return fmt.Errorf("%w: expected '[' <index> ']'", ErrPath)
		}
		index, all, err := parseIndex(frag[1 : i+1])
		if err != nil {
			return err
		}
		parent.IndexAll = all
		if !all {
			parent.Index = &index
		}
		if len(frag) == i+2 {
			return nil
		}
		next := &Path{}
		err = parseFrag(frag[i+2:], next)
		if err != nil {
			return err
		}
		parent.Next = next
		return nil
	default:
		return fmt.Errorf("%w: expected '.' or '['", ErrPath)
	}
}

func parseIndex(is string) (index int, all bool, err error) {
	if len(is) == 1 && is[0] == '*' {
		return 0, true, nil
	}
	u64, err := strconv.ParseUint(is, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return int(u64), false, nil
}

func parseField(frag string) (field, rest string, err error) {
	if len(frag) == 0 {
		return "", "", fmt.Errorf("%w: expected field at end of string", ErrPath)
	}
	if frag[0] != '\'' {
		i := strings.IndexAny(frag, ".[")
		if i == -1 {
			return frag, "", nil
		}
		return frag[:i], frag[i:], nil
	}
	escaped := false
	res := make([]byte, 0, len(frag))
	for i := 1; i < len(frag); i++ {
		c := frag[i]
		switch c {
		case '\\':
			escaped = true
		case '\'':
			if !escaped {
				return string(res), frag[i+1:], nil
			}
			fallthrough
		default:
			escaped = false
			res = append(res, c)
		}
	}
	return "", "", fmt.Errorf("%w: end of string scanning for \"'\"", ErrPath)
}

// GetPath returns the value at the path expression p, looking through
// tags, or nil if there is none.  Wildcards are not allowed.
func (v *Value) GetPath(p string) (*Value, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	res := v
	for ; yp != nil; yp = yp.Next {
		if yp.IndexAll {
			return nil, fmt.Errorf("%w: any index in get", ErrPath)
		}
		if yp.Subtree {
			return nil, fmt.Errorf("%w: recurse .. in get", ErrPath)
		}
		res = res.Untag()
		switch {
		case yp.Index != nil:
			if res == nil || res.Type != SequenceType {
				return nil, fmt.Errorf("expected sequence at index %d, got %s", *yp.Index, typeOf(res))
			}
			index := *yp.Index
			if index < 0 || index >= len(res.Values) {
				return nil, fmt.Errorf("index out of bounds %d (len %d)", index, len(res.Values))
			}
			res = res.Values[index]
		case yp.Field != nil:
			if res == nil || res.Type != MappingType {
				return nil, fmt.Errorf("expected mapping at field %q, got %s", *yp.Field, typeOf(res))
			}
			res = res.Mapping.GetString(*yp.Field)
			if res == nil {
				return nil, nil
			}
		}
	}
	return res, nil
}

func typeOf(v *Value) Type {
	if v == nil {
		return NullType
	}
	return v.Type
}

func pathString(f string) string {
	if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
		return f
	}
	return "'" + strings.Replace(f, "'", "\\'", -1) + "'"
}

// ListPath appends to dst every value matched by the path expression p,
// which may contain the [*] and .. wildcards.
func (v *Value) ListPath(dst []*Value, p string) ([]*Value, error) {
	yp, err := ParsePath(p)
	if err != nil {
		return nil, err
	}
	return v.listPath(dst, yp), nil
}

func (v *Value) listPath(dst []*Value, yp *Path) []*Value {
	if yp == nil {
		return append(dst, v)
	}
	if yp.Subtree {
		v.Walk(func(x *Value) bool {
			if x.Type == TaggedType || (x.Type.IsLeaf() && yp.Next != nil) {
				return true
			}
			dst = x.listPath(dst, yp.Next)
			return true
		})
		return dst
	}
	u := orNull(v.Untag())
	switch {
	case yp.Field != nil:
		if u.Type != MappingType {
			return dst
		}
		if e := u.Mapping.GetString(*yp.Field); e != nil {
			dst = e.listPath(dst, yp.Next)
		}
		return dst
	case yp.Index != nil:
		if u.Type != SequenceType {
			return dst
		}
		if idx := *yp.Index; 0 <= idx && idx < len(u.Values) {
			dst = u.Values[idx].listPath(dst, yp.Next)
		}
		return dst
	case yp.IndexAll:
		switch u.Type {
		case SequenceType:
			for _, e := range u.Values {
				dst = e.listPath(dst, yp.Next)
			}
		case MappingType:
			for e := range u.Mapping.Values() {
				dst = e.listPath(dst, yp.Next)
			}
		}
		return dst
	}
	return v.listPath(dst, yp.Next)
}

// Walk calls f on v and then on its descendants in document order,
// mapping keys included.  Returning false from f skips the descendants
// of that value.
func (v *Value) Walk(f func(*Value) bool) {
	v = orNull(v)
	if !f(v) {
		return
	}
	switch v.Type {
	case SequenceType:
		for _, e := range v.Values {
			e.Walk(f)
		}
	case MappingType:
		for k, e := range v.Mapping.All() {
			k.Walk(f)
			e.Walk(f)
		}
	case TaggedType:
		v.Tagged.Value.Walk(f)
	}
}
