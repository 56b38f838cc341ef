package ir

import "strings"

// Tag is a YAML tag as written, for example "!Point" or
// "tag:yaml.org,2002:str".
type Tag string

const (
	CoreNull  Tag = "tag:yaml.org,2002:null"
	CoreBool  Tag = "tag:yaml.org,2002:bool"
	CoreInt   Tag = "tag:yaml.org,2002:int"
	CoreFloat Tag = "tag:yaml.org,2002:float"
	CoreStr   Tag = "tag:yaml.org,2002:str"
	CoreSeq   Tag = "tag:yaml.org,2002:seq"
	CoreMap   Tag = "tag:yaml.org,2002:map"

	corePrefix = "tag:yaml.org,2002:"
)

// Nobang returns t without one leading '!'.
func (t Tag) Nobang() string {
	return strings.TrimPrefix(string(t), "!")
}

// Equal compares tags by their nobang form.
func (t Tag) Equal(o Tag) bool {
	return t.Nobang() == o.Nobang()
}

// Core normalizes the shorthand "!!x" to the expanded core form.
func (t Tag) Core() Tag {
	if strings.HasPrefix(string(t), "!!") {
		return Tag(corePrefix + string(t[2:]))
	}
	return t
}

// IsCore reports whether t is in the core schema namespace, written
// either expanded or with the "!!" shorthand.
func (t Tag) IsCore() bool {
	return strings.HasPrefix(string(t.Core()), corePrefix)
}

func (t Tag) String() string {
	return string(t)
}

type TaggedValue struct {
	Tag   Tag
	Value *Value
}

func (tv *TaggedValue) Equal(o *TaggedValue) bool {
	return tv.Tag.Equal(o.Tag) && Equal(tv.Value, o.Value)
}
