package ir

import (
	"errors"
	"testing"
)

func kv(k string, v *Value) KeyVal {
	return KeyVal{Key: FromString(k), Val: v}
}

func TestApplyMerge(t *testing.T) {
	base := FromKeyVals([]KeyVal{kv("x", FromInt(1)), kv("y", FromInt(2))})
	over := FromKeyVals([]KeyVal{kv("y", FromInt(3)), kv("z", FromInt(4))})
	tests := []struct {
		name string
		in   *Value
		want *Value
	}{
		{
			name: "single",
			in:   FromKeyVals([]KeyVal{kv("<<", base.Clone()), kv("x", FromInt(9))}),
			want: FromKeyVals([]KeyVal{kv("x", FromInt(9)), kv("y", FromInt(2))}),
		},
		{
			name: "list",
			in:   FromKeyVals([]KeyVal{kv("<<", FromSlice([]*Value{over.Clone(), base.Clone()}))}),
			want: FromKeyVals([]KeyVal{kv("y", FromInt(3)), kv("z", FromInt(4)), kv("x", FromInt(1))}),
		},
		{
			name: "nested",
			in:   FromSlice([]*Value{FromKeyVals([]KeyVal{kv("a", FromKeyVals([]KeyVal{kv("<<", base.Clone())}))})}),
			want: FromSlice([]*Value{FromKeyVals([]KeyVal{kv("a", base.Clone())})}),
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.in.ApplyMerge(); err != nil {
				t.Fatal(err)
			}
			if !Equal(tc.in, tc.want) {
				t.Errorf("got %s", mustJSON(t, tc.in))
			}
		})
	}
}

func TestApplyMergeErrors(t *testing.T) {
	for _, in := range []*Value{
		FromKeyVals([]KeyVal{kv("<<", FromInt(1))}),
		FromKeyVals([]KeyVal{kv("<<", FromSlice([]*Value{FromSlice(nil)}))}),
		FromKeyVals([]KeyVal{kv("<<", FromTagged("!m", FromKeyVals(nil)))}),
	} {
		if err := in.ApplyMerge(); !errors.Is(err, ErrMerge) {
			t.Errorf("got %v", err)
		}
	}
}
