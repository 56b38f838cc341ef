package ir

import (
	"errors"
	"testing"
)

func keys(m *Mapping) []string {
	var res []string
	for k := range m.Keys() {
		res = append(res, keyText(k))
	}
	return res
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMappingInsert(t *testing.T) {
	m := NewMapping()
	if err := m.Insert(FromString("a"), FromInt(1)); err != nil {
		t.Fatal(err)
	}
	if err := m.Insert(FromInt(1), FromInt(2)); err != nil {
		t.Fatal(err)
	}
	err := m.Insert(FromString("a"), FromInt(3))
	var dk *DuplicateKeyError
	if !errors.As(err, &dk) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if err.Error() != `duplicate entry with key "a"` {
		t.Errorf("got %q", err.Error())
	}
	// uint and int keys with the same value collide
	if err := m.Insert(FromUint(1), Null()); err == nil {
		t.Errorf("expected duplicate for 1")
	}
	if got := m.GetString("a"); !Equal(got, FromInt(1)) {
		t.Errorf("got %v", got)
	}
	if !m.Contains(FromInt(1)) || m.Contains(FromString("1")) {
		t.Errorf("contains mismatch")
	}
}

func TestMappingSetRemove(t *testing.T) {
	m := NewMapping()
	for _, k := range []string{"a", "b", "c", "d"} {
		m.Set(FromString(k), FromString(k))
	}
	prior, replaced := m.Set(FromString("b"), FromInt(2))
	if !replaced || prior.String != "b" {
		t.Errorf("got %v %v", prior, replaced)
	}
	if got := keys(m); !sameStrings(got, []string{"a", "b", "c", "d"}) {
		t.Errorf("order after set: %v", got)
	}
	if v := m.Remove(FromString("b")); !Equal(v, FromInt(2)) {
		t.Errorf("removed %v", v)
	}
	if got := keys(m); !sameStrings(got, []string{"a", "c", "d"}) {
		t.Errorf("order after remove: %v", got)
	}
	if m.GetString("d") == nil || m.GetString("b") != nil {
		t.Errorf("index stale after remove")
	}
}

func TestMappingRemoveKeepsIndex(t *testing.T) {
	m := NewMapping()
	for i := range 40 {
		m.Set(FromInt(int64(i)), FromInt(int64(i*10)))
	}
	for _, k := range []int64{0, 39, 17, 18, 5} {
		if m.Remove(FromInt(k)) == nil {
			t.Fatalf("remove %d: not found", k)
		}
	}
	if m.Len() != 35 {
		t.Fatalf("len %d", m.Len())
	}
	for i := range m.Len() {
		k, v := m.At(i)
		if got := m.Get(k); got != v {
			t.Errorf("key %v: got %v want %v", k.ToAny(), got.ToAny(), v.ToAny())
		}
	}
	if m.Get(FromInt(17)) != nil {
		t.Errorf("removed key still found")
	}
}

func TestMappingEntry(t *testing.T) {
	m := NewMapping()
	e := m.Entry(FromString("x"))
	if e.Occupied() || e.Value() != nil {
		t.Fatalf("new entry occupied")
	}
	if got := e.OrInsert(FromInt(1)); !Equal(got, FromInt(1)) {
		t.Errorf("got %v", got)
	}
	e = m.Entry(FromString("x"))
	if !e.Occupied() {
		t.Fatalf("entry not occupied")
	}
	if got := e.OrInsert(FromInt(2)); !Equal(got, FromInt(1)) {
		t.Errorf("OrInsert replaced: %v", got)
	}
	if err := e.Insert(FromInt(3)); err == nil {
		t.Errorf("insert into occupied entry succeeded")
	}
	if prior := e.Set(FromInt(4)); !Equal(prior, FromInt(1)) {
		t.Errorf("prior %v", prior)
	}
	if got := m.GetString("x"); !Equal(got, FromInt(4)) {
		t.Errorf("got %v", got)
	}
	if e.Remove() == nil || m.Len() != 0 {
		t.Errorf("remove failed")
	}
}

func TestMappingDrain(t *testing.T) {
	m := NewMapping()
	for _, k := range []string{"a", "b", "c"} {
		m.Set(FromString(k), Null())
	}
	var got []string
	for k := range m.Drain() {
		got = append(got, k.String)
		if len(got) == 2 {
			break
		}
	}
	if !sameStrings(got, []string{"a", "b"}) {
		t.Errorf("drained %v", got)
	}
	if m.Len() != 1 || m.GetString("c") == nil {
		t.Errorf("remaining %v", keys(m))
	}
	if m.GetString("a") != nil {
		t.Errorf("drained key still found")
	}
	m.Set(FromString("d"), Null())
	if got := keys(m); !sameStrings(got, []string{"c", "d"}) {
		t.Errorf("after drain: %v", got)
	}
	for range m.Drain() {
	}
	if m.Len() != 0 || m.GetString("c") != nil {
		t.Errorf("not drained: %v", keys(m))
	}
}

func TestClone(t *testing.T) {
	v := FromKeyVals([]KeyVal{
		{Key: FromString("a"), Val: FromSlice([]*Value{FromInt(1), FromTagged("!t", FromString("x"))})},
	})
	c := v.Clone()
	if !Equal(v, c) {
		t.Fatalf("clone differs")
	}
	c.Get("a").Values[0] = FromInt(2)
	if Equal(v, c) {
		t.Errorf("clone shares structure")
	}
}
