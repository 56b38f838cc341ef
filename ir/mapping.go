package ir

import (
	"iter"
	"slices"
)

// Mapping is an insertion ordered map keyed by Values.  Keys are
// compared with Equal and located through their Hash.
type Mapping struct {
	keys  []*Value
	vals  []*Value
	index map[uint64][]int
}

func NewMapping() *Mapping {
	return &Mapping{index: map[uint64][]int{}}
}

func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *Mapping) find(k *Value, h uint64) int {
	for _, i := range m.index[h] {
		if Equal(m.keys[i], k) {
			return i
		}
	}
	return -1
}

func (m *Mapping) lookup(k *Value) int {
	if m == nil || len(m.keys) == 0 {
		return -1
	}
	return m.find(k, k.Hash())
}

func (m *Mapping) Get(k *Value) *Value {
	i := m.lookup(k)
	if i < 0 {
		return nil
	}
	return m.vals[i]
}

func (m *Mapping) GetString(k string) *Value {
	return m.Get(FromString(k))
}

func (m *Mapping) Contains(k *Value) bool {
	return m.lookup(k) >= 0
}

// At returns the i'th entry in insertion order.
func (m *Mapping) At(i int) (*Value, *Value) {
	return m.keys[i], m.vals[i]
}

func (m *Mapping) push(k, v *Value, h uint64) {
	if m.index == nil {
		m.index = map[uint64][]int{}
	}
	m.index[h] = append(m.index[h], len(m.keys))
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, v)
}

// Insert adds k: v at the end of m.  It fails with a *DuplicateKeyError
// if k is already present.
func (m *Mapping) Insert(k, v *Value) error {
	h := k.Hash()
	if m.find(k, h) >= 0 {
		return &DuplicateKeyError{Key: k}
	}
	m.push(k, v, h)
	return nil
}

// Set associates v with k.  An existing entry keeps its position and its
// prior value is returned.
func (m *Mapping) Set(k, v *Value) (prior *Value, replaced bool) {
	h := k.Hash()
	if i := m.find(k, h); i >= 0 {
		prior = m.vals[i]
		m.vals[i] = v
		return prior, true
	}
	m.push(k, v, h)
	return nil, false
}

// Remove deletes k, preserving the order of the remaining entries.
func (m *Mapping) Remove(k *Value) *Value {
	i := m.lookup(k)
	if i < 0 {
		return nil
	}
	return m.removeAt(i)
}

// removeAt deletes entry i and shifts the indices after it down by one.
func (m *Mapping) removeAt(i int) *Value {
	v := m.vals[i]
	h := m.keys[i].Hash()
	if is := slices.DeleteFunc(m.index[h], func(j int) bool { return j == i }); len(is) == 0 {
		delete(m.index, h)
	} else {
		m.index[h] = is
	}
	for _, is := range m.index {
		for n, j := range is {
			if j > i {
				is[n] = j - 1
			}
		}
	}
	m.keys = slices.Delete(m.keys, i, i+1)
	m.vals = slices.Delete(m.vals, i, i+1)
	return v
}

func (m *Mapping) reindex() {
	if m.index == nil {
		m.index = map[uint64][]int{}
	}
	clear(m.index)
	for i, k := range m.keys {
		h := k.Hash()
		m.index[h] = append(m.index[h], i)
	}
}

func (m *Mapping) All() iter.Seq2[*Value, *Value] {
	return func(yield func(*Value, *Value) bool) {
		if m == nil {
			return
		}
		for i := range m.keys {
			if !yield(m.keys[i], m.vals[i]) {
				return
			}
		}
	}
}

func (m *Mapping) Keys() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

func (m *Mapping) Values() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		if m == nil {
			return
		}
		for _, v := range m.vals {
			if !yield(v) {
				return
			}
		}
	}
}

// Drain yields the entries of m in order, removing each as it goes.
// Entries not reached when iteration stops remain in m.  m must not be
// read from within the loop.
func (m *Mapping) Drain() iter.Seq2[*Value, *Value] {
	return func(yield func(*Value, *Value) bool) {
		if m.Len() == 0 {
			return
		}
		defer m.reindex()
		for len(m.keys) > 0 {
			k, v := m.keys[0], m.vals[0]
			m.keys[0], m.vals[0] = nil, nil
			m.keys, m.vals = m.keys[1:], m.vals[1:]
			if !yield(k, v) {
				return
			}
		}
	}
}

func (m *Mapping) Clone() *Mapping {
	res := NewMapping()
	for k, v := range m.All() {
		res.push(k.Clone(), v.Clone(), k.Hash())
	}
	return res
}

// Entry is a view of the slot for one key of a Mapping, occupied or not.
type Entry struct {
	m   *Mapping
	key *Value
	h   uint64
	i   int
}

func (m *Mapping) Entry(k *Value) *Entry {
	h := k.Hash()
	return &Entry{m: m, key: k, h: h, i: m.find(k, h)}
}

func (e *Entry) Occupied() bool {
	return e.i >= 0
}

// Key returns the key stored in the mapping when occupied, otherwise the
// key the entry was made with.
func (e *Entry) Key() *Value {
	if e.i >= 0 {
		return e.m.keys[e.i]
	}
	return e.key
}

func (e *Entry) Value() *Value {
	if e.i < 0 {
		return nil
	}
	return e.m.vals[e.i]
}

// Insert fills a vacant entry.
func (e *Entry) Insert(v *Value) error {
	if e.i >= 0 {
		return &DuplicateKeyError{Key: e.key}
	}
	e.i = len(e.m.keys)
	e.m.push(e.key, v, e.h)
	return nil
}

func (e *Entry) Set(v *Value) *Value {
	if e.i < 0 {
		_ = e.Insert(v)
		return nil
	}
	prior := e.m.vals[e.i]
	e.m.vals[e.i] = v
	return prior
}

func (e *Entry) OrInsert(v *Value) *Value {
	if e.i < 0 {
		_ = e.Insert(v)
	}
	return e.m.vals[e.i]
}

func (e *Entry) Remove() *Value {
	if e.i < 0 {
		return nil
	}
	v := e.m.removeAt(e.i)
	e.i = -1
	return v
}
