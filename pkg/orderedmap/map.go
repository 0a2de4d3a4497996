// Package orderedmap provides an insertion-ordered key/value container.
//
// The map keeps keys in the order they were first pushed. Neighbor lookups
// (FindNextKey/FindPreviousKey) clamp at the edges: asking for the key after
// the last one returns the last key itself, not a zero value. The wizard
// sequencer relies on this to make "next" on the final step a no-op.
package orderedmap

// Map insertion-ordered map
type Map[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

// New creates an empty map
func New[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		keys:   make([]K, 0),
		values: make(map[K]V),
	}
}

// Push inserts or replaces the value for key. Returns true when the key is new.
func (m *Map[K, V]) Push(key K, value V) bool {
	_, exists := m.values[key]
	if !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return !exists
}

// Update is the same upsert as Push; kept for call sites that replace values.
func (m *Map[K, V]) Update(key K, value V) bool {
	return m.Push(key, value)
}

// Get returns the value for key
func (m *Map[K, V]) Get(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Remove detaches key and returns the removed value
func (m *Map[K, V]) Remove(key K) (V, bool) {
	v, ok := m.values[key]
	if !ok {
		return v, false
	}

	delete(m.values, key)
	if i := m.indexOf(key); i >= 0 {
		m.keys = append(m.keys[:i], m.keys[i+1:]...)
	}

	return v, true
}

// Clear removes every entry
func (m *Map[K, V]) Clear() {
	m.keys = make([]K, 0)
	m.values = make(map[K]V)
}

// Len returns the number of entries
func (m *Map[K, V]) Len() int {
	return len(m.keys)
}

// IsEmpty reports whether the map has no entries
func (m *Map[K, V]) IsEmpty() bool {
	return len(m.keys) == 0
}

// Keys returns a copy of the keys in insertion order
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Values returns the values in insertion order
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		values = append(values, m.values[k])
	}
	return values
}

// FirstKey returns the first key, false on an empty map
func (m *Map[K, V]) FirstKey() (K, bool) {
	var zero K
	if len(m.keys) == 0 {
		return zero, false
	}
	return m.keys[0], true
}

// LastKey returns the last key, false on an empty map
func (m *Map[K, V]) LastKey() (K, bool) {
	var zero K
	if len(m.keys) == 0 {
		return zero, false
	}
	return m.keys[len(m.keys)-1], true
}

// FindNextKey returns the key after key. The last key maps to itself;
// an unknown key maps to the zero key.
func (m *Map[K, V]) FindNextKey(key K) K {
	var zero K

	i := m.indexOf(key)
	if i < 0 {
		return zero
	}
	if i == len(m.keys)-1 {
		return key
	}
	return m.keys[i+1]
}

// FindPreviousKey returns the key before key. The first key maps to itself;
// an unknown key maps to the zero key.
func (m *Map[K, V]) FindPreviousKey(key K) K {
	var zero K

	i := m.indexOf(key)
	if i < 0 {
		return zero
	}
	if i == 0 {
		return key
	}
	return m.keys[i-1]
}

// FindNext returns the entry after key (clamped, see FindNextKey)
func (m *Map[K, V]) FindNext(key K) (K, V, bool) {
	next := m.FindNextKey(key)
	v, ok := m.values[next]
	return next, v, ok
}

// FindPrevious returns the entry before key (clamped, see FindPreviousKey)
func (m *Map[K, V]) FindPrevious(key K) (K, V, bool) {
	prev := m.FindPreviousKey(key)
	v, ok := m.values[prev]
	return prev, v, ok
}

// ForEach walks entries in insertion order; returning false from fn stops the walk.
func (m *Map[K, V]) ForEach(fn func(key K, value V) bool) {
	for _, k := range m.Keys() {
		v, ok := m.values[k]
		if !ok {
			continue
		}
		if !fn(k, v) {
			return
		}
	}
}

func (m *Map[K, V]) indexOf(key K) int {
	for i, k := range m.keys {
		if k == key {
			return i
		}
	}
	return -1
}
