package orderedmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newABC() *Map[string, int] {
	m := New[string, int]()
	m.Push("a", 1)
	m.Push("b", 2)
	m.Push("c", 3)
	return m
}

func TestMap_PushKeepsInsertionOrder(t *testing.T) {
	m := newABC()

	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())
	assert.Equal(t, []int{1, 2, 3}, m.Values())

	isNew := m.Push("a", 10)
	assert.False(t, isNew, "upsert of an existing key is not new")
	assert.Equal(t, []string{"a", "b", "c"}, m.Keys())

	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 10, v)

	assert.True(t, m.Update("d", 4))
	assert.Equal(t, 4, m.Len())
}

func TestMap_Remove(t *testing.T) {
	m := newABC()

	v, ok := m.Remove("b")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.False(t, m.Has("b"))

	_, ok = m.Remove("missing")
	assert.False(t, ok)
}

func TestMap_NeighborsClampAtEdges(t *testing.T) {
	m := newABC()

	assert.Equal(t, "b", m.FindNextKey("a"))
	assert.Equal(t, "c", m.FindNextKey("b"))
	assert.Equal(t, "c", m.FindNextKey("c"))

	assert.Equal(t, "a", m.FindPreviousKey("a"))
	assert.Equal(t, "a", m.FindPreviousKey("b"))
	assert.Equal(t, "b", m.FindPreviousKey("c"))

	assert.Equal(t, "", m.FindNextKey("zzz"))
	assert.Equal(t, "", m.FindPreviousKey("zzz"))

	key, value, ok := m.FindNext("a")
	require.True(t, ok)
	assert.Equal(t, "b", key)
	assert.Equal(t, 2, value)

	key, value, ok = m.FindPrevious("a")
	require.True(t, ok)
	assert.Equal(t, "a", key)
	assert.Equal(t, 1, value)
}

func TestMap_ForEachStopsOnFalse(t *testing.T) {
	m := newABC()

	visited := make([]string, 0)
	m.ForEach(func(key string, _ int) bool {
		visited = append(visited, key)
		return key != "b"
	})

	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestMap_FirstLastAndClear(t *testing.T) {
	m := newABC()

	first, ok := m.FirstKey()
	require.True(t, ok)
	assert.Equal(t, "a", first)

	last, ok := m.LastKey()
	require.True(t, ok)
	assert.Equal(t, "c", last)

	m.Clear()
	assert.True(t, m.IsEmpty())
	_, ok = m.FirstKey()
	assert.False(t, ok)
}
