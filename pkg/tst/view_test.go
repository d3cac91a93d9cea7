package tst

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubMapView(t *testing.T) {
	m, _ := buildMap(t, []string{"apple", "banana", "cherry", "date", "elder", "fig"})

	v, err := m.SubMap("b", "e")
	require.NoError(t, err)
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []string{"banana", "cherry", "date"}, slices.Collect(v.Keys()))

	first, ok := v.FirstKey()
	assert.True(t, ok)
	assert.Equal(t, "banana", first)
	last, ok := v.LastKey()
	assert.True(t, ok)
	assert.Equal(t, "date", last)

	assert.Equal(t, 1, v.IndexOf("cherry"))
	assert.Equal(t, -1, v.IndexOf("fig"))
	k, err := v.KeyAt(2)
	require.NoError(t, err)
	assert.Equal(t, "date", k)
	_, err = v.KeyAt(3)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.False(t, v.Contains("apple"))
	_, ok = v.Get("fig")
	assert.False(t, ok)

	var back []string
	for k := range v.Backward() {
		back = append(back, k)
	}
	assert.Equal(t, []string{"date", "cherry", "banana"}, back)
}

func TestViewIsLive(t *testing.T) {
	m, _ := buildMap(t, []string{"a", "c", "e"})
	head, err := m.HeadMap("d")
	require.NoError(t, err)
	assert.Equal(t, 2, head.Len())

	// writes through the parent show up in the view
	_, _, err = m.Put("b", 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, slices.Collect(head.Keys()))

	// writes through the view land in the parent
	_, _, err = head.Put("bb", 10)
	require.NoError(t, err)
	assert.True(t, m.Contains("bb"))

	_, _, err = head.Put("z", 1)
	assert.ErrorIs(t, err, ErrKeyOutOfRange)
	assert.False(t, m.Contains("z"))

	_, ok := head.Remove("e")
	assert.False(t, ok)
	assert.True(t, m.Contains("e"))

	head.Clear()
	assert.Equal(t, 0, head.Len())
	assert.Equal(t, []string{"e"}, slices.Collect(m.Keys()))
}

func TestViewRanges(t *testing.T) {
	m, _ := buildMap(t, []string{"a", "b", "c", "d"})

	_, err := m.SubMap("c", "b")
	assert.ErrorIs(t, err, ErrInvalidRange)

	sub, err := m.SubMap("b", "d")
	require.NoError(t, err)

	_, err = sub.SubMap("a", "c")
	assert.ErrorIs(t, err, ErrKeyOutOfRange)
	_, err = sub.HeadMap("e")
	assert.ErrorIs(t, err, ErrKeyOutOfRange)

	inner, err := sub.TailMap("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, slices.Collect(inner.Keys()))

	empty, err := sub.SubMap("d", "d")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	_, ok := empty.FirstKey()
	assert.False(t, ok)

	tail, err := m.TailMap("bb")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "d"}, slices.Collect(tail.Keys()))
}

func TestViewNeighboursClamp(t *testing.T) {
	m, _ := buildMap(t, []string{"a", "b", "c", "d", "e"})
	v, err := m.SubMap("b", "d")
	require.NoError(t, err)

	e, ok := v.Predecessor("z")
	require.True(t, ok)
	assert.Equal(t, "c", e.Key)

	_, ok = v.Predecessor("b")
	assert.False(t, ok)

	e, ok = v.Successor("a")
	require.True(t, ok)
	assert.Equal(t, "b", e.Key)

	_, ok = v.Successor("c")
	assert.False(t, ok)

	e, ok = v.Floor("c")
	require.True(t, ok)
	assert.Equal(t, "c", e.Key)
	e, ok = v.Ceiling("bb")
	require.True(t, ok)
	assert.Equal(t, "c", e.Key)
}

func TestViewPrefixAndAlmost(t *testing.T) {
	m, _ := buildMap(t, []string{"car", "cart", "cat", "cot", "dog"})
	v, err := m.SubMap("cart", "d")
	require.NoError(t, err)

	assert.Equal(t, []string{"cart", "cat"}, slices.Collect(v.PrefixMatch("ca")))
	assert.Equal(t, 2, v.CountPrefix("ca"))
	assert.Equal(t, []string{"cot"}, slices.Collect(v.PrefixMatch("co")))
	assert.Empty(t, slices.Collect(v.PrefixMatch("do")))
	assert.Equal(t, 0, v.CountPrefix("do"))

	var back []string
	for k := range v.PrefixEntries("c", true) {
		back = append(back, k)
	}
	assert.Equal(t, []string{"cot", "cat", "cart"}, back)

	assert.Equal(t, []string{"cat", "cot"}, v.MatchAlmost("cat", 1, 0))
	assert.Equal(t, []string{"cat"}, v.MatchAlmostN("cat", 1, 0, 1))
}

func TestViewAgainstFilter(t *testing.T) {
	r := rand.New(rand.NewPCG(12, 34))
	m, ref := buildMap(t, randomWords(r, 600, "abcd", 5))
	all := sortedKeys(ref)

	for range 50 {
		pair := randomWords(r, 2, "abcd", 3)
		from, to := min(pair[0], pair[1]), max(pair[0], pair[1])
		v, err := m.SubMap(from, to)
		require.NoError(t, err)

		var want []string
		for _, k := range all {
			if k >= from && k < to {
				want = append(want, k)
			}
		}
		assert.Equal(t, len(want), v.Len(), "[%s, %s)", from, to)
		assert.Equal(t, want, slices.Collect(v.Keys()), "[%s, %s)", from, to)
		for i, k := range want {
			assert.Equal(t, i, v.IndexOf(k))
		}
	}
}
