package tst

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankConsistency(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	m, ref := buildMap(t, randomWords(r, 2000, "abcdef", 7))
	want := sortedKeys(ref)

	for i, k := range want {
		assert.Equal(t, i, m.IndexOf(k), "rank of %q", k)
		got, err := m.KeyAt(i)
		require.NoError(t, err)
		assert.Equal(t, k, got)
		v, err := m.ValueAt(i)
		require.NoError(t, err)
		assert.Equal(t, ref[k], v)
	}
}

func TestKeyAtOutOfRange(t *testing.T) {
	m, _ := buildMap(t, []string{"a", "b"})
	for _, i := range []int{-1, 2, 100} {
		_, err := m.KeyAt(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
		_, err = m.ValueAt(i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange, "index %d", i)
	}
	_, err := New[int]().KeyAt(0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestPrefixKeysRankFirst(t *testing.T) {
	m, _ := buildMap(t, []string{"abc", "ab", "a", "abd", "b"})
	assert.Equal(t, 0, m.IndexOf("a"))
	assert.Equal(t, 1, m.IndexOf("ab"))
	assert.Equal(t, 2, m.IndexOf("abc"))
	assert.Equal(t, 3, m.IndexOf("abd"))
	assert.Equal(t, 4, m.IndexOf("b"))
}

func TestNeighbours(t *testing.T) {
	m, _ := buildMap(t, []string{"car", "cart", "cat", "dog"})

	testCases := []struct {
		key         string
		pred, succ  string
		floor, ceil string
		description string
	}{
		{"cat", "cart", "dog", "cat", "cat", "stored key"},
		{"car", "", "cart", "car", "car", "first key"},
		{"dog", "cat", "", "dog", "dog", "last key"},
		{"ca", "", "car", "", "car", "absent prefix of stored keys"},
		{"cas", "cart", "cat", "cart", "cat", "absent key between two"},
		{"cb", "cat", "dog", "cat", "dog", "absent key after a subtree"},
		{"a", "", "car", "", "car", "before everything"},
		{"zzz", "dog", "", "dog", "", "after everything"},
		{"", "", "car", "", "car", "empty key"},
	}
	get := func(e Entry[int], ok bool) string {
		if !ok {
			return ""
		}
		return e.Key
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.pred, get(m.Predecessor(tc.key)), "predecessor")
			assert.Equal(t, tc.succ, get(m.Successor(tc.key)), "successor")
			assert.Equal(t, tc.floor, get(m.Floor(tc.key)), "floor")
			assert.Equal(t, tc.ceil, get(m.Ceiling(tc.key)), "ceiling")
		})
	}
}

func TestNeighboursAgainstSortedSlice(t *testing.T) {
	r := rand.New(rand.NewPCG(21, 8))
	m, ref := buildMap(t, randomWords(r, 500, "abcd", 5))
	want := sortedKeys(ref)

	for _, probe := range randomWords(r, 300, "abcde", 6) {
		i, found := slices.BinarySearch(want, probe)

		pred, ok := m.Predecessor(probe)
		if i > 0 {
			require.True(t, ok, probe)
			assert.Equal(t, want[i-1], pred.Key)
		} else {
			assert.False(t, ok, probe)
		}

		next := i
		if found {
			next++
		}
		succ, ok := m.Successor(probe)
		if next < len(want) {
			require.True(t, ok, probe)
			assert.Equal(t, want[next], succ.Key)
		} else {
			assert.False(t, ok, probe)
		}
	}
}
