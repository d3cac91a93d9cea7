package tst

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomWords draws n words over a small alphabet so that prefixes are
// shared heavily and most branches of the tree get exercised.
func randomWords(r *rand.Rand, n int, alphabet string, maxLen int) []string {
	letters := []rune(alphabet)
	words := make([]string, 0, n)
	for range n {
		var b strings.Builder
		for range 1 + r.IntN(maxLen) {
			b.WriteRune(letters[r.IntN(len(letters))])
		}
		words = append(words, b.String())
	}
	return words
}

func buildMap(t testing.TB, words []string) (*Map[int], map[string]int) {
	t.Helper()
	m := New[int]()
	ref := make(map[string]int, len(words))
	for i, w := range words {
		_, _, err := m.Put(w, i)
		require.NoError(t, err)
		ref[w] = i
	}
	return m, ref
}

func sortedKeys[V any](ref map[string]V) []string {
	out := make([]string, 0, len(ref))
	for k := range ref {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// checkSizes verifies the size counter of every node against its children.
func checkSizes[V any](t testing.TB, n *node[V]) int {
	t.Helper()
	if n == nil {
		return 0
	}
	got := checkSizes(t, n.low) + n.self() + checkSizes(t, n.eq) + checkSizes(t, n.high)
	require.Equal(t, got, n.size, "size of node %q", n.char)
	require.NotZero(t, n.size, "empty node %q left in tree", n.char)
	return got
}
