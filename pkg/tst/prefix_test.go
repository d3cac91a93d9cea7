package tst

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tchap/go-patricia/v2/patricia"
)

func TestPrefixMatch(t *testing.T) {
	words := []string{"api.foo.bar", "api.foo.baz", "api.foe.fum", "abc.123.456", "api.foo", "api"}
	dataSet := []struct {
		prefix   string
		expected []string
	}{
		{"api", []string{"api", "api.foe.fum", "api.foo", "api.foo.bar", "api.foo.baz"}},
		{"a", []string{"abc.123.456", "api", "api.foe.fum", "api.foo", "api.foo.bar", "api.foo.baz"}},
		{"b", nil},
		{"api.", []string{"api.foe.fum", "api.foo", "api.foo.bar", "api.foo.baz"}},
		{"api.foo.bar", []string{"api.foo.bar"}},
		{"api.end", nil},
		{"api.foo.bar.baz", nil},
		{"", []string{"abc.123.456", "api", "api.foe.fum", "api.foo", "api.foo.bar", "api.foo.baz"}},
	}

	m, _ := buildMap(t, words)
	for _, d := range dataSet {
		got := slices.Collect(m.PrefixMatch(d.prefix))
		assert.Equal(t, d.expected, got, d.prefix)
		assert.Equal(t, len(d.expected), m.CountPrefix(d.prefix), d.prefix)

		var back []string
		for k := range m.PrefixEntries(d.prefix, true) {
			back = append(back, k)
		}
		want := slices.Clone(d.expected)
		slices.Reverse(want)
		assert.Equal(t, want, back, "reverse %s", d.prefix)
	}
}

// TestPrefixMatchAgainstPatricia uses a patricia trie as an independent
// implementation of subtree visits.
func TestPrefixMatchAgainstPatricia(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	words := randomWords(r, 3000, "abcdefg", 8)
	m, ref := buildMap(t, words)

	trie := patricia.NewTrie()
	for k, v := range ref {
		trie.Insert(patricia.Prefix(k), v)
	}

	probes := randomWords(r, 200, "abcdefgh", 4)
	for _, p := range probes {
		var want []string
		err := trie.VisitSubtree(patricia.Prefix(p), func(prefix patricia.Prefix, item patricia.Item) error {
			want = append(want, string(prefix))
			assert.Equal(t, ref[string(prefix)], item)
			return nil
		})
		require.NoError(t, err)
		slices.Sort(want)

		got := slices.Collect(m.PrefixMatch(p))
		if len(want) == 0 {
			assert.Empty(t, got, p)
			continue
		}
		assert.Equal(t, want, got, "prefix %q", p)
		for _, k := range got {
			assert.True(t, strings.HasPrefix(k, p))
		}
	}
}

func TestPrefixEntriesValues(t *testing.T) {
	m, ref := buildMap(t, []string{"tea", "team", "tear", "ten", "to"})
	for k, v := range m.PrefixEntries("te", false) {
		assert.Equal(t, ref[k], v, k)
	}
}

func TestPrefixIterAbandon(t *testing.T) {
	m, _ := buildMap(t, []string{"aa", "ab", "ac", "ad"})

	var got []string
	for k := range m.PrefixMatch("a") {
		got = append(got, k)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"aa", "ab"}, got)

	// a fresh call restarts from the beginning
	it := m.PrefixIter("a", false)
	require.True(t, it.Next())
	assert.Equal(t, "aa", it.Key())
	assert.Equal(t, Entry[int]{Key: "aa", Value: 0}, it.Entry())
}

func TestIteratorExhaustion(t *testing.T) {
	m, _ := buildMap(t, []string{"x"})
	it := m.Iter(false)
	require.True(t, it.Next())
	assert.Equal(t, "x", it.Key())
	assert.False(t, it.Next())
	assert.Equal(t, "", it.Key())
	assert.False(t, it.Next())

	assert.False(t, New[int]().Iter(true).Next())
}

func TestRangeIterMatchesSelect(t *testing.T) {
	r := rand.New(rand.NewPCG(9, 9))
	m, ref := buildMap(t, randomWords(r, 400, "abc", 6))
	want := sortedKeys(ref)

	for range 100 {
		lo := r.IntN(len(want) + 1)
		hi := lo + r.IntN(len(want)-lo+1)

		var fwd []string
		for it := m.rangeIter(lo, hi, false); it.Next(); {
			fwd = append(fwd, it.Key())
		}
		var rev []string
		for it := m.rangeIter(lo, hi, true); it.Next(); {
			rev = append(rev, it.Key())
		}

		expected := want[lo:hi]
		if len(expected) == 0 {
			assert.Empty(t, fwd)
			assert.Empty(t, rev)
			continue
		}
		assert.Equal(t, expected, fwd, "[%d, %d)", lo, hi)
		slices.Reverse(rev)
		assert.Equal(t, expected, rev, "reverse [%d, %d)", lo, hi)
	}
}
