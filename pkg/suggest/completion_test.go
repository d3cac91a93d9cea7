package suggest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/bastiangx/wordtree/pkg/dictionary"
	"github.com/bastiangx/wordtree/pkg/tst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWords = map[string]int{
	"hel":    50,
	"hello":  100,
	"help":   80,
	"helmet": 30,
	"helium": 10,
	"Paris":  60,
	"park":   40,
	"zzz":    22,
	"zzzz":   30,
}

func newTestCompleter(t *testing.T, opts Options) *Completer {
	t.Helper()
	c := NewCompleter(opts)
	for w, f := range testWords {
		require.NoError(t, c.AddWord(w, f))
	}
	return c
}

func words(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, x := range s {
		out[i] = x.Word
	}
	return out
}

func TestComplete(t *testing.T) {
	c := newTestCompleter(t, DefaultOptions())

	tests := []struct {
		name   string
		prefix string
		limit  int
		want   []string
	}{
		{"skips the prefix and rare words", "hel", 10, []string{"hello", "help", "helmet"}},
		{"short prefix uses the higher threshold", "he", 10, []string{"hello", "help", "hel", "helmet"}},
		{"limit", "he", 2, []string{"hello", "help"}},
		{"no limit", "he", 0, []string{"hello", "help", "hel", "helmet"}},
		{"capitals carry over", "Hel", 10, []string{"Hello", "Help", "Helmet"}},
		{"original case is kept", "par", 10, []string{"Paris", "park"}},
		{"folded lookup", "PA", 10, []string{"PAris", "PArk"}},
		{"repetitive input", "zzz", 10, []string{"zzzz"}},
		{"no match", "xyz", 10, nil},
		{"empty prefix", "", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Complete(tt.prefix, tt.limit)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, words(got))
		})
	}
}

func TestCompleteCaseSensitive(t *testing.T) {
	opts := DefaultOptions()
	opts.CaseInsensitive = false
	c := newTestCompleter(t, opts)

	assert.Equal(t, []string{"park"}, words(c.Complete("par", 10)))
	assert.Equal(t, []string{"Paris"}, words(c.Complete("Par", 10)))
}

func TestCompleteCacheFollowsMutations(t *testing.T) {
	c := newTestCompleter(t, DefaultOptions())

	assert.Equal(t, []string{"hello", "help", "helmet"}, words(c.Complete("hel", 10)))
	assert.Equal(t, []string{"hello", "help", "helmet"}, words(c.Complete("hel", 10)))
	stats := c.Stats()
	assert.Equal(t, 1, stats["cacheHits"])
	assert.Equal(t, 1, stats["cacheEntries"])

	require.NoError(t, c.AddWord("helix", 90))
	assert.Equal(t, []string{"hello", "helix", "help", "helmet"}, words(c.Complete("hel", 10)))

	assert.True(t, c.RemoveWord("hello"))
	assert.False(t, c.RemoveWord("hello"))
	assert.Equal(t, []string{"helix", "help", "helmet"}, words(c.Complete("hel", 10)))
}

func TestCompleteFuzzy(t *testing.T) {
	c := newTestCompleter(t, DefaultOptions())

	got := c.CompleteFuzzy("hwlp", 10)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"help", "hel"}, words(got))
	for _, s := range got {
		assert.True(t, s.WasCorrected)
		assert.Equal(t, "hwlp", s.OriginalPrefix)
		assert.Equal(t, s.Word, s.CorrectedPrefix)
	}

	exact := c.CompleteFuzzy("hel", 10)
	assert.Equal(t, []string{"hello", "help", "helmet"}, words(exact))
	assert.False(t, exact[0].WasCorrected)

	assert.Equal(t, []string{"Help", "Hel"}, words(c.CompleteFuzzy("Hwlp", 10)))
	assert.Empty(t, c.CompleteFuzzy("qqqqqq", 10))
}

func TestNavigation(t *testing.T) {
	c := newTestCompleter(t, DefaultOptions())
	// hel helium hello helmet help Paris park zzz zzzz
	assert.Equal(t, 0, c.IndexOf("hel"))
	assert.Equal(t, 5, c.IndexOf("PARIS"))
	assert.Equal(t, -1, c.IndexOf("nope"))

	s, err := c.WordAt(5)
	require.NoError(t, err)
	assert.Equal(t, Suggestion{Word: "Paris", Frequency: 60}, s)
	_, err = c.WordAt(9)
	assert.ErrorIs(t, err, tst.ErrIndexOutOfRange)

	lower, ok := c.Lower("paris")
	require.True(t, ok)
	assert.Equal(t, "help", lower.Word)
	higher, ok := c.Higher("paris")
	require.True(t, ok)
	assert.Equal(t, "park", higher.Word)
	_, ok = c.Lower("hel")
	assert.False(t, ok)

	w, ok := c.Suggest("hel")
	assert.True(t, ok)
	assert.Equal(t, "hel", w)
	w, ok = c.Suggest("helm")
	assert.True(t, ok)
	assert.Equal(t, "helmet", w)
	_, ok = c.Suggest("q")
	assert.False(t, ok)
}

func TestAlmost(t *testing.T) {
	c := newTestCompleter(t, DefaultOptions())
	assert.Equal(t, []string{"hel", "help"}, words(c.Almost("hwlp", 1, 1)))
	assert.Equal(t, []string{"help"}, words(c.Almost("herp", 1, 0)))
	assert.Empty(t, c.Almost("herp", -1, 0))
}

func TestStatsMaxFrequency(t *testing.T) {
	c := newTestCompleter(t, DefaultOptions())
	assert.Equal(t, 100, c.Stats()["maxFrequency"])
	assert.Equal(t, 9, c.Stats()["totalWords"])
	c.RemoveWord("hello")
	assert.Equal(t, 80, c.Stats()["maxFrequency"])
	assert.Equal(t, 0, c.Stats()["chunkLoader"])
	assert.Error(t, c.AddWord("", 3))
}

func TestLazyCompleter(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, dictionary.WriteChunkFile(dictionary.ChunkPath(dir, 1),
		[]dictionary.Word{{Text: "the", Rank: 1}, {Text: "there", Rank: 2}, {Text: "Thebes", Rank: 40000}}))
	require.NoError(t, dictionary.WriteChunkFile(dictionary.ChunkPath(dir, 2),
		[]dictionary.Word{{Text: "then", Rank: 3}, {Text: "theory", Rank: 65530}}))

	opts := DefaultOptions()
	opts.BalanceAfterLoad = true
	c := NewLazyCompleter(dir, 0, opts)
	require.NoError(t, c.Initialize(context.Background()))
	assert.Equal(t, 5, c.Len())

	assert.Equal(t, []string{"there", "then", "Thebes"}, words(c.Complete("the", 10)))

	stats := c.Stats()
	assert.Equal(t, 2, stats["loadedChunks"])
	assert.Equal(t, 2, stats["availableChunks"])
	assert.Equal(t, dictionary.Score(1), stats["maxFrequency"])

	require.NoError(t, c.Loader().UnloadChunk(2))
	assert.Equal(t, []string{"there", "Thebes"}, words(c.Complete("the", 10)))
	assert.Equal(t, 3, c.Len())

	assert.NoError(t, NewCompleter(opts).Initialize(context.Background()))
	assert.ErrorIs(t, NewLazyCompleter(t.TempDir(), 0, opts).Initialize(context.Background()), dictionary.ErrNoChunks)
}

func TestLazyCompleterCaseVariants(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, dictionary.WriteChunkFile(dictionary.ChunkPath(dir, 1),
		[]dictionary.Word{{Text: "Apple", Rank: 1}, {Text: "apricot", Rank: 2}}))
	require.NoError(t, dictionary.WriteChunkFile(dictionary.ChunkPath(dir, 2),
		[]dictionary.Word{{Text: "apple", Rank: 3}}))

	c := NewLazyCompleter(dir, 0, DefaultOptions())
	require.NoError(t, c.Initialize(context.Background()))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 2, c.Loader().Len())

	require.NoError(t, c.Loader().UnloadChunk(2))
	assert.Equal(t, []string{"Apple", "apricot"}, words(c.Complete("ap", 10)))

	s, err := c.WordAt(0)
	require.NoError(t, err)
	assert.Equal(t, Suggestion{Word: "Apple", Frequency: dictionary.Score(1)}, s)
}

func TestConcurrentUse(t *testing.T) {
	c := newTestCompleter(t, DefaultOptions())
	var wg sync.WaitGroup
	for g := range 4 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := range 200 {
				c.Complete("he", 5)
				c.CompleteFuzzy("hwlp", 5)
				c.IndexOf(fmt.Sprintf("w%d-%d", g, i))
			}
		}()
		go func() {
			defer wg.Done()
			for i := range 200 {
				word := fmt.Sprintf("hew%d-%d", g, i)
				assert.NoError(t, c.AddWord(word, 30+i))
				if i%2 == 0 {
					c.RemoveWord(word)
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, len(testWords)+4*100, c.Len())
}
