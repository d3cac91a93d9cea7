package suggest

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/bastiangx/wordtree/pkg/dictionary"
	"github.com/stretchr/testify/require"
)

var longPatterns = [][]string{
	{"a", "ab", "abc", "abcd", "abcde"},
	{"h", "he", "hel", "hell", "hello"},
	{"w", "wo", "wor", "worl", "world"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
	{"i", "in", "int", "inte", "inter", "intern", "interna", "internat", "internati", "internation", "international"},
}

// newMemCompleter loads a few thousand generated words through chunk files,
// the way the server does.
func newMemCompleter(t *testing.T) *Completer {
	t.Helper()
	var words []dictionary.Word
	rank := uint16(1)
	for _, pattern := range longPatterns {
		stem := pattern[len(pattern)-1]
		for i := range 400 {
			words = append(words, dictionary.Word{Text: fmt.Sprintf("%s%c%d", stem, 'a'+i%26, i), Rank: rank})
			rank++
		}
	}
	dir := t.TempDir()
	_, err := dictionary.WriteChunks(dir, words, 500)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.CacheSize = 64
	c := NewLazyCompleter(dir, 0, opts)
	require.NoError(t, c.Initialize(context.Background()))
	return c
}

func heapAndGoroutines() (uint64, int) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return m.HeapAlloc, runtime.NumGoroutine()
}

func TestMemoryStability(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping memory stability test in short mode")
	}
	c := newMemCompleter(t)

	configs := []struct {
		workers int
		iters   int
	}{
		{1, 400},
		{4, 100},
		{8, 50},
	}
	for _, cfg := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", cfg.workers, cfg.iters), func(t *testing.T) {
			baseHeap, baseG := heapAndGoroutines()

			var wg sync.WaitGroup
			for range cfg.workers {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for range cfg.iters {
						for _, pattern := range longPatterns {
							for _, prefix := range pattern {
								c.Complete(prefix, 10)
								c.CompleteFuzzy(prefix+"q", 10)
							}
						}
					}
				}()
			}
			wg.Wait()

			heap, g := heapAndGoroutines()
			delta := int64(heap) - int64(baseHeap)
			t.Logf("heap_delta=%d goroutine_delta=%d cache=%v", delta, g-baseG, c.cache.Stats())

			if delta > 8<<20 {
				t.Errorf("heap grew by %d bytes", delta)
			}
			if g-baseG > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", g-baseG)
			}
			if n := c.cache.Stats()["cacheEntries"]; n > 64 {
				t.Errorf("cache holds %d entries, capacity is 64", n)
			}
		})
	}
}
