package suggest

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/bastiangx/wordtree/pkg/dictionary"
	"github.com/bastiangx/wordtree/pkg/tst"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// Suggestion is a word offered for a prefix.
type Suggestion struct {
	Word            string
	Frequency       int
	WasCorrected    bool   `json:",omitempty"`
	OriginalPrefix  string `json:",omitempty"`
	CorrectedPrefix string `json:",omitempty"`
}

// Options tune a Completer.
type Options struct {
	// MinFrequency hides completions scoring below it.
	MinFrequency int
	// MinFrequencyShort replaces MinFrequency for prefixes of at most two
	// runes and for repetitive input.
	MinFrequencyShort int
	FuzzyDistance     int
	FuzzyTolerance    int
	CaseInsensitive   bool
	Locale            language.Tag
	CacheSize         int
	BalanceAfterLoad  bool
}

// DefaultOptions returns the thresholds used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MinFrequency:      20,
		MinFrequencyShort: 24,
		FuzzyDistance:     1,
		FuzzyTolerance:    1,
		CaseInsensitive:   true,
		Locale:            language.English,
		CacheSize:         1024,
	}
}

// Completer serves completions from a tree of word frequencies. It is safe
// for concurrent use.
type Completer struct {
	mu       sync.RWMutex
	words    tst.SortedMap[int]
	fold     func(string) string
	opts     Options
	cache    *HotCache
	loader   *dictionary.Loader
	maxFreq  int
	maxStale bool
}

// NewCompleter returns an empty completer.
func NewCompleter(opts Options) *Completer {
	c := &Completer{
		words: tst.Open[int](tst.Options{CaseInsensitive: opts.CaseInsensitive, Locale: opts.Locale}),
		fold:  func(s string) string { return s },
		opts:  opts,
		cache: NewHotCache(opts.CacheSize),
	}
	if f, ok := c.words.(*tst.FoldMap[int]); ok {
		c.fold = f.Fold
	}
	return c
}

// NewLazyCompleter returns a completer fed from the chunk files in dirPath
// by Initialize.
func NewLazyCompleter(dirPath string, maxWords int, opts Options) *Completer {
	c := NewCompleter(opts)
	c.loader = dictionary.NewLoader(dirPath, maxWords, c)
	return c
}

// Loader returns the chunk loader, or nil for a completer without one.
func (c *Completer) Loader() *dictionary.Loader { return c.loader }

// Initialize loads chunks until the word limit is reached.
func (c *Completer) Initialize(ctx context.Context) error {
	if c.loader == nil {
		return nil
	}
	n, err := c.loader.LoadAll(ctx)
	if err != nil {
		return err
	}
	log.Debugf("Loaded %d words from %s", n, c.loader.Dir())
	if c.opts.BalanceAfterLoad {
		c.Balance()
	}
	return nil
}

// Fold returns word as the tree keys it.
func (c *Completer) Fold(word string) string { return c.fold(word) }

// Insert stores entries, overwriting frequencies of known words.
func (c *Completer) Insert(entries []tst.Entry[int]) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	added := 0
	for _, e := range entries {
		_, replaced, err := c.words.Put(e.Key, e.Value)
		if err != nil {
			log.Warnf("Skipping word %q: %v", e.Key, err)
			continue
		}
		if !replaced {
			added++
		}
		c.maxFreq = max(c.maxFreq, e.Value)
	}
	c.cache.Purge()
	return added
}

// Delete removes words and returns how many were present.
func (c *Completer) Delete(words []string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for _, w := range words {
		if freq, ok := c.words.Remove(w); ok {
			removed++
			c.maxStale = c.maxStale || freq >= c.maxFreq
		}
	}
	c.cache.Purge()
	return removed
}

// AddWord stores word with frequency, replacing an existing frequency.
func (c *Completer) AddWord(word string, frequency int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, _, err := c.words.Put(word, frequency); err != nil {
		return fmt.Errorf("add %q: %w", word, err)
	}
	c.maxFreq = max(c.maxFreq, frequency)
	c.cache.Purge()
	return nil
}

// RemoveWord deletes word and reports whether it was present.
func (c *Completer) RemoveWord(word string) bool {
	return c.Delete([]string{word}) == 1
}

// Len returns the number of stored words.
func (c *Completer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.words.Len()
}

// Balance compacts the tree after bulk loading in sorted order.
func (c *Completer) Balance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.words.(interface{ Balance() }); ok {
		b.Balance()
	}
}

func (c *Completer) threshold(folded string) int {
	if utf8.RuneCountInString(folded) <= 2 || utils.IsRepetitive(folded) {
		return c.opts.MinFrequencyShort
	}
	return c.opts.MinFrequency
}

func bySuggestionRank(a, b Suggestion) int {
	if c := cmp.Compare(b.Frequency, a.Frequency); c != 0 {
		return c
	}
	return strings.Compare(a.Word, b.Word)
}

func withCapitals(found []Suggestion, prefix string) []Suggestion {
	mask := utils.CapitalMask(prefix)
	if mask == nil {
		return slices.Clone(found)
	}
	out := make([]Suggestion, len(found))
	for i, s := range found {
		s.Word = utils.ApplyCapitals(s.Word, mask)
		out[i] = s
	}
	return out
}

// Complete returns up to limit words starting with prefix, most frequent
// first and ties in word order. The prefix itself and words below the
// frequency threshold are left out. Upper-case runes typed in the prefix
// are carried over to the suggestions. A limit below one means no limit.
func (c *Completer) Complete(prefix string, limit int) []Suggestion {
	if prefix == "" {
		return nil
	}
	folded := c.fold(prefix)
	key := cacheKey{prefix: folded, limit: limit}
	if found, ok := c.cache.get(key); ok {
		return withCapitals(found, prefix)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	threshold := c.threshold(folded)
	var found []Suggestion
	first := true
	for word, freq := range c.words.PrefixEntries(prefix, false) {
		if first {
			first = false
			if c.fold(word) == folded {
				continue
			}
		}
		if freq < threshold {
			continue
		}
		found = append(found, Suggestion{Word: word, Frequency: freq})
	}
	slices.SortFunc(found, bySuggestionRank)
	if limit > 0 && len(found) > limit {
		found = slices.Clip(found[:limit])
	}

	c.cache.add(key, found)
	return withCapitals(found, prefix)
}

// CompleteFuzzy returns Complete's result when it has one. Otherwise it
// offers the stored words within the configured substitution distance and
// length tolerance of prefix, marked as corrections.
func (c *Completer) CompleteFuzzy(prefix string, limit int) []Suggestion {
	if s := c.Complete(prefix, limit); len(s) > 0 {
		return s
	}
	if prefix == "" {
		return nil
	}
	folded := c.fold(prefix)
	key := cacheKey{prefix: folded, limit: limit, fuzzy: true}
	if found, ok := c.cache.get(key); ok {
		return withCapitals(found, prefix)
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	filter := utils.NewSuggestionFilter(prefix, c.fold)
	var found []Suggestion
	for _, word := range c.words.MatchAlmost(prefix, c.opts.FuzzyDistance, c.opts.FuzzyTolerance) {
		if !filter.ShouldInclude(word) {
			continue
		}
		freq, _ := c.words.Get(word)
		if freq < c.opts.MinFrequency {
			continue
		}
		found = append(found, Suggestion{
			Word:            word,
			Frequency:       freq,
			WasCorrected:    true,
			OriginalPrefix:  prefix,
			CorrectedPrefix: word,
		})
	}
	slices.SortFunc(found, bySuggestionRank)
	if limit > 0 && len(found) > limit {
		found = slices.Clip(found[:limit])
	}
	if len(found) > 0 {
		log.Debugf("Prefix '%s' corrected to '%s'", prefix, found[0].Word)
	}

	c.cache.add(key, found)
	return withCapitals(found, prefix)
}

// Stats reports dictionary, cache and loader counters.
func (c *Completer) Stats() map[string]int {
	c.mu.Lock()
	if c.maxStale {
		c.maxFreq = 0
		for freq := range c.words.Values() {
			c.maxFreq = max(c.maxFreq, freq)
		}
		c.maxStale = false
	}
	stats := map[string]int{
		"totalWords":   c.words.Len(),
		"maxFrequency": c.maxFreq,
	}
	c.mu.Unlock()

	for k, v := range c.cache.Stats() {
		stats[k] = v
	}
	if c.loader != nil {
		ls := c.loader.Stats()
		stats["loadedChunks"] = ls.LoadedChunks
		stats["availableChunks"] = ls.AvailableChunks
		stats["chunkLoader"] = 1
	} else {
		stats["chunkLoader"] = 0
	}
	return stats
}
