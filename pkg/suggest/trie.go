package suggest

import (
	"fmt"
	"slices"
)

// Suggest returns the first word in order that starts with prefix,
// including prefix itself when stored.
func (c *Completer) Suggest(prefix string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for word := range c.words.PrefixMatch(prefix) {
		return word, true
	}
	return "", false
}

// Almost returns every stored word within distance substitutions of word
// whose length differs by at most tolerance, in word order.
func (c *Completer) Almost(word string, distance, tolerance int) []Suggestion {
	c.mu.RLock()
	defer c.mu.RUnlock()

	matches := c.words.MatchAlmost(word, distance, tolerance)
	out := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		freq, _ := c.words.Get(m)
		out = append(out, Suggestion{Word: m, Frequency: freq})
	}
	return slices.Clip(out)
}

// IndexOf returns the position of word in sorted order, or -1.
func (c *Completer) IndexOf(word string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.words.IndexOf(word)
}

// WordAt returns the word at position index in sorted order.
func (c *Completer) WordAt(index int) (Suggestion, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, err := c.words.EntryAt(index)
	if err != nil {
		return Suggestion{}, fmt.Errorf("word at %d: %w", index, err)
	}
	return Suggestion{Word: e.Key, Frequency: e.Value}, nil
}

// Lower returns the greatest stored word before word.
func (c *Completer) Lower(word string) (Suggestion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.words.Predecessor(word)
	return Suggestion{Word: e.Key, Frequency: e.Value}, ok
}

// Higher returns the least stored word after word.
func (c *Completer) Higher(word string) (Suggestion, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.words.Successor(word)
	return Suggestion{Word: e.Key, Frequency: e.Value}, ok
}
