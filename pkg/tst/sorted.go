package tst

import (
	"iter"

	"golang.org/x/text/language"
)

// SortedMap is the ordered map contract shared by Map, its range views and
// the case-insensitive FoldMap.
type SortedMap[V any] interface {
	Len() int
	Get(key string) (V, bool)
	Contains(key string) bool
	Put(key string, value V) (V, bool, error)
	Remove(key string) (V, bool)
	Clear()

	FirstKey() (string, bool)
	LastKey() (string, bool)
	IndexOf(key string) int
	KeyAt(index int) (string, error)
	ValueAt(index int) (V, error)
	EntryAt(index int) (Entry[V], error)
	Predecessor(key string) (Entry[V], bool)
	Successor(key string) (Entry[V], bool)
	Floor(key string) (Entry[V], bool)
	Ceiling(key string) (Entry[V], bool)

	All() iter.Seq2[string, V]
	Backward() iter.Seq2[string, V]
	Keys() iter.Seq[string]
	Values() iter.Seq[V]
	PrefixEntries(prefix string, reverse bool) iter.Seq2[string, V]
	PrefixMatch(prefix string) iter.Seq[string]
	CountPrefix(prefix string) int
	MatchAlmost(target string, maxDistance, lengthTolerance int) []string
	MatchAlmostN(target string, maxDistance, lengthTolerance, limit int) []string

	HeadMap(toKey string) (SortedMap[V], error)
	TailMap(fromKey string) (SortedMap[V], error)
	SubMap(fromKey, toKey string) (SortedMap[V], error)
}

var (
	_ SortedMap[int] = (*Map[int])(nil)
	_ SortedMap[int] = (*View[int])(nil)
	_ SortedMap[int] = (*FoldMap[int])(nil)
)

// Options selects the flavour of map built by Open.
type Options struct {
	CaseInsensitive bool
	// Locale drives case folding when CaseInsensitive is set.
	Locale language.Tag
}

// Open returns an empty map configured by opts.
func Open[V any](opts Options) SortedMap[V] {
	if opts.CaseInsensitive {
		return NewFold[V](opts.Locale)
	}
	return New[V]()
}
