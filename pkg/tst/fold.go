package tst

import (
	"fmt"
	"iter"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Folded is what a FoldMap stores under each lower-cased key: the spelling
// last used to Put it and the caller's value.
type Folded[V any] struct {
	Key   string
	Value V
}

// FoldMap is a case-insensitive SortedMap. Keys are lower-cased with a
// locale fixed at construction and ordered by that folded form, while every
// key handed back to the caller keeps its original spelling. Keys that fold
// to the same string collide and the last Put wins.
type FoldMap[V any] struct {
	inner SortedMap[Folded[V]]
	tag   language.Tag
}

// NewFold returns an empty case-insensitive map folding with tag.
func NewFold[V any](tag language.Tag) *FoldMap[V] {
	return &FoldMap[V]{
		inner: New[Folded[V]](),
		tag:   tag,
	}
}

// Locale returns the tag used for folding.
func (f *FoldMap[V]) Locale() language.Tag { return f.tag }

// Fold returns key as it is stored internally. Casers are stateful, so
// every call builds its own.
func (f *FoldMap[V]) Fold(key string) string {
	if !utf8.ValidString(key) {
		return key
	}
	return cases.Lower(f.tag).String(key)
}

// Balance compacts the underlying tree. Views have nothing to compact.
func (f *FoldMap[V]) Balance() {
	if b, ok := f.inner.(interface{ Balance() }); ok {
		b.Balance()
	}
}

func (f *FoldMap[V]) wrap(inner SortedMap[Folded[V]]) *FoldMap[V] {
	return &FoldMap[V]{inner: inner, tag: f.tag}
}

func unfold[V any](e Entry[Folded[V]], ok bool) (Entry[V], bool) {
	return Entry[V]{Key: e.Value.Key, Value: e.Value.Value}, ok
}

func (f *FoldMap[V]) Len() int { return f.inner.Len() }

func (f *FoldMap[V]) Get(key string) (V, bool) {
	v, ok := f.inner.Get(f.Fold(key))
	return v.Value, ok
}

func (f *FoldMap[V]) Contains(key string) bool {
	return f.inner.Contains(f.Fold(key))
}

// Put stores value under the folded key, remembering key's spelling.
func (f *FoldMap[V]) Put(key string, value V) (V, bool, error) {
	var zero V
	if key == "" {
		return zero, false, ErrEmptyKey
	}
	if !utf8.ValidString(key) {
		return zero, false, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if isNil(any(value)) {
		return zero, false, fmt.Errorf("%w for key %q", ErrNilValue, key)
	}
	old, ok, err := f.inner.Put(f.Fold(key), Folded[V]{Key: key, Value: value})
	return old.Value, ok, err
}

func (f *FoldMap[V]) Remove(key string) (V, bool) {
	old, ok := f.inner.Remove(f.Fold(key))
	return old.Value, ok
}

func (f *FoldMap[V]) Clear() { f.inner.Clear() }

// Original returns the stored spelling of key.
func (f *FoldMap[V]) Original(key string) (string, bool) {
	v, ok := f.inner.Get(f.Fold(key))
	return v.Key, ok
}

func (f *FoldMap[V]) FirstKey() (string, bool) {
	e, err := f.EntryAt(0)
	return e.Key, err == nil
}

func (f *FoldMap[V]) LastKey() (string, bool) {
	e, err := f.EntryAt(f.Len() - 1)
	return e.Key, err == nil
}

func (f *FoldMap[V]) IndexOf(key string) int {
	return f.inner.IndexOf(f.Fold(key))
}

func (f *FoldMap[V]) EntryAt(index int) (Entry[V], error) {
	e, err := f.inner.EntryAt(index)
	if err != nil {
		return Entry[V]{}, err
	}
	u, _ := unfold(e, true)
	return u, nil
}

func (f *FoldMap[V]) KeyAt(index int) (string, error) {
	e, err := f.EntryAt(index)
	return e.Key, err
}

func (f *FoldMap[V]) ValueAt(index int) (V, error) {
	e, err := f.EntryAt(index)
	return e.Value, err
}

func (f *FoldMap[V]) Predecessor(key string) (Entry[V], bool) {
	return unfold(f.inner.Predecessor(f.Fold(key)))
}

func (f *FoldMap[V]) Successor(key string) (Entry[V], bool) {
	return unfold(f.inner.Successor(f.Fold(key)))
}

func (f *FoldMap[V]) Floor(key string) (Entry[V], bool) {
	return unfold(f.inner.Floor(f.Fold(key)))
}

func (f *FoldMap[V]) Ceiling(key string) (Entry[V], bool) {
	return unfold(f.inner.Ceiling(f.Fold(key)))
}

func unfoldSeq[V any](all iter.Seq2[string, Folded[V]]) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, v := range all {
			if !yield(v.Key, v.Value) {
				return
			}
		}
	}
}

func (f *FoldMap[V]) All() iter.Seq2[string, V] {
	return unfoldSeq(f.inner.All())
}

func (f *FoldMap[V]) Backward() iter.Seq2[string, V] {
	return unfoldSeq(f.inner.Backward())
}

func (f *FoldMap[V]) Keys() iter.Seq[string] {
	return keys(f.All())
}

func (f *FoldMap[V]) Values() iter.Seq[V] {
	return values(f.All())
}

func (f *FoldMap[V]) PrefixEntries(prefix string, reverse bool) iter.Seq2[string, V] {
	return unfoldSeq(f.inner.PrefixEntries(f.Fold(prefix), reverse))
}

func (f *FoldMap[V]) PrefixMatch(prefix string) iter.Seq[string] {
	return keys(f.PrefixEntries(prefix, false))
}

func (f *FoldMap[V]) CountPrefix(prefix string) int {
	return f.inner.CountPrefix(f.Fold(prefix))
}

func (f *FoldMap[V]) MatchAlmost(target string, maxDistance, lengthTolerance int) []string {
	return f.MatchAlmostN(target, maxDistance, lengthTolerance, 0)
}

// MatchAlmostN matches against the folded keys and returns the original
// spellings, ordered by folded key.
func (f *FoldMap[V]) MatchAlmostN(target string, maxDistance, lengthTolerance, limit int) []string {
	matches := f.inner.MatchAlmostN(f.Fold(target), maxDistance, lengthTolerance, limit)
	for i, k := range matches {
		if v, ok := f.inner.Get(k); ok {
			matches[i] = v.Key
		}
	}
	return matches
}

func (f *FoldMap[V]) HeadMap(toKey string) (SortedMap[V], error) {
	inner, err := f.inner.HeadMap(f.Fold(toKey))
	if err != nil {
		return nil, err
	}
	return f.wrap(inner), nil
}

func (f *FoldMap[V]) TailMap(fromKey string) (SortedMap[V], error) {
	inner, err := f.inner.TailMap(f.Fold(fromKey))
	if err != nil {
		return nil, err
	}
	return f.wrap(inner), nil
}

func (f *FoldMap[V]) SubMap(fromKey, toKey string) (SortedMap[V], error) {
	inner, err := f.inner.SubMap(f.Fold(fromKey), f.Fold(toKey))
	if err != nil {
		return nil, err
	}
	return f.wrap(inner), nil
}
