package tst

import (
	"fmt"
	"iter"
)

// bounds is a half-open key interval. An unset side is unbounded.
type bounds struct {
	from, to       string
	hasFrom, hasTo bool
}

func (b bounds) contains(key string) bool {
	return (!b.hasFrom || key >= b.from) && (!b.hasTo || key < b.to)
}

// narrow intersects b with a requested sub-range, rejecting requests that
// reach outside b.
func (b bounds) narrow(req bounds) (bounds, error) {
	if req.hasFrom && req.hasTo && req.from > req.to {
		return bounds{}, fmt.Errorf("%w: %q > %q", ErrInvalidRange, req.from, req.to)
	}
	if req.hasFrom && !b.contains(req.from) && !(b.hasTo && req.from == b.to) {
		return bounds{}, fmt.Errorf("%w: from %q", ErrKeyOutOfRange, req.from)
	}
	if req.hasTo && (b.hasFrom && req.to < b.from || b.hasTo && req.to > b.to) {
		return bounds{}, fmt.Errorf("%w: to %q", ErrKeyOutOfRange, req.to)
	}
	if !req.hasFrom {
		req.from, req.hasFrom = b.from, b.hasFrom
	}
	if !req.hasTo {
		req.to, req.hasTo = b.to, b.hasTo
	}
	return req, nil
}

// View is a live window [from, to) onto a Map. Reads and writes go straight
// to the parent, so changes through either side are visible to both.
type View[V any] struct {
	m *Map[V]
	b bounds
}

// ranks returns the parent rank interval currently covered by the view.
func (v *View[V]) ranks() (int, int) {
	lo, hi := 0, v.m.Len()
	if v.b.hasFrom {
		lo, _ = v.m.countLess(v.b.from)
	}
	if v.b.hasTo {
		hi, _ = v.m.countLess(v.b.to)
	}
	return lo, max(lo, hi)
}

func (v *View[V]) Len() int {
	lo, hi := v.ranks()
	return hi - lo
}

func (v *View[V]) Get(key string) (V, bool) {
	if !v.b.contains(key) {
		var zero V
		return zero, false
	}
	return v.m.Get(key)
}

func (v *View[V]) Contains(key string) bool {
	return v.b.contains(key) && v.m.Contains(key)
}

// Put stores key in the parent map; keys outside the view are rejected.
func (v *View[V]) Put(key string, value V) (V, bool, error) {
	if key != "" && !v.b.contains(key) {
		var zero V
		return zero, false, fmt.Errorf("%w: %q", ErrKeyOutOfRange, key)
	}
	return v.m.Put(key, value)
}

func (v *View[V]) Remove(key string) (V, bool) {
	if !v.b.contains(key) {
		var zero V
		return zero, false
	}
	return v.m.Remove(key)
}

// Clear removes the keys inside the view from the parent.
func (v *View[V]) Clear() {
	var doomed []string
	for k := range v.Keys() {
		doomed = append(doomed, k)
	}
	for _, k := range doomed {
		v.m.Remove(k)
	}
}

func (v *View[V]) FirstKey() (string, bool) {
	lo, hi := v.ranks()
	if lo >= hi {
		return "", false
	}
	k, err := v.m.KeyAt(lo)
	return k, err == nil
}

func (v *View[V]) LastKey() (string, bool) {
	lo, hi := v.ranks()
	if lo >= hi {
		return "", false
	}
	k, err := v.m.KeyAt(hi - 1)
	return k, err == nil
}

// IndexOf returns the rank of key within the view, or -1.
func (v *View[V]) IndexOf(key string) int {
	if !v.b.contains(key) {
		return -1
	}
	rank := v.m.IndexOf(key)
	if rank < 0 {
		return -1
	}
	lo, _ := v.ranks()
	return rank - lo
}

func (v *View[V]) EntryAt(index int) (Entry[V], error) {
	lo, hi := v.ranks()
	if index < 0 || index >= hi-lo {
		return Entry[V]{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, hi-lo)
	}
	return v.m.EntryAt(lo + index)
}

func (v *View[V]) KeyAt(index int) (string, error) {
	e, err := v.EntryAt(index)
	return e.Key, err
}

func (v *View[V]) ValueAt(index int) (V, error) {
	e, err := v.EntryAt(index)
	return e.Value, err
}

func (v *View[V]) Predecessor(key string) (Entry[V], bool) {
	lo, hi := v.ranks()
	return v.m.neighbour(key, lower, lo, hi)
}

func (v *View[V]) Successor(key string) (Entry[V], bool) {
	lo, hi := v.ranks()
	return v.m.neighbour(key, higher, lo, hi)
}

func (v *View[V]) Floor(key string) (Entry[V], bool) {
	lo, hi := v.ranks()
	return v.m.neighbour(key, floor, lo, hi)
}

func (v *View[V]) Ceiling(key string) (Entry[V], bool) {
	lo, hi := v.ranks()
	return v.m.neighbour(key, ceiling, lo, hi)
}

// Iter returns an iterator over the entries inside the view.
func (v *View[V]) Iter(reverse bool) *Iterator[V] {
	lo, hi := v.ranks()
	return v.m.rangeIter(lo, hi, reverse)
}

func (v *View[V]) All() iter.Seq2[string, V] {
	return seq2(func() *Iterator[V] { return v.Iter(false) })
}

func (v *View[V]) Backward() iter.Seq2[string, V] {
	return seq2(func() *Iterator[V] { return v.Iter(true) })
}

func (v *View[V]) Keys() iter.Seq[string] {
	return keys(v.All())
}

func (v *View[V]) Values() iter.Seq[V] {
	return values(v.All())
}

// prefixRanks intersects the prefix interval with the view.
func (v *View[V]) prefixRanks(prefix string) (int, int) {
	lo, hi := v.ranks()
	plo, phi := v.m.prefixRange(prefix)
	return max(lo, plo), min(hi, phi)
}

func (v *View[V]) PrefixEntries(prefix string, reverse bool) iter.Seq2[string, V] {
	return seq2(func() *Iterator[V] {
		lo, hi := v.prefixRanks(prefix)
		return v.m.rangeIter(lo, hi, reverse)
	})
}

func (v *View[V]) PrefixMatch(prefix string) iter.Seq[string] {
	return keys(v.PrefixEntries(prefix, false))
}

func (v *View[V]) CountPrefix(prefix string) int {
	lo, hi := v.prefixRanks(prefix)
	return max(0, hi-lo)
}

func (v *View[V]) MatchAlmost(target string, maxDistance, lengthTolerance int) []string {
	return v.MatchAlmostN(target, maxDistance, lengthTolerance, 0)
}

func (v *View[V]) MatchAlmostN(target string, maxDistance, lengthTolerance, limit int) []string {
	var out []string
	for _, k := range v.m.MatchAlmost(target, maxDistance, lengthTolerance) {
		if !v.b.contains(k) {
			continue
		}
		out = append(out, k)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func (v *View[V]) sub(req bounds) (SortedMap[V], error) {
	b, err := v.b.narrow(req)
	if err != nil {
		return nil, err
	}
	return &View[V]{m: v.m, b: b}, nil
}

func (v *View[V]) HeadMap(toKey string) (SortedMap[V], error) {
	return v.sub(bounds{to: toKey, hasTo: true})
}

func (v *View[V]) TailMap(fromKey string) (SortedMap[V], error) {
	return v.sub(bounds{from: fromKey, hasFrom: true})
}

func (v *View[V]) SubMap(fromKey, toKey string) (SortedMap[V], error) {
	return v.sub(bounds{from: fromKey, to: toKey, hasFrom: true, hasTo: true})
}

func (m *Map[V]) view(req bounds) (SortedMap[V], error) {
	return (&View[V]{m: m}).sub(req)
}

// HeadMap returns a live view of the keys strictly before toKey.
func (m *Map[V]) HeadMap(toKey string) (SortedMap[V], error) {
	return m.view(bounds{to: toKey, hasTo: true})
}

// TailMap returns a live view of the keys from fromKey on.
func (m *Map[V]) TailMap(fromKey string) (SortedMap[V], error) {
	return m.view(bounds{from: fromKey, hasFrom: true})
}

// SubMap returns a live view of the keys in [fromKey, toKey).
func (m *Map[V]) SubMap(fromKey, toKey string) (SortedMap[V], error) {
	return m.view(bounds{from: fromKey, to: toKey, hasFrom: true, hasTo: true})
}
