package tst

import "iter"

// PrefixIter returns an iterator over every entry whose key starts with
// prefix: the prefix itself when stored, then the keys below it. An empty
// prefix matches every key; a prefix spelling no path yields nothing.
func (m *Map[V]) PrefixIter(prefix string, reverse bool) *Iterator[V] {
	if prefix == "" {
		return m.Iter(reverse)
	}
	it := newIterator[V](reverse)
	p := m.find(prefix)
	if p == nil {
		return it
	}
	runes := []rune(prefix)
	depth := len(runes) - 1
	it.path = append(it.path, runes[:depth]...)
	if reverse {
		it.emitAt(p, depth)
		it.visitEq(p, depth)
	} else {
		it.visitEq(p, depth)
		it.emitAt(p, depth)
	}
	return it
}

// PrefixEntries yields the entries under prefix in order, or in reverse
// order when reverse is set. Each call starts a fresh walk.
func (m *Map[V]) PrefixEntries(prefix string, reverse bool) iter.Seq2[string, V] {
	return seq2(func() *Iterator[V] { return m.PrefixIter(prefix, reverse) })
}

// PrefixMatch yields the keys starting with prefix in order.
func (m *Map[V]) PrefixMatch(prefix string) iter.Seq[string] {
	return keys(m.PrefixEntries(prefix, false))
}

// prefixRange returns the rank interval [lo, hi) holding the keys that
// start with prefix. Such keys are always contiguous in rank order.
func (m *Map[V]) prefixRange(prefix string) (int, int) {
	if prefix == "" {
		return 0, m.Len()
	}
	lo, _ := m.countLess(prefix)
	p := m.find(prefix)
	if p == nil {
		return lo, lo
	}
	return lo, lo + p.self() + sizeOf(p.eq)
}

// CountPrefix returns how many keys start with prefix.
func (m *Map[V]) CountPrefix(prefix string) int {
	lo, hi := m.prefixRange(prefix)
	return hi - lo
}
