package tst

import "iter"

// frame is a pending step of an in-order walk. A visit frame expands a
// subtree rooted at n; an emit frame yields n's own key. Frames for an eq
// child carry the parent rune that must sit at path[depth-1].
type frame[V any] struct {
	n     *node[V]
	depth int
	lead  rune
	led   bool
	emit  bool
}

// Iterator walks keys in order (or reverse order) using an explicit frame
// stack and a rune path buffer, so abandoning it early costs nothing.
// The tree must not be modified while an Iterator is in use.
type Iterator[V any] struct {
	stack   []frame[V]
	path    []rune
	reverse bool
	remain  int // keys left to yield, -1 for no limit
	key     string
	value   V
}

func newIterator[V any](reverse bool) *Iterator[V] {
	return &Iterator[V]{reverse: reverse, remain: -1}
}

// Next advances to the next key and reports whether there was one.
func (it *Iterator[V]) Next() bool {
	for it.remain != 0 && len(it.stack) > 0 {
		f := it.stack[len(it.stack)-1]
		it.stack = it.stack[:len(it.stack)-1]

		if f.emit {
			it.path = append(it.path[:f.depth], f.n.char)
			it.key = string(it.path)
			it.value = f.n.value
			if it.remain > 0 {
				it.remain--
			}
			return true
		}
		if f.led {
			it.path = append(it.path[:f.depth-1], f.lead)
		}
		it.expand(f.n, f.depth)
	}
	var zero V
	it.key, it.value, it.stack = "", zero, nil
	return false
}

// Key returns the current key.
func (it *Iterator[V]) Key() string { return it.key }

// Value returns the current value.
func (it *Iterator[V]) Value() V { return it.value }

// Entry returns the current key and value.
func (it *Iterator[V]) Entry() Entry[V] {
	return Entry[V]{Key: it.key, Value: it.value}
}

func (it *Iterator[V]) visit(n *node[V], depth int) {
	if n != nil {
		it.stack = append(it.stack, frame[V]{n: n, depth: depth})
	}
}

func (it *Iterator[V]) visitEq(parent *node[V], depth int) {
	if parent.eq != nil {
		it.stack = append(it.stack, frame[V]{n: parent.eq, depth: depth + 1, lead: parent.char, led: true})
	}
}

func (it *Iterator[V]) emitAt(n *node[V], depth int) {
	if n.terminal {
		it.stack = append(it.stack, frame[V]{n: n, depth: depth, emit: true})
	}
}

// expand pushes n's subtree in reverse processing order.
func (it *Iterator[V]) expand(n *node[V], depth int) {
	if it.reverse {
		it.visit(n.low, depth)
		it.emitAt(n, depth)
		it.visitEq(n, depth)
		it.visit(n.high, depth)
		return
	}
	it.visit(n.high, depth)
	it.visitEq(n, depth)
	it.emitAt(n, depth)
	it.visit(n.low, depth)
}

// seek positions the iterator so that the next key yielded has the given
// rank, pushing only the frames that would still be pending at that point.
func (it *Iterator[V]) seek(root *node[V], index int) {
	n, depth := root, 0
	for n != nil {
		ls, es := sizeOf(n.low), sizeOf(n.eq)
		if it.reverse {
			switch {
			case index >= ls+n.self()+es:
				it.visit(n.low, depth)
				it.emitAt(n, depth)
				it.visitEq(n, depth)
				index -= ls + n.self() + es
				n = n.high
			case index >= ls+n.self():
				it.visit(n.low, depth)
				it.emitAt(n, depth)
				index -= ls + n.self()
				it.path = append(it.path[:depth], n.char)
				n, depth = n.eq, depth+1
			case index == ls:
				it.visit(n.low, depth)
				it.emitAt(n, depth)
				return
			default:
				n = n.low
			}
			continue
		}

		switch {
		case index < ls:
			it.visit(n.high, depth)
			it.visitEq(n, depth)
			it.emitAt(n, depth)
			n = n.low
		case n.terminal && index == ls:
			it.visit(n.high, depth)
			it.visitEq(n, depth)
			it.emitAt(n, depth)
			return
		case index < ls+n.self()+es:
			it.visit(n.high, depth)
			index -= ls + n.self()
			it.path = append(it.path[:depth], n.char)
			n, depth = n.eq, depth+1
		default:
			index -= ls + n.self() + es
			n = n.high
		}
	}
}

// Iter returns an iterator over every entry.
func (m *Map[V]) Iter(reverse bool) *Iterator[V] {
	it := newIterator[V](reverse)
	it.visit(m.root, 0)
	return it
}

// rangeIter iterates the entries with ranks in [lo, hi).
func (m *Map[V]) rangeIter(lo, hi int, reverse bool) *Iterator[V] {
	lo, hi = max(lo, 0), min(hi, m.Len())
	it := newIterator[V](reverse)
	if lo >= hi {
		return it
	}
	it.remain = hi - lo
	if reverse {
		it.seek(m.root, hi-1)
	} else {
		it.seek(m.root, lo)
	}
	return it
}

func seq2[V any](open func() *Iterator[V]) iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for it := open(); it.Next(); {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

func keys[V any](all iter.Seq2[string, V]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for k := range all {
			if !yield(k) {
				return
			}
		}
	}
}

func values[V any](all iter.Seq2[string, V]) iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range all {
			if !yield(v) {
				return
			}
		}
	}
}

// All yields every entry in key order.
func (m *Map[V]) All() iter.Seq2[string, V] {
	return seq2(func() *Iterator[V] { return m.Iter(false) })
}

// Backward yields every entry in reverse key order.
func (m *Map[V]) Backward() iter.Seq2[string, V] {
	return seq2(func() *Iterator[V] { return m.Iter(true) })
}

// Keys yields every key in order.
func (m *Map[V]) Keys() iter.Seq[string] {
	return keys(m.All())
}

// Values yields every value in key order.
func (m *Map[V]) Values() iter.Seq[V] {
	return values(m.All())
}
