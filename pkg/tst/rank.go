package tst

import (
	"fmt"
	"unicode/utf8"
)

// countLess returns how many stored keys sort before key and whether key
// itself is stored. It reads only the size counters along one path.
func (m *Map[V]) countLess(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	runes := []rune(key)
	rank := 0
	n := m.root
	for i := 0; n != nil; {
		switch c := runes[i]; {
		case c < n.char:
			n = n.low
		case c > n.char:
			rank += n.size - sizeOf(n.high)
			n = n.high
		default:
			rank += sizeOf(n.low)
			if i == len(runes)-1 {
				return rank, n.terminal
			}
			rank += n.self()
			i++
			n = n.eq
		}
	}
	return rank, false
}

// nodeAt selects the terminal node with the given rank and rebuilds its key.
func (m *Map[V]) nodeAt(index int) (*node[V], string) {
	if index < 0 || index >= m.Len() {
		return nil, ""
	}
	var path []rune
	n := m.root
	for n != nil {
		ls := sizeOf(n.low)
		if index < ls {
			n = n.low
			continue
		}
		index -= ls
		if n.terminal {
			if index == 0 {
				return n, string(append(path, n.char))
			}
			index--
		}
		es := sizeOf(n.eq)
		if index < es {
			path = append(path, n.char)
			n = n.eq
			continue
		}
		index -= es
		n = n.high
	}
	return nil, ""
}

// IndexOf returns the 0-based rank of key, or -1 when key is not stored.
// A key that prefixes other keys ranks right before them.
func (m *Map[V]) IndexOf(key string) int {
	if !utf8.ValidString(key) {
		return -1
	}
	if rank, ok := m.countLess(key); ok {
		return rank
	}
	return -1
}

// EntryAt returns the entry with the given rank.
func (m *Map[V]) EntryAt(index int) (Entry[V], error) {
	n, key := m.nodeAt(index)
	if n == nil {
		return Entry[V]{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, m.Len())
	}
	return Entry[V]{Key: key, Value: n.value}, nil
}

// KeyAt returns the key with the given rank.
func (m *Map[V]) KeyAt(index int) (string, error) {
	e, err := m.EntryAt(index)
	return e.Key, err
}

// ValueAt returns the value with the given rank.
func (m *Map[V]) ValueAt(index int) (V, error) {
	e, err := m.EntryAt(index)
	return e.Value, err
}

// FirstKey returns the smallest key.
func (m *Map[V]) FirstKey() (string, bool) {
	_, key := m.nodeAt(0)
	return key, key != ""
}

// LastKey returns the largest key.
func (m *Map[V]) LastKey() (string, bool) {
	_, key := m.nodeAt(m.Len() - 1)
	return key, key != ""
}

type direction int

const (
	lower direction = iota
	floor
	ceiling
	higher
)

// neighbour resolves a navigation query to a rank clamped into [lo, hi).
// The whole map uses lo = 0 and hi = Len(); views pass their own bounds.
func (m *Map[V]) neighbour(key string, dir direction, lo, hi int) (Entry[V], bool) {
	rank, found := m.countLess(key)
	var target int
	switch dir {
	case lower:
		target = min(rank-1, hi-1)
	case floor:
		if !found {
			rank--
		}
		target = min(rank, hi-1)
	case ceiling:
		target = max(rank, lo)
	case higher:
		if found {
			rank++
		}
		target = max(rank, lo)
	}
	if target < lo || target >= hi {
		return Entry[V]{}, false
	}
	e, err := m.EntryAt(target)
	return e, err == nil
}

// Predecessor returns the entry right before key. key need not be stored.
func (m *Map[V]) Predecessor(key string) (Entry[V], bool) {
	return m.neighbour(key, lower, 0, m.Len())
}

// Successor returns the entry right after key. key need not be stored.
func (m *Map[V]) Successor(key string) (Entry[V], bool) {
	return m.neighbour(key, higher, 0, m.Len())
}

// Floor returns the entry for key or, failing that, its predecessor.
func (m *Map[V]) Floor(key string) (Entry[V], bool) {
	return m.neighbour(key, floor, 0, m.Len())
}

// Ceiling returns the entry for key or, failing that, its successor.
func (m *Map[V]) Ceiling(key string) (Entry[V], bool) {
	return m.neighbour(key, ceiling, 0, m.Len())
}
