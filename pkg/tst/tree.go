package tst

import (
	"fmt"
	"unicode/utf8"
)

// Entry is a key/value pair handed out by navigation and iteration.
type Entry[V any] struct {
	Key   string
	Value V
}

// Map is an ordered string-keyed map stored in a ternary search tree.
//
// Keys are compared rune by rune, so iteration order matches Go's
// string ordering for valid UTF-8. Map performs no locking; callers that
// share one across goroutines must guard it themselves.
type Map[V any] struct {
	root *node[V]
}

// New returns an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{}
}

// FromMap bulk loads src. Insertion follows Go's map order, so the shape of
// the tree is randomised; call Balance afterwards for a compact tree.
func FromMap[V any](src map[string]V) (*Map[V], error) {
	m := New[V]()
	for k, v := range src {
		if _, _, err := m.Put(k, v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Len returns the number of stored keys.
func (m *Map[V]) Len() int {
	return sizeOf(m.root)
}

// Clear drops every key.
func (m *Map[V]) Clear() {
	m.root = nil
}

// Put stores value under key and returns the previous value, if any.
// Arguments are validated before the tree is touched.
func (m *Map[V]) Put(key string, value V) (V, bool, error) {
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

	runes := []rune(key)
	path := make([]*node[V], 0, len(runes))
	slot := &m.root
	for i := 0; ; {
		n := *slot
		if n == nil {
			n = &node[V]{char: runes[i]}
			*slot = n
		}
		path = append(path, n)

		switch c := runes[i]; {
		case c < n.char:
			slot = &n.low
		case c > n.char:
			slot = &n.high
		case i < len(runes)-1:
			i++
			slot = &n.eq
		case n.terminal:
			old := n.value
			n.value = value
			return old, true, nil
		default:
			n.terminal = true
			n.value = value
			for _, p := range path {
				p.size++
			}
			return zero, false, nil
		}
	}
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	if n := m.find(key); n != nil && n.terminal {
		return n.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is stored.
func (m *Map[V]) Contains(key string) bool {
	n := m.find(key)
	return n != nil && n.terminal
}

// Remove deletes key and returns its value. Nodes left without any key
// below them are unlinked; nodes still spelling other keys stay.
func (m *Map[V]) Remove(key string) (V, bool) {
	path := m.descend(key)
	if len(path) == 0 || !path[len(path)-1].terminal {
		var zero V
		return zero, false
	}
	old := path[len(path)-1].unset()
	for _, p := range path {
		p.size--
	}
	for i := len(path) - 1; i >= 0 && path[i].size == 0; i-- {
		if i == 0 {
			m.root = nil
			break
		}
		*link(path[i-1], path[i]) = nil
	}
	return old, true
}

// find returns the node spelling the last rune of key, terminal or not.
func (m *Map[V]) find(key string) *node[V] {
	if key == "" || !utf8.ValidString(key) {
		return nil
	}
	runes := []rune(key)
	n := m.root
	for i := 0; n != nil; {
		switch c := runes[i]; {
		case c < n.char:
			n = n.low
		case c > n.char:
			n = n.high
		case i == len(runes)-1:
			return n
		default:
			i++
			n = n.eq
		}
	}
	return nil
}

// descend is find recording every node visited. The result is empty when
// key does not spell a path; otherwise its last element is the key's node.
func (m *Map[V]) descend(key string) []*node[V] {
	if key == "" || !utf8.ValidString(key) {
		return nil
	}
	runes := []rune(key)
	var path []*node[V]
	n := m.root
	for i := 0; n != nil; {
		path = append(path, n)
		switch c := runes[i]; {
		case c < n.char:
			n = n.low
		case c > n.char:
			n = n.high
		case i == len(runes)-1:
			return path
		default:
			i++
			n = n.eq
		}
	}
	return nil
}
