package tst

import "reflect"

// node is one character position of the tree. low and high hold alternative
// characters at the same position, eq continues with the next character.
type node[V any] struct {
	char     rune
	low      *node[V]
	eq       *node[V]
	high     *node[V]
	size     int // stored keys in this subtree, low/eq/high included
	terminal bool
	value    V
}

func sizeOf[V any](n *node[V]) int {
	if n == nil {
		return 0
	}
	return n.size
}

func (n *node[V]) self() int {
	if n.terminal {
		return 1
	}
	return 0
}

// resize recomputes size from the children. Used after structural changes.
func (n *node[V]) resize() {
	n.size = sizeOf(n.low) + n.self() + sizeOf(n.eq) + sizeOf(n.high)
}

// unset drops the stored value so the node no longer pins it.
func (n *node[V]) unset() V {
	old := n.value
	var zero V
	n.value = zero
	n.terminal = false
	return old
}

// link returns the slot of parent that points at n.
func link[V any](parent, n *node[V]) **node[V] {
	switch n {
	case parent.low:
		return &parent.low
	case parent.eq:
		return &parent.eq
	default:
		return &parent.high
	}
}

// isNil reports whether v holds a nil reference type.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
