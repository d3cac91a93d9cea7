package tst

// Balance rebuilds every group of low/high siblings into a balanced binary
// tree, bottom up. Keys, order and ranks are unchanged; only the depth of
// lookups shrinks, which matters after sorted bulk loads.
func (m *Map[V]) Balance() {
	m.root = rebalance(m.root)
}

func rebalance[V any](n *node[V]) *node[V] {
	if n == nil {
		return nil
	}
	group := siblings(n, nil)
	for _, g := range group {
		g.eq = rebalance(g.eq)
		g.low, g.high = nil, nil
	}
	return build(group, 0, len(group))
}

// siblings lists the nodes of one character position in rune order.
func siblings[V any](n *node[V], acc []*node[V]) []*node[V] {
	if n == nil {
		return acc
	}
	acc = siblings(n.low, acc)
	acc = append(acc, n)
	return siblings(n.high, acc)
}

func build[V any](nodes []*node[V], lo, hi int) *node[V] {
	if lo >= hi {
		return nil
	}
	mid := (lo + hi) / 2
	n := nodes[mid]
	n.low = build(nodes, lo, mid)
	n.high = build(nodes, mid+1, hi)
	n.resize()
	return n
}

// Height returns the number of nodes on the longest root path.
func (m *Map[V]) Height() int {
	return height(m.root)
}

func height[V any](n *node[V]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.low), height(n.eq), height(n.high))
}
