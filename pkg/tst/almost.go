package tst

// almost is the state of one approximate search. Distance here counts
// substituted runes at aligned positions only; a differing length is
// allowed by tolerance and never charged to the budget.
type almost struct {
	target    []rune
	tolerance int
	limit     int
	path      []rune
	out       []string
}

func walkAlmost[V any](s *almost, n *node[V], pos, budget int) bool {
	if n == nil {
		return true
	}
	inTarget := pos < len(s.target)
	var want rune
	if inTarget {
		want = s.target[pos]
	}

	if !inTarget || budget > 0 || want < n.char {
		if !walkAlmost(s, n.low, pos, budget) {
			return false
		}
	}

	rest := budget
	if inTarget && n.char != want {
		rest--
	}
	if rest >= 0 {
		s.path = append(s.path[:pos], n.char)
		if n.terminal && abs(pos+1-len(s.target)) <= s.tolerance {
			s.out = append(s.out, string(s.path))
			if s.limit > 0 && len(s.out) >= s.limit {
				return false
			}
		}
		if pos+1 < len(s.target)+s.tolerance {
			if !walkAlmost(s, n.eq, pos+1, rest) {
				return false
			}
		}
	}

	if !inTarget || budget > 0 || want > n.char {
		return walkAlmost(s, n.high, pos, budget)
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MatchAlmost returns, in key order, every key whose length in runes is
// within lengthTolerance of target's and which differs from target in at
// most maxDistance of their common positions. Negative arguments match
// nothing.
func (m *Map[V]) MatchAlmost(target string, maxDistance, lengthTolerance int) []string {
	return m.MatchAlmostN(target, maxDistance, lengthTolerance, 0)
}

// MatchAlmostN is MatchAlmost stopping after limit keys. limit <= 0 means
// no limit.
func (m *Map[V]) MatchAlmostN(target string, maxDistance, lengthTolerance, limit int) []string {
	if maxDistance < 0 || lengthTolerance < 0 {
		return nil
	}
	s := &almost{
		target:    []rune(target),
		tolerance: lengthTolerance,
		limit:     limit,
	}
	// low, self, eq, high order keeps s.out sorted without a final sort.
	walkAlmost(s, m.root, 0, maxDistance)
	return s.out
}
