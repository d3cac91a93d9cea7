/*
Package tst implements ordered string maps and sets on a ternary search tree.

Every node holds one rune and three links: low and high lead to other runes
at the same position, eq continues the key. Each node also counts the keys
stored below it, which turns rank queries into a single root-to-leaf walk:

	m := tst.New[int]()
	m.Put("cat", 1)
	m.Put("car", 2)
	m.Put("cart", 3)
	m.IndexOf("cart")    // 1
	m.KeyAt(2)           // "cat"
	m.Predecessor("cat") // {cart 3}

Three access patterns share the same nodes:

  - exact and ranked access: Get, IndexOf, KeyAt, Predecessor, Successor
  - prefix subtrees: PrefixEntries, PrefixMatch
  - approximate matches: MatchAlmost, which counts substituted runes at
    aligned positions and bounds the length difference separately

HeadMap, TailMap and SubMap return live views; writes through a view land
in the parent. FoldMap is the case-insensitive flavour and Set the key-only
one. The tree is never rebalanced on its own; Balance compacts it on demand.

Keys are compared rune by rune and must be valid UTF-8; Put rejects
anything else with ErrInvalidKey, and Get, Contains, Remove and IndexOf
report such keys absent.

None of the types lock. Concurrent readers are fine, a writer needs
exclusive access.
*/
package tst
