package tst

import (
	"iter"

	"golang.org/x/text/language"
)

// Set is an ordered set of strings backed by a SortedMap with an empty
// struct as the shared membership marker.
type Set struct {
	m SortedMap[struct{}]
}

// NewSet returns a case-sensitive set holding words. Empty words are skipped.
func NewSet(words ...string) *Set {
	s := &Set{m: New[struct{}]()}
	s.AddAll(words...)
	return s
}

// NewFoldSet returns a case-insensitive set folding with tag.
func NewFoldSet(tag language.Tag, words ...string) *Set {
	s := &Set{m: NewFold[struct{}](tag)}
	s.AddAll(words...)
	return s
}

// Add inserts word and reports whether it was new.
func (s *Set) Add(word string) (bool, error) {
	_, replaced, err := s.m.Put(word, struct{}{})
	return err == nil && !replaced, err
}

// AddAll inserts every non-empty word and returns how many were new.
func (s *Set) AddAll(words ...string) int {
	added := 0
	for _, w := range words {
		if ok, _ := s.Add(w); ok {
			added++
		}
	}
	return added
}

func (s *Set) Contains(word string) bool { return s.m.Contains(word) }

// Remove deletes word and reports whether it was present.
func (s *Set) Remove(word string) bool {
	_, ok := s.m.Remove(word)
	return ok
}

func (s *Set) Len() int { return s.m.Len() }

func (s *Set) Clear() { s.m.Clear() }

func (s *Set) First() (string, bool) { return s.m.FirstKey() }

func (s *Set) Last() (string, bool) { return s.m.LastKey() }

func (s *Set) IndexOf(word string) int { return s.m.IndexOf(word) }

// At returns the word with the given rank.
func (s *Set) At(index int) (string, error) { return s.m.KeyAt(index) }

// Lower returns the word right before word.
func (s *Set) Lower(word string) (string, bool) {
	e, ok := s.m.Predecessor(word)
	return e.Key, ok
}

// Higher returns the word right after word.
func (s *Set) Higher(word string) (string, bool) {
	e, ok := s.m.Successor(word)
	return e.Key, ok
}

func (s *Set) All() iter.Seq[string] { return s.m.Keys() }

// Backward yields the words in reverse order.
func (s *Set) Backward() iter.Seq[string] { return keys(s.m.Backward()) }

func (s *Set) PrefixMatch(prefix string) iter.Seq[string] { return s.m.PrefixMatch(prefix) }

func (s *Set) MatchAlmost(target string, maxDistance, lengthTolerance int) []string {
	return s.m.MatchAlmost(target, maxDistance, lengthTolerance)
}

func (s *Set) HeadSet(to string) (*Set, error) {
	m, err := s.m.HeadMap(to)
	if err != nil {
		return nil, err
	}
	return &Set{m: m}, nil
}

func (s *Set) TailSet(from string) (*Set, error) {
	m, err := s.m.TailMap(from)
	if err != nil {
		return nil, err
	}
	return &Set{m: m}, nil
}

func (s *Set) SubSet(from, to string) (*Set, error) {
	m, err := s.m.SubMap(from, to)
	if err != nil {
		return nil, err
	}
	return &Set{m: m}, nil
}
