package utils

// SuggestionFilter drops words already seen, comparing them in folded form.
type SuggestionFilter struct {
	seen map[string]bool
	fold func(string) string
}

// NewSuggestionFilter returns a filter that already considers input seen.
// fold maps a word to the form used for comparison; nil compares verbatim.
func NewSuggestionFilter(input string, fold func(string) string) *SuggestionFilter {
	if fold == nil {
		fold = func(s string) string { return s }
	}
	return &SuggestionFilter{
		seen: map[string]bool{fold(input): true},
		fold: fold,
	}
}

// ShouldInclude returns true the first time a word is offered.
func (f *SuggestionFilter) ShouldInclude(word string) bool {
	key := f.fold(word)
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	return true
}
