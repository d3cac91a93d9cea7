package utils

import "unicode"

// CapitalMask records which rune positions of s are upper case. It returns
// nil when s has no upper-case runes.
func CapitalMask(s string) []bool {
	var mask []bool
	i := 0
	for _, r := range s {
		if unicode.IsUpper(r) {
			if mask == nil {
				mask = make([]bool, len([]rune(s)))
			}
			mask[i] = true
		}
		i++
	}
	return mask
}

// ApplyCapitals upper-cases the runes of word at the positions set in mask.
// Positions past the end of word are ignored.
func ApplyCapitals(word string, mask []bool) string {
	if mask == nil {
		return word
	}
	runes := []rune(word)
	changed := false
	for i := 0; i < len(runes) && i < len(mask); i++ {
		if mask[i] && unicode.IsLower(runes[i]) {
			runes[i] = unicode.ToUpper(runes[i])
			changed = true
		}
	}
	if !changed {
		return word
	}
	return string(runes)
}
