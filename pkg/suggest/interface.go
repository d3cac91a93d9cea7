// Package suggest ranks word completions out of a ternary search tree of
// word frequencies.
//
// A Completer answers prefix completions ordered by frequency, falls back
// to near matches when nothing completes, and exposes the ordered queries of
// the tree (rank, word at rank, neighbours) for list-style front ends.
// Words arrive from a dictionary.Loader, a text list or AddWord.
package suggest

// ICompleter is the completion surface shared by the IPC server and the CLI.
type ICompleter interface {
	// Complete returns completions of prefix ordered by frequency.
	Complete(prefix string, limit int) []Suggestion
	// CompleteFuzzy is Complete with a fallback to near matches.
	CompleteFuzzy(prefix string, limit int) []Suggestion
	Almost(word string, distance, tolerance int) []Suggestion
	Suggest(prefix string) (string, bool)

	IndexOf(word string) int
	WordAt(index int) (Suggestion, error)
	Lower(word string) (Suggestion, bool)
	Higher(word string) (Suggestion, bool)

	AddWord(word string, frequency int) error
	RemoveWord(word string) bool
	Stats() map[string]int
}

var _ ICompleter = (*Completer)(nil)
