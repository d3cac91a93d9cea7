// Package cli is an interactive front end to a completer, for debugging
// completions and the ordered queries of the word tree by hand.
package cli

import (
	"bufio"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordtree/internal/utils"
	"github.com/bastiangx/wordtree/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const usage = `commands:
  word         completions of word
  ~word [d]    stored words within d substitutions (default 1)
  ?word        rank of word
  #n           word at rank n
  <word >word  neighbours of word
  +word [f]    add word with frequency f
  -word        remove word
  :stats       counters`

var wordStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})

// InputHandler reads one command per line and prints what the completer
// answers. A plain line is completed; the other commands start with a
// marker rune.
type InputHandler struct {
	completer       suggest.ICompleter
	minPrefixLength int
	maxPrefixLength int
	suggestLimit    int
	noFilter        bool
	tolerance       int

	in  io.Reader
	out *log.Logger
	p   *message.Printer
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(completer suggest.ICompleter, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		completer:       completer,
		minPrefixLength: minLength,
		maxPrefixLength: maxLength,
		suggestLimit:    limit,
		noFilter:        noFilter,
		tolerance:       1,
		in:              os.Stdin,
		out:             newOutput(os.Stderr),
		p:               message.NewPrinter(language.English),
	}
}

func newOutput(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{ReportTimestamp: false, Level: log.InfoLevel})
}

// Start runs the loop until input ends. EOF is a normal exit.
func (h *InputHandler) Start() error {
	h.out.Print("wordtree CLI [BETA]")
	h.out.Print("type something and press Enter (Ctrl+C to exit, :help for commands)")

	scanner := bufio.NewScanner(h.in)
	for {
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		h.handleInput(line)
	}
}

func (h *InputHandler) handleInput(line string) {
	if line == ":help" {
		h.out.Print(usage)
		return
	}
	if line == ":stats" {
		h.printStats()
		return
	}

	cmd, rest := line[0], strings.TrimSpace(line[1:])
	switch cmd {
	case '~':
		word, arg, _ := strings.Cut(rest, " ")
		distance := 1
		if arg != "" {
			d, err := strconv.Atoi(strings.TrimSpace(arg))
			if err != nil || d < 0 {
				h.out.Errorf("Bad distance: %s", arg)
				return
			}
			distance = d
		}
		if word == "" {
			h.out.Error("Missing word")
			return
		}
		h.printSuggestions(word, h.completer.Almost(word, distance, h.tolerance))
	case '?':
		if i := h.completer.IndexOf(rest); i >= 0 {
			h.out.Printf("'%s' is at rank %s", rest, h.p.Sprintf("%d", i))
		} else {
			h.out.Warnf("'%s' is not stored", rest)
		}
	case '#':
		i, err := strconv.Atoi(rest)
		if err != nil {
			h.out.Errorf("Bad rank: %s", rest)
			return
		}
		s, err := h.completer.WordAt(i)
		if err != nil {
			h.out.Warnf("%v", err)
			return
		}
		h.printWord(i, s)
	case '<', '>':
		s, ok := h.completer.Higher(rest)
		side := "after"
		if cmd == '<' {
			s, ok = h.completer.Lower(rest)
			side = "before"
		}
		if !ok {
			h.out.Warnf("No word %s '%s'", side, rest)
			return
		}
		h.printWord(h.completer.IndexOf(s.Word), s)
	case '+':
		h.add(rest)
	case '-':
		if h.completer.RemoveWord(rest) {
			h.out.Printf("Removed '%s'", rest)
		} else {
			h.out.Warnf("'%s' is not stored", rest)
		}
	default:
		h.complete(line)
	}
}

func (h *InputHandler) add(args string) {
	word, arg, _ := strings.Cut(args, " ")
	freq := 1
	if arg = strings.TrimSpace(arg); arg != "" {
		f, err := strconv.Atoi(arg)
		if err != nil {
			h.out.Errorf("Bad frequency: %s", arg)
			return
		}
		freq = f
	}
	if err := h.completer.AddWord(word, freq); err != nil {
		h.out.Errorf("%v", err)
		return
	}
	h.out.Printf("Added '%s' at rank %s", word, h.p.Sprintf("%d", h.completer.IndexOf(word)))
}

func (h *InputHandler) complete(prefix string) {
	n := utf8.RuneCountInString(prefix)
	if n < h.minPrefixLength {
		h.out.Errorf("Prefix too short: %s", prefix)
		return
	}
	if n > h.maxPrefixLength {
		h.out.Errorf("Prefix too long: %s", prefix)
		return
	}
	if !h.noFilter && !utils.IsValidInput(prefix) {
		h.out.Warnf("No suggestions found for prefix: '%s' (filtered out)", prefix)
		return
	}

	start := time.Now()
	suggestions := h.completer.CompleteFuzzy(prefix, h.suggestLimit)
	log.Debugf("Took %v for prefix '%s'", time.Since(start), prefix)

	if len(suggestions) > 0 && suggestions[0].WasCorrected {
		h.out.Printf("No completions, showing corrections of '%s'", prefix)
	}
	h.printSuggestions(prefix, suggestions)
}

func (h *InputHandler) printSuggestions(prefix string, suggestions []suggest.Suggestion) {
	if len(suggestions) == 0 {
		h.out.Warnf("No suggestions found for prefix: '%s'", prefix)
		return
	}
	h.out.Printf("Found %d suggestions for prefix '%s':", len(suggestions), prefix)
	for i, s := range suggestions {
		h.out.Printf("%2d. %-40s (freq: %8s)", i+1, wordStyle.Render(s.Word), h.p.Sprintf("%d", s.Frequency))
	}
}

func (h *InputHandler) printWord(rank int, s suggest.Suggestion) {
	h.out.Printf("#%s %s (freq: %s)", h.p.Sprintf("%d", rank), wordStyle.Render(s.Word), h.p.Sprintf("%d", s.Frequency))
}

func (h *InputHandler) printStats() {
	stats := h.completer.Stats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		h.out.Printf("%-16s %s", k, h.p.Sprintf("%d", stats[k]))
	}
}
