package dictionary

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/bastiangx/wordtree/pkg/tst"
)

// ReadText parses a plain word list. Each non-blank line holds a word and
// an optional frequency separated by whitespace; lines starting with # are
// comments. A word without a frequency scores by its position, as if the
// list were sorted most frequent first. Repeated words keep their last line.
func ReadText(r io.Reader) ([]tst.Entry[int], error) {
	scanner := bufio.NewScanner(r)
	seen := make(map[string]int)
	var entries []tst.Entry[int]

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		if len(fields) > 2 {
			return nil, fmt.Errorf("line %d: expected \"word [freq]\", got %q", line, text)
		}
		freq := Score(uint16(min(len(entries)+1, math.MaxUint16)))
		if len(fields) == 2 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("line %d: invalid frequency %q", line, fields[1])
			}
			freq = n
		}

		if i, ok := seen[fields[0]]; ok {
			entries[i].Value = freq
			continue
		}
		seen[fields[0]] = len(entries)
		entries = append(entries, tst.Entry[int]{Key: fields[0], Value: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// LoadText reads a word list and hands it to sink. It returns the number of
// words sink reported as new.
func LoadText(r io.Reader, sink Sink) (int, error) {
	entries, err := ReadText(r)
	if err != nil {
		return 0, err
	}
	return sink.Insert(entries), nil
}

// RankWords orders entries by frequency, highest first and ties by word,
// and assigns chunk ranks from 1. Ranks saturate at 65535.
func RankWords(entries []tst.Entry[int]) []Word {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b tst.Entry[int]) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	})

	words := make([]Word, len(sorted))
	for i, e := range sorted {
		words[i] = Word{Text: e.Key, Rank: uint16(min(i+1, math.MaxUint16))}
	}
	return words
}
