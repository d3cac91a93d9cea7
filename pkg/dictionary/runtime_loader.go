package dictionary

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SizeOption is one step on the dictionary size ladder: the first Chunks
// chunk files and the words they hold together.
type SizeOption struct {
	Chunks int
	Words  int
	Label  string
}

// Resize loads or unloads chunks until exactly target are resident.
// Missing chunks are taken in ascending id order, surplus ones are evicted
// from the highest id down.
func (l *Loader) Resize(ctx context.Context, target int) error {
	if target < 1 {
		return fmt.Errorf("minimum dictionary size is 1 chunk, got %d", target)
	}

	current := l.LoadedIDs()
	log.Debugf("Setting dictionary size: current=%d chunks, target=%d chunks", len(current), target)

	switch {
	case target > len(current):
		return l.loadAdditional(ctx, target-len(current))
	case target < len(current):
		return l.unloadExcess(current, len(current)-target)
	}
	return nil
}

func (l *Loader) loadAdditional(ctx context.Context, n int) error {
	chunks, err := l.Available()
	if err != nil {
		return err
	}

	loaded := 0
	for _, chunk := range chunks {
		if loaded >= n {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if slices.Contains(l.LoadedIDs(), chunk.ID) {
			continue
		}
		if _, err := l.LoadChunk(chunk.ID); err != nil {
			log.Warnf("Failed to load chunk %d: %v", chunk.ID, err)
			continue
		}
		loaded++
	}
	log.Debugf("Loaded %d additional chunks", loaded)
	if loaded < n {
		return fmt.Errorf("only %d of %d requested chunks could be loaded", loaded, n)
	}
	return nil
}

func (l *Loader) unloadExcess(ids []int, n int) error {
	slices.Reverse(ids)
	for _, id := range ids[:n] {
		if err := l.UnloadChunk(id); err != nil {
			return err
		}
	}
	log.Debugf("Unloaded %d chunks", n)
	return nil
}

// SizeOptions lists the cumulative word counts reachable with Resize.
func (l *Loader) SizeOptions() ([]SizeOption, error) {
	chunks, err := l.Available()
	if err != nil {
		return nil, err
	}

	p := message.NewPrinter(language.English)
	options := make([]SizeOption, 0, len(chunks))
	words := 0
	for i, chunk := range chunks {
		words += chunk.WordCount
		options = append(options, SizeOption{
			Chunks: i + 1,
			Words:  words,
			Label:  p.Sprintf("%d words", words),
		})
	}
	return options, nil
}
