package dictionary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/bastiangx/wordtree/pkg/tst"
	"github.com/charmbracelet/log"
)

// Sink receives the words a Loader reads and drops them again on unload.
// Implementations do their own locking.
type Sink interface {
	// Fold returns the form under which the sink stores word. Words with
	// the same form are one word to the loader.
	Fold(word string) string
	// Insert stores every entry and returns how many were not present before.
	Insert(entries []tst.Entry[int]) int
	// Delete removes the words and returns how many were present.
	Delete(words []string) int
}

// Loader moves dict_NNNN.bin chunks in and out of a Sink. A word belongs to
// the first loaded chunk that contains it, compared in the sink's folded
// form; unloading a chunk removes only the words it owns.
type Loader struct {
	dirPath    string
	maxWords   int
	sink       Sink
	loaded     map[int][]tst.Entry[int]
	owner      map[string]int
	maxScore   int
	maxRetries int
	mu         sync.RWMutex
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ID        int
	Filename  string
	WordCount int
}

// Stats describes what a Loader currently holds.
type Stats struct {
	LoadedWords     int
	LoadedChunks    int
	AvailableChunks int
	MaxScore        int
}

// NewLoader returns a loader reading chunks from dirPath. LoadAll stops once
// maxWords words are resident; zero means no limit.
func NewLoader(dirPath string, maxWords int, sink Sink) *Loader {
	return &Loader{
		dirPath:    dirPath,
		maxWords:   maxWords,
		sink:       sink,
		loaded:     make(map[int][]tst.Entry[int]),
		owner:      make(map[string]int),
		maxRetries: 3,
	}
}

// Dir returns the directory chunks are read from.
func (l *Loader) Dir() string { return l.dirPath }

// Available scans the directory for chunk files, sorted by id.
func (l *Loader) Available() ([]ChunkInfo, error) {
	files, err := filepath.Glob(filepath.Join(l.dirPath, "dict_*.bin"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		id, ok := chunkID(filepath.Base(file))
		if !ok {
			continue
		}
		count, err := chunkHeader(file)
		if err != nil {
			log.Warnf("Failed to get word count for chunk %s: %v", file, err)
			count = 0
		}
		chunks = append(chunks, ChunkInfo{ID: id, Filename: file, WordCount: count})
	}

	slices.SortFunc(chunks, func(a, b ChunkInfo) int { return a.ID - b.ID })
	return chunks, nil
}

// LoadChunk reads chunk id into the sink and returns the number of words it
// contributed. Loading a resident chunk is a no-op.
func (l *Loader) LoadChunk(id int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.loaded[id]; ok {
		return 0, nil
	}

	path := ChunkPath(l.dirPath, id)
	words, err := ReadChunkFile(path)
	if err != nil {
		return 0, fmt.Errorf("chunk %d: %w", id, err)
	}
	log.Debugf("Loading chunk %d with %d words", id, len(words))

	owned := make([]tst.Entry[int], 0, len(words))
	for _, w := range words {
		if w.Text == "" {
			continue
		}
		key := l.sink.Fold(w.Text)
		if _, taken := l.owner[key]; taken {
			continue
		}
		score := Score(w.Rank)
		l.owner[key] = id
		owned = append(owned, tst.Entry[int]{Key: w.Text, Value: score})
		l.maxScore = max(l.maxScore, score)
	}

	added := l.sink.Insert(owned)
	l.loaded[id] = owned
	log.Debugf("Chunk %d loaded: %d words (%d new)", id, len(owned), added)
	return len(owned), nil
}

// LoadAll loads chunks in id order until maxWords words are resident or the
// directory is exhausted. Chunks are loaded whole, so the limit may be
// exceeded by the last one. A chunk that keeps failing is logged and
// skipped. The context is checked between chunks.
func (l *Loader) LoadAll(ctx context.Context) (int, error) {
	chunks, err := l.Available()
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNoChunks, l.dirPath)
	}
	log.Debugf("Found %d chunk files", len(chunks))

	total := 0
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if l.maxWords > 0 && l.Len() >= l.maxWords {
			break
		}

		var n int
		for attempt := 1; ; attempt++ {
			n, err = l.LoadChunk(chunk.ID)
			if err == nil || attempt >= l.maxRetries {
				break
			}
			log.Debugf("Retrying chunk %d (attempt %d/%d)", chunk.ID, attempt+1, l.maxRetries)
		}
		if err != nil {
			log.Errorf("Chunk %d failed %d times, giving up: %v", chunk.ID, l.maxRetries, err)
			continue
		}
		total += n
	}
	return total, nil
}

// UnloadChunk removes the words chunk id owns from the sink.
func (l *Loader) UnloadChunk(id int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	owned, ok := l.loaded[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotLoaded, id)
	}
	log.Debugf("Unloading chunk %d", id)

	words := make([]string, len(owned))
	for i, e := range owned {
		words[i] = e.Key
		delete(l.owner, l.sink.Fold(e.Key))
	}
	l.sink.Delete(words)
	delete(l.loaded, id)

	l.maxScore = 0
	for _, entries := range l.loaded {
		for _, e := range entries {
			l.maxScore = max(l.maxScore, e.Value)
		}
	}
	return nil
}

// Len returns the number of words owned by resident chunks.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.owner)
}

// LoadedIDs returns the resident chunk ids in ascending order.
func (l *Loader) LoadedIDs() []int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]int, 0, len(l.loaded))
	for id := range l.loaded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Stats returns current loading statistics.
func (l *Loader) Stats() Stats {
	chunks, err := l.Available()
	if err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to list chunks: %v", err)
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		LoadedWords:     len(l.owner),
		LoadedChunks:    len(l.loaded),
		AvailableChunks: len(chunks),
		MaxScore:        l.maxScore,
	}
}
