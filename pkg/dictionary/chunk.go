package dictionary

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// Word is a single chunk entry. Rank 1 is the most frequent word.
type Word struct {
	Text string
	Rank uint16
}

// Score converts a rank to the frequency used for ordering suggestions,
// so rank 1 becomes 65535 and higher ranks score lower.
func Score(rank uint16) int {
	return math.MaxUint16 + 1 - int(rank)
}

// ChunkPath returns the file name of chunk id inside dir.
func ChunkPath(dir string, id int) string {
	return filepath.Join(dir, fmt.Sprintf("dict_%04d.bin", id))
}

// chunkID extracts the id from a dict_NNNN.bin base name.
func chunkID(name string) (int, bool) {
	if !strings.HasPrefix(name, "dict_") || !strings.HasSuffix(name, ".bin") {
		return 0, false
	}
	id, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "dict_"), ".bin"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// ReadChunk decodes a chunk: a little-endian int32 entry count followed by
// entries of uint16 byte length, the word bytes and a uint16 rank.
// A stream that ends cleanly between entries yields the entries read so far.
// Counts above MaxChunkWords are rejected as ErrBadHeader.
func ReadChunk(r io.Reader) ([]Word, error) {
	br := bufio.NewReader(r)

	var total int32
	if err := binary.Read(br, binary.LittleEndian, &total); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	if total < 0 {
		return nil, fmt.Errorf("%w: negative entry count %d", ErrBadHeader, total)
	}
	if int(total) > MaxChunkWords {
		return nil, fmt.Errorf("%w: %d entries exceed the limit of %d", ErrBadHeader, total, MaxChunkWords)
	}

	words := make([]Word, 0, min(int(total), 1<<16))
	for range int(total) {
		var wordLen uint16
		if err := binary.Read(br, binary.LittleEndian, &wordLen); err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Chunk ended after %d of %d entries", len(words), total)
				break
			}
			return words, fmt.Errorf("failed to read word length: %w", err)
		}

		buf := make([]byte, wordLen)
		if _, err := io.ReadFull(br, buf); err != nil {
			return words, fmt.Errorf("failed to read word: %w", err)
		}

		var rank uint16
		if err := binary.Read(br, binary.LittleEndian, &rank); err != nil {
			return words, fmt.Errorf("failed to read rank: %w", err)
		}
		words = append(words, Word{Text: string(buf), Rank: rank})
	}
	return words, nil
}

// WriteChunk encodes words in the format ReadChunk accepts.
func WriteChunk(w io.Writer, words []Word) error {
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, int32(len(words))); err != nil {
		return err
	}
	for _, word := range words {
		if len(word.Text) > math.MaxUint16 {
			return fmt.Errorf("%w: %d bytes", ErrWordTooLong, len(word.Text))
		}
		if err := binary.Write(bw, binary.LittleEndian, uint16(len(word.Text))); err != nil {
			return err
		}
		if _, err := bw.WriteString(word.Text); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.LittleEndian, word.Rank); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadChunkFile reads a chunk from disk.
func ReadChunkFile(path string) ([]Word, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open chunk file %s: %w", path, err)
	}
	defer file.Close()
	return ReadChunk(file)
}

// WriteChunkFile writes a chunk to disk, replacing any existing file.
func WriteChunkFile(path string, words []Word) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chunk file %s: %w", path, err)
	}
	if err := WriteChunk(file, words); err != nil {
		file.Close()
		return fmt.Errorf("failed to write chunk file %s: %w", path, err)
	}
	return file.Close()
}

// WriteChunks splits words into files of at most chunkSize entries named
// dict_0001.bin, dict_0002.bin and so on. It returns the number of files.
func WriteChunks(dir string, words []Word, chunkSize int) (int, error) {
	if chunkSize < 1 {
		return 0, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}

	count := 0
	for start := 0; start < len(words); start += chunkSize {
		count++
		end := min(start+chunkSize, len(words))
		if err := WriteChunkFile(ChunkPath(dir, count), words[start:end]); err != nil {
			return count - 1, err
		}
	}
	log.Debugf("Wrote %d chunks to %s", count, dir)
	return count, nil
}

// chunkHeader returns the entry count stored at the start of a chunk file.
func chunkHeader(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	var count int32
	if err := binary.Read(file, binary.LittleEndian, &count); err != nil {
		return 0, err
	}
	return int(count), nil
}
