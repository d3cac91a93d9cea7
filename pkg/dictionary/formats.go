package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Format identifies a dictionary file layout.
type Format int

const (
	FormatUnknown Format = iota
	FormatChunk          // dict_NNNN.bin binary chunk
	FormatText           // "word [freq]" lines
)

func (f Format) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// FormatInfo contains metadata about a dictionary file format
type FormatInfo struct {
	Format      Format
	Description string
	Extensions  []string
	MinSize     int64
}

// MaxChunkWords bounds the entry count a chunk header may claim before the
// file is treated as corrupt.
var MaxChunkWords = 1_000_000

var supportedFormats = map[Format]FormatInfo{
	FormatChunk: {
		Format:      FormatChunk,
		Description: "Chunked Binary Dictionary",
		Extensions:  []string{".bin"},
		MinSize:     4,
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Dictionary",
		Extensions:  []string{".txt"},
		MinSize:     1,
	},
}

// ValidateFormat checks that path looks like a file of the given format.
func ValidateFormat(path string, format Format) error {
	stat, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	info, ok := supportedFormats[format]
	if !ok {
		return fmt.Errorf("unknown format: %v", format)
	}
	if stat.Size() < info.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for %s (minimum: %d bytes)",
			path, stat.Size(), info.Description, info.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(path))
	found := false
	for _, e := range info.Extensions {
		if ext == e {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("file %s has invalid extension %s for %s (expected: %v)",
			path, ext, info.Description, info.Extensions)
	}

	switch format {
	case FormatChunk:
		return validateChunk(path)
	case FormatText:
		return validateText(path)
	}
	return nil
}

func validateChunk(path string) error {
	count, err := chunkHeader(path)
	if err != nil {
		return fmt.Errorf("failed to read header from %s: %w", path, err)
	}
	if count < 0 {
		return fmt.Errorf("%w: %s claims %d words", ErrBadHeader, path, count)
	}
	if count > MaxChunkWords {
		return fmt.Errorf("%w: %s claims %d words (limit %d)", ErrBadHeader, path, count, MaxChunkWords)
	}
	log.Debugf("Binary file %s validated: %d words", path, count)
	return nil
}

// validateText checks the first entry line parses.
func validateText(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := ReadText(strings.NewReader(line)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		break
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read from text file %s: %w", path, err)
	}
	log.Debugf("Text file %s validated", path)
	return nil
}

// DetectFormat guesses the format of path from its name and contents.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".bin":
		if err := ValidateFormat(path, FormatChunk); err == nil {
			return FormatChunk, nil
		}
	case ".txt":
		if err := ValidateFormat(path, FormatText); err == nil {
			return FormatText, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unable to detect format for file %s", path)
}

// FormatInfoOf returns information about a specific format.
func FormatInfoOf(format Format) (FormatInfo, bool) {
	info, ok := supportedFormats[format]
	return info, ok
}
