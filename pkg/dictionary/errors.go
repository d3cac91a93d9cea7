package dictionary

import "errors"

var (
	// ErrNoChunks is returned when a directory holds no dict_NNNN.bin files.
	ErrNoChunks = errors.New("dictionary: no chunk files")
	// ErrBadHeader reports a chunk whose entry count cannot be trusted.
	ErrBadHeader = errors.New("dictionary: bad chunk header")
	// ErrWordTooLong is returned when writing a word longer than a uint16 length allows.
	ErrWordTooLong = errors.New("dictionary: word too long")
	// ErrNotLoaded is returned when unloading a chunk that is not resident.
	ErrNotLoaded = errors.New("dictionary: chunk not loaded")
)
