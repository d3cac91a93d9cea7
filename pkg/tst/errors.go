package tst

import "errors"

var (
	// ErrEmptyKey is returned when a key is empty. Empty keys are never stored.
	ErrEmptyKey = errors.New("tst: empty key")
	// ErrInvalidKey is returned when a key is not valid UTF-8.
	ErrInvalidKey = errors.New("tst: key is not valid UTF-8")
	// ErrNilValue is returned when Put is given a nil pointer, map, slice,
	// func, chan or interface.
	ErrNilValue = errors.New("tst: nil value")
	// ErrIndexOutOfRange signals a rank outside [0, Len()).
	ErrIndexOutOfRange = errors.New("tst: index out of range")
	// ErrInvalidRange signals a view whose lower bound sorts after its upper bound.
	ErrInvalidRange = errors.New("tst: invalid range")
	// ErrKeyOutOfRange signals a key outside the bounds of a view.
	ErrKeyOutOfRange = errors.New("tst: key out of range")
)
