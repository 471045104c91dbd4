package gc

import "errors"

var (
	// ErrOutOfMemory indicates that no free block large enough was found
	// even after a reactive collection cycle. The arena does not grow, so
	// this is the collector's only out-of-memory condition.
	ErrOutOfMemory = errors.New("gc: out of memory")

	// ErrBadConfig indicates an invalid Config (heap too small, threshold
	// out of range, or bad alignment).
	ErrBadConfig = errors.New("gc: invalid configuration")

	// ErrClosed indicates an operation on a collector whose arena has been
	// released.
	ErrClosed = errors.New("gc: collector closed")
)
