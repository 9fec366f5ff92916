package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	// ErrNotFound is returned when a read requires the log file and it does not exist.
	ErrNotFound = errors.New("log file not found")

	// ErrInvalidID is matched by *InvalidIDError.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidDate indicates a filter date that is not a YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidRange indicates an age range that is not a valid day count.
	ErrInvalidRange = errors.New("invalid range")

	// ErrEmptyContent is returned when an entry would be stored without content.
	ErrEmptyContent = errors.New("entry content cannot be empty")

	// ErrLocked is returned when the advisory lock could not be acquired in time.
	ErrLocked = errors.New("log file is locked by another process")
)

// StorageError reports a failure of the underlying file operation.
// It matches ErrNotFound through errors.Is when the log file is absent.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// DecodeError reports a line that could not be decoded into an Entry.
type DecodeError struct {
	// Line is the 1-based line number, or 0 when the line was decoded on its own.
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("decode entry: %v", e.Err)
	}
	return fmt.Sprintf("decode entry at line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// InvalidIDError reports an ID outside 1..Count.
type InvalidIDError struct {
	ID    int
	Count int
}

func (e *InvalidIDError) Error() string {
	return fmt.Sprintf("invalid id %d: log has %d entries", e.ID, e.Count)
}

func (e *InvalidIDError) Is(target error) bool {
	return target == ErrInvalidID
}
