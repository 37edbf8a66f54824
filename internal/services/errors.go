package services

import (
	"errors"
	"fmt"
)

// Error kinds the HTTP layer maps to status codes.
var (
	// ErrInvalidInput reports a payload missing required fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound reports that a referenced row does not exist.
	ErrNotFound = errors.New("not found")
)

// RowError is one failed row of a row-by-row insert fallback.
type RowError struct {
	Index int
	Title string
	Err   error
}

// PartialWriteError reports a replace-all write where the bulk insert
// failed and the row-by-row fallback still left failed rows. The preceding
// delete has already committed, so the store holds only the Inserted subset.
type PartialWriteError struct {
	Inserted int
	Rows     []RowError
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("partial write: %d rows inserted, %d rows failed", e.Inserted, len(e.Rows))
}
