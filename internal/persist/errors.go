package persist

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotBound is returned when a record without a CursorProvider is
	// asked to touch the store.
	ErrNotBound = errors.New("record not bound to a store")

	// ErrNoRowID is returned by Update for a record that was never saved.
	ErrNoRowID = errors.New("record has no row id")

	// ErrEmptyUpdate is returned by Update when no fields are given.
	ErrEmptyUpdate = errors.New("update requires at least one field")

	// ErrRecordNotFound is matched by every DeletionError.
	ErrRecordNotFound = errors.New("attempted deletion of a non-existent record")
)

// DeletionError reports a non-tolerant Delete whose filter matched no rows.
// The DELETE statement itself succeeded.
type DeletionError struct {
	Table  string
	Fields Fields
}

func (e *DeletionError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("delete from %s: %v", e.Table, ErrRecordNotFound)
	}
	conds := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		conds[i] = fmt.Sprintf("%s=%v", f.Name, f.Value)
	}
	return fmt.Sprintf("delete from %s: %v (%s)", e.Table, ErrRecordNotFound, strings.Join(conds, ", "))
}

func (e *DeletionError) Unwrap() error {
	return ErrRecordNotFound
}

// IsNotFound reports whether err is a DeletionError.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var de *DeletionError
	return errors.As(err, &de)
}
