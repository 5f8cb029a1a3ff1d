package hierarchy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrItemNotFound is returned when the item a mutation targets does not exist.
	ErrItemNotFound = errors.New("wbs item not found")
	// ErrParentNotFound is returned when a supplied parent id does not resolve
	// to an item in the same project.
	ErrParentNotFound = errors.New("parent wbs item not found")
	// ErrItemHasChildren is returned when deleting an item that still has
	// children. Deletes are never cascaded.
	ErrItemHasChildren = errors.New("wbs item still has children")
)

// StoreError wraps a failure from the underlying database. The enclosing
// transaction has already been rolled back by the time it is returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store failure during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ValidationError carries field-keyed messages for malformed input. It is
// produced before any database access happens.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
