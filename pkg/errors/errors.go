// Package errors defines the typed errors shared across the checkout
// flow layers.
package errors

import "fmt"

// ErrNotFound is returned when the remote API knows no entity with the
// requested id. Terminal for the page that asked for it.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// ErrSectionLocked is returned when a submit targets a section whose
// predecessor is incomplete or a flow rendered in overview-only mode.
type ErrSectionLocked struct {
	Section string
}

func (e *ErrSectionLocked) Error() string {
	return fmt.Sprintf("section %s is locked", e.Section)
}
