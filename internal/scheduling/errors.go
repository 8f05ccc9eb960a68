package scheduling

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInterval is returned when a slot does not start before it ends.
	ErrInvalidInterval = errors.New("scheduling: start time must be before end time")
	// ErrConflict matches any *ConflictError through errors.Is.
	ErrConflict = errors.New("scheduling: slot overlaps an existing booking")
	// ErrEmptyTermID is returned when activation is requested without a term.
	ErrEmptyTermID = errors.New("scheduling: term id is required")
)

// ConflictError carries every booking the proposed slot collides with.
type ConflictError struct {
	Proposed Slot
	With     []Slot
}

func (e *ConflictError) Error() string {
	ids := make([]string, 0, len(e.With))
	for _, s := range e.With {
		ids = append(ids, fmt.Sprintf("%s %s-%s", s.ID, s.Start, s.End))
	}
	return fmt.Sprintf("%s: %s %s-%s clashes with [%s]",
		ErrConflict.Error(), e.Proposed.Day, e.Proposed.Start, e.Proposed.End, strings.Join(ids, ", "))
}

// Is lets errors.Is(err, ErrConflict) match.
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
