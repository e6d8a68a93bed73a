// Package ids defines the opaque identifier type used for stored records.
// Identifiers are UUIDs; new records get time-ordered v7 values so that a
// secondary sort on id is monotonic within a timestamp tick.
package ids

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/proplusapp/proplus/internal/common"
)

// ID is an opaque record identifier.
type ID string

// New returns a fresh time-ordered identifier.
func New() (ID, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("uuid generation error: %w", err)
	}
	return ID(u.String()), nil
}

// Parse validates raw as an identifier, e.g. one taken from a URL path.
// Malformed values are rejected with common.ErrValidation before any
// store round trip.
func Parse(raw string) (ID, error) {
	u, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: malformed id", common.ErrValidation)
	}
	return ID(u.String()), nil
}

// String returns the canonical textual form.
func (id ID) String() string {
	return string(id)
}
