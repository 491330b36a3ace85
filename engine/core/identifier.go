package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Identifier labels a GPU-backed object. The kind keeps logs readable,
// the uuid keeps labels unique across the lifetime of the process.
type Identifier struct {
	Kind string
	ID   uuid.UUID
}

func NewIdentifier(kind string) Identifier {
	return Identifier{
		Kind: kind,
		ID:   uuid.New(),
	}
}

// Short returns the first uuid group, enough to tell objects apart in logs.
func (i Identifier) Short() string {
	return i.ID.String()[:8]
}

func (i Identifier) String() string {
	return fmt.Sprintf("%s-%s", i.Kind, i.ID.String())
}

// Sub derives the label of an object owned by this one, e.g. "entity-…/vertex".
func (i Identifier) Sub(part string) string {
	return fmt.Sprintf("%s/%s", i.String(), part)
}
