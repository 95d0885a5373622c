package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// RunID identifies one evaluation run across all of its outputs.
	RunID ID
	// LocusID is the locus name as derived from the schema file name.
	LocusID ID
	// AlleleID is the allele identifier taken from a FASTA header.
	AlleleID ID
)

// String conversions for domain IDs
func (id RunID) String() string    { return ID(id).String() }
func (id LocusID) String() string  { return ID(id).String() }
func (id AlleleID) String() string { return ID(id).String() }

// NewRunID creates a fresh run identifier.
func NewRunID() RunID {
	return RunID(NewID())
}

// ParseLocusID parses a string into LocusID
func ParseLocusID(s string) (LocusID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("locus ID cannot be empty")
	}
	return LocusID(s), nil
}

// ParseAlleleID parses a string into AlleleID
func ParseAlleleID(s string) (AlleleID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("allele ID cannot be empty")
	}
	return AlleleID(s), nil
}
