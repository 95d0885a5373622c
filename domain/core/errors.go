package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound      = errors.New("resource not found")
	ErrLocusNotFound = fmt.Errorf("%w: locus", ErrNotFound)

	// Bundle errors. Absence is an upstream failure and deliberately not a
	// malformed-bundle case: an empty-but-present bundle is fine, a missing
	// one is not.
	ErrBundleAbsent     = errors.New("locus bundle absent")
	ErrMalformedBundle  = errors.New("malformed locus bundle")
	ErrLengthMismatch   = fmt.Errorf("%w: allele sizes and identifiers disagree", ErrMalformedBundle)
	ErrSequenceMismatch = fmt.Errorf("%w: protein records do not correspond to DNA records", ErrMalformedBundle)
	ErrMissingLocusName = fmt.Errorf("%w: summary carries no locus name", ErrMalformedBundle)
	ErrMissingSummary   = fmt.Errorf("%w: summary sections absent", ErrMalformedBundle)

	// Report errors
	ErrInvalidPanel = errors.New("panel outside the fixed plot set")

	// Schema errors
	ErrEmptySchema      = errors.New("schema directory contains no locus files")
	ErrSchemaUnreadable = errors.New("schema directory cannot be read")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// NewCardinalityError reports two co-indexed bundle fields whose lengths differ.
func NewCardinalityError(left string, nLeft int, right string, nRight int) error {
	return fmt.Errorf("%w: %d %s vs %d %s", ErrLengthMismatch, nLeft, left, nRight, right)
}

// NewCorrespondenceError reports a DNA/protein pair whose allele identity differs at an index.
func NewCorrespondenceError(index int, dnaName, proteinName string) error {
	return fmt.Errorf("%w: index %d pairs %q with %q", ErrSequenceMismatch, index, dnaName, proteinName)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsMalformedBundle(err error) bool {
	return errors.Is(err, ErrMalformedBundle)
}

func IsInvalidPanel(err error) bool {
	return errors.Is(err, ErrInvalidPanel)
}
