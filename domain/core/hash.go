package core

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Domain-specific hash types
type (
	SequenceHash Hash
	RunChecksum  Hash
)

// Constructors
func NewSequenceHash(sequence string) SequenceHash { return SequenceHash(NewHash([]byte(sequence))) }

// String conversions
func (h SequenceHash) String() string { return Hash(h).String() }
func (h RunChecksum) String() string  { return Hash(h).String() }

// ComputeRunChecksum fingerprints one evaluation run from its locus names.
// Names are sorted first so the checksum ignores completion order.
func ComputeRunChecksum(lociNames []string) RunChecksum {
	sorted := make([]string, len(lociNames))
	copy(sorted, lociNames)
	sort.Strings(sorted)

	var data strings.Builder
	for _, name := range sorted {
		data.WriteString(name)
		data.WriteString("\n")
	}

	return RunChecksum(NewHash([]byte(data.String())))
}
