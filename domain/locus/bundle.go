package locus

import (
	"schemascope/domain/core"
)

// Conventional position of the locus display name inside the summary:
// the second section's first row starts with it. The first section holds
// the column header row.
const (
	summaryHeaderSection = 0
	summaryValueSection  = 1
)

// SequenceRecord is one named sequence, DNA or protein.
type SequenceRecord struct {
	Name     string `json:"name"`
	Sequence string `json:"sequence"`
}

// TableSection is one block of summary rows. Sections are rendered in
// order; the first section carries column headers, later sections carry
// value rows.
type TableSection struct {
	Rows [][]string `json:"rows"`
}

// Bundle is the canonical per-locus analysis object handed to report
// composition. It is produced once by the evaluation pipeline and read-only
// afterwards: composition never mutates it and never recomputes any of it.
type Bundle struct {
	// Display-ready summary table sections
	Summary []TableSection `json:"summary"`

	// Allele sizes and identifiers, index-correspondent: entry i of both
	// fields describes the same allele
	Lengths []int    `json:"lengths"`
	IDs     []string `json:"ids"`

	// Newick tree description, passed through to the tree widget untouched
	Phylogeny string `json:"phylogeny"`

	// Alignment output when an aligner ran upstream; the locus report
	// currently renders its alignment section without consuming this
	Alignment string `json:"alignment"`

	// Sequence records for the translatable alleles, index-correspondent
	// by allele identity
	DNA     []SequenceRecord `json:"dna"`
	Protein []SequenceRecord `json:"protein"`
}

// NewBundle builds a validated bundle. It fails fast on any cross-field
// inconsistency instead of letting a later consumer truncate or misalign
// pairs.
func NewBundle(summary []TableSection, lengths []int, ids []string, phylogeny, alignment string, dna, protein []SequenceRecord) (*Bundle, error) {
	b := &Bundle{
		Summary:   summary,
		Lengths:   lengths,
		IDs:       ids,
		Phylogeny: phylogeny,
		Alignment: alignment,
		DNA:       dna,
		Protein:   protein,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate ensures the bundle is internally consistent
func (b *Bundle) Validate() error {
	if len(b.Lengths) != len(b.IDs) {
		return core.NewCardinalityError("allele sizes", len(b.Lengths), "allele identifiers", len(b.IDs))
	}

	if len(b.Protein) > 0 {
		if len(b.Protein) != len(b.DNA) {
			return core.NewCardinalityError("protein records", len(b.Protein), "dna records", len(b.DNA))
		}
		for i := range b.Protein {
			if b.Protein[i].Name != b.DNA[i].Name {
				return core.NewCorrespondenceError(i, b.DNA[i].Name, b.Protein[i].Name)
			}
		}
	}

	if _, err := b.LocusName(); err != nil {
		return err
	}

	return nil
}

// LocusName reads the display name from its conventional summary position.
func (b *Bundle) LocusName() (string, error) {
	if len(b.Summary) <= summaryValueSection {
		return "", core.ErrMissingSummary
	}
	rows := b.Summary[summaryValueSection].Rows
	if len(rows) == 0 || len(rows[0]) == 0 || rows[0][0] == "" {
		return "", core.ErrMissingLocusName
	}
	return rows[0][0], nil
}

// AlleleCount returns the number of alleles described by the bundle.
func (b *Bundle) AlleleCount() int {
	return len(b.Lengths)
}

// TranslatableCount returns the number of alleles carrying sequence records.
func (b *Bundle) TranslatableCount() int {
	return len(b.DNA)
}
