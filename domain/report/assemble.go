package report

import (
	"schemascope/domain/core"
	"schemascope/domain/locus"
)

// SectionID names one locus page section.
type SectionID string

const (
	SectionSummary   SectionID = "summary"
	SectionPlots     SectionID = "plots"
	SectionPhylogeny SectionID = "phylogeny"
	SectionAlignment SectionID = "alignment"
	SectionDNA       SectionID = "dna"
	SectionProtein   SectionID = "protein"
)

// Section is one block of the locus page, in render order.
type Section struct {
	ID        SectionID `json:"id"`
	Title     string    `json:"title"`
	Collapsed bool      `json:"collapsed"`
}

// Model is the display-ready locus report handed to the rendering
// boundary. It is assembled once per bundle and read-only afterwards.
type Model struct {
	Locus        string               `json:"locus"`
	Summary      []locus.TableSection `json:"summary"`
	SizePlots    [2]Dataset           `json:"sizePlots"` // indexed by Panel
	Phylogeny    string               `json:"phylogeny"`
	DNAFasta     string               `json:"dnaFasta"`
	ProteinFasta string               `json:"proteinFasta"`
	Sections     []Section            `json:"sections"`
	Panel        *PanelState          `json:"-"`
}

// Assemble composes the locus report from one validated bundle, the sole
// input. Composition is synchronous and pure: the same bundle always
// yields the same model, and nothing is recomputed from raw sequences.
// A nil bundle reports the upstream failure rather than an empty page.
func Assemble(b *locus.Bundle) (*Model, error) {
	if b == nil {
		return nil, core.ErrBundleAbsent
	}

	name, err := b.LocusName()
	if err != nil {
		return nil, err
	}

	return &Model{
		Locus:   name,
		Summary: b.Summary,
		SizePlots: [2]Dataset{
			PanelSizeDistribution: SizeDistribution(b.Lengths, name),
			PanelSizePerAllele:    SizePerAllele(b.IDs, b.Lengths),
		},
		Phylogeny:    b.Phylogeny,
		DNAFasta:     FormatFASTA(b.DNA),
		ProteinFasta: FormatFASTA(b.Protein),
		Sections:     defaultSections(),
		Panel:        NewPanelState(),
	}, nil
}

// defaultSections returns the fixed page layout: summary and plots open,
// everything below starts collapsed until the reader expands it. The
// alignment section is rendered by an external widget and no alignment
// data flows through the model.
func defaultSections() []Section {
	return []Section{
		{ID: SectionSummary, Title: "Locus Summary", Collapsed: false},
		{ID: SectionPlots, Title: "Allele Size Plots", Collapsed: false},
		{ID: SectionPhylogeny, Title: "Phylogenetic Tree", Collapsed: true},
		{ID: SectionAlignment, Title: "Multiple Sequence Alignment", Collapsed: true},
		{ID: SectionDNA, Title: "DNA Sequences", Collapsed: true},
		{ID: SectionProtein, Title: "Protein Sequences", Collapsed: true},
	}
}
