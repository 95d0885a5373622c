package testkit

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"schemascope/internal/fasta"
)

// SchemaGeneratorConfig configures the fixture schema generator
type SchemaGeneratorConfig struct {
	LocusCount      int     `json:"locus_count"`
	AllelesPerLocus int     `json:"alleles_per_locus"`
	BaseLength      int     `json:"base_length"`
	MutationRate    float64 `json:"mutation_rate"`
	IndelRate       float64 `json:"indel_rate"`
	InvalidRate     float64 `json:"invalid_rate"`
	Seed            int64   `json:"seed"`
}

// DefaultSchemaConfig returns sensible defaults for fixture schemas
func DefaultSchemaConfig() SchemaGeneratorConfig {
	return SchemaGeneratorConfig{
		LocusCount:      3,
		AllelesPerLocus: 8,
		BaseLength:      201,
		MutationRate:    0.02,
		IndelRate:       0.2,
		InvalidRate:     0.1,
		Seed:            42,
	}
}

// SchemaGenerator produces deterministic locus FASTA fixtures. Every
// allele descends from a per-locus reference ORF, so generated loci look
// like real schema entries: a shared modal size, wobble-position noise
// and the occasional codon gained or lost.
type SchemaGenerator struct {
	config SchemaGeneratorConfig
	rng    *rand.Rand
}

// NewSchemaGenerator creates a new fixture schema generator
func NewSchemaGenerator(config SchemaGeneratorConfig) *SchemaGenerator {
	return &SchemaGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	bases = []byte("ACGT")
	// stopCodons under the standard and bacterial tables.
	stopCodons = map[string]bool{"TAA": true, "TAG": true, "TGA": true}
)

// GenerateLocus generates the allele records for one locus.
func (g *SchemaGenerator) GenerateLocus(name string) []fasta.Record {
	reference := g.referenceORF()

	records := make([]fasta.Record, g.config.AllelesPerLocus)
	for i := range records {
		seq := reference
		if i > 0 {
			seq = g.mutate(seq)
		}
		if i > 0 && g.rng.Float64() < g.config.InvalidRate {
			seq = g.corrupt(seq)
		}
		records[i] = fasta.Record{
			ID:  fmt.Sprintf("%s_%d", name, i+1),
			Seq: seq,
		}
	}
	return records
}

// WriteSchema writes one FASTA file per locus into dir and returns the
// written paths in locus order.
func (g *SchemaGenerator) WriteSchema(dir string) ([]string, error) {
	paths := make([]string, 0, g.config.LocusCount)
	for i := 0; i < g.config.LocusCount; i++ {
		name := fmt.Sprintf("locus_%02d", i+1)
		records := g.GenerateLocus(name)

		var sb strings.Builder
		for _, rec := range records {
			sb.WriteString(">")
			sb.WriteString(rec.ID)
			sb.WriteString("\n")
			sb.WriteString(rec.Seq)
			sb.WriteString("\n")
		}

		path := filepath.Join(dir, name+".fasta")
		if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write fixture locus %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// referenceORF builds a clean open reading frame of the configured base
// length: start codon, non-stop internal codons, one stop codon.
func (g *SchemaGenerator) referenceORF() string {
	codonCount := g.config.BaseLength / 3
	if codonCount < 3 {
		codonCount = 3
	}

	var sb strings.Builder
	sb.WriteString("ATG")
	for i := 0; i < codonCount-2; i++ {
		sb.WriteString(g.safeCodon())
	}
	sb.WriteString("TAA")
	return sb.String()
}

// mutate applies wobble-position substitutions and occasionally inserts
// or deletes one internal codon. The result is always a valid ORF.
func (g *SchemaGenerator) mutate(seq string) string {
	codons := splitCodons(seq)

	// Substitutions only touch third positions of internal codons and
	// never produce a stop.
	for i := 1; i < len(codons)-1; i++ {
		if g.rng.Float64() >= g.config.MutationRate*3 {
			continue
		}
		mutated := codons[i][:2] + string(bases[g.rng.Intn(len(bases))])
		if !stopCodons[mutated] {
			codons[i] = mutated
		}
	}

	if g.rng.Float64() < g.config.IndelRate && len(codons) > 3 {
		pos := 1 + g.rng.Intn(len(codons)-2)
		if g.rng.Float64() < 0.5 {
			codons = append(codons[:pos], codons[pos+1:]...)
		} else {
			codons = append(codons[:pos], append([]string{g.safeCodon()}, codons[pos:]...)...)
		}
	}

	return strings.Join(codons, "")
}

// corrupt deliberately breaks an allele so it exercises one of the
// translation issues a real schema shows.
func (g *SchemaGenerator) corrupt(seq string) string {
	switch g.rng.Intn(5) {
	case 0: // frame broken
		return seq[:len(seq)-1]
	case 1: // ambiguous base
		return seq[:len(seq)/2] + "N" + seq[len(seq)/2+1:]
	case 2: // start codon lost
		return "CCC" + seq[3:]
	case 3: // premature stop, unless the ORF is too short to hold one
		if len(seq) >= 12 {
			return seq[:6] + "TAA" + seq[9:]
		}
		return seq[:len(seq)-1]
	default: // stop codon lost
		return seq[:len(seq)-3] + g.safeCodon()
	}
}

// safeCodon returns a random codon that is not a stop codon.
func (g *SchemaGenerator) safeCodon() string {
	for {
		codon := string([]byte{
			bases[g.rng.Intn(len(bases))],
			bases[g.rng.Intn(len(bases))],
			bases[g.rng.Intn(len(bases))],
		})
		if !stopCodons[codon] {
			return codon
		}
	}
}

func splitCodons(seq string) []string {
	codons := make([]string, 0, len(seq)/3)
	for i := 0; i+3 <= len(seq); i += 3 {
		codons = append(codons, seq[i:i+3])
	}
	return codons
}
