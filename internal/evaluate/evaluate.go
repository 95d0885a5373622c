package evaluate

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"schemascope/domain/core"
	"schemascope/domain/locus"
	"schemascope/internal/fasta"
)

// Options configures locus evaluation.
type Options struct {
	// TranslationTable is the NCBI codon table identifier.
	TranslationTable int
	// SizeThreshold is the allowed fractional deviation from the modal size.
	SizeThreshold float64
	// MinimumLength disqualifies shorter alleles when positive.
	MinimumLength int
	// Light skips tree building, the expensive part of a run.
	Light bool
}

// Allele couples one schema record with its classification outcome.
type Allele struct {
	ID       string
	Sequence string
	Length   int
	Protein  string
	Issue    IssueKind
}

// Valid reports whether the allele translated cleanly.
func (a Allele) Valid() bool {
	return a.Issue == IssueNone
}

// Result is everything one locus contributes to the run: the report
// bundle plus the counts the schema overview and workbook aggregate.
type Result struct {
	Name             string
	Bundle           *locus.Bundle
	Stats            SizeStats
	Total            int
	Valid            int
	Invalid          int
	DistinctProteins int
}

// Evaluator turns locus FASTA files into report bundles.
type Evaluator struct {
	translator *Translator
	sizes      *SizeComputer
	trees      *TreeBuilder
	light      bool
}

// New creates an evaluator for the given options.
func New(opts Options) (*Evaluator, error) {
	translator, err := NewTranslator(opts.TranslationTable, opts.MinimumLength)
	if err != nil {
		return nil, err
	}
	return &Evaluator{
		translator: translator,
		sizes:      NewSizeComputer(opts.SizeThreshold),
		trees:      NewTreeBuilder(),
		light:      opts.Light,
	}, nil
}

// EvaluateFile evaluates one locus file. The locus name is the file name
// without its FASTA extension.
func (e *Evaluator) EvaluateFile(path string) (*Result, error) {
	records, err := fasta.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(LocusNameFromPath(path), records)
}

// Evaluate classifies every allele of the locus, summarizes sizes, builds
// the tree for the translatable alleles and assembles the validated bundle.
func (e *Evaluator) Evaluate(name string, records []fasta.Record) (*Result, error) {
	alleles := make([]Allele, len(records))
	for i, rec := range records {
		protein, issue := e.translator.Translate(rec.Seq)
		alleles[i] = Allele{
			ID:       rec.ID,
			Sequence: strings.ToUpper(rec.Seq),
			Length:   len(rec.Seq),
			Protein:  protein,
			Issue:    issue,
		}
	}

	lengths := make([]int, len(alleles))
	ids := make([]string, len(alleles))
	for i, a := range alleles {
		lengths[i] = a.Length
		ids[i] = a.ID
	}

	var sizeStats SizeStats
	if len(lengths) > 0 {
		var err error
		if sizeStats, err = e.sizes.Compute(lengths); err != nil {
			return nil, fmt.Errorf("locus %s: %w", name, err)
		}
	}

	var (
		dna      []locus.SequenceRecord
		protein  []locus.SequenceRecord
		validIDs []string
		validSeq []string
		distinct = make(map[core.SequenceHash]bool)
	)
	for _, a := range alleles {
		if !a.Valid() {
			continue
		}
		dna = append(dna, locus.SequenceRecord{Name: a.ID, Sequence: a.Sequence})
		protein = append(protein, locus.SequenceRecord{Name: a.ID, Sequence: a.Protein})
		validIDs = append(validIDs, a.ID)
		validSeq = append(validSeq, a.Sequence)
		distinct[core.NewSequenceHash(a.Protein)] = true
	}

	phylogeny := ""
	if !e.light && len(validIDs) >= 2 {
		var err error
		if phylogeny, err = e.trees.Newick(validIDs, validSeq); err != nil {
			return nil, fmt.Errorf("locus %s: %w", name, err)
		}
	}

	summary := buildSummary(name, alleles, sizeStats, len(distinct))

	bundle, err := locus.NewBundle(summary, lengths, ids, phylogeny, "", dna, protein)
	if err != nil {
		return nil, fmt.Errorf("locus %s: %w", name, err)
	}

	return &Result{
		Name:             name,
		Bundle:           bundle,
		Stats:            sizeStats,
		Total:            len(alleles),
		Valid:            len(dna),
		Invalid:          len(alleles) - len(dna),
		DistinctProteins: len(distinct),
	}, nil
}

// summaryColumns is the header row of every locus summary table.
var summaryColumns = []string{
	"Locus",
	"Total Alleles",
	"Valid Alleles",
	"Invalid Alleles",
	"Distinct Proteins",
	"Size Range (bp)",
	"Median Length",
	"Mode Length",
	"Size Conserved",
}

// buildSummary renders the display-ready summary sections: the header
// row, the value row leading with the locus name, and one section of
// invalid alleles when any exist.
func buildSummary(name string, alleles []Allele, sizeStats SizeStats, distinct int) []locus.TableSection {
	valid := 0
	for _, a := range alleles {
		if a.Valid() {
			valid++
		}
	}

	sizeRange := "-"
	median := "-"
	mode := "-"
	conserved := "-"
	if len(alleles) > 0 {
		sizeRange = fmt.Sprintf("%d-%d", sizeStats.Min, sizeStats.Max)
		median = formatCell(sizeStats.Median)
		mode = strconv.Itoa(sizeStats.Mode)
		if sizeStats.Conserved {
			conserved = "Yes"
		} else {
			conserved = "No"
		}
	}

	values := []string{
		name,
		strconv.Itoa(len(alleles)),
		strconv.Itoa(valid),
		strconv.Itoa(len(alleles) - valid),
		strconv.Itoa(distinct),
		sizeRange,
		median,
		mode,
		conserved,
	}

	sections := []locus.TableSection{
		{Rows: [][]string{summaryColumns}},
		{Rows: [][]string{values}},
	}

	var issues [][]string
	for _, a := range alleles {
		if !a.Valid() {
			issues = append(issues, []string{a.ID, string(a.Issue)})
		}
	}
	if len(issues) > 0 {
		rows := append([][]string{{"Allele", "Issue"}}, issues...)
		sections = append(sections, locus.TableSection{Rows: rows})
	}

	return sections
}

// formatCell renders a statistic the way the summary table shows it:
// whole numbers without a decimal part, everything else with one.
func formatCell(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// LocusNameFromPath derives the locus name from a schema file path,
// dropping one compression suffix and one FASTA extension.
func LocusNameFromPath(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, ".gz")
	for _, ext := range []string{".fasta", ".fa", ".fna", ".ffn"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}
