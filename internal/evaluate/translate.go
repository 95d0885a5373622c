package evaluate

import (
	"fmt"
	"strings"
)

// IssueKind classifies why an allele is not a valid coding sequence.
type IssueKind string

const (
	IssueNone         IssueKind = ""
	IssueEmpty        IssueKind = "empty sequence"
	IssueTooShort     IssueKind = "below minimum length"
	IssueNotTriplet   IssueKind = "length not a multiple of 3"
	IssueAmbiguous    IssueKind = "ambiguous bases"
	IssueNoStart      IssueKind = "missing start codon"
	IssueNoStop       IssueKind = "missing stop codon"
	IssueInternalStop IssueKind = "in-frame stop codon"
)

// The codon tables the evaluator accepts, keyed by NCBI identifier.
// Table 11 (bacteria and archaea) is the usual choice for MLST schemas;
// 1 is the standard code and 4 covers Mycoplasma-like organisms.
var geneticCodes = map[int]geneticCode{
	1:  {codons: standardCodons, starts: map[string]bool{"ATG": true}},
	4:  {codons: overrideCodons(map[string]byte{"TGA": 'W'}), starts: map[string]bool{"ATG": true, "GTG": true, "TTG": true, "ATT": true, "ATC": true, "ATA": true, "CTG": true}},
	11: {codons: standardCodons, starts: map[string]bool{"ATG": true, "GTG": true, "TTG": true, "ATT": true, "ATC": true, "ATA": true, "CTG": true}},
}

type geneticCode struct {
	codons map[string]byte
	starts map[string]bool
}

var standardCodons = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

func overrideCodons(overrides map[string]byte) map[string]byte {
	codons := make(map[string]byte, len(standardCodons))
	for codon, aa := range standardCodons {
		codons[codon] = aa
	}
	for codon, aa := range overrides {
		codons[codon] = aa
	}
	return codons
}

// Translator turns allele DNA into protein under one codon table, and
// classifies alleles that cannot be coding sequences.
type Translator struct {
	code          geneticCode
	minimumLength int
}

// NewTranslator creates a translator for the given NCBI table identifier.
// A minimumLength of zero disables the length floor.
func NewTranslator(tableID, minimumLength int) (*Translator, error) {
	code, ok := geneticCodes[tableID]
	if !ok {
		return nil, fmt.Errorf("unsupported translation table %d", tableID)
	}
	return &Translator{code: code, minimumLength: minimumLength}, nil
}

// Translate returns the peptide for a coding sequence, or the issue that
// disqualifies it. The trailing stop codon is trimmed and the start codon
// always reads as M, whatever it codes for internally. Input case does
// not matter.
func (t *Translator) Translate(seq string) (string, IssueKind) {
	seq = strings.ToUpper(seq)

	if issue := t.check(seq); issue != IssueNone {
		return "", issue
	}

	peptide := make([]byte, 0, len(seq)/3-1)
	for i := 0; i+3 <= len(seq); i += 3 {
		aa := t.code.codons[seq[i:i+3]]
		if i == 0 {
			aa = 'M'
		}
		if aa == '*' {
			break
		}
		peptide = append(peptide, aa)
	}
	return string(peptide), IssueNone
}

func (t *Translator) check(seq string) IssueKind {
	if len(seq) == 0 {
		return IssueEmpty
	}
	if t.minimumLength > 0 && len(seq) < t.minimumLength {
		return IssueTooShort
	}
	if len(seq)%3 != 0 {
		return IssueNotTriplet
	}
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return IssueAmbiguous
		}
	}
	if !t.code.starts[seq[:3]] {
		return IssueNoStart
	}
	if t.code.codons[seq[len(seq)-3:]] != '*' {
		return IssueNoStop
	}
	for i := 3; i+3 < len(seq); i += 3 {
		if t.code.codons[seq[i:i+3]] == '*' {
			return IssueInternalStop
		}
	}
	return IssueNone
}
