package evaluate

import (
	"testing"
)

// TestTranslate tests translation and classification under table 11
func TestTranslate(t *testing.T) {
	tr, err := NewTranslator(11, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		seq     string
		peptide string
		issue   IssueKind
	}{
		{
			name:    "canonical start and stop",
			seq:     "ATGAAATGA",
			peptide: "MK",
		},
		{
			name:    "alternative start reads as M",
			seq:     "GTGAAATGA",
			peptide: "MK",
		},
		{
			name:    "lowercase input accepted",
			seq:     "atgaaatga",
			peptide: "MK",
		},
		{
			name:  "empty sequence",
			seq:   "",
			issue: IssueEmpty,
		},
		{
			name:  "length not a triplet",
			seq:   "ATGAA",
			issue: IssueNotTriplet,
		},
		{
			name:  "ambiguous base",
			seq:   "ATGNAATGA",
			issue: IssueAmbiguous,
		},
		{
			name:  "no start codon",
			seq:   "TTTAAATGA",
			issue: IssueNoStart,
		},
		{
			name:  "no stop codon",
			seq:   "ATGAAAAAA",
			issue: IssueNoStop,
		},
		{
			name:  "in-frame stop",
			seq:   "ATGTAAAAATGA",
			issue: IssueInternalStop,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			peptide, issue := tr.Translate(test.seq)
			if issue != test.issue {
				t.Fatalf("Expected issue %q, got %q", test.issue, issue)
			}
			if peptide != test.peptide {
				t.Errorf("Expected peptide %q, got %q", test.peptide, peptide)
			}
		})
	}
}

// TestTranslateMinimumLength tests the optional length floor
func TestTranslateMinimumLength(t *testing.T) {
	tr, err := NewTranslator(11, 12)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if _, issue := tr.Translate("ATGAAATGA"); issue != IssueTooShort {
		t.Errorf("Expected IssueTooShort, got %q", issue)
	}
	if peptide, issue := tr.Translate("ATGAAAAAATGA"); issue != IssueNone || peptide != "MKK" {
		t.Errorf("Expected MKK, got %q (%q)", peptide, issue)
	}
}

// TestTranslateTableDifferences tests codon reassignment across tables
func TestTranslateTableDifferences(t *testing.T) {
	// TGA is a stop under table 11 but tryptophan under table 4.
	seq := "ATGTGATAA"

	t11, err := NewTranslator(11, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, issue := t11.Translate(seq); issue != IssueInternalStop {
		t.Errorf("Expected internal stop under table 11, got %q", issue)
	}

	t4, err := NewTranslator(4, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if peptide, issue := t4.Translate(seq); issue != IssueNone || peptide != "MW" {
		t.Errorf("Expected MW under table 4, got %q (%q)", peptide, issue)
	}

	// Table 1 recognizes only ATG as a start.
	t1, err := NewTranslator(1, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, issue := t1.Translate("GTGAAATGA"); issue != IssueNoStart {
		t.Errorf("Expected IssueNoStart under table 1, got %q", issue)
	}
}

// TestTranslatorUnknownTable tests rejection of unsupported identifiers
func TestTranslatorUnknownTable(t *testing.T) {
	if _, err := NewTranslator(99, 0); err == nil {
		t.Fatal("Expected error, got none")
	}
}
