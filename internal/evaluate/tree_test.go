package evaluate

import (
	"strings"
	"testing"
)

// TestDistanceMatrix tests pairwise edit distances
func TestDistanceMatrix(t *testing.T) {
	d := DistanceMatrix([]string{"ATG", "ATC", "TTG"})

	for i := range d {
		if d[i][i] != 0 {
			t.Errorf("Expected zero diagonal at %d, got %v", i, d[i][i])
		}
		for j := range d {
			if d[i][j] != d[j][i] {
				t.Errorf("Matrix not symmetric at %d,%d", i, j)
			}
		}
	}

	if d[0][1] != 1 || d[0][2] != 1 || d[1][2] != 2 {
		t.Errorf("Unexpected distances: %v", d)
	}
}

// TestNewickSmallInputs tests the degenerate tree sizes
func TestNewickSmallInputs(t *testing.T) {
	b := NewTreeBuilder()

	if got, err := b.Newick(nil, nil); err != nil || got != "" {
		t.Errorf("Expected no tree for no leaves, got %q (%v)", got, err)
	}
	if got, err := b.Newick([]string{"a"}, []string{"ATG"}); err != nil || got != "" {
		t.Errorf("Expected no tree for one leaf, got %q (%v)", got, err)
	}

	got, err := b.Newick([]string{"a", "b"}, []string{"ATG", "ATC"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "(a:0.5,b:0.5);" {
		t.Errorf("Unexpected pair tree %q", got)
	}
}

// TestNewickThreeLeaves tests a full join
func TestNewickThreeLeaves(t *testing.T) {
	b := NewTreeBuilder()
	names := []string{"allele_1", "allele_2", "allele_3"}
	seqs := []string{"ATGAAATGA", "ATGAAATGG", "ATGCCCTGA"}

	got, err := b.Newick(names, seqs)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for _, name := range names {
		if !strings.Contains(got, name) {
			t.Errorf("Tree %q missing leaf %s", got, name)
		}
	}
	if strings.Count(got, "(") != strings.Count(got, ")") {
		t.Errorf("Unbalanced tree %q", got)
	}
	if !strings.HasSuffix(got, ";") {
		t.Errorf("Tree %q missing terminator", got)
	}
}

// TestNewickDeterministic tests that repeated builds agree byte for byte
func TestNewickDeterministic(t *testing.T) {
	b := NewTreeBuilder()
	names := []string{"a", "b", "c", "d"}
	seqs := []string{"ATGAAATGA", "ATGAAATGG", "ATGCCCTGA", "ATGCCCTGG"}

	first, err := b.Newick(names, seqs)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := b.Newick(names, seqs)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != first {
			t.Fatalf("Tree diverged on repeat %d: %q vs %q", i, got, first)
		}
	}
}

// TestNewickIdenticalSequences tests the all-zero distance case
func TestNewickIdenticalSequences(t *testing.T) {
	b := NewTreeBuilder()
	got, err := b.Newick([]string{"a", "b", "c"}, []string{"ATG", "ATG", "ATG"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(got, "a:0") || !strings.HasSuffix(got, ";") {
		t.Errorf("Unexpected zero-distance tree %q", got)
	}
}

// TestNewickInputMismatch tests the name/sequence arity check
func TestNewickInputMismatch(t *testing.T) {
	if _, err := NewTreeBuilder().Newick([]string{"a", "b"}, []string{"ATG"}); err == nil {
		t.Fatal("Expected error, got none")
	}
}
