package evaluate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TreeBuilder derives a Newick tree description from pairwise allele
// distances using Neighbor-Joining. The output feeds the locus page's
// tree widget verbatim.
type TreeBuilder struct{}

// NewTreeBuilder creates a tree builder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{}
}

// DistanceMatrix computes pairwise edit distances between sequences.
// The result is symmetric with a zero diagonal.
func DistanceMatrix(seqs []string) [][]float64 {
	n := len(seqs)
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist := float64(levenshtein.ComputeDistance(seqs[i], seqs[j]))
			d[i][j] = dist
			d[j][i] = dist
		}
	}
	return d
}

// Newick builds the tree for the named sequences. Fewer than two leaves
// yield no tree; exactly two yield the trivial pair. Ties in the join
// criterion break on the lowest index pair, so repeated runs produce the
// same text.
func (b *TreeBuilder) Newick(names []string, seqs []string) (string, error) {
	if len(names) != len(seqs) {
		return "", fmt.Errorf("tree input mismatch: %d names vs %d sequences", len(names), len(seqs))
	}
	if len(names) < 2 {
		return "", nil
	}

	d := DistanceMatrix(seqs)

	labels := make([]string, len(names))
	copy(labels, names)

	if len(labels) == 2 {
		half := d[0][1] / 2
		return fmt.Sprintf("(%s:%s,%s:%s);", labels[0], formatBranch(half), labels[1], formatBranch(half)), nil
	}

	active := make([]int, len(labels))
	for i := range active {
		active[i] = i
	}

	// Distances grow as joined nodes are appended past the leaf indices.
	dist := make(map[int]map[int]float64, len(labels))
	for i := range labels {
		dist[i] = make(map[int]float64, len(labels))
		for j := range labels {
			dist[i][j] = d[i][j]
		}
	}
	next := len(labels)
	nodeLabel := make(map[int]string, len(labels)*2)
	for i, name := range labels {
		nodeLabel[i] = name
	}

	for len(active) > 2 {
		n := len(active)

		rowSum := make(map[int]float64, n)
		for _, i := range active {
			sum := 0.0
			for _, j := range active {
				if i != j {
					sum += dist[i][j]
				}
			}
			rowSum[i] = sum
		}

		// Minimize the Q criterion over active pairs.
		bestI, bestJ := -1, -1
		bestQ := 0.0
		for a := 0; a < n; a++ {
			for c := a + 1; c < n; c++ {
				i, j := active[a], active[c]
				q := float64(n-2)*dist[i][j] - rowSum[i] - rowSum[j]
				if bestI < 0 || q < bestQ {
					bestI, bestJ, bestQ = i, j, q
				}
			}
		}

		li := dist[bestI][bestJ]/2 + (rowSum[bestI]-rowSum[bestJ])/(2*float64(n-2))
		lj := dist[bestI][bestJ] - li
		if li < 0 {
			li = 0
		}
		if lj < 0 {
			lj = 0
		}

		node := next
		next++
		nodeLabel[node] = fmt.Sprintf("(%s:%s,%s:%s)",
			nodeLabel[bestI], formatBranch(li), nodeLabel[bestJ], formatBranch(lj))

		dist[node] = make(map[int]float64, n)
		for _, k := range active {
			if k == bestI || k == bestJ {
				continue
			}
			dk := (dist[bestI][k] + dist[bestJ][k] - dist[bestI][bestJ]) / 2
			if dk < 0 {
				dk = 0
			}
			dist[node][k] = dk
			dist[k][node] = dk
		}

		remaining := make([]int, 0, n-1)
		for _, k := range active {
			if k != bestI && k != bestJ {
				remaining = append(remaining, k)
			}
		}
		active = append(remaining, node)
	}

	i, j := active[0], active[1]
	half := dist[i][j] / 2
	return fmt.Sprintf("(%s:%s,%s:%s);",
		nodeLabel[i], formatBranch(half), nodeLabel[j], formatBranch(half)), nil
}

func formatBranch(length float64) string {
	s := strconv.FormatFloat(length, 'f', 6, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
