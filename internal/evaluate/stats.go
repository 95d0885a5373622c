package evaluate

import (
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// SizeStats summarizes the allele-size distribution of one locus.
type SizeStats struct {
	Total       int     `json:"total"`
	Min         int     `json:"min"`
	Max         int     `json:"max"`
	Mean        float64 `json:"mean"`
	Median      float64 `json:"median"`
	StdDev      float64 `json:"std_dev"`
	Q25         float64 `json:"q25"`
	Q75         float64 `json:"q75"`
	Mode        int     `json:"mode"`
	OutsideMode int     `json:"outside_mode"`
	Conserved   bool    `json:"conserved"`
}

// SizeComputer derives per-locus size summaries. The threshold is the
// fraction of the mode an allele may deviate by before it counts against
// size conservation.
type SizeComputer struct {
	threshold float64
}

// NewSizeComputer creates a size computer with the given variation threshold.
func NewSizeComputer(threshold float64) *SizeComputer {
	return &SizeComputer{threshold: threshold}
}

// Compute summarizes the given allele sizes.
func (c *SizeComputer) Compute(lengths []int) (SizeStats, error) {
	if len(lengths) == 0 {
		return SizeStats{}, NewComputationError("empty size list", nil)
	}

	data := make([]float64, len(lengths))
	for i, l := range lengths {
		data[i] = float64(l)
	}

	mean, _ := stats.Mean(data)
	stdDev, _ := stats.StandardDeviation(data)
	minSize, _ := stats.Min(data)
	maxSize, _ := stats.Max(data)
	median, _ := stats.Median(data)

	// Empirical quantiles want ascending input.
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	q25 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q75 := stat.Quantile(0.75, stat.Empirical, sorted, nil)

	mode := c.mode(lengths)
	outside := c.countOutside(lengths, mode)

	return SizeStats{
		Total:       len(lengths),
		Min:         int(minSize),
		Max:         int(maxSize),
		Mean:        mean,
		Median:      median,
		StdDev:      stdDev,
		Q25:         q25,
		Q75:         q75,
		Mode:        mode,
		OutsideMode: outside,
		Conserved:   outside == 0,
	}, nil
}

// mode returns the most frequent size, breaking frequency ties in favor
// of the smallest size so repeated runs agree.
func (c *SizeComputer) mode(lengths []int) int {
	frequency := make(map[int]int, len(lengths))
	for _, l := range lengths {
		frequency[l]++
	}

	mode := lengths[0]
	best := 0
	for size, count := range frequency {
		if count > best || (count == best && size < mode) {
			best = count
			mode = size
		}
	}
	return mode
}

// countOutside counts alleles whose size falls outside mode ± threshold·mode.
func (c *SizeComputer) countOutside(lengths []int, mode int) int {
	low := float64(mode) * (1 - c.threshold)
	high := float64(mode) * (1 + c.threshold)

	outside := 0
	for _, l := range lengths {
		if float64(l) < low || float64(l) > high {
			outside++
		}
	}
	return outside
}

// ComputationError represents size summary computation errors
type ComputationError struct {
	Message string
	Cause   error
}

func (e ComputationError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func NewComputationError(message string, cause error) ComputationError {
	return ComputationError{Message: message, Cause: cause}
}
