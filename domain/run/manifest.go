package run

import (
	"schemascope/domain/core"
)

// Manifest is the provenance record written next to every generated
// report: where the schema came from, which parameters shaped the run,
// how it went, and a fingerprint that changes whenever any determinism
// input changes.
type Manifest struct {
	RunID         core.RunID     `json:"run_id"`
	GeneratedAt   core.Timestamp `json:"generated_at"`
	SchemaDir     string         `json:"schema_dir"`
	Parameters    Parameters     `json:"parameters"`
	LociEvaluated int            `json:"loci_evaluated"`
	LociFailed    int            `json:"loci_failed"`
	Fingerprint   Fingerprint    `json:"fingerprint"`
	RuntimeMs     int64          `json:"runtime_ms"`
}

// NewManifest creates the manifest for a finished run. lociNames are the
// loci that evaluated successfully; failed counts the ones that did not.
func NewManifest(runID core.RunID, generatedAt core.Timestamp, schemaDir string,
	params Parameters, lociNames []string, failed int, codeVersion string, runtimeMs int64) *Manifest {

	return &Manifest{
		RunID:         runID,
		GeneratedAt:   generatedAt,
		SchemaDir:     schemaDir,
		Parameters:    params,
		LociEvaluated: len(lociNames),
		LociFailed:    failed,
		Fingerprint:   NewFingerprint(lociNames, params, codeVersion),
		RuntimeMs:     runtimeMs,
	}
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("run_manifest", "run_id cannot be empty")
	}
	if m.GeneratedAt.IsZero() {
		return core.NewValidationError("run_manifest", "generated_at cannot be zero")
	}
	if m.SchemaDir == "" {
		return core.NewValidationError("run_manifest", "schema_dir cannot be empty")
	}
	if m.Fingerprint.Combined.IsEmpty() {
		return core.NewValidationError("run_manifest", "fingerprint cannot be empty")
	}
	return nil
}
