package run

import (
	"fmt"

	"schemascope/domain/core"
)

// Parameters are the evaluation settings that shape a run's outputs. Two
// runs over the same schema produce interchangeable reports only when
// these agree.
type Parameters struct {
	TranslationTable int     `json:"translation_table"`
	SizeThreshold    float64 `json:"size_threshold"`
	MinimumLength    int     `json:"minimum_length"`
	Light            bool    `json:"light_mode"`
}

// Fingerprint ties a report directory to what produced it: the evaluated
// locus set, the evaluation parameters and the code version.
type Fingerprint struct {
	SchemaChecksum core.RunChecksum `json:"schema_checksum"`
	Parameters     Parameters       `json:"parameters"`
	CodeVersion    string           `json:"code_version"`
	Combined       core.Hash        `json:"combined"` // Hash of all above
}

// NewFingerprint creates a fingerprint from the run's determinism inputs.
// Locus names may arrive in any order; the checksum sorts them first.
func NewFingerprint(lociNames []string, params Parameters, codeVersion string) Fingerprint {
	checksum := core.ComputeRunChecksum(lociNames)

	return Fingerprint{
		SchemaChecksum: checksum,
		Parameters:     params,
		CodeVersion:    codeVersion,
		Combined:       combineFingerprint(checksum, params, codeVersion),
	}
}

// combineFingerprint hashes a canonical string rendering of every
// determinism input, so any change to any of them changes the result.
func combineFingerprint(checksum core.RunChecksum, params Parameters, codeVersion string) core.Hash {
	data := fmt.Sprintf("schema:%s|table:%d|threshold:%g|min_length:%d|light:%t|code:%s",
		checksum, params.TranslationTable, params.SizeThreshold,
		params.MinimumLength, params.Light, codeVersion)

	return core.NewHash([]byte(data))
}
