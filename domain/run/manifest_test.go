package run

import (
	"testing"
	"time"

	"schemascope/domain/core"
)

func testParameters() Parameters {
	return Parameters{
		TranslationTable: 11,
		SizeThreshold:    0.05,
		MinimumLength:    0,
		Light:            false,
	}
}

// TestFingerprintDeterministic tests that identical inputs produce
// identical fingerprints
func TestFingerprintDeterministic(t *testing.T) {
	names := []string{"locus_01", "locus_02", "locus_03"}
	params := testParameters()

	fp1 := NewFingerprint(names, params, "0.3.0")
	fp2 := NewFingerprint(names, params, "0.3.0")

	if fp1.Combined != fp2.Combined {
		t.Errorf("Fingerprints not identical: %s vs %s", fp1.Combined, fp2.Combined)
	}
	if fp1.SchemaChecksum != fp2.SchemaChecksum {
		t.Errorf("Checksums not identical: %s vs %s", fp1.SchemaChecksum, fp2.SchemaChecksum)
	}
	if fp1.Parameters != params {
		t.Errorf("Parameters not carried: %+v", fp1.Parameters)
	}
	if fp1.CodeVersion != "0.3.0" {
		t.Errorf("CodeVersion not carried: %s", fp1.CodeVersion)
	}
	if fp1.Combined.IsEmpty() {
		t.Error("Combined fingerprint is empty")
	}
}

// TestFingerprintIgnoresLocusOrder tests that the checksum covers the
// locus set, not the completion order
func TestFingerprintIgnoresLocusOrder(t *testing.T) {
	params := testParameters()

	fp1 := NewFingerprint([]string{"locus_01", "locus_02"}, params, "0.3.0")
	fp2 := NewFingerprint([]string{"locus_02", "locus_01"}, params, "0.3.0")

	if fp1.Combined != fp2.Combined {
		t.Errorf("Locus order changed the fingerprint: %s vs %s", fp1.Combined, fp2.Combined)
	}
}

// TestFingerprintUnique tests that changing any determinism input
// changes the combined fingerprint
func TestFingerprintUnique(t *testing.T) {
	names := []string{"locus_01", "locus_02"}
	base := NewFingerprint(names, testParameters(), "0.3.0")

	lightParams := testParameters()
	lightParams.Light = true
	tableParams := testParameters()
	tableParams.TranslationTable = 4
	thresholdParams := testParameters()
	thresholdParams.SizeThreshold = 0.1
	lengthParams := testParameters()
	lengthParams.MinimumLength = 201

	tests := []struct {
		name string
		fp   Fingerprint
	}{
		{"different locus set", NewFingerprint([]string{"locus_01"}, testParameters(), "0.3.0")},
		{"different translation table", NewFingerprint(names, tableParams, "0.3.0")},
		{"different threshold", NewFingerprint(names, thresholdParams, "0.3.0")},
		{"different minimum length", NewFingerprint(names, lengthParams, "0.3.0")},
		{"light mode", NewFingerprint(names, lightParams, "0.3.0")},
		{"different code version", NewFingerprint(names, testParameters(), "0.4.0")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.fp.Combined == base.Combined {
				t.Errorf("Fingerprint did not change: %s", test.fp.Combined)
			}
		})
	}
}

// TestManifestValidate tests the completeness checks
func TestManifestValidate(t *testing.T) {
	complete := NewManifest(core.NewRunID(), core.Now(), "/schemas/seed",
		testParameters(), []string{"locus_01"}, 0, "0.3.0", 42)
	if err := complete.Validate(); err != nil {
		t.Errorf("Expected complete manifest to validate, got %v", err)
	}
	if complete.LociEvaluated != 1 || complete.LociFailed != 0 {
		t.Errorf("Unexpected counts: %d evaluated, %d failed", complete.LociEvaluated, complete.LociFailed)
	}

	missingRun := *complete
	missingRun.RunID = ""
	if err := missingRun.Validate(); err == nil {
		t.Error("Expected error for missing run_id")
	}

	missingTime := *complete
	missingTime.GeneratedAt = core.NewTimestamp(time.Time{})
	if err := missingTime.Validate(); err == nil {
		t.Error("Expected error for zero generated_at")
	}

	missingDir := *complete
	missingDir.SchemaDir = ""
	if err := missingDir.Validate(); err == nil {
		t.Error("Expected error for missing schema_dir")
	}

	missingFingerprint := *complete
	missingFingerprint.Fingerprint.Combined = ""
	if err := missingFingerprint.Validate(); err == nil {
		t.Error("Expected error for missing fingerprint")
	}
}
