package report

import (
	"strings"

	"schemascope/domain/locus"
)

// FormatFASTA renders sequence records as single-line-header FASTA text:
// ">" + name, newline, sequence, newline, concatenated in input order.
// Names and sequences pass through byte for byte with no wrapping and no
// alphabet checks, so the output can feed external sequence tooling
// unchanged. Empty input yields the empty string.
func FormatFASTA(records []locus.SequenceRecord) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder
	for _, rec := range records {
		b.WriteString(">")
		b.WriteString(rec.Name)
		b.WriteString("\n")
		b.WriteString(rec.Sequence)
		b.WriteString("\n")
	}
	return b.String()
}
