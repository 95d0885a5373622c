package ports

import (
	"schemascope/domain/core"
	"schemascope/domain/report"
)

// PageContext carries the run provenance every rendered page shows.
type PageContext struct {
	Title       string         `json:"title"`
	RunID       core.RunID     `json:"run_id"`
	GeneratedAt core.Timestamp `json:"generated_at"`
}

// LocusRow is one locus in the schema overview: the numbers the overview
// table, the workbook export and the manifest all share.
type LocusRow struct {
	Name             string  `json:"name"`
	Page             string  `json:"page"`
	Total            int     `json:"total_alleles"`
	Valid            int     `json:"valid_alleles"`
	Invalid          int     `json:"invalid_alleles"`
	DistinctProteins int     `json:"distinct_proteins"`
	MinSize          int     `json:"min_size"`
	MaxSize          int     `json:"max_size"`
	MedianSize       float64 `json:"median_size"`
	ModeSize         int     `json:"mode_size"`
	Conserved        bool    `json:"size_conserved"`
}

// Overview aggregates a whole run for the schema page and its exports.
type Overview struct {
	Page            PageContext `json:"page"`
	DescriptionHTML string      `json:"-"`
	Loci            []LocusRow  `json:"loci"`
}

// ReportRenderer renders display-ready models into static pages.
type ReportRenderer interface {
	RenderLocus(model *report.Model, page PageContext) ([]byte, error)
	RenderOverview(overview *Overview) ([]byte, error)
}

// SummaryExporter writes the per-locus summary somewhere a spreadsheet
// can open it.
type SummaryExporter interface {
	ExportSummary(path string, overview *Overview) error
}
