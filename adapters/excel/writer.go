package excel

import (
	"fmt"
	"log"

	"github.com/xuri/excelize/v2"

	"schemascope/ports"
)

const summarySheet = "Loci"

// summaryColumns is the workbook header row, one column per LocusRow field.
var summaryColumns = []string{
	"Locus",
	"Total Alleles",
	"Valid Alleles",
	"Invalid Alleles",
	"Distinct Proteins",
	"Min Size (bp)",
	"Max Size (bp)",
	"Median Size (bp)",
	"Mode Size (bp)",
	"Size Conserved",
}

// SummaryWriter writes the per-locus summary workbook
type SummaryWriter struct{}

// NewSummaryWriter creates a new summary writer
func NewSummaryWriter() *SummaryWriter {
	return &SummaryWriter{}
}

// ExportSummary writes one row per locus to an XLSX workbook at path
func (w *SummaryWriter) ExportSummary(path string, overview *ports.Overview) error {
	log.Printf("[SummaryWriter] Writing %d loci to %s", len(overview.Loci), path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to name summary sheet: %w", err)
	}

	if err := w.writeHeader(f); err != nil {
		return err
	}

	for i, row := range overview.Loci {
		if err := w.writeRow(f, i+2, row); err != nil {
			return fmt.Errorf("failed to write locus %s: %w", row.Name, err)
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "J", 16); err != nil {
		return fmt.Errorf("failed to size columns: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	log.Printf("[SummaryWriter] Workbook saved: %s", path)
	return nil
}

func (w *SummaryWriter) writeHeader(f *excelize.File) error {
	for col, name := range summaryColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(summarySheet, cell, name); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to build header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(summaryColumns), 1)
	if err != nil {
		return fmt.Errorf("failed to address header range: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", last, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	return nil
}

func (w *SummaryWriter) writeRow(f *excelize.File, rowNum int, row ports.LocusRow) error {
	conserved := "No"
	if row.Conserved {
		conserved = "Yes"
	}

	values := []interface{}{
		row.Name,
		row.Total,
		row.Valid,
		row.Invalid,
		row.DistinctProteins,
		row.MinSize,
		row.MaxSize,
		row.MedianSize,
		row.ModeSize,
		conserved,
	}

	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
