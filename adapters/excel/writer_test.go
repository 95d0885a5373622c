package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"schemascope/domain/core"
	"schemascope/ports"
)

// TestExportSummary tests that the workbook round-trips header and rows
func TestExportSummary(t *testing.T) {
	overview := &ports.Overview{
		Page: ports.PageContext{
			Title:       "Test Schema",
			RunID:       core.NewRunID(),
			GeneratedAt: core.Now(),
		},
		Loci: []ports.LocusRow{
			{
				Name:             "gene_X",
				Total:            3,
				Valid:            2,
				Invalid:          1,
				DistinctProteins: 2,
				MinSize:          150,
				MaxSize:          153,
				MedianSize:       150,
				ModeSize:         150,
				Conserved:        true,
			},
			{
				Name:             "gene_Y",
				Total:            1,
				Valid:            1,
				DistinctProteins: 1,
				MinSize:          300,
				MaxSize:          300,
				MedianSize:       300,
				ModeSize:         300,
				Conserved:        false,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, NewSummaryWriter().ExportSummary(path, overview))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, summaryColumns, rows[0])
	assert.Equal(t, "gene_X", rows[1][0])
	assert.Equal(t, "3", rows[1][1])
	assert.Equal(t, "Yes", rows[1][9])
	assert.Equal(t, "gene_Y", rows[2][0])
	assert.Equal(t, "No", rows[2][9])
}

// TestExportSummaryEmpty tests a run with no loci still yields a workbook
func TestExportSummaryEmpty(t *testing.T) {
	overview := &ports.Overview{
		Page: ports.PageContext{Title: "Empty", RunID: core.NewRunID(), GeneratedAt: core.Now()},
	}

	path := filepath.Join(t.TempDir(), "summary.xlsx")
	require.NoError(t, NewSummaryWriter().ExportSummary(path, overview))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, summaryColumns, rows[0])
}
