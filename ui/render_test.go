package ui

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemascope/domain/core"
	"schemascope/domain/locus"
	"schemascope/domain/report"
	"schemascope/ports"
)

func testPage() ports.PageContext {
	return ports.PageContext{
		Title:       "My Analyzed wg/cg MLST Schema - Rate My Schema",
		RunID:       core.NewRunID(),
		GeneratedAt: core.NewTimestamp(time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)),
	}
}

func testModel(t *testing.T) *report.Model {
	t.Helper()

	summary := []locus.TableSection{
		{Rows: [][]string{{"Locus", "Total Alleles", "Valid Alleles", "Invalid Alleles", "Distinct Proteins", "Size Range (bp)", "Median Length", "Mode Length", "Size Conserved"}}},
		{Rows: [][]string{{"gene_X", "3", "2", "1", "2", "150-153", "150.0", "150", "Yes"}}},
		{Rows: [][]string{{"Allele", "Issue"}, {"gene_X_3", "sequence contains ambiguous bases"}}},
	}
	dna := []locus.SequenceRecord{
		{Name: "gene_X_1", Sequence: "ATGAAATGA"},
		{Name: "gene_X_2", Sequence: "ATGGGGAAATGA"},
	}
	protein := []locus.SequenceRecord{
		{Name: "gene_X_1", Sequence: "MK"},
		{Name: "gene_X_2", Sequence: "MGK"},
	}
	bundle, err := locus.NewBundle(summary, []int{150, 153, 150},
		[]string{"allele_1", "allele_2", "allele_3"},
		"(gene_X_1:1.5,gene_X_2:1.5);", "", dna, protein)
	require.NoError(t, err)

	model, err := report.Assemble(bundle)
	require.NoError(t, err)
	return model
}

func TestRenderLocusEmbedsChartContract(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	out, err := renderer.RenderLocus(testModel(t), testPage())
	require.NoError(t, err)
	html := string(out)

	// Download settings ride the data island untouched.
	assert.Contains(t, html, `"filename":"gene_X_AlleleSizes"`)
	assert.Contains(t, html, `"filename":"AlleleSizes"`)
	assert.Contains(t, html, `"format":"svg"`)
	assert.Contains(t, html, `"width":700`)
	assert.Contains(t, html, `"height":500`)
	assert.Contains(t, html, `"scale":1`)

	// So does the histogram styling.
	assert.Contains(t, html, `"color":"#0570b0"`)
	assert.Contains(t, html, `"lineColor":"#a6bddb"`)
	assert.Contains(t, html, `"lineWidth":1`)
	assert.Contains(t, html, `"groupGap":0.05`)
	assert.Contains(t, html, "Distribution of Allele Sizes")
	assert.Contains(t, html, "toImageButtonOptions")
}

func TestRenderLocusSections(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	out, err := renderer.RenderLocus(testModel(t), testPage())
	require.NoError(t, err)
	html := string(out)

	for _, title := range []string{
		"Locus Summary",
		"Allele Size Plots",
		"Phylogenetic Tree",
		"Multiple Sequence Alignment",
		"DNA Sequences",
		"Protein Sequences",
	} {
		assert.Contains(t, html, title)
	}

	// Both plot panels stay mounted so switching never rebuilds a chart.
	assert.Contains(t, html, `id="plot-0"`)
	assert.Contains(t, html, `id="plot-1"`)

	// Sequence text and the tree render verbatim inside pre blocks.
	assert.Contains(t, html, "&gt;gene_X_1")
	assert.Contains(t, html, "ATGGGGAAATGA")
	assert.Contains(t, html, "MGK")
	assert.Contains(t, html, "(gene_X_1:1.5,gene_X_2:1.5);")

	// Invalid-allele rows surface in the summary tables.
	assert.Contains(t, html, "gene_X_3")
	assert.Contains(t, html, "sequence contains ambiguous bases")
}

func TestRenderLocusNilModel(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	_, err = renderer.RenderLocus(nil, testPage())
	assert.Error(t, err)
}

func TestRenderOverview(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	overview := &ports.Overview{
		Page:            testPage(),
		DescriptionHTML: "<p>Core genome schema for testing.</p>",
		Loci: []ports.LocusRow{
			{
				Name: "gene_X", Page: "loci/gene_X.html",
				Total: 3, Valid: 2, Invalid: 1, DistinctProteins: 2,
				MinSize: 150, MaxSize: 153, MedianSize: 150, ModeSize: 150,
				Conserved: true,
			},
			{
				Name: "gene_Y", Page: "loci/gene_Y.html",
				Total: 1, Valid: 1, DistinctProteins: 1,
				MinSize: 90, MaxSize: 90, MedianSize: 90, ModeSize: 90,
			},
		},
	}

	out, err := renderer.RenderOverview(overview)
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "My Analyzed wg/cg MLST Schema - Rate My Schema")
	assert.Contains(t, html, `href="loci/gene_X.html"`)
	assert.Contains(t, html, `href="loci/gene_Y.html"`)
	assert.Contains(t, html, "150-153")
	assert.Contains(t, html, "Yes")
	assert.Contains(t, html, "No")
	assert.Contains(t, html, "2 loci evaluated")

	// The description is trusted HTML and must not be escaped.
	assert.Contains(t, html, "<p>Core genome schema for testing.</p>")
}

func TestRenderOverviewNil(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	_, err = renderer.RenderOverview(nil)
	assert.Error(t, err)
}

func TestServerServesReportDirectory(t *testing.T) {
	dir := t.TempDir()
	page := []byte("<html><body>schema overview</body></html>")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "schema.html"), page, 0o644))

	srv := NewServer(dir, 0)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/schema.html", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema.html", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "schema overview")
}
