package report

// Styling and export settings shared by the allele-size views. The chart
// widget applies these values unchanged, so the downloaded images keep
// stable names and dimensions across loci and runs.
const (
	histogramFill         = "#0570b0"
	histogramOutline      = "#a6bddb"
	histogramOutlineWidth = 1
	plotGroupGap          = 0.05

	exportFormat = "svg"
	exportWidth  = 700
	exportHeight = 500
	exportScale  = 1

	sizeAxisLabel   = "Sequence Size (bp)"
	countAxisLabel  = "Number of Alleles"
	alleleAxisLabel = "Allele ID"

	distributionTitle = "Distribution of Allele Sizes"
	scatterSeriesName = "Allele Size"

	distributionExportSuffix = "_AlleleSizes"
	scatterExportName        = "AlleleSizes"
)

// Kind discriminates the two chart shapes the locus page knows.
type Kind string

const (
	KindHistogram Kind = "histogram"
	KindScatter   Kind = "scatter"
)

// Marker describes the single series' fill and outline.
type Marker struct {
	Color     string `json:"color,omitempty"`
	LineColor string `json:"lineColor,omitempty"`
	LineWidth int    `json:"lineWidth,omitempty"`
}

// Export carries the image-download settings the chart widget wires to its
// camera button.
type Export struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Scale    int    `json:"scale"`
}

// Dataset is one display-ready chart description. Building one never bins,
// sorts or aggregates: samples and identifiers pass through in allele
// order and any binning happens inside the widget.
type Dataset struct {
	Kind       Kind     `json:"kind"`
	Title      string   `json:"title,omitempty"`
	SeriesName string   `json:"seriesName"`
	IDs        []string `json:"ids,omitempty"`
	Lengths    []int    `json:"lengths"`
	Marker     Marker   `json:"marker"`
	GroupGap   float64  `json:"groupGap"`
	XLabel     string   `json:"xLabel"`
	YLabel     string   `json:"yLabel"`
	Export     Export   `json:"export"`
}

// SizeDistribution builds the binned allele-size view. The series carries
// one sample per allele and is named after the locus, so downloads are
// attributable to it.
func SizeDistribution(lengths []int, locusName string) Dataset {
	return Dataset{
		Kind:       KindHistogram,
		Title:      distributionTitle,
		SeriesName: locusName,
		Lengths:    lengths,
		Marker: Marker{
			Color:     histogramFill,
			LineColor: histogramOutline,
			LineWidth: histogramOutlineWidth,
		},
		GroupGap: plotGroupGap,
		XLabel:   sizeAxisLabel,
		YLabel:   countAxisLabel,
		Export:   newExport(locusName + distributionExportSuffix),
	}
}

// SizePerAllele builds the per-allele view: one marker per allele,
// identifier on x and size on y, index-paired with the inputs. Its export
// filename is fixed rather than locus-derived.
func SizePerAllele(ids []string, lengths []int) Dataset {
	return Dataset{
		Kind:       KindScatter,
		SeriesName: scatterSeriesName,
		IDs:        ids,
		Lengths:    lengths,
		GroupGap:   plotGroupGap,
		XLabel:     alleleAxisLabel,
		YLabel:     sizeAxisLabel,
		Export:     newExport(scatterExportName),
	}
}

func newExport(filename string) Export {
	return Export{
		Filename: filename,
		Format:   exportFormat,
		Width:    exportWidth,
		Height:   exportHeight,
		Scale:    exportScale,
	}
}

// Len returns the number of plotted points.
func (d Dataset) Len() int { return len(d.Lengths) }

// Point returns the identifier/size pair at index i. Histogram datasets
// carry no identifiers, so theirs come back empty.
func (d Dataset) Point(i int) (string, int) {
	id := ""
	if i < len(d.IDs) {
		id = d.IDs[i]
	}
	return id, d.Lengths[i]
}
