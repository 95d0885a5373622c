package ui

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"

	"schemascope/domain/locus"
	"schemascope/domain/report"
	"schemascope/ports"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// Renderer turns assembled locus models into standalone HTML pages. Pages
// carry their chart data inline, so they stay viewable from disk without a
// server.
type Renderer struct {
	templates *template.Template
}

var _ ports.ReportRenderer = (*Renderer)(nil)

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	funcMap := template.FuncMap{
		"yesno": func(b bool) string {
			if b {
				return "Yes"
			}
			return "No"
		},
		"sizeRange": func(min, max int) string {
			return fmt.Sprintf("%d-%d", min, max)
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// locusView is the template payload for one locus page.
type locusView struct {
	Page     ports.PageContext
	Model    *report.Model
	Tables   []summaryTable
	PlotJSON template.JS
}

// plotIsland is the JSON the locus page script reads to draw and toggle
// the two allele-size charts. Both datasets ship up front; switching
// panels only changes which one is visible.
type plotIsland struct {
	Locus  string            `json:"locus"`
	Active int               `json:"active"`
	Plots  [2]report.Dataset `json:"plots"`
}

// RenderLocus renders one locus page from its assembled model.
func (r *Renderer) RenderLocus(model *report.Model, page ports.PageContext) ([]byte, error) {
	if model == nil {
		return nil, fmt.Errorf("render locus: nil model")
	}

	island := plotIsland{Locus: model.Locus, Plots: model.SizePlots}
	if model.Panel != nil {
		island.Active = int(model.Panel.Active())
	}
	payload, err := json.Marshal(island)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plot data: %w", err)
	}

	view := locusView{
		Page:     page,
		Model:    model,
		Tables:   summaryTables(model.Summary),
		PlotJSON: template.JS(payload),
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "locus.html", view); err != nil {
		return nil, fmt.Errorf("failed to render locus page: %w", err)
	}
	return buf.Bytes(), nil
}

// overviewView is the template payload for the schema landing page.
type overviewView struct {
	Page        ports.PageContext
	Description template.HTML
	Loci        []ports.LocusRow
}

// RenderOverview renders the schema landing page listing every locus.
func (r *Renderer) RenderOverview(overview *ports.Overview) ([]byte, error) {
	if overview == nil {
		return nil, fmt.Errorf("render overview: nil overview")
	}

	view := overviewView{
		Page:        overview.Page,
		Description: template.HTML(overview.DescriptionHTML),
		Loci:        overview.Loci,
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, "schema.html", view); err != nil {
		return nil, fmt.Errorf("failed to render overview page: %w", err)
	}
	return buf.Bytes(), nil
}

// summaryTable is one renderable table shaped from the summary sections.
type summaryTable struct {
	Columns []string
	Rows    [][]string
}

// summaryTables shapes the raw summary sections for display. The first
// two sections pair up as the locus statistics table, header row over
// value row. Every later section carries its own header as its first row.
func summaryTables(sections []locus.TableSection) []summaryTable {
	var tables []summaryTable
	if len(sections) >= 2 && len(sections[0].Rows) > 0 {
		tables = append(tables, summaryTable{
			Columns: sections[0].Rows[0],
			Rows:    sections[1].Rows,
		})
	}
	for i := 2; i < len(sections); i++ {
		if len(sections[i].Rows) == 0 {
			continue
		}
		tables = append(tables, summaryTable{
			Columns: sections[i].Rows[0],
			Rows:    sections[i].Rows[1:],
		})
	}
	return tables
}
