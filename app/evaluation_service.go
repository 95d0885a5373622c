package app

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"schemascope/domain/core"
	"schemascope/domain/report"
	"schemascope/domain/run"
	"schemascope/internal/config"
	"schemascope/internal/errors"
	"schemascope/internal/evaluate"
	"schemascope/ports"
)

// Version is the released schemascope version. It rides along in the run
// manifest so a report directory names the code that produced it.
const Version = "0.3.0"

// EvaluationService runs a full schema evaluation: every locus file in the
// schema directory becomes one report page, and the run closes with the
// overview page, the workbook export and a manifest.
type EvaluationService struct {
	cfg      *config.Config
	renderer ports.ReportRenderer
	exporter ports.SummaryExporter
}

// NewEvaluationService creates an evaluation service.
func NewEvaluationService(cfg *config.Config, renderer ports.ReportRenderer, exporter ports.SummaryExporter) *EvaluationService {
	return &EvaluationService{
		cfg:      cfg,
		renderer: renderer,
		exporter: exporter,
	}
}

// LocusFailure records one locus that could not be evaluated. Failures do
// not abort the run; the remaining loci still get their pages.
type LocusFailure struct {
	Locus string `json:"locus"`
	Err   string `json:"error"`
}

// RunResult summarizes one evaluation run.
type RunResult struct {
	RunID     core.RunID       `json:"run_id"`
	OutputDir string           `json:"output_dir"`
	Loci      []ports.LocusRow `json:"loci"`
	Failures  []LocusFailure   `json:"failures,omitempty"`
	RuntimeMs int64            `json:"runtime_ms"`
}

// Run evaluates the configured schema directory and writes the report.
func (s *EvaluationService) Run(ctx context.Context) (*RunResult, error) {
	startTime := time.Now()
	runID := core.NewRunID()

	files, err := listSchemaFiles(s.cfg.Schema.Dir)
	if err != nil {
		return nil, err
	}
	log.Printf("[Evaluation] Run %s: %d loci in %s", runID, len(files), s.cfg.Schema.Dir)

	outDir := s.cfg.Report.OutputDir
	lociDir := filepath.Join(outDir, "loci")
	if err := os.MkdirAll(lociDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}

	page := ports.PageContext{
		Title:       s.cfg.Report.Title,
		RunID:       runID,
		GeneratedAt: core.Now(),
	}

	evaluator, err := evaluate.New(evaluate.Options{
		TranslationTable: s.cfg.Schema.TranslationTable,
		SizeThreshold:    s.cfg.Schema.SizeThreshold,
		MinimumLength:    s.cfg.Schema.MinimumLength,
		Light:            s.cfg.Evaluation.Light,
	})
	if err != nil {
		return nil, err
	}

	var (
		mu       sync.Mutex
		rows     []ports.LocusRow
		failures []LocusFailure
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.WorkerCount())
	for _, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := s.evaluateOne(evaluator, file, lociDir, page)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				name := evaluate.LocusNameFromPath(file)
				log.Printf("[Evaluation] Locus %s failed: %v", name, err)
				failures = append(failures, LocusFailure{Locus: name, Err: err.Error()})
				return nil
			}
			rows = append(rows, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Workers finish in arbitrary order; the report tables do not.
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	sort.Slice(failures, func(i, j int) bool { return failures[i].Locus < failures[j].Locus })

	overview := &ports.Overview{Page: page, Loci: rows}
	if s.cfg.Report.DescriptionFile != "" {
		html, err := descriptionHTML(s.cfg.Report.DescriptionFile)
		if err != nil {
			return nil, err
		}
		overview.DescriptionHTML = html
	}

	pageBytes, err := s.renderer.RenderOverview(overview)
	if err != nil {
		return nil, errors.RenderError("schema.html", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "schema.html"), pageBytes, 0o644); err != nil {
		return nil, errors.Wrap(err, "failed to write overview page")
	}

	if s.exporter != nil {
		if err := s.exporter.ExportSummary(filepath.Join(outDir, "summary.xlsx"), overview); err != nil {
			return nil, err
		}
	}

	result := &RunResult{
		RunID:     runID,
		OutputDir: outDir,
		Loci:      rows,
		Failures:  failures,
		RuntimeMs: time.Since(startTime).Milliseconds(),
	}

	if err := s.writeManifest(result, page); err != nil {
		return nil, err
	}

	log.Printf("[Evaluation] Run %s finished in %dms (%d loci, %d failures)",
		runID, result.RuntimeMs, len(rows), len(failures))
	return result, nil
}

// evaluateOne takes one locus file through the full path: evaluate,
// assemble, render, write. It returns the overview row for the locus.
func (s *EvaluationService) evaluateOne(evaluator *evaluate.Evaluator, path, lociDir string, page ports.PageContext) (ports.LocusRow, error) {
	result, err := evaluator.EvaluateFile(path)
	if err != nil {
		return ports.LocusRow{}, errors.EvaluationError(evaluate.LocusNameFromPath(path), err)
	}

	model, err := report.Assemble(result.Bundle)
	if err != nil {
		return ports.LocusRow{}, errors.EvaluationError(result.Name, err)
	}

	pageBytes, err := s.renderer.RenderLocus(model, page)
	if err != nil {
		return ports.LocusRow{}, errors.RenderError(result.Name, err)
	}
	if err := os.WriteFile(filepath.Join(lociDir, result.Name+".html"), pageBytes, 0o644); err != nil {
		return ports.LocusRow{}, errors.Wrap(err, "failed to write locus page")
	}

	return ports.LocusRow{
		Name:             result.Name,
		Page:             "loci/" + result.Name + ".html",
		Total:            result.Total,
		Valid:            result.Valid,
		Invalid:          result.Invalid,
		DistinctProteins: result.DistinctProteins,
		MinSize:          result.Stats.Min,
		MaxSize:          result.Stats.Max,
		MedianSize:       result.Stats.Median,
		ModeSize:         result.Stats.Mode,
		Conserved:        result.Stats.Conserved,
	}, nil
}

func (s *EvaluationService) writeManifest(result *RunResult, page ports.PageContext) error {
	names := make([]string, len(result.Loci))
	for i, row := range result.Loci {
		names[i] = row.Name
	}

	params := run.Parameters{
		TranslationTable: s.cfg.Schema.TranslationTable,
		SizeThreshold:    s.cfg.Schema.SizeThreshold,
		MinimumLength:    s.cfg.Schema.MinimumLength,
		Light:            s.cfg.Evaluation.Light,
	}
	manifest := run.NewManifest(result.RunID, page.GeneratedAt, s.cfg.Schema.Dir,
		params, names, len(result.Failures), Version, result.RuntimeMs)
	if err := manifest.Validate(); err != nil {
		return errors.Wrap(err, "run manifest incomplete")
	}

	f, err := os.Create(filepath.Join(result.OutputDir, "manifest.json"))
	if err != nil {
		return errors.Wrap(err, "failed to create run manifest")
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return errors.Wrap(err, "failed to encode run manifest")
	}
	return nil
}

// listSchemaFiles returns the locus FASTA files of a schema directory in
// name order.
func listSchemaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.SchemaError(core.ErrSchemaUnreadable.Error(), err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !isFastaFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, core.ErrEmptySchema
	}
	sort.Strings(files)
	return files, nil
}

func isFastaFile(name string) bool {
	name = strings.TrimSuffix(name, ".gz")
	for _, ext := range []string{".fasta", ".fa", ".fna", ".ffn"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
