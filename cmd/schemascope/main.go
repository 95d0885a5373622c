package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"schemascope/adapters/excel"
	"schemascope/app"
	"schemascope/internal/config"
	"schemascope/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	rootCmd := &cobra.Command{
		Use:   "schemascope",
		Short: "Rate a wg/cg MLST schema with per-locus HTML reports",
	}

	rootCmd.AddCommand(
		newEvaluateCmd(),
		newServeCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newEvaluateCmd() *cobra.Command {
	var (
		schemaDir        string
		outputDir        string
		translationTable int
		threshold        float64
		minimumLength    int
		workers          int
		light            bool
		title            string
		description      string
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate a schema directory and write its HTML report",
		Long: `Evaluate every locus FASTA file in a schema directory.

Each locus gets a standalone report page with allele size plots, a
phylogenetic tree and its sequences. The run closes with the schema
overview page, an Excel summary workbook and a run manifest.

Example: schemascope evaluate -i ./schema_seed -o ./schema_report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("schema-dir") {
				cfg.Schema.Dir = schemaDir
			}
			if flags.Changed("output-dir") {
				cfg.Report.OutputDir = outputDir
			}
			if flags.Changed("translation-table") {
				cfg.Schema.TranslationTable = translationTable
			}
			if flags.Changed("threshold") {
				cfg.Schema.SizeThreshold = threshold
			}
			if flags.Changed("minimum-length") {
				cfg.Schema.MinimumLength = minimumLength
			}
			if flags.Changed("workers") {
				cfg.Evaluation.Workers = workers
			}
			if flags.Changed("light") {
				cfg.Evaluation.Light = light
			}
			if flags.Changed("title") {
				cfg.Report.Title = title
			}
			if flags.Changed("description") {
				cfg.Report.DescriptionFile = description
			}

			if cfg.Schema.Dir == "" {
				return fmt.Errorf("schema directory is required (use --schema-dir or SCHEMA_DIR)")
			}

			return runEvaluate(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&schemaDir, "schema-dir", "i", "", "Schema directory with one FASTA file per locus")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", config.DefaultOutputDir, "Directory the report is written to")
	cmd.Flags().IntVar(&translationTable, "translation-table", config.DefaultTranslationTable, "NCBI genetic code table for allele translation")
	cmd.Flags().Float64Var(&threshold, "threshold", config.DefaultSizeThreshold, "Allowed allele size deviation from the locus mode")
	cmd.Flags().IntVar(&minimumLength, "minimum-length", 0, "Minimum allele length in base pairs (0 disables)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel locus evaluations (0 = number of CPUs)")
	cmd.Flags().BoolVar(&light, "light", false, "Skip phylogenetic tree construction")
	cmd.Flags().StringVar(&title, "title", config.DefaultTitle, "Report title")
	cmd.Flags().StringVar(&description, "description", "", "Markdown file shown on the schema overview page")

	return cmd
}

func runEvaluate(ctx context.Context, cfg *config.Config) error {
	renderer, err := ui.NewRenderer()
	if err != nil {
		return err
	}

	service := app.NewEvaluationService(cfg, renderer, excel.NewSummaryWriter())
	result, err := service.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\n📊 SCHEMA EVALUATION RESULTS\n")
	fmt.Printf("Run: %s\n", result.RunID)
	fmt.Printf("Loci evaluated: %d\n", len(result.Loci))
	if len(result.Failures) > 0 {
		fmt.Printf("Loci failed: %d\n", len(result.Failures))
		for _, failure := range result.Failures {
			fmt.Printf("  - %s: %s\n", failure.Locus, failure.Err)
		}
	}
	fmt.Printf("Report: %s\n", filepath.Join(result.OutputDir, "schema.html"))
	fmt.Printf("Runtime: %dms\n", result.RuntimeMs)
	return nil
}

func newServeCmd() *cobra.Command {
	var (
		reportDir string
		port      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a generated report directory over HTTP",
		Long: `Serve a previously generated report directory.

The pages are self-contained, so this is only a convenience for browsing
a report without opening files directly.

Example: schemascope serve -d ./schema_report -p 8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("report-dir") {
				cfg.Report.OutputDir = reportDir
			}
			if flags.Changed("port") {
				cfg.Server.Port = port
			}

			return runServe(cfg.Report.OutputDir, cfg.Server.Port)
		},
	}

	cmd.Flags().StringVarP(&reportDir, "report-dir", "d", config.DefaultOutputDir, "Report directory to serve")
	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on")

	return cmd
}

func runServe(dir, port string) error {
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", port, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "schema.html")); err != nil {
		return fmt.Errorf("no report found in %s (run evaluate first): %w", dir, err)
	}
	return ui.NewServer(dir, p).Start()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the schemascope version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("schemascope %s\n", app.Version)
		},
	}
}
