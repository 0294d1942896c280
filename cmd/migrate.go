package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"oraflake/internal/config"
	"oraflake/internal/dbt"
	"oraflake/internal/migration"
	"oraflake/internal/ui"
	"oraflake/pkg/models"
)

var (
	migrateSource          string
	migrateOutput          string
	migrateMaterialization string
	migrateUniqueKey       string
	migrateSkipValidation  bool
	migrateNoSummary       bool
	migrateDryRun          bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [file...]",
	Short: "Convert a batch of Oracle SQL files to dbt models",
	Long: `Convert Oracle SQL files to Snowflake syntax and wrap them as dbt models.

Files are taken from the arguments when given, otherwise every .sql file in
the source directory is processed. Each file is validated to be pure DML,
translated, wrapped with a dbt config directive for the selected
materialization and written to the output directory. A file that fails
validation is skipped and reported; it never aborts the batch.`,
	Run: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)

	migrateCmd.Flags().StringVarP(&migrateSource, "source", "s", "", "Directory of Oracle .sql files (default from config)")
	migrateCmd.Flags().StringVarP(&migrateOutput, "output", "o", "", "Output directory for generated models (default from config)")
	migrateCmd.Flags().StringVarP(&migrateMaterialization, "materialization", "m", "", "dbt materialization: view, table or incremental")
	migrateCmd.Flags().StringVarP(&migrateUniqueKey, "unique-key", "k", "", "Unique key for incremental models")
	migrateCmd.Flags().BoolVar(&migrateSkipValidation, "skip-validation", false, "Skip the DML statement-type gate")
	migrateCmd.Flags().BoolVar(&migrateNoSummary, "no-summary", false, "Do not write summary.txt in the output directory")
	migrateCmd.Flags().BoolVarP(&migrateDryRun, "dry-run", "d", false, "Show what would be converted without writing files")
}

func runMigrate(cmd *cobra.Command, args []string) {
	appConfig, err := config.Load()
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}

	opts, err := migrateOptions(appConfig.Migration, args)
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}

	if !rootQuiet {
		ui.ShowHeader("OraFlake - Oracle to Snowflake Migration")
	}

	svc := migration.NewService(appConfig.Migration.AllowedStatements...)
	report, err := svc.Run(context.Background(), opts)
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}

	showReport(report, opts)

	if report.Converted() == 0 {
		os.Exit(1)
	}
}

// migrateOptions merges config defaults with command-line flags; flags win
func migrateOptions(defaults models.Migration, args []string) (migration.Options, error) {
	opts := migration.Options{
		SourceDir:      defaults.SourceDir,
		OutputDir:      defaults.OutputDir,
		UniqueKey:      defaults.UniqueKey,
		SkipValidation: defaults.SkipValidation || migrateSkipValidation,
		WriteSummary:   defaults.WriteSummary && !migrateNoSummary,
		DryRun:         migrateDryRun,
		Files:          args,
	}

	if migrateSource != "" {
		opts.SourceDir = migrateSource
	}
	if migrateOutput != "" {
		opts.OutputDir = migrateOutput
	}
	if migrateUniqueKey != "" {
		opts.UniqueKey = migrateUniqueKey
	}

	kindName := defaults.Materialization
	if migrateMaterialization != "" {
		kindName = migrateMaterialization
	}
	kind, err := dbt.ParseMaterialization(kindName)
	if err != nil {
		return migration.Options{}, err
	}
	opts.Materialization = kind

	return opts, nil
}

func showReport(report *migration.Report, opts migration.Options) {
	if rootQuiet {
		return
	}

	var rows []ui.ResultRow
	for _, res := range report.Results {
		if res.Status == migration.StatusConverted {
			output.VerbosePrintf("%s -> %s (rules: %s)\n",
				res.SourceFile, res.OutputPath, strings.Join(res.AppliedRules, ", "))
		}
		rows = append(rows, ui.ResultRow{
			File:    res.SourceFile,
			Model:   res.ModelName,
			Kind:    string(opts.Materialization),
			Status:  string(res.Status),
			Message: res.Message,
		})
	}
	ui.RenderResultsTable(os.Stdout, rows)

	if opts.DryRun {
		ui.ShowInfo("Dry run: no files were written")
	}
	ui.ShowSuccess(fmt.Sprintf("%d converted, %d skipped, %d failed",
		report.Converted(), report.Skipped(), report.Failed()))
}
