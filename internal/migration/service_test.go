package migration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oraflake/internal/dbt"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunConvertsSingleFile(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "models")
	writeFile(t, sourceDir, "orders.sql", "SELECT NVL(total, 0) FROM orders WHERE created < SYSDATE")

	svc := NewService()
	report, err := svc.Run(context.Background(), Options{
		SourceDir:       sourceDir,
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationView,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, StatusConverted, res.Status)
	assert.Equal(t, "orders", res.ModelName)
	assert.ElementsMatch(t, []string{"sysdate", "nvl"}, res.AppliedRules)

	content, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Equal(t,
		"{{ config(materialized='view') }}\n\nSELECT COALESCE(total, 0) FROM orders WHERE created < CURRENT_TIMESTAMP",
		string(content))
}

func TestRunIncrementalMaterialization(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	writeFile(t, sourceDir, "events.sql", "SELECT * FROM events")

	svc := NewService()
	report, err := svc.Run(context.Background(), Options{
		SourceDir:       sourceDir,
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationIncremental,
		UniqueKey:       "event_id",
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Converted())

	content, err := os.ReadFile(report.Results[0].OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "unique_key='event_id'")
	assert.Contains(t, string(content), "{% if is_incremental() %}")
}

func TestRunSkipsInvalidFileAndContinues(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	writeFile(t, sourceDir, "a_ddl.sql", "CREATE TABLE t (id INT)")
	writeFile(t, sourceDir, "b_good.sql", "SELECT 1 FROM dual")

	svc := NewService()
	report, err := svc.Run(context.Background(), Options{
		SourceDir:       sourceDir,
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationView,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, 1, report.Converted())
	assert.Equal(t, 1, report.Skipped())
	assert.Equal(t, 0, report.Failed())

	ddl := report.Results[0]
	assert.Equal(t, StatusSkipped, ddl.Status)
	assert.Contains(t, ddl.Message, "CREATE")

	good := report.Results[1]
	assert.Equal(t, StatusConverted, good.Status)
}

func TestRunReportsReadFailureAsFailed(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	good := writeFile(t, sourceDir, "good.sql", "SELECT 1 FROM dual")
	unreadable := filepath.Join(sourceDir, "broken.sql")
	require.NoError(t, os.Mkdir(unreadable, 0755))

	svc := NewService()
	report, err := svc.Run(context.Background(), Options{
		Files:           []string{unreadable, good},
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationView,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, 1, report.Converted())
	assert.Equal(t, 0, report.Skipped())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, StatusFailed, report.Results[0].Status)
	assert.Equal(t, "Failed to read file", report.Results[0].Message)
	assert.Equal(t, StatusConverted, report.Results[1].Status)
}

func TestRunRejectsNonUTF8(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	path := filepath.Join(sourceDir, "binary.sql")
	require.NoError(t, os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x41}, 0644))

	svc := NewService()
	report, err := svc.Run(context.Background(), Options{
		SourceDir:       sourceDir,
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationView,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusFailed, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Message, "UTF-8")
}

func TestRunSkipValidationAllowsDDL(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	writeFile(t, sourceDir, "ddl.sql", "CREATE TABLE t (id INT)")

	svc := NewService()
	report, err := svc.Run(context.Background(), Options{
		SourceDir:       sourceDir,
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationView,
		SkipValidation:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Converted())
}

func TestRunModelNameCollision(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	writeFile(t, sourceDir, "daily report.sql", "SELECT 1 FROM dual")
	writeFile(t, sourceDir, "daily-report.sql", "SELECT 2 FROM dual")

	svc := NewService()
	report, err := svc.Run(context.Background(), Options{
		SourceDir:       sourceDir,
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationTable,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	names := []string{report.Results[0].ModelName, report.Results[1].ModelName}
	assert.ElementsMatch(t, []string{"daily_report", "daily_report_2"}, names)
}

func TestRunWritesSummary(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	writeFile(t, sourceDir, "orders.sql", "SELECT 1 FROM dual")
	writeFile(t, sourceDir, "schema.sql", "DROP TABLE t")

	svc := NewService()
	_, err := svc.Run(context.Background(), Options{
		SourceDir:       sourceDir,
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationView,
		WriteSummary:    true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outputDir, SummaryFileName))
	require.NoError(t, err)

	summary := string(data)
	assert.Contains(t, summary, "--- Migration Summary for orders.sql ---")
	assert.Contains(t, summary, "DBT Model Type: view")
	assert.Contains(t, summary, "--- Migration Summary for schema.sql ---")
	assert.Contains(t, summary, "Unsupported SQL statement type: DROP")
}

func TestRunDryRunWritesNothing(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := filepath.Join(t.TempDir(), "models")
	writeFile(t, sourceDir, "orders.sql", "SELECT 1 FROM dual")

	svc := NewService()
	report, err := svc.Run(context.Background(), Options{
		SourceDir:       sourceDir,
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationView,
		WriteSummary:    true,
		DryRun:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Converted())

	_, err = os.Stat(outputDir)
	assert.True(t, os.IsNotExist(err))
}

func TestRunExplicitFileList(t *testing.T) {
	sourceDir := t.TempDir()
	outputDir := t.TempDir()
	file := writeFile(t, sourceDir, "one.sql", "SELECT 1 FROM dual")
	writeFile(t, sourceDir, "two.sql", "SELECT 2 FROM dual")

	svc := NewService()
	report, err := svc.Run(context.Background(), Options{
		Files:           []string{file},
		OutputDir:       outputDir,
		Materialization: dbt.MaterializationView,
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "one", report.Results[0].ModelName)
}

func TestRunEmptySourceDir(t *testing.T) {
	svc := NewService()
	_, err := svc.Run(context.Background(), Options{
		SourceDir:       t.TempDir(),
		OutputDir:       t.TempDir(),
		Materialization: dbt.MaterializationView,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No SQL files")
}

func TestRunMissingSourceDir(t *testing.T) {
	svc := NewService()
	_, err := svc.Run(context.Background(), Options{
		SourceDir:       filepath.Join(t.TempDir(), "does-not-exist"),
		OutputDir:       t.TempDir(),
		Materialization: dbt.MaterializationView,
	})
	require.Error(t, err)
}

func TestRunCancelledContext(t *testing.T) {
	sourceDir := t.TempDir()
	writeFile(t, sourceDir, "orders.sql", "SELECT 1 FROM dual")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService()
	_, err := svc.Run(ctx, Options{
		SourceDir:       sourceDir,
		OutputDir:       t.TempDir(),
		Materialization: dbt.MaterializationView,
	})
	assert.ErrorIs(t, err, context.Canceled)
}
