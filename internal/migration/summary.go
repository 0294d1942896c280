package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"oraflake/internal/common"
	"oraflake/internal/dbt"
	"oraflake/pkg/errors"
)

// SummaryFileName is created inside the output directory, one appended block
// per processed file.
const SummaryFileName = "summary.txt"

func appendSummary(outputDir string, result FileResult, kind dbt.Materialization) error {
	summaryPath := filepath.Join(outputDir, SummaryFileName)

	f, err := os.OpenFile(summaryPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, common.FilePermissionNormal)
	if err != nil {
		return errors.FileError("Failed to open summary file", summaryPath, err)
	}
	defer f.Close()

	fileName := filepath.Base(result.SourceFile)
	status := result.Message
	if status == "" && result.Status == StatusConverted {
		status = "Converted"
	}

	var b strings.Builder
	b.WriteString("--- Migration Summary for " + fileName + " ---\n\n")
	b.WriteString(fmt.Sprintf("File Name: %s\n", fileName))
	b.WriteString(fmt.Sprintf("DBT Model Type: %s\n", kind))
	b.WriteString(fmt.Sprintf("Migration Status: %s\n", status))
	b.WriteString("\n" + strings.Repeat("-", 30) + "\n\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return errors.FileError("Failed to append to summary file", summaryPath, err)
	}
	return nil
}
