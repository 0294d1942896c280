package migration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"oraflake/internal/common"
	"oraflake/internal/convert"
	"oraflake/internal/dbt"
	"oraflake/internal/sqlcheck"
	"oraflake/pkg/errors"
)

// Service converts Oracle SQL files into Snowflake-ready dbt models. Each
// file is processed independently; one file's failure never aborts the batch.
type Service struct {
	checker      *sqlcheck.Checker
	errorHandler *errors.ErrorHandler
}

// NewService creates a migration service with the given statement allowlist
func NewService(allowedStatements ...string) *Service {
	return &Service{
		checker:      sqlcheck.New(allowedStatements...),
		errorHandler: errors.GetGlobalErrorHandler(),
	}
}

// Run executes a migration batch. It returns an error only when the batch
// itself cannot start (bad source directory, unwritable output directory);
// per-file failures are recorded in the report.
func (s *Service) Run(ctx context.Context, opts Options) (*Report, error) {
	files, err := s.resolveFiles(opts)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeFileNotFound, "No SQL files to migrate").
			WithContext("source_dir", opts.SourceDir)
	}

	if !opts.DryRun {
		if err := os.MkdirAll(opts.OutputDir, common.DirPermissionNormal); err != nil {
			return nil, errors.FileError("Failed to create output directory", opts.OutputDir, err)
		}
	}

	report := &Report{}
	usedNames := make(map[string]bool)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := s.processFile(file, opts, usedNames)
		if result.Err != nil {
			s.errorHandler.Handle(result.Err)
		}
		report.Results = append(report.Results, result)

		if opts.WriteSummary && !opts.DryRun {
			if err := appendSummary(opts.OutputDir, result, opts.Materialization); err != nil {
				s.errorHandler.Handle(err)
			}
		}
	}

	return report, nil
}

func (s *Service) resolveFiles(opts Options) ([]string, error) {
	if len(opts.Files) > 0 {
		return opts.Files, nil
	}

	if opts.SourceDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "Either a source directory or explicit files must be given")
	}

	sourceDir, err := common.CleanPath(opts.SourceDir)
	if err != nil {
		return nil, errors.FileError("Invalid source directory", opts.SourceDir, err)
	}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, errors.FileError("Failed to read source directory", sourceDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".sql") {
			files = append(files, filepath.Join(sourceDir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (s *Service) processFile(file string, opts Options, usedNames map[string]bool) FileResult {
	result := FileResult{SourceFile: file}

	data, err := os.ReadFile(file) // #nosec G304 - caller supplies migration inputs
	if err != nil {
		result.Status = StatusFailed
		result.Err = errors.FileError("Failed to read input file", file, err)
		result.Message = "Failed to read file"
		return result
	}

	if !utf8.Valid(data) {
		result.Status = StatusFailed
		result.Err = errors.New(errors.ErrCodeDecodeFailed, "Input is not valid UTF-8 text").
			WithContext("file", file)
		result.Message = "File is not valid UTF-8 text"
		return result
	}
	sqlText := string(data)

	if !opts.SkipValidation {
		check := s.checker.Check(sqlText)
		if !check.Valid {
			result.Status = StatusSkipped
			result.Err = errors.ValidationError(check.Message, file)
			result.Message = check.Message
			return result
		}
	}

	translated, applied := convert.TranslateDetailed(sqlText)
	result.AppliedRules = applied

	wrapped := dbt.Wrap(translated, opts.Materialization, opts.UniqueKey)

	result.ModelName = uniqueModelName(common.SanitizeModelName(file), usedNames, opts.OutputDir)
	usedNames[result.ModelName] = true

	outputPath, err := common.JoinPath(opts.OutputDir, result.ModelName+".sql")
	if err != nil {
		result.Status = StatusFailed
		result.Err = errors.FileError("Invalid output path", opts.OutputDir, err)
		result.Message = "Invalid output path"
		return result
	}
	result.OutputPath = outputPath

	if !opts.DryRun {
		if err := os.WriteFile(result.OutputPath, []byte(wrapped), common.FilePermissionNormal); err != nil {
			result.Status = StatusFailed
			result.Err = errors.FileError("Failed to write model file", result.OutputPath, err)
			result.Message = "Failed to write model file"
			return result
		}
	}

	result.Status = StatusConverted
	result.Message = fmt.Sprintf("Converted (%d rules applied)", len(applied))
	return result
}

// uniqueModelName suffixes the sanitized name with _2, _3, ... when the name
// was already taken earlier in the batch or a model file already exists.
func uniqueModelName(name string, usedNames map[string]bool, outputDir string) string {
	candidate := name
	for i := 2; ; i++ {
		if !usedNames[candidate] && !fileExists(filepath.Join(outputDir, candidate+".sql")) {
			return candidate
		}
		candidate = fmt.Sprintf("%s_%d", name, i)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
