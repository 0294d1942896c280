package cmd

import (
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"oraflake/internal/common"
	"oraflake/internal/config"
	"oraflake/internal/sqlcheck"
	"oraflake/internal/ui"
	"oraflake/pkg/errors"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check that SQL files contain only supported DML",
	Long: `Check each file against the DML statement-type gate without converting it.

The gate accepts SELECT, INSERT, UPDATE, DELETE and WITH statements by
default; the allowlist can be changed in the config file. The command exits
non-zero when any file is rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	appConfig, err := config.Load()
	if err != nil {
		return err
	}

	checker := sqlcheck.New(appConfig.Migration.AllowedStatements...)
	failed := 0

	for _, arg := range args {
		path, err := common.CleanPath(arg)
		if err != nil {
			ui.ShowError(errors.FileError("Invalid input path", arg, err))
			failed++
			continue
		}

		data, err := os.ReadFile(path) // #nosec G304 - path is validated
		if err != nil {
			ui.ShowError(errors.FileError("Failed to read input file", path, err))
			failed++
			continue
		}

		if !utf8.Valid(data) {
			ui.ShowError(errors.New(errors.ErrCodeDecodeFailed, "Input is not valid UTF-8 text").
				WithContext("file", path))
			failed++
			continue
		}

		res := checker.Check(string(data))
		if res.Valid {
			ui.ShowSuccess(arg + ": " + res.Message)
		} else {
			ui.ShowWarning(arg + ": " + res.Message)
			failed++
		}
	}

	if failed > 0 {
		return errors.New(errors.ErrCodeValidationFailed, "One or more files failed validation").
			WithContext("failed", failed)
	}
	return nil
}
