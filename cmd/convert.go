package cmd

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"oraflake/internal/common"
	"oraflake/internal/config"
	"oraflake/internal/convert"
	"oraflake/internal/dbt"
	"oraflake/internal/sqlcheck"
	"oraflake/internal/ui"
	"oraflake/pkg/errors"
)

var (
	convertOutput          string
	convertMaterialization string
	convertUniqueKey       string
	convertSkipValidation  bool
	convertNoWrap          bool
)

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a single Oracle SQL file or stdin",
	Long: `Convert one Oracle SQL input to Snowflake syntax.

Reads the given file, or standard input when the argument is "-" or omitted.
The converted model is printed to standard output unless --output names a
file. Use --no-wrap to emit the translated SQL without a dbt config
directive.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Write the result to this file instead of stdout")
	convertCmd.Flags().StringVarP(&convertMaterialization, "materialization", "m", "", "dbt materialization: view, table or incremental")
	convertCmd.Flags().StringVarP(&convertUniqueKey, "unique-key", "k", "", "Unique key for incremental models")
	convertCmd.Flags().BoolVar(&convertSkipValidation, "skip-validation", false, "Skip the DML statement-type gate")
	convertCmd.Flags().BoolVar(&convertNoWrap, "no-wrap", false, "Emit translated SQL without a dbt config directive")
}

func runConvert(cmd *cobra.Command, args []string) error {
	appConfig, err := config.Load()
	if err != nil {
		return err
	}

	data, source, err := readConvertInput(args)
	if err != nil {
		return err
	}

	if !utf8.Valid(data) {
		return errors.New(errors.ErrCodeDecodeFailed, "Input is not valid UTF-8 text").
			WithContext("source", source)
	}
	sqlText := string(data)

	if !convertSkipValidation && !appConfig.Migration.SkipValidation {
		checker := sqlcheck.New(appConfig.Migration.AllowedStatements...)
		if res := checker.Check(sqlText); !res.Valid {
			return errors.ValidationError(res.Message, source)
		}
	}

	translated, applied := convert.TranslateDetailed(sqlText)
	if rootVerbose {
		for _, name := range applied {
			ui.ShowInfo("applied rule: " + name)
		}
	}

	out := translated
	if !convertNoWrap {
		kindName := appConfig.Migration.Materialization
		if convertMaterialization != "" {
			kindName = convertMaterialization
		}
		kind, err := dbt.ParseMaterialization(kindName)
		if err != nil {
			return err
		}

		uniqueKey := appConfig.Migration.UniqueKey
		if convertUniqueKey != "" {
			uniqueKey = convertUniqueKey
		}
		out = dbt.Wrap(translated, kind, uniqueKey)
	}

	if convertOutput == "" {
		fmt.Println(out)
		return nil
	}

	if err := os.WriteFile(convertOutput, []byte(out), common.FilePermissionNormal); err != nil {
		return errors.FileError("Failed to write output file", convertOutput, err)
	}
	if !rootQuiet {
		ui.ShowSuccess("Wrote " + convertOutput)
	}
	return nil
}

func readConvertInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, "stdin", errors.FileError("Failed to read standard input", "stdin", err)
		}
		return data, "stdin", nil
	}

	path, err := common.CleanPath(args[0])
	if err != nil {
		return nil, args[0], errors.FileError("Invalid input path", args[0], err)
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is validated
	if err != nil {
		return nil, path, errors.FileError("Failed to read input file", path, err)
	}
	return data, path, nil
}
