package cmd

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"oraflake/internal/common"
	"oraflake/internal/config"
	"oraflake/internal/dbt"
	"oraflake/internal/snowflake"
	"oraflake/internal/ui"
	"oraflake/pkg/errors"
)

var (
	deployModelsDir string
	deployDryRun    bool
)

var deployCmd = &cobra.Command{
	Use:   "deploy [model-file...]",
	Short: "Execute converted models against Snowflake",
	Long: `Execute converted model files against the configured Snowflake account.

Models are taken from the arguments when given, otherwise every .sql file in
the models directory is deployed. The dbt config directives emitted by the
migration are stripped before execution. One model's failure does not stop
the remaining deployments.`,
	Run: runDeploy,
}

func init() {
	rootCmd.AddCommand(deployCmd)

	deployCmd.Flags().StringVar(&deployModelsDir, "models", "", "Directory of model files (default: migration output dir)")
	deployCmd.Flags().BoolVarP(&deployDryRun, "dry-run", "d", false, "Show the SQL that would be executed without connecting")
}

func runDeploy(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appConfig, err := config.Load()
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}

	files, err := deployFiles(args, appConfig.Migration.OutputDir)
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}

	if !rootQuiet {
		ui.ShowHeader("OraFlake - Model Deployment")
	}

	if deployDryRun {
		for _, file := range files {
			data, err := os.ReadFile(file) // #nosec G304 - paths come from deployFiles
			if err != nil {
				ui.ShowError(errors.FileError("Failed to read model file", file, err))
				continue
			}
			output.Printf("-- %s\n%s\n\n", file, dbt.StripDirectives(string(data)))
		}
		ui.ShowInfo("Dry run: nothing was executed")
		return
	}

	service, err := initializeSnowflakeService()
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}

	output.StartProgress("Connecting to Snowflake...")
	if err := service.Connect(ctx); err != nil {
		output.StopProgress(false, "Connection failed")
		ui.ShowError(err)
		os.Exit(1)
	}
	output.StopProgress(true, "Connected to Snowflake")
	defer service.Close()

	progress := ui.NewProgressBar(len(files))
	failed := 0
	for i, file := range files {
		output.VerbosePrintf("Executing %s\n", file)
		err := service.ExecuteModelFile(ctx, file)
		if err != nil {
			failed++
			ui.ShowError(err)
		}
		progress.Update(i+1, filepath.Base(file), err == nil)
	}
	progress.Finish()

	if failed > 0 {
		os.Exit(1)
	}
}

// snowflakeConfigFromViper reads the connection parameters from the loaded
// config file.
func snowflakeConfigFromViper() snowflake.Config {
	return snowflake.Config{
		Account:   viper.GetString("snowflake.account"),
		Username:  viper.GetString("snowflake.username"),
		Password:  viper.GetString("snowflake.password"),
		Database:  viper.GetString("snowflake.database"),
		Schema:    viper.GetString("snowflake.schema"),
		Warehouse: viper.GetString("snowflake.warehouse"),
		Role:      viper.GetString("snowflake.role"),
	}
}

func initializeSnowflakeService() (*snowflake.Service, error) {
	config := snowflakeConfigFromViper()
	if err := snowflake.ValidateConfig(config); err != nil {
		return nil, err
	}
	return snowflake.NewService(config), nil
}

func deployFiles(args []string, modelsDir string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	if deployModelsDir != "" {
		modelsDir = deployModelsDir
	}
	if modelsDir == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "No models directory configured").
			WithSuggestions("Pass model files as arguments or set --models")
	}

	dir, err := common.CleanPath(modelsDir)
	if err != nil {
		return nil, errors.FileError("Invalid models directory", modelsDir, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.FileError("Failed to read models directory", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".sql") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeFileNotFound, "No model files to deploy").
			WithContext("models_dir", dir)
	}
	return files, nil
}
