package cmd

import (
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"oraflake/internal/config"
	"oraflake/internal/ui"
	"oraflake/pkg/models"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initial configuration setup",
	Run:   runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) {
	output.Println("Setting up OraFlake...")
	output.Println()

	if config.Exists() {
		overwrite, err := ui.Confirm("Configuration already exists. Do you want to overwrite it?", false)
		if err != nil || !overwrite {
			output.Println("Setup cancelled.")
			return
		}
	}

	cfg := &models.Config{Migration: models.DefaultMigration()}

	output.Println("Snowflake Configuration")
	output.Println("-----------------------")

	snowflakeQs := []*survey.Question{
		{
			Name:     "account",
			Prompt:   &survey.Input{Message: "Snowflake Account (e.g., xy12345.us-east-1):"},
			Validate: survey.Required,
		},
		{
			Name:     "username",
			Prompt:   &survey.Input{Message: "Username:"},
			Validate: survey.Required,
		},
		{
			Name:   "role",
			Prompt: &survey.Input{Message: "Role:", Default: "ACCOUNTADMIN"},
		},
		{
			Name:   "warehouse",
			Prompt: &survey.Input{Message: "Warehouse:", Default: "COMPUTE_WH"},
		},
		{
			Name:   "database",
			Prompt: &survey.Input{Message: "Database:"},
		},
		{
			Name:   "schema",
			Prompt: &survey.Input{Message: "Schema:", Default: "PUBLIC"},
		},
	}

	snowflakeAnswers := struct {
		Account   string
		Username  string
		Role      string
		Warehouse string
		Database  string
		Schema    string
	}{}

	if err := survey.Ask(snowflakeQs, &snowflakeAnswers); err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}

	password, err := ui.AskPassword("Password:")
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}

	cfg.Snowflake = models.Snowflake{
		Account:   snowflakeAnswers.Account,
		Username:  snowflakeAnswers.Username,
		Password:  password,
		Role:      snowflakeAnswers.Role,
		Warehouse: snowflakeAnswers.Warehouse,
		Database:  snowflakeAnswers.Database,
		Schema:    snowflakeAnswers.Schema,
	}

	output.Println()
	output.Println("Migration Defaults")
	output.Println("------------------")

	sourceDir, err := ui.AskString("Source directory with Oracle .sql files:", "oracle_sql")
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}
	cfg.Migration.SourceDir = sourceDir

	outputDir, err := ui.AskString("Output directory for dbt models:", cfg.Migration.OutputDir)
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}
	cfg.Migration.OutputDir = outputDir

	materialization, err := ui.AskSelect("Default dbt materialization:",
		[]string{"view", "table", "incremental"}, cfg.Migration.Materialization)
	if err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}
	cfg.Migration.Materialization = materialization

	if materialization == "incremental" {
		uniqueKey, err := ui.AskString("Unique key for incremental models:", cfg.Migration.UniqueKey)
		if err != nil {
			ui.ShowError(err)
			os.Exit(1)
		}
		cfg.Migration.UniqueKey = uniqueKey
	}

	if err := config.Save(cfg); err != nil {
		ui.ShowError(err)
		os.Exit(1)
	}

	output.Println()
	ui.ShowSuccess("Configuration saved to " + config.GetConfigFile())
}
