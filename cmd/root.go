package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"oraflake/internal/ui"
)

var (
	rootVerbose bool
	rootQuiet   bool

	output = ui.NewUI(false, false)

	rootCmd = &cobra.Command{
		Use:   "oraflake",
		Short: "Migrate Oracle SQL to Snowflake dbt models",
		Long: "OraFlake - A CLI tool that converts Oracle SQL files to Snowflake syntax,\n" +
			"wraps them as dbt models and optionally deploys them to a Snowflake account.",
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&rootQuiet, "quiet", "q", false, "Suppress non-essential output")
}

func initConfig() {
	if configFile := os.Getenv("ORAFLAKE_CONFIG"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.oraflake")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is okay for now
	}

	output = ui.NewUI(rootVerbose, rootQuiet)
}
