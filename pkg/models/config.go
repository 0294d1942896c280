package models

type Config struct {
	Snowflake Snowflake `yaml:"snowflake"`
	Migration Migration `yaml:"migration"`
}

type Snowflake struct {
	Account   string `yaml:"account"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	Role      string `yaml:"role"`
	Warehouse string `yaml:"warehouse"`
	Database  string `yaml:"database"`
	Schema    string `yaml:"schema"`
}

// Migration holds the defaults applied when converting a batch of Oracle
// SQL files into dbt models.
type Migration struct {
	SourceDir         string   `yaml:"source_dir"`
	OutputDir         string   `yaml:"output_dir"`
	Materialization   string   `yaml:"materialization"`
	UniqueKey         string   `yaml:"unique_key"`
	AllowedStatements []string `yaml:"allowed_statements"`
	SkipValidation    bool     `yaml:"skip_validation"`
	WriteSummary      bool     `yaml:"write_summary"`
}

// DefaultMigration returns the migration defaults used when the config
// file does not specify them.
func DefaultMigration() Migration {
	return Migration{
		OutputDir:       "models",
		Materialization: "view",
		UniqueKey:       "id",
		WriteSummary:    true,
	}
}
